package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 3, ParseInt("3", 10))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-06-01", FormatDate(d))

	_, err = ParseDate("01/06/2024")
	assert.Error(t, err)
}

func TestGenerateBookingReference(t *testing.T) {
	ref := GenerateBookingReference(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^BK-20240601-[0-9A-F]{8}$`), ref)
	assert.NotEqual(t, ref, GenerateBookingReference(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)))
}

func TestGenerateTransactionIDIsUnique(t *testing.T) {
	a, b := GenerateTransactionID(), GenerateTransactionID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^TXN-`, a)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}

type sampleRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Date   string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Rating: 6, Date: "june"})

	require.Len(t, errs, 2)
	assert.Equal(t, "Must be at most 5", errs["rating"])
	assert.Equal(t, "Must be a date in 2006-01-02 format", errs["check_in_date"])
	assert.Equal(t, "check_in_date: Must be a date in 2006-01-02 format; rating: Must be at most 5", FormatValidationErrors(errs))

	assert.Empty(t, ValidateStruct(sampleRequest{Rating: 5, Date: "2024-06-01"}))
}
