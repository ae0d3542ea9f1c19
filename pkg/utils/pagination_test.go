package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPerPage(t *testing.T) {
	assert.Equal(t, DefaultPerPage, ClampPerPage(0))
	assert.Equal(t, 25, ClampPerPage(25))
	assert.Equal(t, MaxPerPage, ClampPerPage(500))
}

func TestCalculateTotalPagesAndOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
}
