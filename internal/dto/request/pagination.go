package request

import "hotel-reservation/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage)
}

// PageOrDefault normalizes the page number for response metadata.
func (p PaginatedRequest) PageOrDefault() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
