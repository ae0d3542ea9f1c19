package request

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type UpdateReviewVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type AdminReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=1000"`
}
