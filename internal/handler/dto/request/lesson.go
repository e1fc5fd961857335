package request

// Prices travel as integer cents on the wire; there is no fractional
// currency anywhere in the system.
type CreateLessonRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Location   string `json:"location" binding:"required"`
	PriceCents int64  `json:"price" binding:"min=0"`
	Capacity   int32  `json:"capacity" binding:"min=0"`
}

// UpdateLessonRequest is a partial update: nil fields keep their
// current value. Available slots are not editable here; they move only
// through reservations and the capacity delta rule.
type UpdateLessonRequest struct {
	Subject    *string `json:"subject,omitempty"`
	Location   *string `json:"location,omitempty"`
	PriceCents *int64  `json:"price,omitempty" binding:"omitempty,min=0"`
	Capacity   *int32  `json:"capacity,omitempty" binding:"omitempty,min=0"`
}
