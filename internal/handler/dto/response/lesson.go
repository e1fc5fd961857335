package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"lessonbook/internal/usecase/queries"
)

type LessonResponse struct {
	ID             uuid.UUID `json:"id"`
	Subject        string    `json:"subject"`
	Location       string    `json:"location"`
	PriceCents     int64     `json:"price"`
	Capacity       int32     `json:"capacity"`
	AvailableSlots int32     `json:"availableSlots"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromLessonView(v *queries.LessonView) (*LessonResponse, error) {
	var res LessonResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromLessonViews(views []*queries.LessonView) ([]*LessonResponse, error) {
	res := make([]*LessonResponse, len(views))
	for i, v := range views {
		r, err := FromLessonView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

type CreateLessonResponse struct {
	ID uuid.UUID `json:"id"`
}
