//go:build unit || e2e

package builder

import (
	"time"

	domlesson "lessonbook/internal/domain/lesson"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type LessonBuilder struct {
	ID             uuid.UUID
	Subject        string
	Location       string
	PriceCents     int64
	Capacity       int32
	AvailableSlots int32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewLessonBuilder() *LessonBuilder {
	now := time.Now()
	return &LessonBuilder{
		ID:             uuid.New(),
		Subject:        "Beginner Guitar",
		Location:       "Studio A",
		PriceCents:     4500,
		Capacity:       8,
		AvailableSlots: 8,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *LessonBuilder) With(mutate func(*LessonBuilder)) *LessonBuilder {
	mutate(b)
	return b
}

func (b *LessonBuilder) WithSubject(s string) *LessonBuilder {
	b.Subject = s
	return b
}

func (b *LessonBuilder) WithLocation(l string) *LessonBuilder {
	b.Location = l
	return b
}

func (b *LessonBuilder) WithPriceCents(p int64) *LessonBuilder {
	b.PriceCents = p
	return b
}

func (b *LessonBuilder) WithCapacity(c int32) *LessonBuilder {
	b.Capacity = c
	b.AvailableSlots = c
	return b
}

// Build methods
func (b *LessonBuilder) BuildDomain() (*domlesson.Lesson, error) {
	return domlesson.New(b.ID, b.Subject, b.Location, b.PriceCents, b.Capacity)
}

func (b *LessonBuilder) BuildView() *queries.LessonView {
	return &queries.LessonView{
		ID:             b.ID,
		Subject:        b.Subject,
		Location:       b.Location,
		PriceCents:     b.PriceCents,
		Capacity:       b.Capacity,
		AvailableSlots: b.AvailableSlots,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (b *LessonBuilder) BuildCreateRequestDTO() reqdto.CreateLessonRequest {
	return reqdto.CreateLessonRequest{
		Subject:    b.Subject,
		Location:   b.Location,
		PriceCents: b.PriceCents,
		Capacity:   b.Capacity,
	}
}

func (b *LessonBuilder) BuildUpdateRequestDTO() reqdto.UpdateLessonRequest {
	subject := b.Subject
	location := b.Location
	price := b.PriceCents
	capacity := b.Capacity
	return reqdto.UpdateLessonRequest{
		Subject:    &subject,
		Location:   &location,
		PriceCents: &price,
		Capacity:   &capacity,
	}
}
