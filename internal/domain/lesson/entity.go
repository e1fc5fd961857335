package lesson

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySubject     = errors.New("lesson subject cannot be empty")
	ErrEmptyLocation    = errors.New("lesson location cannot be empty")
	ErrSubjectTooLong   = errors.New("lesson subject is too long (max 255 characters)")
	ErrLocationTooLong  = errors.New("lesson location is too long (max 255 characters)")
	ErrNegativePrice    = errors.New("lesson price cannot be negative")
	ErrNegativeCapacity = errors.New("lesson capacity cannot be negative")
)

const (
	MaxSubjectLength  = 255
	MaxLocationLength = 255
)

// Lesson is a bookable offering with a price and finite seat capacity.
// availableSlots is owned by the catalog store; the entity only carries it.
type Lesson struct {
	id             uuid.UUID
	subject        string
	location       string
	priceCents     int64
	capacity       int32
	availableSlots int32
	createdAt      time.Time
	updatedAt      time.Time
}

// New creates a Lesson with all seats available.
func New(id uuid.UUID, subject, location string, priceCents int64, capacity int32) (*Lesson, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := validateLocation(location); err != nil {
		return nil, err
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}

	return &Lesson{
		id:             id,
		subject:        strings.TrimSpace(subject),
		location:       strings.TrimSpace(location),
		priceCents:     priceCents,
		capacity:       capacity,
		availableSlots: capacity,
	}, nil
}

func validateSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ErrEmptySubject
	}
	if len(subject) > MaxSubjectLength {
		return ErrSubjectTooLong
	}
	return nil
}

func validateLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrEmptyLocation
	}
	if len(location) > MaxLocationLength {
		return ErrLocationTooLong
	}
	return nil
}

// ValidateMetadata checks admin-editable fields without building an entity.
// Used by partial updates where unchanged fields are not re-supplied.
func ValidateMetadata(subject, location *string, priceCents *int64, capacity *int32) error {
	if subject != nil {
		if err := validateSubject(*subject); err != nil {
			return err
		}
	}
	if location != nil {
		if err := validateLocation(*location); err != nil {
			return err
		}
	}
	if priceCents != nil && *priceCents < 0 {
		return ErrNegativePrice
	}
	if capacity != nil && *capacity < 0 {
		return ErrNegativeCapacity
	}
	return nil
}

func (l *Lesson) ID() uuid.UUID         { return l.id }
func (l *Lesson) Subject() string       { return l.subject }
func (l *Lesson) Location() string      { return l.location }
func (l *Lesson) PriceCents() int64     { return l.priceCents }
func (l *Lesson) Capacity() int32       { return l.capacity }
func (l *Lesson) AvailableSlots() int32 { return l.availableSlots }
func (l *Lesson) CreatedAt() time.Time  { return l.createdAt }
func (l *Lesson) UpdatedAt() time.Time  { return l.updatedAt }
