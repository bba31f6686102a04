package models

import (
	"strings"
	"time"
)

// Document is implemented by every record stored in a catalog collection.
type Document interface {
	GetID() string
	SetID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	Touch(now time.Time)
	Validate() error
}

// Base carries the identity and audit fields shared by stored records.
type Base struct {
	ID        string    `bson:"id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (b *Base) GetID() string { return b.ID }

func (b *Base) SetID(id string) { b.ID = id }

func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }

func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// Touch stamps UpdatedAt, and CreatedAt on first save.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// BilingualText holds an English and an Arabic rendering of the same label.
type BilingualText struct {
	En string `bson:"en" json:"en"`
	Ar string `bson:"ar" json:"ar"`
}

// Display prefers the English label and falls back to Arabic.
func (t BilingualText) Display() string {
	if en := strings.TrimSpace(t.En); en != "" {
		return en
	}
	return strings.TrimSpace(t.Ar)
}

// IsEmpty reports whether neither language has text.
func (t BilingualText) IsEmpty() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Ar) == ""
}
