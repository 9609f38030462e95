package model

import "time"

type (
	// Model describes the generic behavior of the database records.
	Model interface {
		GetID() string
		SetID(id string)
		SetCreatedAt(t time.Time)
		SetUpdatedAt(t time.Time)
	}

	// Base holds the fields shared by all records.
	Base struct {
		ID        string    `json:"id"         storm:"id"`
		CreatedAt time.Time `json:"created_at" storm:"index"`
		UpdatedAt time.Time `json:"updated_at" storm:"index"`
	}
)

func (b *Base) GetID() string {
	return b.ID
}

func (b *Base) SetID(id string) {
	b.ID = id
}

func (b *Base) SetCreatedAt(t time.Time) {
	b.CreatedAt = t
}

func (b *Base) SetUpdatedAt(t time.Time) {
	b.UpdatedAt = t
}
