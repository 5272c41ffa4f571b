package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single to-do item as stored and served by the API.
// JSON field names follow the wire format consumed by existing clients
// (item/isDone rather than title/completed).
type Todo struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Item      string    `json:"item" gorm:"size:200;not null"`
	IsDone    bool      `json:"isDone" gorm:"default:false;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// MarkAction is the payload verb for PUT /todos/:id/mark.
type MarkAction string

const (
	MarkDone   MarkAction = "DONE"
	MarkUndone MarkAction = "UNDONE"
)

// Valid reports whether the action is one of the two accepted verbs.
func (a MarkAction) Valid() bool {
	return a == MarkDone || a == MarkUndone
}
