package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is one rating criterion shown to students. Questions are ordered
// by Order ascending and are never deleted mid-semester.
type Question struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text" validate:"required,min=5,max=300"`
	Order     int                `json:"order" bson:"order" validate:"min=0"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type QuestionRequest struct {
	Text  string `json:"text" validate:"required,min=5,max=300"`
	Order int    `json:"order" validate:"min=0"`
}
