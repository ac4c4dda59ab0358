package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Faculty is a teaching staff account. FacultyID is the institution-assigned
// staff code referenced by mappings and feedback; ID is the database identity.
type Faculty struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FacultyID  string             `json:"facultyId" bson:"facultyId" validate:"required,min=1,max=50"`
	Name       string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Department string             `json:"department" bson:"department" validate:"required,min=1,max=100"`
	Password   string             `json:"-" bson:"password" validate:"required,min=6"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type FacultyRequest struct {
	FacultyID  string `json:"facultyId" validate:"required,min=1,max=50"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Department string `json:"department" validate:"required,min=1,max=100"`
	Password   string `json:"password" validate:"required,min=6"`
}
