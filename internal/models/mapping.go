package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassFacultyMapping says "this faculty member teaches this subject to this
// class". Feedback records denormalize its fields so reports never need a join.
type ClassFacultyMapping struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassName string             `json:"className" bson:"className" validate:"required,min=1,max=50"`
	FacultyID string             `json:"facultyId" bson:"facultyId" validate:"required,min=1,max=50"`
	Subject   string             `json:"subject" bson:"subject" validate:"required,min=1,max=100"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type MappingRequest struct {
	ClassName string `json:"className" validate:"required,min=1,max=50"`
	FacultyID string `json:"facultyId" validate:"required,min=1,max=50"`
	Subject   string `json:"subject" validate:"required,min=1,max=100"`
}

// MappingDraft is an unpersisted mapping proposal, e.g. from the AI generator
// or a parsed CSV row. The admin confirms drafts via the normal create path.
type MappingDraft struct {
	ClassName string `json:"className" validate:"required,min=1,max=50"`
	FacultyID string `json:"facultyId" validate:"required,min=1,max=50"`
	Subject   string `json:"subject" validate:"required,min=1,max=100"`
}
