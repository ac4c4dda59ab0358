package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is the central fact record: one anonymous submission per
// (student, faculty, subject). It is append-only; records are never updated
// or deleted once accepted. ClassName and Subject are denormalized from the
// mapping so reporting reads need no join.
type Feedback struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StudentID   primitive.ObjectID `json:"studentId" bson:"studentId"`
	FacultyID   string             `json:"facultyId" bson:"facultyId"`
	ClassName   string             `json:"className" bson:"className"`
	Subject     string             `json:"subject" bson:"subject"`
	Ratings     []QuestionRating   `json:"ratings" bson:"ratings"`
	Comment     string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Semester    string             `json:"semester" bson:"semester"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
}

// QuestionRating is a single 1-5 answer for one question.
type QuestionRating struct {
	QuestionID primitive.ObjectID `json:"questionId" bson:"questionId"`
	Rating     int                `json:"rating" bson:"rating"`
}

type SubmitFeedbackRequest struct {
	MappingID string        `json:"mappingId" validate:"required"`
	Ratings   []RatingEntry `json:"ratings" validate:"required,min=1,dive"`
	Comment   string        `json:"comment,omitempty"`
	Semester  string        `json:"semester" validate:"required,min=1,max=20"`
}

type RatingEntry struct {
	QuestionID string `json:"questionId" validate:"required"`
	Rating     int    `json:"rating" validate:"required"`
}
