package submission

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
)

var (
	// ErrIncompleteRatings means the candidate does not carry exactly one
	// rating per active question.
	ErrIncompleteRatings = errors.New("feedback must rate every active question exactly once")

	// ErrRatingOutOfRange means a rating value falls outside 1-5.
	ErrRatingOutOfRange = errors.New("ratings must be between 1 and 5")
)

// CanSubmit reports whether the student may still submit for the given
// assignment: false iff a record in existing matches all three keys. This is
// the fast-path duplicate check; the repository's unique index is the
// authority under concurrent submits.
func CanSubmit(existing []models.Feedback, studentID primitive.ObjectID, facultyID, subject string) bool {
	for _, f := range existing {
		if f.StudentID == studentID && f.FacultyID == facultyID && f.Subject == subject {
			return false
		}
	}
	return true
}

// Validate checks a candidate against the active question catalog and, on
// success, returns it finalized: whitespace-only comment dropped, identifier
// and submission time assigned here rather than trusted from the caller.
// Validate never persists anything.
func Validate(candidate models.Feedback, active []models.Question) (models.Feedback, error) {
	byQuestion := make(map[primitive.ObjectID]int, len(candidate.Ratings))
	for _, r := range candidate.Ratings {
		if r.Rating < 1 || r.Rating > 5 {
			return models.Feedback{}, ErrRatingOutOfRange
		}
		if _, dup := byQuestion[r.QuestionID]; dup {
			return models.Feedback{}, ErrIncompleteRatings
		}
		byQuestion[r.QuestionID] = r.Rating
	}

	for _, q := range active {
		if _, ok := byQuestion[q.ID]; !ok {
			return models.Feedback{}, ErrIncompleteRatings
		}
	}
	if len(byQuestion) != len(active) {
		return models.Feedback{}, ErrIncompleteRatings
	}

	candidate.Comment = strings.TrimSpace(candidate.Comment)
	candidate.ID = primitive.NewObjectID()
	candidate.SubmittedAt = time.Now()
	return candidate, nil
}
