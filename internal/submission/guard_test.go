package submission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
)

func activeQuestions(n int) []models.Question {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = models.Question{ID: primitive.NewObjectID(), Order: i}
	}
	return qs
}

func candidateFor(questions []models.Question, rating int) models.Feedback {
	rs := make([]models.QuestionRating, len(questions))
	for i, q := range questions {
		rs[i] = models.QuestionRating{QuestionID: q.ID, Rating: rating}
	}
	return models.Feedback{
		StudentID: primitive.NewObjectID(),
		FacultyID: "101",
		ClassName: "CS-A",
		Subject:   "Data Structures",
		Semester:  "5",
		Ratings:   rs,
	}
}

func TestCanSubmit(t *testing.T) {
	student := primitive.NewObjectID()
	other := primitive.NewObjectID()
	existing := []models.Feedback{
		{StudentID: student, FacultyID: "101", Subject: "Data Structures"},
	}

	t.Run("blocks identical triple", func(t *testing.T) {
		assert.False(t, CanSubmit(existing, student, "101", "Data Structures"))
	})

	t.Run("any differing key allows", func(t *testing.T) {
		assert.True(t, CanSubmit(existing, other, "101", "Data Structures"))
		assert.True(t, CanSubmit(existing, student, "102", "Data Structures"))
		assert.True(t, CanSubmit(existing, student, "101", "Algorithms"))
	})

	t.Run("empty history allows", func(t *testing.T) {
		assert.True(t, CanSubmit(nil, student, "101", "Data Structures"))
	})
}

func TestValidate(t *testing.T) {
	questions := activeQuestions(3)

	t.Run("accepts complete candidate and finalizes it", func(t *testing.T) {
		candidate := candidateFor(questions, 4)
		candidate.Comment = "  Great teacher  "

		before := time.Now()
		got, err := Validate(candidate, questions)

		assert.NoError(t, err)
		assert.False(t, got.ID.IsZero())
		assert.False(t, got.SubmittedAt.Before(before))
		assert.Equal(t, "Great teacher", got.Comment)
		assert.Equal(t, candidate.Ratings, got.Ratings)
	})

	t.Run("caller timestamps and ids are not trusted", func(t *testing.T) {
		candidate := candidateFor(questions, 3)
		candidate.ID = primitive.NewObjectID()
		candidate.SubmittedAt = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

		got, err := Validate(candidate, questions)

		assert.NoError(t, err)
		assert.NotEqual(t, candidate.ID, got.ID)
		assert.True(t, got.SubmittedAt.After(candidate.SubmittedAt))
	})

	t.Run("whitespace-only comment is dropped", func(t *testing.T) {
		candidate := candidateFor(questions, 5)
		candidate.Comment = "   \t\n"

		got, err := Validate(candidate, questions)

		assert.NoError(t, err)
		assert.Equal(t, "", got.Comment)
	})

	t.Run("missing question rating", func(t *testing.T) {
		candidate := candidateFor(questions, 4)
		candidate.Ratings = candidate.Ratings[:2]

		_, err := Validate(candidate, questions)

		assert.ErrorIs(t, err, ErrIncompleteRatings)
	})

	t.Run("duplicate rating for one question", func(t *testing.T) {
		candidate := candidateFor(questions, 4)
		candidate.Ratings[2].QuestionID = candidate.Ratings[0].QuestionID

		_, err := Validate(candidate, questions)

		assert.ErrorIs(t, err, ErrIncompleteRatings)
	})

	t.Run("rating for an inactive question", func(t *testing.T) {
		candidate := candidateFor(questions, 4)
		candidate.Ratings = append(candidate.Ratings, models.QuestionRating{
			QuestionID: primitive.NewObjectID(),
			Rating:     5,
		})

		_, err := Validate(candidate, questions)

		assert.ErrorIs(t, err, ErrIncompleteRatings)
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, bad := range []int{0, 6, -1} {
			candidate := candidateFor(questions, 4)
			candidate.Ratings[1].Rating = bad

			_, err := Validate(candidate, questions)

			assert.ErrorIs(t, err, ErrRatingOutOfRange)
		}
	})

	t.Run("no active questions accepts empty ratings", func(t *testing.T) {
		candidate := candidateFor(nil, 0)

		got, err := Validate(candidate, nil)

		assert.NoError(t, err)
		assert.Empty(t, got.Ratings)
	})
}
