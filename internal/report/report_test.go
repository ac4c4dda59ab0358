package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
)

func ratings(ids []primitive.ObjectID, values ...int) []models.QuestionRating {
	rs := make([]models.QuestionRating, len(values))
	for i, v := range values {
		rs[i] = models.QuestionRating{QuestionID: ids[i], Rating: v}
	}
	return rs
}

func TestAvgByQuestion(t *testing.T) {
	q1 := models.Question{ID: primitive.NewObjectID(), Text: "Clarity of lectures", Order: 1}
	q2 := models.Question{ID: primitive.NewObjectID(), Text: "Punctuality", Order: 2}
	questions := []models.Question{q1, q2}
	ids := []primitive.ObjectID{q1.ID, q2.ID}

	t.Run("sum over count per question", func(t *testing.T) {
		feedback := []models.Feedback{
			{Ratings: ratings(ids, 5, 3)},
			{Ratings: ratings(ids, 4, 4)},
			{Ratings: ratings(ids, 2, 5)},
		}

		avgs := AvgByQuestion(feedback, questions)

		assert.Equal(t, 3.67, avgs[q1.ID.Hex()])
		assert.Equal(t, 4.0, avgs[q2.ID.Hex()])
	})

	t.Run("unanswered question gets sentinel not NaN", func(t *testing.T) {
		feedback := []models.Feedback{
			{Ratings: []models.QuestionRating{{QuestionID: q1.ID, Rating: 5}}},
		}

		avgs := AvgByQuestion(feedback, questions)

		assert.Equal(t, 5.0, avgs[q1.ID.Hex()])
		assert.Equal(t, NoData, avgs[q2.ID.Hex()])
	})

	t.Run("empty feedback yields sentinel for every question", func(t *testing.T) {
		avgs := AvgByQuestion(nil, questions)

		assert.Len(t, avgs, 2)
		assert.Equal(t, NoData, avgs[q1.ID.Hex()])
		assert.Equal(t, NoData, avgs[q2.ID.Hex()])
	})
}

func TestAvgForAssignment(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	ids := []primitive.ObjectID{q1, q2}

	t.Run("flattens ratings across records", func(t *testing.T) {
		// [5,5] and [1,1] must average to 3.0 as a flat multiset.
		feedback := []models.Feedback{
			{FacultyID: "101", Subject: "Data Structures", Ratings: ratings(ids, 5, 5)},
			{FacultyID: "101", Subject: "Data Structures", Ratings: ratings(ids, 1, 1)},
		}

		assert.Equal(t, 3.0, AvgForAssignment(feedback, "101", "Data Structures"))
	})

	t.Run("ignores other assignments", func(t *testing.T) {
		feedback := []models.Feedback{
			{FacultyID: "101", Subject: "Data Structures", Ratings: ratings(ids, 4, 4)},
			{FacultyID: "101", Subject: "Algorithms", Ratings: ratings(ids, 1, 1)},
			{FacultyID: "102", Subject: "Data Structures", Ratings: ratings(ids, 1, 1)},
		}

		assert.Equal(t, 4.0, AvgForAssignment(feedback, "101", "Data Structures"))
	})

	t.Run("no matching records", func(t *testing.T) {
		assert.Equal(t, NoData, AvgForAssignment(nil, "101", "Data Structures"))
	})
}

func TestAvgForClass(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	ids := []primitive.ObjectID{q1, q2}

	feedback := []models.Feedback{
		{ClassName: "CS-A", Ratings: ratings(ids, 5, 4)},
		{ClassName: "CS-A", Ratings: ratings(ids, 3, 3)},
		{ClassName: "CS-B", Ratings: ratings(ids, 1, 1)},
	}

	assert.Equal(t, 3.75, AvgForClass(feedback, "CS-A"))
	assert.Equal(t, NoData, AvgForClass(feedback, "CS-C"))
	assert.Equal(t, NoData, AvgForClass(nil, "CS-A"))
}

func TestRate(t *testing.T) {
	roster := []models.Student{
		{RegisterNumber: "R001", ClassName: "CS-A"},
		{RegisterNumber: "R002", ClassName: "CS-A"},
		{RegisterNumber: "R003", ClassName: "CS-B"},
	}

	t.Run("counts submissions against enrollment", func(t *testing.T) {
		feedback := []models.Feedback{
			{FacultyID: "101", Subject: "Data Structures", ClassName: "CS-A"},
		}

		rr := Rate(feedback, "101", "Data Structures", roster, "CS-A")

		assert.Equal(t, ResponseRate{Submitted: 1, Total: 2}, rr)
		assert.True(t, rr.Defined())
		assert.Equal(t, 0.5, rr.Fraction())
	})

	t.Run("empty class is undefined, never a division", func(t *testing.T) {
		rr := Rate(nil, "101", "Data Structures", roster, "CS-Z")

		assert.Equal(t, ResponseRate{Submitted: 0, Total: 0}, rr)
		assert.False(t, rr.Defined())
		assert.Equal(t, 0.0, rr.Fraction())
	})
}

func TestComments(t *testing.T) {
	t.Run("drops absent comments", func(t *testing.T) {
		feedback := []models.Feedback{
			{Comment: "Great teacher"},
			{Comment: ""},
			{Comment: "More examples please"},
		}

		got := Comments(feedback)

		assert.ElementsMatch(t, []string{"Great teacher", "More examples please"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Comments(nil))
	})

	t.Run("order is reshuffled per read", func(t *testing.T) {
		feedback := make([]models.Feedback, 10)
		for i := range feedback {
			feedback[i] = models.Feedback{Comment: fmt.Sprintf("comment %d", i)}
		}

		first := Comments(feedback)
		varied := false
		for i := 0; i < 50 && !varied; i++ {
			next := Comments(feedback)
			assert.ElementsMatch(t, first, next)
			for j := range next {
				if next[j] != first[j] {
					varied = true
					break
				}
			}
		}
		assert.True(t, varied, "50 reads of 10 comments never changed order")
	})
}

func TestStandings(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	ids := []primitive.ObjectID{q1, q2}

	faculty := []models.Faculty{
		{FacultyID: "101", Name: "Asha Verma"},
		{FacultyID: "102", Name: "Benoit Laurent"},
		{FacultyID: "103", Name: "Chidi Okafor"},
	}
	mappings := []models.ClassFacultyMapping{
		{ClassName: "CS-A", FacultyID: "101", Subject: "Data Structures"},
		{ClassName: "CS-B", FacultyID: "101", Subject: "Data Structures"}, // same assignment, other class
		{ClassName: "CS-A", FacultyID: "102", Subject: "Algorithms"},
		{ClassName: "CS-B", FacultyID: "103", Subject: "Networks"},
	}

	t.Run("ranks assignments by average descending", func(t *testing.T) {
		feedback := []models.Feedback{
			{FacultyID: "101", Subject: "Data Structures", Ratings: ratings(ids, 5, 5)},
			{FacultyID: "102", Subject: "Algorithms", Ratings: ratings(ids, 3, 3)},
			{FacultyID: "103", Subject: "Networks", Ratings: ratings(ids, 4, 4)},
		}

		standings := Standings(feedback, mappings, faculty)

		assert.Len(t, standings, 3)
		assert.Equal(t, "Asha Verma", standings[0].Name)
		assert.Equal(t, 5.0, standings[0].Average)
		assert.Equal(t, "Chidi Okafor", standings[1].Name)
		assert.Equal(t, "Benoit Laurent", standings[2].Name)
	})

	t.Run("equal averages break ties by name ascending", func(t *testing.T) {
		feedback := []models.Feedback{
			{FacultyID: "103", Subject: "Networks", Ratings: ratings(ids, 4, 4)},
			{FacultyID: "102", Subject: "Algorithms", Ratings: ratings(ids, 4, 4)},
		}

		standings := Standings(feedback, mappings, faculty)

		assert.Equal(t, "Benoit Laurent", standings[0].Name)
		assert.Equal(t, "Chidi Okafor", standings[1].Name)
	})

	t.Run("empty everything", func(t *testing.T) {
		assert.Empty(t, Standings(nil, nil, nil))
	})
}

func TestTopBottomRated(t *testing.T) {
	standings := []Standing{
		{FacultyID: "101", Average: 4.8},
		{FacultyID: "102", Average: 4.1},
		{FacultyID: "103", Average: 3.2},
	}

	assert.Equal(t, standings[:2], TopRated(standings, 2))
	assert.Equal(t, standings, TopRated(standings, 5))

	bottom := BottomRated(standings, 2)
	assert.Equal(t, "103", bottom[0].FacultyID)
	assert.Equal(t, "102", bottom[1].FacultyID)

	assert.Empty(t, TopRated(nil, 5))
	assert.Empty(t, BottomRated(nil, 5))
}

func TestEndToEndScenario(t *testing.T) {
	// Class CS-A has 2 students; 1 submits for faculty 101 / Data Structures
	// with ratings [5,5,4,5,4,5] and comment "Great teacher".
	qids := make([]primitive.ObjectID, 6)
	questions := make([]models.Question, 6)
	for i := range qids {
		qids[i] = primitive.NewObjectID()
		questions[i] = models.Question{ID: qids[i], Order: i}
	}
	roster := []models.Student{
		{RegisterNumber: "R001", ClassName: "CS-A"},
		{RegisterNumber: "R002", ClassName: "CS-A"},
	}
	feedback := []models.Feedback{{
		StudentID: primitive.NewObjectID(),
		FacultyID: "101",
		ClassName: "CS-A",
		Subject:   "Data Structures",
		Ratings:   ratings(qids, 5, 5, 4, 5, 4, 5),
		Comment:   "Great teacher",
	}}

	assert.Equal(t, ResponseRate{Submitted: 1, Total: 2}, Rate(feedback, "101", "Data Structures", roster, "CS-A"))
	assert.Equal(t, 4.67, AvgForAssignment(feedback, "101", "Data Structures"))
	assert.Equal(t, []string{"Great teacher"}, Comments(feedback))
}
