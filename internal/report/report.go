package report

import (
	"math"
	"math/rand"
	"sort"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
)

// NoData is the average reported when no ratings exist for a question,
// assignment or class. Callers render it as "no data"; it is never NaN.
const NoData = 0.0

// AvgByQuestion computes the mean rating per question across all records,
// rounded to 2 decimals. Every question in the catalog gets an entry, keyed by
// its hex id; questions nobody has answered yet map to NoData.
func AvgByQuestion(feedback []models.Feedback, questions []models.Question) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, f := range feedback {
		for _, r := range f.Ratings {
			key := r.QuestionID.Hex()
			sums[key] += r.Rating
			counts[key]++
		}
	}

	averages := make(map[string]float64, len(questions))
	for _, q := range questions {
		key := q.ID.Hex()
		if counts[key] == 0 {
			averages[key] = NoData
			continue
		}
		averages[key] = round2(float64(sums[key]) / float64(counts[key]))
	}
	return averages
}

// AvgForAssignment is the mean over every individual rating submitted for the
// (faculty, subject) assignment. Ratings are flattened across questions and
// records: each answer counts equally, it is not a mean of per-question means.
func AvgForAssignment(feedback []models.Feedback, facultyID, subject string) float64 {
	var sum, count int
	for _, f := range feedback {
		if f.FacultyID != facultyID || f.Subject != subject {
			continue
		}
		for _, r := range f.Ratings {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return NoData
	}
	return round2(float64(sum) / float64(count))
}

// AvgForClass applies the same flattening rule filtered by class.
func AvgForClass(feedback []models.Feedback, className string) float64 {
	var sum, count int
	for _, f := range feedback {
		if f.ClassName != className {
			continue
		}
		for _, r := range f.Ratings {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return NoData
	}
	return round2(float64(sum) / float64(count))
}

// ResponseRate reports how many enrolled students have submitted for an
// assignment. A class with no enrolled students has an undefined rate;
// Defined() guards every division so the result is never NaN or Inf.
type ResponseRate struct {
	Submitted int `json:"submitted"`
	Total     int `json:"total"`
}

func (r ResponseRate) Defined() bool { return r.Total > 0 }

// Fraction returns submitted/total rounded to 2 decimals, or 0 when the rate
// is undefined.
func (r ResponseRate) Fraction() float64 {
	if !r.Defined() {
		return 0
	}
	return round2(float64(r.Submitted) / float64(r.Total))
}

// Rate counts feedback records for the assignment against the class roster.
func Rate(feedback []models.Feedback, facultyID, subject string, roster []models.Student, className string) ResponseRate {
	var rr ResponseRate
	for _, f := range feedback {
		if f.FacultyID == facultyID && f.Subject == subject {
			rr.Submitted++
		}
	}
	for _, s := range roster {
		if s.ClassName == className {
			rr.Total++
		}
	}
	return rr
}

// Comments extracts the non-empty comments and returns them in a fresh random
// order on every call. Stable ordering would leak submitter identity to anyone
// who watches the list grow, so each read reshuffles.
func Comments(feedback []models.Feedback) []string {
	comments := make([]string, 0, len(feedback))
	for _, f := range feedback {
		if f.Comment != "" {
			comments = append(comments, f.Comment)
		}
	}
	rand.Shuffle(len(comments), func(i, j int) {
		comments[i], comments[j] = comments[j], comments[i]
	})
	return comments
}

// FilterAssignment narrows a feedback set to one (faculty, subject)
// assignment, for the functions that expect a pre-filtered set.
func FilterAssignment(feedback []models.Feedback, facultyID, subject string) []models.Feedback {
	filtered := make([]models.Feedback, 0, len(feedback))
	for _, f := range feedback {
		if f.FacultyID == facultyID && f.Subject == subject {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// Standing is one assignment's aggregate position in the faculty ranking.
type Standing struct {
	FacultyID string  `json:"facultyId"`
	Name      string  `json:"name"`
	Subject   string  `json:"subject"`
	Average   float64 `json:"average"`
	Responses int     `json:"responses"`
}

// Standings computes assignment-level averages for every distinct
// (faculty, subject) pair in the mapping set, sorted by average descending.
// Equal averages tie-break by faculty name ascending, then subject ascending.
func Standings(feedback []models.Feedback, mappings []models.ClassFacultyMapping, faculty []models.Faculty) []Standing {
	names := make(map[string]string, len(faculty))
	for _, f := range faculty {
		names[f.FacultyID] = f.Name
	}

	type assignment struct{ facultyID, subject string }
	seen := make(map[assignment]bool)
	standings := make([]Standing, 0, len(mappings))
	for _, m := range mappings {
		a := assignment{m.FacultyID, m.Subject}
		if seen[a] {
			continue
		}
		seen[a] = true

		var responses int
		for _, f := range feedback {
			if f.FacultyID == m.FacultyID && f.Subject == m.Subject {
				responses++
			}
		}
		standings = append(standings, Standing{
			FacultyID: m.FacultyID,
			Name:      names[m.FacultyID],
			Subject:   m.Subject,
			Average:   AvgForAssignment(feedback, m.FacultyID, m.Subject),
			Responses: responses,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Average != standings[j].Average {
			return standings[i].Average > standings[j].Average
		}
		if standings[i].Name != standings[j].Name {
			return standings[i].Name < standings[j].Name
		}
		return standings[i].Subject < standings[j].Subject
	})
	return standings
}

// TopRated returns the first n standings of a ranked list.
func TopRated(standings []Standing, n int) []Standing {
	if n > len(standings) {
		n = len(standings)
	}
	return standings[:n]
}

// BottomRated returns the last n standings of a ranked list, worst first.
func BottomRated(standings []Standing, n int) []Standing {
	if n > len(standings) {
		n = len(standings)
	}
	bottom := make([]Standing, 0, n)
	for i := len(standings) - 1; i >= len(standings)-n; i-- {
		bottom = append(bottom, standings[i])
	}
	return bottom
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
