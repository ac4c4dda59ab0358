package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/internal/report"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// GetFacultyReports aggregates the caller's feedback per teaching assignment:
// per-question averages, the flattened overall average, response rate against
// the class roster, and the anonymized comment feed. Comments come back in a
// fresh random order on every request.
func GetFacultyReports(c *fiber.Ctx) error {
	faculty, err := currentFaculty(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Faculty not found")
	}

	ctx := context.Background()
	mappings, err := findMappings(ctx, bson.M{"facultyId": faculty.FacultyID})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}

	questions, err := findQuestions(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}

	feedback, err := findFeedback(ctx, bson.M{"facultyId": faculty.FacultyID})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch feedback")
	}

	classNames := make([]string, 0, len(mappings))
	for _, m := range mappings {
		classNames = append(classNames, m.ClassName)
	}
	roster := []models.Student{}
	if len(classNames) > 0 {
		roster, err = findStudents(ctx, bson.M{"className": bson.M{"$in": classNames}})
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch roster")
		}
	}

	reports := make([]fiber.Map, 0, len(mappings))
	for _, m := range mappings {
		subset := report.FilterAssignment(feedback, m.FacultyID, m.Subject)
		rate := report.Rate(feedback, m.FacultyID, m.Subject, roster, m.ClassName)

		reports = append(reports, fiber.Map{
			"mapping":          m,
			"questionAverages": report.AvgByQuestion(subset, questions),
			"overallAverage":   report.AvgForAssignment(feedback, m.FacultyID, m.Subject),
			"responseRate": fiber.Map{
				"submitted": rate.Submitted,
				"total":     rate.Total,
				"rate":      rate.Fraction(),
				"defined":   rate.Defined(),
			},
			"comments": report.Comments(subset),
		})
	}

	return c.JSON(fiber.Map{
		"faculty": models.Principal{
			ID:        faculty.ID.Hex(),
			Role:      models.RoleFaculty,
			Name:      faculty.Name,
			FacultyID: faculty.FacultyID,
		},
		"questions": questions,
		"reports":   reports,
	})
}
