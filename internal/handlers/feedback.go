package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/internal/submission"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// GetAssignments lists the student's class assignments together with the
// active question catalog and a submitted marker per assignment, so the
// client can grey out forms the student has already answered.
func GetAssignments(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}

	ctx := context.Background()
	mappings, err := findMappings(ctx, bson.M{"className": student.ClassName})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}

	questions, err := findQuestions(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}

	existing, err := findFeedback(ctx, bson.M{"studentId": student.ID})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	assignments := make([]fiber.Map, 0, len(mappings))
	for _, m := range mappings {
		assignments = append(assignments, fiber.Map{
			"mapping":   m,
			"submitted": !submission.CanSubmit(existing, student.ID, m.FacultyID, m.Subject),
		})
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"questions":   questions,
	})
}

// SubmitFeedback accepts one anonymous feedback record per assignment. The
// guard validates completeness and rating bounds; the unique index on
// (studentId, facultyId, subject) backstops the duplicate check under
// concurrent double-clicks.
func SubmitFeedback(c *fiber.Ctx) error {
	var req models.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	student, err := currentStudent(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}

	mappingID, err := primitive.ObjectIDFromHex(req.MappingID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid mapping ID")
	}

	ctx := context.Background()
	var mapping models.ClassFacultyMapping
	err = database.GetCollection("mappings").FindOne(ctx, bson.M{"_id": mappingID}).Decode(&mapping)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found")
	}

	if mapping.ClassName != student.ClassName {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Assignment belongs to another class")
	}

	ratings := make([]models.QuestionRating, 0, len(req.Ratings))
	for _, r := range req.Ratings {
		qid, err := primitive.ObjectIDFromHex(r.QuestionID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid question ID")
		}
		ratings = append(ratings, models.QuestionRating{QuestionID: qid, Rating: r.Rating})
	}

	existing, err := findFeedback(ctx, bson.M{
		"studentId": student.ID,
		"facultyId": mapping.FacultyID,
		"subject":   mapping.Subject,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check submissions")
	}
	if !submission.CanSubmit(existing, student.ID, mapping.FacultyID, mapping.Subject) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Feedback already submitted for this subject")
	}

	questions, err := findQuestions(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}

	candidate := models.Feedback{
		StudentID: student.ID,
		FacultyID: mapping.FacultyID,
		ClassName: mapping.ClassName,
		Subject:   mapping.Subject,
		Ratings:   ratings,
		Comment:   req.Comment,
		Semester:  req.Semester,
	}

	feedback, err := submission.Validate(candidate, questions)
	if err != nil {
		if errors.Is(err, submission.ErrIncompleteRatings) || errors.Is(err, submission.ErrRatingOutOfRange) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate feedback")
	}

	_, err = database.GetCollection("feedback").InsertOne(ctx, feedback)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Feedback already submitted for this subject")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"feedback": feedback,
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Collection fetch helpers shared by the role handlers.

func findQuestions(ctx context.Context) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := database.GetCollection("questions").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func findMappings(ctx context.Context, filter bson.M) ([]models.ClassFacultyMapping, error) {
	cursor, err := database.GetCollection("mappings").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	mappings := []models.ClassFacultyMapping{}
	if err := cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

func findFeedback(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	cursor, err := database.GetCollection("feedback").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedback := []models.Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func findStudents(ctx context.Context, filter bson.M) ([]models.Student, error) {
	cursor, err := database.GetCollection("students").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func findFaculties(ctx context.Context, filter bson.M) ([]models.Faculty, error) {
	cursor, err := database.GetCollection("faculties").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	faculties := []models.Faculty{}
	if err := cursor.All(ctx, &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}
