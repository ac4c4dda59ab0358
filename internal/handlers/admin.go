package handlers

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/internal/report"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// GetAdminAnalytics returns the dashboard: collection totals, per-class
// averages, and the top-5/bottom-5 faculty standings.
func GetAdminAnalytics(c *fiber.Ctx) error {
	ctx := context.Background()

	studentsCount, _ := database.GetCollection("students").CountDocuments(ctx, bson.M{})
	facultiesCount, _ := database.GetCollection("faculties").CountDocuments(ctx, bson.M{})
	mappingsCount, _ := database.GetCollection("mappings").CountDocuments(ctx, bson.M{})
	questionsCount, _ := database.GetCollection("questions").CountDocuments(ctx, bson.M{})
	feedbackCount, _ := database.GetCollection("feedback").CountDocuments(ctx, bson.M{})

	feedback, err := findFeedback(ctx, bson.M{})
	if err != nil {
		return utilsError(c)
	}
	mappings, err := findMappings(ctx, bson.M{})
	if err != nil {
		return utilsError(c)
	}
	faculties, err := findFaculties(ctx, bson.M{})
	if err != nil {
		return utilsError(c)
	}
	students, err := findStudents(ctx, bson.M{})
	if err != nil {
		return utilsError(c)
	}

	// One entry per class on the roster, alphabetical for stable rendering.
	classSet := make(map[string]bool)
	for _, s := range students {
		classSet[s.ClassName] = true
	}
	classNames := make([]string, 0, len(classSet))
	for name := range classSet {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	classAverages := make([]fiber.Map, 0, len(classNames))
	for _, name := range classNames {
		classAverages = append(classAverages, fiber.Map{
			"className": name,
			"average":   report.AvgForClass(feedback, name),
		})
	}

	standings := report.Standings(feedback, mappings, faculties)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"totalStudents":  studentsCount,
			"totalFaculties": facultiesCount,
			"totalMappings":  mappingsCount,
			"totalQuestions": questionsCount,
			"totalFeedback":  feedbackCount,
		},
		"classAverages": classAverages,
		"topRated":      report.TopRated(standings, 5),
		"bottomRated":   report.BottomRated(standings, 5),
	})
}

// CreateStudent provisions one student account with a bcrypt-hashed password.
func CreateStudent(c *fiber.Ctx) error {
	var req models.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	student := models.Student{
		ID:             primitive.NewObjectID(),
		RegisterNumber: req.RegisterNumber,
		Name:           req.Name,
		ClassName:      req.ClassName,
		Password:       string(hashedPassword),
		CreatedAt:      time.Now(),
	}

	_, err = database.GetCollection("students").InsertOne(context.Background(), student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Register number already exists")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"student": student})
}

// GetStudents lists students with pagination and an optional name/register
// number search.
func GetStudents(c *fiber.Ctx) error {
	ctx := context.Background()
	col := database.GetCollection("students")

	page, limit := pageParams(c)
	q := c.Query("q", "")
	className := c.Query("class", "")

	filter := bson.M{}
	if q != "" {
		filter["$or"] = []bson.M{
			{"registerNumber": bson.M{"$regex": q, "$options": "i"}},
			{"name": bson.M{"$regex": q, "$options": "i"}},
		}
	}
	if className != "" {
		filter["className"] = className
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return utilsError(c)
	}

	findOpts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.M{"registerNumber": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return utilsError(c)
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return utilsError(c)
	}

	return c.JSON(fiber.Map{
		"students":   students,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

func DeleteStudent(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	res, err := database.GetCollection("students").DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return utilsError(c)
	}
	if res.DeletedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// CreateFaculty provisions one faculty account.
func CreateFaculty(c *fiber.Ctx) error {
	var req models.FacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	faculty := models.Faculty{
		ID:         primitive.NewObjectID(),
		FacultyID:  req.FacultyID,
		Name:       req.Name,
		Department: req.Department,
		Password:   string(hashedPassword),
		CreatedAt:  time.Now(),
	}

	_, err = database.GetCollection("faculties").InsertOne(context.Background(), faculty)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Faculty ID already exists")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create faculty")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"faculty": faculty})
}

func GetFaculties(c *fiber.Ctx) error {
	ctx := context.Background()
	col := database.GetCollection("faculties")

	page, limit := pageParams(c)
	q := c.Query("q", "")

	filter := bson.M{}
	if q != "" {
		filter["$or"] = []bson.M{
			{"facultyId": bson.M{"$regex": q, "$options": "i"}},
			{"name": bson.M{"$regex": q, "$options": "i"}},
			{"department": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return utilsError(c)
	}

	findOpts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.M{"facultyId": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOpts)
	if err != nil {
		return utilsError(c)
	}
	defer cursor.Close(ctx)

	faculties := []models.Faculty{}
	if err := cursor.All(ctx, &faculties); err != nil {
		return utilsError(c)
	}

	return c.JSON(fiber.Map{
		"faculties":  faculties,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
	})
}

func DeleteFaculty(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid faculty ID")
	}

	res, err := database.GetCollection("faculties").DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return utilsError(c)
	}
	if res.DeletedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Faculty not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// utilsError provides a generic internal error response for admin endpoints
func utilsError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
