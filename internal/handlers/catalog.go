package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// Question and mapping catalog management. Questions define the rating form;
// mappings define who teaches what to whom.

func CreateQuestion(c *fiber.Ctx) error {
	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	question := models.Question{
		ID:        primitive.NewObjectID(),
		Text:      req.Text,
		Order:     req.Order,
		CreatedAt: time.Now(),
	}

	_, err := database.GetCollection("questions").InsertOne(context.Background(), question)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create question")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"question": question})
}

func GetQuestions(c *fiber.Ctx) error {
	questions, err := findQuestions(context.Background())
	if err != nil {
		return utilsError(c)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

func UpdateQuestion(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid question ID")
	}

	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	update := bson.M{"$set": bson.M{"text": req.Text, "order": req.Order}}
	res, err := database.GetCollection("questions").UpdateOne(context.Background(), bson.M{"_id": oid}, update)
	if err != nil {
		return utilsError(c)
	}
	if res.MatchedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Question not found")
	}
	return c.JSON(fiber.Map{"updated": true})
}

func DeleteQuestion(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid question ID")
	}

	res, err := database.GetCollection("questions").DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return utilsError(c)
	}
	if res.DeletedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Question not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func CreateMapping(c *fiber.Ctx) error {
	var req models.MappingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	mapping := models.ClassFacultyMapping{
		ID:        primitive.NewObjectID(),
		ClassName: req.ClassName,
		FacultyID: req.FacultyID,
		Subject:   req.Subject,
		CreatedAt: time.Now(),
	}

	_, err := database.GetCollection("mappings").InsertOne(context.Background(), mapping)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create mapping")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mapping": mapping})
}

func GetMappings(c *fiber.Ctx) error {
	filter := bson.M{}
	if className := c.Query("class", ""); className != "" {
		filter["className"] = className
	}
	if facultyID := c.Query("faculty", ""); facultyID != "" {
		filter["facultyId"] = facultyID
	}

	mappings, err := findMappings(context.Background(), filter)
	if err != nil {
		return utilsError(c)
	}
	return c.JSON(fiber.Map{"mappings": mappings})
}

func DeleteMapping(c *fiber.Ctx) error {
	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid mapping ID")
	}

	res, err := database.GetCollection("mappings").DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return utilsError(c)
	}
	if res.DeletedCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Mapping not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}
