package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/ingest"
	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/internal/services"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

var (
	groqOnce    sync.Once
	groqService *services.GroqService
)

// UploadStudents bulk-provisions students from a CSV file. Valid rows are
// inserted unordered so one duplicate register number does not abort the
// rest; every skipped row comes back with its line number.
func UploadStudents(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing CSV file")
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open CSV file")
	}
	defer src.Close()

	rows, rowErrs, err := ingest.Students(src)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
		docs = append(docs, models.Student{
			ID:             primitive.NewObjectID(),
			RegisterNumber: row.RegisterNumber,
			Name:           row.Name,
			ClassName:      row.ClassName,
			Password:       string(hashedPassword),
			CreatedAt:      time.Now(),
		})
	}

	return insertUploaded(c, "students", docs, rowErrs, file)
}

// UploadFaculties bulk-provisions faculty accounts from a CSV file.
func UploadFaculties(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing CSV file")
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open CSV file")
	}
	defer src.Close()

	rows, rowErrs, err := ingest.Faculties(src)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
		docs = append(docs, models.Faculty{
			ID:         primitive.NewObjectID(),
			FacultyID:  row.FacultyID,
			Name:       row.Name,
			Department: row.Department,
			Password:   string(hashedPassword),
			CreatedAt:  time.Now(),
		})
	}

	return insertUploaded(c, "faculties", docs, rowErrs, file)
}

// UploadMappings bulk-creates class-faculty-subject mappings from a CSV file.
func UploadMappings(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing CSV file")
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open CSV file")
	}
	defer src.Close()

	rows, rowErrs, err := ingest.Mappings(src)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, models.ClassFacultyMapping{
			ID:        primitive.NewObjectID(),
			ClassName: row.ClassName,
			FacultyID: row.FacultyID,
			Subject:   row.Subject,
			CreatedAt: time.Now(),
		})
	}

	return insertUploaded(c, "mappings", docs, rowErrs, file)
}

func insertUploaded(c *fiber.Ctx, collection string, docs []interface{}, rowErrs []ingest.RowError, file *multipart.FileHeader) error {
	inserted := 0
	if len(docs) > 0 {
		res, err := database.GetCollection(collection).InsertMany(
			context.Background(), docs, options.InsertMany().SetOrdered(false))
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		if err != nil {
			var bwe mongo.BulkWriteException
			if !errors.As(err, &bwe) {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save upload")
			}
			for _, we := range bwe.WriteErrors {
				rowErrs = append(rowErrs, ingest.RowError{
					Line:    0,
					Message: fmt.Sprintf("duplicate or rejected record (index %d)", we.Index),
				})
			}
		}
	}

	return c.JSON(fiber.Map{
		"file":     file.Filename,
		"inserted": inserted,
		"skipped":  len(rowErrs),
		"errors":   rowErrs,
	})
}

// GenerateMappings turns an admin's natural-language description into mapping
// drafts via the language model. Nothing is persisted; the admin reviews and
// confirms drafts through the normal mapping create endpoint.
func GenerateMappings(c *fiber.Ctx) error {
	groqOnce.Do(func() { groqService = services.NewGroqService() })

	var req struct {
		Prompt string `json:"prompt" validate:"required,min=10,max=2000"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	drafts, err := groqService.GenerateMappings(c.Context(), req.Prompt)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{"drafts": drafts})
}
