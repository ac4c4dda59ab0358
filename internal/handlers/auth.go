package handlers

import (
	"context"
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// Login is role-discriminated: students authenticate with their register
// number, faculty with their staff code, the admin with the credentials
// configured in the environment. Accounts are provisioned by the admin;
// there is no self-signup.
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	switch req.Role {
	case models.RoleAdmin:
		return loginAdmin(c, req)
	case models.RoleStudent:
		return loginStudent(c, req)
	case models.RoleFaculty:
		return loginFaculty(c, req)
	}
	return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown role")
}

func loginAdmin(c *fiber.Ctx, req models.LoginRequest) error {
	adminUser := os.Getenv("ADMIN_USERNAME")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminUser == "" || adminPass == "" {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Admin login is not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Identifier), []byte(adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPass)) == 1
	if !userOK || !passOK {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateJWT("admin", string(models.RoleAdmin))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"user":  models.Principal{ID: "admin", Role: models.RoleAdmin, Name: "Administrator"},
		"token": token,
	})
}

func loginStudent(c *fiber.Ctx, req models.LoginRequest) error {
	collection := database.GetCollection("students")
	var student models.Student
	err := collection.FindOne(context.Background(), bson.M{"registerNumber": req.Identifier}).Decode(&student)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateJWT(student.ID.Hex(), string(models.RoleStudent))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"user": models.Principal{
			ID:        student.ID.Hex(),
			Role:      models.RoleStudent,
			Name:      student.Name,
			ClassName: student.ClassName,
		},
		"token": token,
	})
}

func loginFaculty(c *fiber.Ctx, req models.LoginRequest) error {
	collection := database.GetCollection("faculties")
	var faculty models.Faculty
	err := collection.FindOne(context.Background(), bson.M{"facultyId": req.Identifier}).Decode(&faculty)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(faculty.Password), []byte(req.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := utils.GenerateJWT(faculty.ID.Hex(), string(models.RoleFaculty))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"user": models.Principal{
			ID:        faculty.ID.Hex(),
			Role:      models.RoleFaculty,
			Name:      faculty.Name,
			FacultyID: faculty.FacultyID,
		},
		"token": token,
	})
}

func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
	}
	userID, _ := claims["userId"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
	}
	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// AdminMiddleware ensures the requester has role == "admin"
func AdminMiddleware(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != string(models.RoleAdmin) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Admins only")
	}
	return c.Next()
}

// StudentMiddleware ensures the requester has role == "student"
func StudentMiddleware(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != string(models.RoleStudent) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Students only")
	}
	return c.Next()
}

// FacultyMiddleware ensures the requester has role == "faculty"
func FacultyMiddleware(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != string(models.RoleFaculty) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Faculty only")
	}
	return c.Next()
}

// Me returns the authenticated principal for the current token.
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	role, _ := c.Locals("role").(string)
	if userID == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	switch models.Role(role) {
	case models.RoleAdmin:
		return c.JSON(fiber.Map{
			"user": models.Principal{ID: "admin", Role: models.RoleAdmin, Name: "Administrator"},
		})
	case models.RoleStudent:
		student, err := currentStudent(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
		}
		return c.JSON(fiber.Map{
			"user": models.Principal{
				ID:        student.ID.Hex(),
				Role:      models.RoleStudent,
				Name:      student.Name,
				ClassName: student.ClassName,
			},
		})
	case models.RoleFaculty:
		faculty, err := currentFaculty(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Faculty not found")
		}
		return c.JSON(fiber.Map{
			"user": models.Principal{
				ID:        faculty.ID.Hex(),
				Role:      models.RoleFaculty,
				Name:      faculty.Name,
				FacultyID: faculty.FacultyID,
			},
		})
	}
	return utils.ErrorResponse(c, fiber.StatusForbidden, "Unknown role")
}

func currentStudent(c *fiber.Ctx) (models.Student, error) {
	userID, _ := c.Locals("userId").(string)
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Student{}, err
	}
	var student models.Student
	err = database.GetCollection("students").FindOne(context.Background(), bson.M{"_id": oid}).Decode(&student)
	return student, err
}

func currentFaculty(c *fiber.Ctx) (models.Faculty, error) {
	userID, _ := c.Locals("userId").(string)
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Faculty{}, err
	}
	var faculty models.Faculty
	err = database.GetCollection("faculties").FindOne(context.Background(), bson.M{"_id": oid}).Decode(&faculty)
	return faculty, err
}
