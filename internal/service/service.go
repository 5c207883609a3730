package service

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KENZY004/contact-management/internal/model"
	"github.com/KENZY004/contact-management/internal/repository"
	"github.com/KENZY004/contact-management/internal/validate"
)

// ContactService exposes the contact collection over HTTP. Every response
// uses the envelope {success, message?, data?, errors?, count?}.
type ContactService struct {
	repo repository.ContactRepository
}

// New creates a ContactService backed by the given repository.
func New(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints. Request logging can be disabled by setting the GIN_LOGGING
// environment variable to "off".
func (s *ContactService) SetupHttpRouter() *gin.Engine {
	router := gin.New()
	if !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		router.Use(gin.Logger())
	}
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("handler panicked", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))
	router.Use(corsMiddleware())

	api := router.Group("/api")
	api.GET("/contacts", s.findAllContacts)
	api.POST("/contacts", s.createContact)
	api.PUT("/contacts/:id", s.updateContactByID)
	api.DELETE("/contacts/:id", s.deleteContactByID)
	api.GET("/health", s.healthCheck)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})
	return router
}

// corsMiddleware allows the browser client to call the API from any
// origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// findAllContacts responds with all contacts, newest first.
//
// Example REST API call:
//
//	> curl "http://localhost:5000/api/contacts"
func (s *ContactService) findAllContacts(c *gin.Context) {
	contacts, err := s.repo.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch contacts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch contacts",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	})
}

// createContact validates the submitted fields, rejects duplicate email
// addresses, and inserts the new contact.
//
// Example REST API call:
//
//	> curl http://localhost:5000/api/contacts --request "POST" --header "Content-Type: application/json" --data '{"name": "Jo Lin", "email": "jo@ex.com", "phone": "5551234567"}'
func (s *ContactService) createContact(c *gin.Context) {
	fields, ok := bindAndValidate(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	_, err := s.repo.FindByEmail(ctx, fields.Email)
	if err == nil {
		duplicateEmail(c)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("failed to check email uniqueness", "error", err)
		serverError(c, "Failed to create contact")
		return
	}

	contact, err := s.repo.Create(ctx, fields)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// The storage-level constraint caught a write that raced past
		// the pre-check.
		duplicateEmail(c)
		return
	}
	if err != nil {
		slog.Error("failed to create contact", "error", err)
		serverError(c, "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Contact added successfully!",
		"data":    contact,
	})
}

// updateContactByID replaces the four mutable fields of the contact whose
// id matches the id parameter of the request URL. The contact keeps its
// id and creation timestamp.
//
// Example REST API call:
//
//	> curl http://localhost:5000/api/contacts/66b1f0a2d3e4f5a6b7c8d9e0 --request "PUT" --header "Content-Type: application/json" --data '{"name": "Jo Lin", "email": "jo@ex.com", "phone": "1234567890"}'
func (s *ContactService) updateContactByID(c *gin.Context) {
	id := c.Param("id")
	if !model.ValidID(id) {
		invalidID(c)
		return
	}
	fields, ok := bindAndValidate(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	_, err := s.repo.FindByEmailExcluding(ctx, fields.Email, id)
	if err == nil {
		duplicateEmail(c)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("failed to check email uniqueness", "error", err)
		serverError(c, "Failed to update contact")
		return
	}

	contact, err := s.repo.UpdateByID(ctx, id, fields)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		notFound(c)
	case errors.Is(err, repository.ErrDuplicateEmail):
		duplicateEmail(c)
	case err != nil:
		slog.Error("failed to update contact", "error", err, "id", id)
		serverError(c, "Failed to update contact")
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Contact updated successfully!",
			"data":    contact,
		})
	}
}

// deleteContactByID removes the contact whose id matches the id parameter
// of the request URL and responds with the removed record.
//
// Example REST API call:
//
//	> curl http://localhost:5000/api/contacts/66b1f0a2d3e4f5a6b7c8d9e0 --request "DELETE"
func (s *ContactService) deleteContactByID(c *gin.Context) {
	id := c.Param("id")
	if !model.ValidID(id) {
		invalidID(c)
		return
	}

	contact, err := s.repo.DeleteByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		notFound(c)
	case err != nil:
		slog.Error("failed to delete contact", "error", err, "id", id)
		serverError(c, "Failed to delete contact")
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Contact deleted successfully",
			"data":    contact,
		})
	}
}

// healthCheck reports that the server is up.
//
// Example REST API call:
//
//	> curl "http://localhost:5000/api/health"
func (s *ContactService) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// bindAndValidate decodes the request body, runs the field rules, and
// normalizes email and phone. On failure it writes the error envelope and
// returns ok=false.
func bindAndValidate(c *gin.Context) (model.Fields, bool) {
	var fields model.Fields
	if err := c.BindJSON(&fields); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid JSON",
		})
		return model.Fields{}, false
	}
	if errs := validate.Fields(fields.Name, fields.Email, fields.Phone, fields.Message); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return model.Fields{}, false
	}
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Email = validate.NormalizeEmail(fields.Email)
	fields.Phone = validate.NormalizePhone(fields.Phone)
	return fields, true
}

func duplicateEmail(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "A contact with this email already exists",
	})
}

func invalidID(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid contact ID",
	})
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Contact not found",
	})
}

func serverError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
	})
}
