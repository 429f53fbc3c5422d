// Package response holds the HTTP response envelope and the mapping from
// domain error kinds to status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lendhub/service-rental/internal/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type paginationBody struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// Success writes a 200 response with the data envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the data envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with items and pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, offset, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"pagination": paginationBody{Total: total, Offset: offset, Limit: limit},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "bad_request", Message: message}})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": errorBody{Code: "unauthorized", Message: message}})
}

// Error maps a domain error to its HTTP status. Self-rental deliberately maps
// to 404 like not-found; only the internal type distinguishes them.
func Error(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		selfRental *domain.SelfRentalError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
	)

	switch {
	case errors.As(err, &selfRental):
		c.JSON(http.StatusNotFound, gin.H{"error": errorBody{Code: "not_found", Message: selfRental.Error()}})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errorBody{Code: "not_found", Message: notFound.Error()}})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "validation", Message: validation.Error()}})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": errorBody{Code: "conflict", Message: conflict.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{Code: "internal", Message: "internal server error"}})
	}
}
