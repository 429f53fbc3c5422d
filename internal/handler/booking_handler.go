package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/application"
	"github.com/lendhub/service-rental/internal/middleware"
	"github.com/lendhub/service-rental/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.SetApproval)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SetApproval handles PATCH /api/v1/bookings/:id?approved=true|false.
func (h *BookingHandler) SetApproval(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.SetApproval(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForBooker handles GET /api/v1/bookings?state=&offset=&limit=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	offset, limit := parsePagination(c)
	result, err := h.service.ListForBooker(c.Request.Context(), userID, c.Query("state"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Offset, result.Limit)
}

// ListForOwner handles GET /api/v1/bookings/owner?state=&offset=&limit=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	offset, limit := parsePagination(c)
	result, err := h.service.ListForOwner(c.Request.Context(), userID, c.Query("state"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Offset, result.Limit)
}

// parsePagination extracts offset and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return offset, limit
}
