package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/application"
	"github.com/lendhub/service-rental/internal/middleware"
	"github.com/lendhub/service-rental/internal/response"
)

// ItemHandler handles HTTP requests for item catalog operations.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/api/v1/items")
	items.Use(middleware.Identity())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwn)
		items.GET("/search", h.Search)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comments", h.AddComment)
	}
}

// CreateItem handles POST /api/v1/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /api/v1/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /api/v1/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwn handles GET /api/v1/items, listing the caller's own items.
func (h *ItemHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	offset, limit := parsePagination(c)
	result, err := h.service.ListByOwner(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Offset, result.Limit)
}

// Search handles GET /api/v1/items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	offset, limit := parsePagination(c)
	result, err := h.service.Search(c.Request.Context(), c.Query("text"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Offset, result.Limit)
}

// AddComment handles POST /api/v1/items/:id/comments.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
