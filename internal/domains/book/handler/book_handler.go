package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
)

// Handler - HTTP handler for /books
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/books
// Query params: authorName (case-insensitive substring)
func (h *Handler) List(c *gin.Context) {
	var (
		views []model.BookView
		err   error
	)
	if author, ok := c.GetQuery("authorName"); ok {
		views, err = h.service.GetByAuthor(c.Request.Context(), author)
	} else {
		views, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, views)
}

// GetByID - GET /v1/books/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Create - POST /v1/books
func (h *Handler) Create(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Update - PUT /v1/books/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete - DELETE /v1/books/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, model.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, status, code, "Validation failed", verrs)
	case status >= http.StatusInternalServerError:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("book request failed")
		response.ErrorResponse(c, status, code, "Internal server error")
	default:
		response.ErrorResponse(c, status, code, err.Error())
	}
}
