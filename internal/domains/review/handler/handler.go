package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/review/model"
	"library-catalog/internal/domains/review/service"
	"library-catalog/internal/shared/response"
)

type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(svc service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// =====================================================
// READS
// =====================================================

// ListByBook - GET /v1/reviews/book/:bookId
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := h.parseID(c, "bookId")
	if !ok {
		return
	}

	reviews, err := h.service.GetByBookID(c.Request.Context(), bookID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// ListByReviewer - GET /v1/reviews?reviewerName=
func (h *ReviewHandler) ListByReviewer(c *gin.Context) {
	name, ok := c.GetQuery("reviewerName")
	if !ok {
		response.BadRequest(c, "reviewerName query parameter is required")
		return
	}

	reviews, err := h.service.GetByReviewerName(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// =====================================================
// WRITES
// =====================================================

// Create - POST /v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	review, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// Update - PUT /v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	review, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// Delete - DELETE /v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteByID(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// =====================================================
// HELPERS
// =====================================================

func (h *ReviewHandler) parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, model.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func (h *ReviewHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, status, code, "Validation failed", verrs)
	case status >= http.StatusInternalServerError:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("review request failed")
		response.ErrorResponse(c, status, code, "Internal server error")
	default:
		response.ErrorResponse(c, status, code, err.Error())
	}
}
