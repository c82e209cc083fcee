package mailer

import (
	"errors"
	"net/http"

	"trailhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin/emails")
	{
		g.POST("/approval", h.SendApproval)
		g.POST("/rejection", h.SendRejection)
	}
}

func (h *Handler) SendApproval(c *gin.Context) {
	var req ApprovalEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid request body")
		return
	}

	message, err := h.service.SendApprovalEmail(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		writeMailError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, message)
}

func (h *Handler) SendRejection(c *gin.Context) {
	var req RejectionEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid request body")
		return
	}

	message, err := h.service.SendRejectionEmail(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		writeMailError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, message)
}

func writeMailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", err.Error())
	case errors.Is(err, ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	case errors.Is(err, ErrInvalidArgument):
		response.Error(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusPreconditionFailed, "FAILED_PRECONDITION", err.Error())
	default:
		// Transport failures keep the underlying error text.
		response.Error(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
