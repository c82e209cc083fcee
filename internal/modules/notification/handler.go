package notification

import (
	"errors"
	"net/http"
	"strconv"

	"trailhub/internal/domain"
	"trailhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.PATCH("/read-all", h.MarkAllAsRead)
	}
}

// recipient resolves the authenticated identity and its inbox kind.
// Organizers read the organizer inbox; everyone else the participant one.
func recipient(c *gin.Context) (string, domain.RecipientKind, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return "", "", false
	}

	kind := domain.KindParticipant
	if c.GetString("role") == "organizer" {
		kind = domain.KindOrganizer
	}
	return userID, kind, true
}

func (h *Handler) GetNotifications(c *gin.Context) {
	userID, kind, ok := recipient(c)
	if !ok {
		return
	}

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}

	list, unread, err := h.service.GetForRecipient(c.Request.Context(), userID, kind, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	userID, _, ok := recipient(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID, kind, ok := recipient(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllAsRead(c.Request.Context(), userID, kind); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}
