package dispatch

import (
	"context"
	"net/http"

	"trailhub/internal/domain"
	"trailhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventStore persists the latest snapshot so the sweeps read current
// state. Kept separate from EventRepository: the trigger core itself
// never writes event records.
type EventStore interface {
	Upsert(ctx context.Context, e *domain.Event) error
}

type CarpoolStore interface {
	Upsert(ctx context.Context, c *domain.CarpoolRequest) error
}

type Handler struct {
	service  *Service
	events   EventStore
	carpools CarpoolStore
}

func NewHandler(service *Service, events EventStore, carpools CarpoolStore) *Handler {
	return &Handler{service: service, events: events, carpools: carpools}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/changes/events", h.EventChange)
	rg.POST("/changes/carpools", h.CarpoolChange)
}

// EventChange ingests one before/after snapshot pair from the document
// store and runs the matching trigger handlers.
func (h *Handler) EventChange(c *gin.Context) {
	var req EventChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid change payload")
		return
	}

	ctx := c.Request.Context()
	before := req.Before.toDomain(req.EventID)
	after := req.After.toDomain(req.EventID)

	if after != nil {
		if err := h.events.Upsert(ctx, after); err != nil {
			response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to persist event snapshot")
			return
		}
	}

	var err error
	switch {
	case before == nil && after != nil:
		err = h.service.EventCreated(ctx, after)
	case before != nil && after != nil:
		err = h.service.EventUpdated(ctx, before, after)
	default:
		// Deletes and empty payloads are inert to the dispatch core.
	}

	if err != nil {
		response.Error(c, http.StatusInternalServerError, "DISPATCH_ERROR", "Failed to dispatch notifications")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"processed": true})
}

// CarpoolChange ingests a created carpool request.
func (h *Handler) CarpoolChange(c *gin.Context) {
	var req CarpoolChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid change payload")
		return
	}

	ctx := c.Request.Context()
	carpool := &domain.CarpoolRequest{
		ID:         req.CarpoolID,
		EventID:    req.EventID,
		DriverName: req.DriverName,
	}

	if err := h.carpools.Upsert(ctx, carpool); err != nil {
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to persist carpool request")
		return
	}

	if err := h.service.CarpoolCreated(ctx, carpool); err != nil {
		response.Error(c, http.StatusInternalServerError, "DISPATCH_ERROR", "Failed to dispatch notifications")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"processed": true})
}
