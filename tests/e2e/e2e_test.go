package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"trailhub/internal/config"
	"trailhub/internal/database"
	"trailhub/internal/domain"
	"trailhub/internal/middleware"
	"trailhub/internal/modules/dispatch"
	"trailhub/internal/modules/mailer"
	"trailhub/internal/modules/notification"
	jwtsvc "trailhub/internal/pkg/jwt"
	"trailhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const internalToken = "test-internal-token"

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Setenv("INTERNAL_TOKEN", internalToken)
	t.Setenv("CHANGE_FEED_ENABLED", "true")
	t.Setenv("CHANGE_FEED_ALLOWED_IPS", "")

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	eventRepo := repository.NewEventRepository(db)
	carpoolRepo := repository.NewCarpoolRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	dispatchService := dispatch.NewService(eventRepo, participantRepo, notificationRepo)
	dispatchHandler := dispatch.NewHandler(dispatchService, eventRepo, carpoolRepo)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// mail stays unconfigured in tests; the mailer reports 412
	mailerService := mailer.NewService(config.SMTP{}, adminRepo, nil)
	mailerHandler := mailer.NewHandler(mailerService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth())
	{
		dispatchHandler.RegisterRoutes(internal)
	}

	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		notificationHandler.RegisterRoutes(protected)
		mailerHandler.RegisterRoutes(protected)
	}

	// seed registry identities
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("user-%d", i)
		require.NoError(t, db.Create(&domain.Participant{ID: id, Name: "Member " + id}).Error)
	}
	require.NoError(t, db.Create(&domain.Admin{ID: "admin-1", Name: "Admin"}).Error)

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w, nil
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) userToken(t *testing.T, userID, role string) string {
	token, err := s.jwtService.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func snapshot(eventID string, participants map[string]interface{}, overrides map[string]interface{}) map[string]interface{} {
	snap := map[string]interface{}{
		"eventId":         eventID,
		"name":            "Sunrise Hike",
		"location":        "Broga Hill",
		"description":     "Easy trail",
		"date":            time.Now().Add(5 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"status":          "approved",
		"organizerId":     "org-1",
		"maxParticipants": 3,
		"participants":    participants,
	}
	for k, v := range overrides {
		snap[k] = v
	}
	return snap
}

// =============================================================================
// Test Flow 1: Change-feed authentication
// =============================================================================

func TestFlow1_ChangeFeedAuth(t *testing.T) {
	suite := setupTestSuite(t)

	payload := map[string]interface{}{
		"eventId": "evt-1",
		"after":   snapshot("evt-1", map[string]interface{}{}, nil),
	}

	t.Run("missing token is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, "wrong-token")
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token is accepted", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("disabled feed rejects valid token", func(t *testing.T) {
		t.Setenv("CHANGE_FEED_ENABLED", "false")
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// Test Flow 2: Event creation broadcast
// =============================================================================

func TestFlow2_EventCreatedBroadcast(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /internal/changes/events (create)", func(t *testing.T) {
		payload := map[string]interface{}{
			"eventId": "evt-broadcast",
			"after":   snapshot("evt-broadcast", map[string]interface{}{}, nil),
		}
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("GET /notifications shows the broadcast", func(t *testing.T) {
		token := suite.userToken(t, "user-1", "participant")
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, float64(1), resp.Data["unread_count"])

		list := resp.Data["notifications"].([]interface{})
		require.Len(t, list, 1)
		first := list[0].(map[string]interface{})
		assert.Equal(t, "event.created", first["type"])
		assert.Equal(t, "evt-broadcast", first["event_id"])
	})

	t.Run("unauthenticated notification read is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Test Flow 3: Join and capacity rules through the feed
// =============================================================================

func TestFlow3_JoinAndCapacity(t *testing.T) {
	suite := setupTestSuite(t)

	before := map[string]interface{}{
		"user-1": map[string]interface{}{"name": "Aina"},
		"user-2": map[string]interface{}{"name": "Daniel"},
	}
	after := map[string]interface{}{
		"user-1": map[string]interface{}{"name": "Aina"},
		"user-2": map[string]interface{}{"name": "Daniel"},
		"user-3": map[string]interface{}{"name": "Mei"},
	}

	t.Run("POST /internal/changes/events (join fills event)", func(t *testing.T) {
		payload := map[string]interface{}{
			"eventId": "evt-full",
			"before":  snapshot("evt-full", before, nil),
			"after":   snapshot("evt-full", after, nil),
		}
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("joiner got welcome and capacity notices", func(t *testing.T) {
		token := suite.userToken(t, "user-3", "participant")
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)

		resp := parseResponse(t, w)
		types := map[string]bool{}
		for _, item := range resp.Data["notifications"].([]interface{}) {
			types[item.(map[string]interface{})["type"].(string)] = true
		}
		assert.True(t, types["event.joined"])
		assert.True(t, types["event.full"])
	})

	t.Run("organizer inbox has join and capacity notices", func(t *testing.T) {
		token := suite.userToken(t, "org-1", "organizer")
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)

		resp := parseResponse(t, w)
		types := map[string]bool{}
		for _, item := range resp.Data["notifications"].([]interface{}) {
			types[item.(map[string]interface{})["type"].(string)] = true
		}
		assert.True(t, types["organizer.new_participant"])
		assert.True(t, types["organizer.event_full"])
	})

	t.Run("PATCH /notifications/:id/read", func(t *testing.T) {
		token := suite.userToken(t, "user-3", "participant")
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)

		resp := parseResponse(t, w)
		list := resp.Data["notifications"].([]interface{})
		require.NotEmpty(t, list)
		id := list[0].(map[string]interface{})["id"].(string)

		w, err = suite.makeRequest("PATCH", "/api/v1/notifications/"+id+"/read", nil, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("PATCH", "/api/v1/notifications/read-all", nil, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)
		resp = parseResponse(t, w)
		assert.Equal(t, float64(0), resp.Data["unread_count"])
	})
}

// =============================================================================
// Test Flow 4: Carpool requests
// =============================================================================

func TestFlow4_CarpoolRequest(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("Setup: ingest event", func(t *testing.T) {
		payload := map[string]interface{}{
			"eventId": "evt-carpool",
			"after":   snapshot("evt-carpool", map[string]interface{}{}, nil),
		}
		w, err := suite.makeRequest("POST", "/internal/changes/events", payload, internalToken)
		require.NoError(t, err)
		require.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("POST /internal/changes/carpools", func(t *testing.T) {
		payload := map[string]interface{}{
			"carpoolId":  "cp-1",
			"eventId":    "evt-carpool",
			"driverName": "Hafiz",
		}
		w, err := suite.makeRequest("POST", "/internal/changes/carpools", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("organizer sees the driver offer", func(t *testing.T) {
		token := suite.userToken(t, "org-1", "organizer")
		w, err := suite.makeRequest("GET", "/api/v1/notifications", nil, token)
		require.NoError(t, err)

		resp := parseResponse(t, w)
		list := resp.Data["notifications"].([]interface{})
		found := false
		for _, item := range list {
			n := item.(map[string]interface{})
			if n["type"] == "organizer.carpool_request" {
				found = true
				assert.Contains(t, n["body"], "Hafiz")
			}
		}
		assert.True(t, found, "carpool request notification missing")
	})

	t.Run("dangling event reference is accepted silently", func(t *testing.T) {
		payload := map[string]interface{}{
			"carpoolId": "cp-2",
			"eventId":   "evt-missing",
		}
		w, err := suite.makeRequest("POST", "/internal/changes/carpools", payload, internalToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

// =============================================================================
// Test Flow 5: Admin mail actions
// =============================================================================

func TestFlow5_AdminMailActions(t *testing.T) {
	suite := setupTestSuite(t)

	emailBody := map[string]interface{}{
		"organizerEmail":   "lena@trailco.my",
		"organizerName":    "Lena",
		"organizationName": "TrailCo",
	}

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/admin/emails/approval", emailBody, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		token := suite.userToken(t, "user-1", "participant")
		w, err := suite.makeRequest("POST", "/api/v1/admin/emails/approval", emailBody, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "PERMISSION_DENIED", resp.Error.Code)
	})

	t.Run("admin without mail config gets precondition failure", func(t *testing.T) {
		token := suite.userToken(t, "admin-1", "admin")
		w, err := suite.makeRequest("POST", "/api/v1/admin/emails/approval", emailBody, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusPreconditionFailed, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "FAILED_PRECONDITION", resp.Error.Code)
	})

	t.Run("missing fields beat the config check", func(t *testing.T) {
		token := suite.userToken(t, "admin-1", "admin")
		w, err := suite.makeRequest("POST", "/api/v1/admin/emails/rejection", map[string]interface{}{
			"organizerEmail": "lena@trailco.my",
		}, token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_ARGUMENT", resp.Error.Code)
	})
}

// =============================================================================
// Main Test Runner
// =============================================================================

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
