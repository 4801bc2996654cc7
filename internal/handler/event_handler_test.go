package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcal/internal/model"
	"eventcal/internal/repository"
	serviceMocks "eventcal/internal/service/mocks"
	apperrors "eventcal/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEventRouter(t *testing.T) (*serviceMocks.EventServiceMock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := serviceMocks.NewEventServiceMock()
	router := gin.New()
	NewEventHandler(svc).RegisterRoutes(router)
	return svc, router
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		created := &model.Event{
			ID:        1,
			EventID:   uuid.New(),
			Title:     "Launch Party",
			Slug:      "launch-party",
			Status:    model.StatusPublish,
			StartDate: model.NewDate(2024, 3, 5),
			EndDate:   model.NewDate(2024, 3, 5),
		}
		svc.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()

		w := performRequest(router, http.MethodPost, "/api/v1/events", gin.H{
			"title":      "Launch Party",
			"status":     "publish",
			"start_date": "2024-03-05",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var got model.Event
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Launch Party", got.Title)
		assert.Equal(t, model.NewDate(2024, 3, 5), got.StartDate)

		svc.AssertExpectations(t)
	})

	t.Run("Failed - missing title", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/events", gin.H{
			"start_date": "2024-03-05",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - unparseable start date", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/events", gin.H{
			"title":      "Launch Party",
			"start_date": "someday",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid start date")
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - service rejects the interval", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidInput).Once()

		w := performRequest(router, http.MethodPost, "/api/v1/events", gin.H{
			"title":      "Backwards",
			"start_date": "2024-03-05",
			"end_date":   "2024-03-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid input")
	})
}

func TestEventHandler_GetByEventID(t *testing.T) {
	eventID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		event := &model.Event{ID: 1, EventID: eventID, Title: "Launch Party"}
		svc.On("GetByEventID", mock.Anything, eventID).Return(event, nil).Once()

		w := performRequest(router, http.MethodGet, "/api/v1/events/"+eventID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Launch Party")
		svc.AssertExpectations(t)
	})

	t.Run("Failed - malformed uuid", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		w := performRequest(router, http.MethodGet, "/api/v1/events/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByEventID")
	})

	t.Run("Failed - not found", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		svc.On("GetByEventID", mock.Anything, eventID).Return(nil, apperrors.ErrEventNotFound).Once()

		w := performRequest(router, http.MethodGet, "/api/v1/events/"+eventID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Event not found")
	})
}

func TestEventHandler_UpdateByEventID(t *testing.T) {
	eventID := uuid.New()

	t.Run("Success - blank end date passes through", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		updated := &model.Event{ID: 1, EventID: eventID, Title: "Launch Party"}

		var captured model.UpdateEventParams
		svc.On("UpdateByEventID", mock.Anything, eventID, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(model.UpdateEventParams)
			}).
			Return(updated, nil).Once()

		w := performRequest(router, http.MethodPut, "/api/v1/events/"+eventID.String(), gin.H{
			"end_date": "",
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured.EndDate)
		assert.True(t, captured.EndDate.IsZero())

		svc.AssertExpectations(t)
	})

	t.Run("Failed - unparseable end date", func(t *testing.T) {
		svc, router := setupEventRouter(t)

		w := performRequest(router, http.MethodPut, "/api/v1/events/"+eventID.String(), gin.H{
			"end_date": "someday",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid end date")
		svc.AssertNotCalled(t, "UpdateByEventID")
	})
}

func TestEventHandler_List(t *testing.T) {
	svc, router := setupEventRouter(t)

	events := []*model.Event{{ID: 1, Title: "Talk"}, {ID: 2, Title: "Fair"}}
	svc.On("ListByScope", mock.Anything, repository.Scope{}).Return(events, nil).Once()

	w := performRequest(router, http.MethodGet, "/api/v1/events", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Talk")
	svc.AssertExpectations(t)
}

func TestEventHandler_Upcoming(t *testing.T) {
	svc, router := setupEventRouter(t)

	svc.On("Upcoming", mock.Anything, 3).Return(nil, nil).Once()

	w := performRequest(router, http.MethodGet, "/api/v1/events/upcoming", nil)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
