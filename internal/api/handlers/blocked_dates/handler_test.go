package blocked_dates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CampBooking/internal/service/calendar"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar/models"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
)

type stubService struct {
	err    error
	filter *models.ListBlockedDatesRequest
}

func (s *stubService) ListBlockedDates(_ context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error) {
	s.filter = req
	return &models.BlockedDateListResponse{BlockedDates: []models.BlockedDateResponse{}}, s.err
}

func (s *stubService) CreateBlockedDate(_ context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedDateResponse{ID: uuid.New(), CabinID: req.CabinID, Reason: req.Reason}, nil
}

func (s *stubService) DeleteBlockedDate(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func TestList_ParsesFilter(t *testing.T) {
	cabinID := uuid.New()
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/blocked-dates?cabinId="+cabinID.String()+"&from=2025-08-01", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter.CabinID)
	assert.Equal(t, cabinID, *svc.filter.CabinID)
	require.NotNil(t, svc.filter.From)
	assert.Nil(t, svc.filter.To)

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/blocked-dates?to=soon", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate(t *testing.T) {
	valid := `{"startDate":"2025-08-01","endDate":"2025-08-05","reason":"Roof repair","blockType":"renovation"}`

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"blanket block", valid, nil, http.StatusCreated},
		{"unknown block type", strings.Replace(valid, "renovation", "party", 1), nil, http.StatusBadRequest},
		{"missing reason", `{"startDate":"2025-08-01","endDate":"2025-08-05","blockType":"private"}`, nil, http.StatusBadRequest},
		{"inverted dates", valid, calendar.ErrInvalidInput, http.StatusBadRequest},
		{"unknown cabin", valid, calendar.ErrCabinNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.Nop())
			w := httptest.NewRecorder()
			h.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/blocked-dates", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
