package get_quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	getQuote "github.com/m04kA/SMC-CampBooking/internal/usecase/get_quote"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
)

type stubUseCase struct {
	resp *getQuote.Response
	err  error
	got  *getQuote.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getQuote.Request) (*getQuote.Response, error) {
	s.got = req
	return s.resp, s.err
}

var cabinID = uuid.MustParse("c0000000-0000-0000-0000-000000000001")

func doRequest(h *Handler, cabin, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/cabins/"+cabin+"/quote?"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"cabinId": cabin})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Available(t *testing.T) {
	ruleID := uuid.New()
	uc := &stubUseCase{resp: &getQuote.Response{
		Cabin:        &domain.Cabin{ID: cabinID, Name: "Pine", BasePrice: 100, Capacity: 4, Category: domain.CategoryStandard},
		Availability: &availability.Result{Verdict: availability.VerdictAvailable, Nights: 2, MinNights: 2, MaxNights: 14},
		Quote: &domain.Quote{
			CabinID:      cabinID,
			Nights:       2,
			BasePrice:    100,
			NightlyPrice: 120,
			Uniform:      true,
			Nightly: []domain.NightPrice{
				{Date: daterange.MustParse("2025-07-15"), Price: 120, AppliedRuleIDs: []uuid.UUID{ruleID}},
				{Date: daterange.MustParse("2025-07-16"), Price: 120, AppliedRuleIDs: []uuid.UUID{ruleID}},
			},
			AppliedRules: []domain.AppliedRule{{RuleID: ruleID, Name: "Summer", Kind: domain.RuleSeason, Adjustment: 20, AdjustmentType: domain.AdjustPercentage, Nights: 2}},
			Total:        240,
		},
	}}
	h := NewHandler(uc, logger.Nop())

	w := doRequest(h, cabinID.String(), "startDate=2025-07-15&endDate=2025-07-17&guests=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body QuoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Availability.Available)
	require.NotNil(t, body.Quote)
	assert.Equal(t, 240.0, body.Quote.Total)
	assert.Equal(t, "2025-07-15", body.Quote.Nightly[0].Date)
	assert.Equal(t, "Summer", body.Quote.AppliedRules[0].Name)
	assert.Equal(t, 2, uc.got.Guests)
}

func TestHandle_UnavailableIsNotAnError(t *testing.T) {
	uc := &stubUseCase{resp: &getQuote.Response{
		Cabin: &domain.Cabin{ID: cabinID},
		Availability: &availability.Result{
			Verdict:  availability.VerdictBlocked,
			Nights:   3,
			Blocking: &domain.BlockedDate{Reason: "Plumbing", Kind: domain.BlockMaintenance, Start: daterange.MustParse("2025-08-01"), End: daterange.MustParse("2025-08-05")},
		},
	}}
	h := NewHandler(uc, logger.Nop())

	w := doRequest(h, cabinID.String(), "startDate=2025-07-30&endDate=2025-08-02")
	require.Equal(t, http.StatusOK, w.Code)

	var body QuoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.False(t, body.Availability.Available)
	assert.Equal(t, "blocked", body.Availability.Verdict)
	assert.Equal(t, "Plumbing", body.Availability.Blocking.Reason)
	assert.Nil(t, body.Quote)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cabin    string
		query    string
		err      error
		wantCode int
	}{
		{"bad cabin id", "nope", "startDate=2025-07-15&endDate=2025-07-17", nil, http.StatusBadRequest},
		{"bad date", cabinID.String(), "startDate=july&endDate=2025-07-17", nil, http.StatusBadRequest},
		{"cabin not found", cabinID.String(), "startDate=2025-07-15&endDate=2025-07-17", getQuote.ErrCabinNotFound, http.StatusNotFound},
		{"inverted range", cabinID.String(), "startDate=2025-07-17&endDate=2025-07-15", getQuote.ErrInvalidRange, http.StatusBadRequest},
		{"too late", cabinID.String(), "startDate=2025-07-15&endDate=2025-07-17", getQuote.ErrTooLateToBook, http.StatusBadRequest},
		{"internal", cabinID.String(), "startDate=2025-07-15&endDate=2025-07-17", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.Nop())
			w := doRequest(h, tt.cabin, tt.query)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
