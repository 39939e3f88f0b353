package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/security"
	"porchlight-backend/internal/service"
)

type stubDealService struct {
	service.DealService
	breakdown *finance.MonthlyBreakdown
	err       error
}

func (s *stubDealService) FinancingBreakdown(ctx context.Context, dealID int32, downPaymentDollars *float64) (*finance.MonthlyBreakdown, error) {
	return s.breakdown, s.err
}

type stubVideoService struct {
	service.VideoService
	err error
}

func (s *stubVideoService) GenerateDealVideo(ctx context.Context, userID, dealID int32) (*domain.Deal, int32, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return &domain.Deal{ID: dealID}, 1, nil
}

func testRouter(deal service.DealService, videoSvc service.VideoService, tokens security.TokenManager) http.Handler {
	handlers := &Handlers{
		Deal:  NewDealHandler(deal),
		Video: NewVideoHandler(videoSvc),
	}
	return NewRouter(handlers, NewAuthMiddleware(tokens))
}

func TestRouter(t *testing.T) {
	tokens := security.NewTokenManager("router-test-secret", 60, 10080)

	t.Run("FinancingBreakdownIsPublic", func(t *testing.T) {
		router := testRouter(&stubDealService{breakdown: &finance.MonthlyBreakdown{MonthlyPI: 2275.44, TotalMonthly: 2275.44}}, &stubVideoService{}, tokens)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/deals/3/financing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got finance.MonthlyBreakdown
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.InDelta(t, 2275.44, got.MonthlyPI, 0.01)
	})

	t.Run("VideoGenerationRequiresToken", func(t *testing.T) {
		router := testRouter(&stubDealService{}, &stubVideoService{}, tokens)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/3/video", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InsufficientCreditsMapsTo402", func(t *testing.T) {
		videoSvc := &stubVideoService{err: &service.InsufficientCreditsError{Required: 1, Current: 0}}
		router := testRouter(&stubDealService{}, videoSvc, tokens)

		token, err := tokens.GenerateAccessToken(1, "u@test.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/3/video", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(1), body["required"])
		assert.Equal(t, float64(0), body["current"])
	})

	t.Run("RefreshTokenRejectedAsBearer", func(t *testing.T) {
		router := testRouter(&stubDealService{}, &stubVideoService{}, tokens)

		refresh, err := tokens.GenerateRefreshToken(1, "u@test.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/3/video", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
