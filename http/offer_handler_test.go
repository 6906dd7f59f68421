package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"offer-agent/config"
	"offer-agent/repository"
	"offer-agent/service"
)

func newTestHandler() *OfferHandler {
	repo := repository.NewOfferRepositoryMemory()
	cache := repository.NewMockCache()
	calculatorService := service.NewCalculatorService(config.DefaultEngine(), repo, cache, nil)
	return NewOfferHandler(calculatorService)
}

func validBody() []byte {
	return []byte(`{
		"property": {
			"listed_price": 87000,
			"monthly_rent": 1150,
			"monthly_property_tax": 95,
			"monthly_insurance": 80,
			"monthly_hoa_fee": 0,
			"monthly_other_fees": 0,
			"arv": 95000
		},
		"repairs": {"light": 35, "medium": 15, "heavy": 5}
	}`)
}

func TestCalculateOffersHandler_OK(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(
		http.MethodPost,
		"/offers/calculate",
		bytes.NewBuffer(validBody()),
	)

	w := httptest.NewRecorder()

	handler.CalculateOffers(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var response calculateOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(response.Offers))
	}
	if response.Offers[1].FinalEntryFeeAmount != 13050 {
		t.Errorf("expected buyer entry fee 13050, got %.2f", response.Offers[1].FinalEntryFeeAmount)
	}
}

func TestCalculateOffersHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/offers/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculateOffers(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateOffersHandler_BadRequest(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(
		http.MethodPost,
		"/offers/calculate",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)

	w := httptest.NewRecorder()
	handler.CalculateOffers(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateOffersHandler_ValidationFailure(t *testing.T) {

	handler := newTestHandler()

	body := []byte(`{
		"property": {
			"listed_price": 0,
			"monthly_rent": 1150,
			"arv": 95000
		},
		"repairs": {"light": 35, "medium": 15, "heavy": 5}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/offers/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateOffers(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {

	handler := newTestHandler()
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	limited := RateLimitMiddleware(limiter, http.HandlerFunc(handler.CalculateOffers))

	first := httptest.NewRecorder()
	limited.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/offers/calculate", bytes.NewBuffer(validBody())))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 on first request, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	limited.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/offers/calculate", bytes.NewBuffer(validBody())))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on second request, got %d", second.Code)
	}
}
