package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stratfolio/stratfolio/internal/models"
)

func TestHTTPClientGenerateStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate-strategy" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req models.GenerateStrategyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.GoalText != "retire early" {
			t.Errorf("goal text = %q", req.GoalText)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.StrategyResponse{
			RecommendationID: "rec_42",
			Presentation:     "A strategy.",
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.GenerateStrategy(context.Background(), models.GenerateStrategyRequest{
		GoalText:          "retire early",
		RiskTolerance:     2,
		InvestmentHorizon: 20,
		PortfolioSize:     1000,
	})
	if err != nil {
		t.Fatalf("GenerateStrategy returned error: %v", err)
	}
	if resp.RecommendationID != "rec_42" {
		t.Errorf("recommendation id = %q, want rec_42", resp.RecommendationID)
	}
}

func TestHTTPClientProcessFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/process-feedback" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.FeedbackResponse{
			FeedbackAnalysis: "wants more bonds",
			RiskAdjustment:   "lower",
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.ProcessFeedback(context.Background(), models.FeedbackRequest{
		RecommendationID: "rec_42",
		FeedbackText:     "too risky",
	})
	if err != nil {
		t.Fatalf("ProcessFeedback returned error: %v", err)
	}
	if resp.RiskAdjustment != "lower" {
		t.Errorf("risk adjustment = %q, want lower", resp.RiskAdjustment)
	}
}

func TestHTTPClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.GenerateStrategy(context.Background(), models.GenerateStrategyRequest{})

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transport.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", transport.Status)
	}
}

func TestHTTPClientConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.ProcessFeedback(context.Background(), models.FeedbackRequest{})

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
