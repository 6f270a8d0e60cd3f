package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"coveradvisor/internal/config"
)

const ruleAPIBody = `{
  "rules": [
    {
      "policyType": "Life Insurance",
      "providerName": "Sanlam",
      "baseConfidence": 50,
      "minConfidenceToShow": 0,
      "dependantsBonus": 30,
      "coverMultiplier": 10,
      "premiumRate": 0.0015,
      "active": true
    },
    {
      "providerName": "Nameless Mutual",
      "baseConfidence": 60,
      "minConfidenceToShow": 0,
      "active": true
    },
    {
      "policyType": "Funeral Cover",
      "providerName": "AVBOB",
      "baseConfidence": 80,
      "minConfidenceToShow": 0,
      "fixedCover": 50000,
      "active": false
    }
  ]
}`

func TestRuleAPIClientFetchesActiveRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rules/active" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ruleAPIBody))
	}))
	defer srv.Close()

	client := NewRuleAPIClient(&config.RuleAPIConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		TimeoutMS: 2000,
	})

	rules, err := client.FetchActiveRules(context.Background())
	if err != nil {
		t.Fatalf("FetchActiveRules() error = %v", err)
	}

	// The nameless rule is malformed and the funeral rule inactive.
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	if rules[0].PolicyType != "Life Insurance" {
		t.Errorf("PolicyType = %q", rules[0].PolicyType)
	}
	if rules[0].CoverMultiplier == nil || *rules[0].CoverMultiplier != 10 {
		t.Error("coverMultiplier lost in decoding")
	}
}

func TestRuleAPIClientErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client := NewRuleAPIClient(&config.RuleAPIConfig{})
		if _, err := client.FetchActiveRules(context.Background()); err == nil {
			t.Error("expected error when no base URL is set")
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewRuleAPIClient(&config.RuleAPIConfig{BaseURL: srv.URL, TimeoutMS: 2000})
		if _, err := client.FetchActiveRules(context.Background()); err == nil {
			t.Error("expected error for HTTP 503")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := NewRuleAPIClient(&config.RuleAPIConfig{BaseURL: srv.URL, TimeoutMS: 2000})
		if _, err := client.FetchActiveRules(context.Background()); err == nil {
			t.Error("expected error for undecodable body")
		}
	})
}
