// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package oracle

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Fatal(err)
		}
	}))
}

func TestScoreParsesPlainJSON(t *testing.T) {
	ts := chatServer(t, `[{"id":0,"llm_score":85,"reason":"quiet, fair for both"},{"id":2,"llm_score":70,"reason":"great rating"}]`)
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model"}, zerolog.Nop())
	scored, err := c.Score(context.Background(), Meeting{Keywords: "café"}, []Candidate{{ID: 0}, {ID: 1}, {ID: 2}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(scored) != 2 || scored[0].ID != 0 || scored[0].Score != 85 {
		t.Errorf("scored = %+v", scored)
	}
}

func TestScoreStripsCodeFences(t *testing.T) {
	ts := chatServer(t, "Here you go:\n```json\n[{\"id\":1,\"llm_score\":90,\"reason\":\"best fit\"}]\n```\n")
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model"}, zerolog.Nop())
	scored, err := c.Score(context.Background(), Meeting{}, []Candidate{{ID: 1}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(scored) != 1 || scored[0].Score != 90 {
		t.Errorf("scored = %+v", scored)
	}
}

func TestScoreGarbageIsUnavailable(t *testing.T) {
	ts := chatServer(t, "I think the first venue is nice.")
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model"}, zerolog.Nop())
	_, err := c.Score(context.Background(), Meeting{}, []Candidate{{ID: 0}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestScoreServerErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model"}, zerolog.Nop())
	_, err := c.Score(context.Background(), Meeting{}, []Candidate{{ID: 0}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestScoreTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model", Timeout: 50 * time.Millisecond}, zerolog.Nop())
	start := time.Now()
	_, err := c.Score(context.Background(), Meeting{}, []Candidate{{ID: 0}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, hard ceiling not enforced", elapsed)
	}
}

func TestUnconfiguredClientIsUnavailable(t *testing.T) {
	c := NewClient(Config{}, zerolog.Nop())
	if _, err := c.Score(context.Background(), Meeting{}, []Candidate{{ID: 0}}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestTransportAdvice(t *testing.T) {
	ts := chatServer(t, `["Take line 4 to Central", "Garage parking at the mall", "Leave early", "Taxi is fastest from the east side"]`)
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Model: "test-model"}, zerolog.Nop())
	tips, err := c.TransportAdvice(context.Background(), Meeting{Keywords: "café"}, []string{"Quiet Cafe"})
	if err != nil {
		t.Fatalf("TransportAdvice() error = %v", err)
	}
	if len(tips) != 4 {
		t.Errorf("got %d tips", len(tips))
	}
}

func TestNoopAlwaysUnavailable(t *testing.T) {
	var r Reranker = Noop{}
	if _, err := r.Score(context.Background(), Meeting{}, nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Noop.Score error = %v", err)
	}
	if _, err := r.TransportAdvice(context.Background(), Meeting{}, nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Noop.TransportAdvice error = %v", err)
	}
}

func TestDefaultTransportTips(t *testing.T) {
	tips := DefaultTransportTips()
	if len(tips) == 0 {
		t.Fatal("default tips must not be empty")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[1]`, `[1]`},
		{"json fence", "```json\n[1]\n```", `[1]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"prose around fence", "Sure!\n```json\n[1]\n```\nHope that helps", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
