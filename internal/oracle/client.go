// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package oracle

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/metrics"
)

// Config holds oracle connection settings.
type Config struct {
	// BaseURL points at an OpenAI-compatible chat completions API.
	BaseURL string
	APIKey  string
	Model   string
	// Timeout is the hard per-call ceiling. The recommendation pipeline
	// blocks on the oracle, so this stays short.
	Timeout time.Duration
}

// Client scores venues through a chat-completions model. Every failure
// mode maps to ErrUnavailable so the caller's fallback stays trivial.
type Client struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// NewClient creates an oracle client. A missing base URL or model yields a
// client that always reports ErrUnavailable, which keeps wiring simple.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "oracle").Logger(),
	}
}

// chat wire types, OpenAI-compatible.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Score implements Reranker.
func (c *Client) Score(ctx context.Context, meeting Meeting, candidates []Candidate) ([]Scored, error) {
	if len(candidates) == 0 {
		return nil, ErrUnavailable
	}

	summaries, err := json.Marshal(candidates)
	if err != nil {
		return nil, ErrUnavailable
	}

	requirements := meeting.Requirements
	if requirements == "" {
		requirements = "none"
	}
	prompt := fmt.Sprintf(`You are a meeting place recommendation assistant. Score and rank the candidate venues.

Meeting context:
- Participant locations: %s
- Venue type sought: %s
- Special requirements: %s

Candidates:
%s

Weigh requirement fit (30%%), location fairness to all participants (25%%), venue quality (25%%) and distinctive appeal (20%%).

Return ONLY a JSON array ordered best first, one object per recommended venue:
[{"id": 0, "llm_score": 85, "reason": "short reason"}]`,
		strings.Join(meeting.ParticipantLocations, ", "),
		meeting.Keywords,
		requirements,
		string(summaries),
	)

	content, err := c.complete(ctx, "score", prompt)
	if err != nil {
		return nil, err
	}

	var scored []Scored
	if err := json.Unmarshal([]byte(stripFences(content)), &scored); err != nil {
		c.logger.Warn().Err(err).Msg("unparseable oracle scoring response")
		metrics.OracleRequests.WithLabelValues("score", "bad_response").Inc()
		return nil, ErrUnavailable
	}
	return scored, nil
}

// TransportAdvice implements Reranker.
func (c *Client) TransportAdvice(ctx context.Context, meeting Meeting, venueNames []string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a local mobility expert. Participants start from: %s. They will meet at one of: %s (venue type: %s).

Write 4-5 practical transport and parking tips for this meeting.
Return ONLY a JSON array of strings: ["tip one", "tip two"]`,
		strings.Join(meeting.ParticipantLocations, ", "),
		strings.Join(venueNames, ", "),
		meeting.Keywords,
	)

	content, err := c.complete(ctx, "transport", prompt)
	if err != nil {
		return nil, err
	}

	var tips []string
	if err := json.Unmarshal([]byte(stripFences(content)), &tips); err != nil {
		metrics.OracleRequests.WithLabelValues("transport", "bad_response").Inc()
		return nil, ErrUnavailable
	}
	if len(tips) > 5 {
		tips = tips[:5]
	}
	return tips, nil
}

// complete performs one chat call and returns the assistant content.
func (c *Client) complete(ctx context.Context, operation, prompt string) (string, error) {
	if c.cfg.BaseURL == "" || c.cfg.Model == "" {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You respond with JSON only, no prose."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", ErrUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("operation", operation).Msg("oracle call failed")
		metrics.OracleRequests.WithLabelValues(operation, "error").Inc()
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.OracleRequests.WithLabelValues(operation, "error").Inc()
		return "", ErrUnavailable
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Choices) == 0 {
		metrics.OracleRequests.WithLabelValues(operation, "bad_response").Inc()
		return "", ErrUnavailable
	}

	metrics.OracleRequests.WithLabelValues(operation, "success").Inc()
	return parsed.Choices[0].Message.Content, nil
}

// stripFences removes a markdown code fence wrapper if the model added one
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
	} else {
		return s
	}
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
