// Package ai calls an Ollama-compatible endpoint to analyze document text.
// The integration is best-effort: model output that fails to parse degrades
// to a summary-only result instead of failing the request.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/comply-core/comply_core/internal/apperr"
)

// Analysis is the structured result extracted from model output.
type Analysis struct {
	Summary          string          `json:"summary"`
	ComplianceTopics []string        `json:"compliance_topics"`
	RiskIndicators   []string        `json:"risk_indicators"`
	SuggestedItems   []SuggestedItem `json:"suggested_items"`
	Confidence       float32         `json:"confidence"`
}

// SuggestedItem is a compliance item proposed by the model.
type SuggestedItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RiskLevel   string  `json:"risk_level"`
	Confidence  float32 `json:"confidence"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client talks to one Ollama-compatible server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewClient builds an analysis client.
func NewClient(baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
	}
}

const maxPromptChars = 8000

// AnalyzeDocument asks the model to summarize text and surface compliance
// topics. Transport failures map to ai_unavailable; unparsable model output
// does not.
func (c *Client) AnalyzeDocument(ctx context.Context, text string) (Analysis, error) {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	prompt := "Analyze the following document for compliance obligations. " +
		"Respond with a JSON object containing summary, compliance_topics, " +
		"risk_indicators, suggested_items (title, description, risk_level, confidence) " +
		"and confidence.\n\n" + text

	output, err := c.generate(ctx, prompt)
	if err != nil {
		return Analysis{}, err
	}
	return parseAnalysis(output), nil
}

// RiskAssessment is a standalone model-produced risk rating, not persisted.
type RiskAssessment struct {
	Score      int     `json:"score"`
	Level      string  `json:"level"`
	Confidence float32 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// AssessRisk rates a compliance item described only by title and description.
// The model is asked for a line-oriented SCORE/LEVEL/REASONING format;
// missing markers degrade to a medium 50 rather than failing.
func (c *Client) AssessRisk(ctx context.Context, title, description string) (RiskAssessment, error) {
	if description == "" {
		description = "N/A"
	}
	prompt := "Analyze the following compliance item and provide a risk assessment:\n" +
		"Title: " + title + "\n" +
		"Description: " + description + "\n\n" +
		"Provide:\n" +
		"1. Risk score (0-100)\n" +
		"2. Risk level (low/medium/high/critical)\n" +
		"3. Brief reasoning\n\n" +
		"Format your response as:\n" +
		"SCORE: <number>\n" +
		"LEVEL: <level>\n" +
		"REASONING: <explanation>"

	output, err := c.generate(ctx, prompt)
	if err != nil {
		return RiskAssessment{}, err
	}
	return parseRiskAssessment(output), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", apperr.Internal("encode analysis request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", apperr.Internal("build analysis request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.AIUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.AIUnavailable(fmt.Errorf("analysis endpoint returned %d", resp.StatusCode))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", apperr.AIUnavailable(fmt.Errorf("decode analysis response: %w", err))
	}
	return gen.Response, nil
}

func parseRiskAssessment(output string) RiskAssessment {
	a := RiskAssessment{Score: 50, Level: "medium", Confidence: 0.7}
	if v, ok := extractValue(output, "SCORE:"); ok {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, v)
		if n, err := strconv.Atoi(digits); err == nil {
			a.Score = n
		}
	}
	if v, ok := extractValue(output, "LEVEL:"); ok && v != "" {
		a.Level = strings.ToLower(v)
	}
	if v, ok := extractValue(output, "REASONING:"); ok && v != "" {
		a.Reasoning = v
	}
	return a
}

// extractValue returns the text after the first line containing marker.
func extractValue(text, marker string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, marker); idx >= 0 {
			return strings.TrimSpace(line[idx+len(marker):]), true
		}
	}
	return "", false
}

// parseAnalysis extracts the first JSON object from model output. Anything
// unparsable becomes a summary-only result.
func parseAnalysis(output string) Analysis {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start >= 0 && end > start {
		var a Analysis
		if err := json.Unmarshal([]byte(output[start:end+1]), &a); err == nil {
			return a
		}
	}

	summary := strings.TrimSpace(output)
	if len(summary) > 500 {
		summary = summary[:500]
	}
	return Analysis{Summary: summary}
}
