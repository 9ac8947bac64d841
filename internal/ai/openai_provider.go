package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avet102/meal-hub/internal/config"
)

type OpenAIProvider struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	return &OpenAIProvider{
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.AIMaxOutputTokens,
		temperature: cfg.AITemperature,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenAIProvider) EstimateMeal(ctx context.Context, req EstimateRequest) (EstimateResponse, error) {
	requestPayload := chatCompletionsRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages: []chatMessageRequest{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Text},
		},
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return EstimateResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return EstimateResponse{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return EstimateResponse{}, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return EstimateResponse{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return EstimateResponse{}, fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return EstimateResponse{}, err
	}
	if len(parsed.Choices) == 0 {
		return EstimateResponse{}, fmt.Errorf("openai response does not contain choices")
	}

	return parseBreakdown(parsed.Choices[0].Message.Content)
}

const systemPrompt = "You are a nutrition estimation service. " +
	"The user message is a free-form meal description. " +
	"Respond with ONLY a JSON object of the form " +
	`{"items":[{"food":"...","quantity":1,"unit":"piece","calories_per_unit":78,"confidence":"high","source":"..."}],"tips":["..."]}. ` +
	"Allowed units: tsp, tbsp, cup, ml, fl_oz, g, oz, lb, piece, slice, serving. " +
	"Allowed confidence values: low, medium, high. " +
	"Use at most 20 items. If nothing in the text is food, return an empty items array. " +
	"Do not include any text outside the JSON object."

// parseBreakdown extracts the JSON item array from the model output.
// Some models wrap the object in markdown fences; strip them before parsing.
func parseBreakdown(content string) (EstimateResponse, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed breakdownPayload
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return EstimateResponse{}, fmt.Errorf("unparseable breakdown: %w", err)
	}

	items := make([]ItemBreakdown, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if strings.TrimSpace(it.Food) == "" || it.Quantity <= 0 || it.CaloriesPerUnit < 0 {
			continue
		}
		items = append(items, ItemBreakdown{
			Food:            strings.TrimSpace(it.Food),
			Quantity:        it.Quantity,
			Unit:            strings.TrimSpace(it.Unit),
			CaloriesPerUnit: it.CaloriesPerUnit,
			Confidence:      strings.ToLower(strings.TrimSpace(it.Confidence)),
			Source:          strings.TrimSpace(it.Source),
			SourceURL:       strings.TrimSpace(it.SourceURL),
		})
	}

	return EstimateResponse{Items: items, Tips: parsed.Tips}, nil
}

type breakdownPayload struct {
	Items []struct {
		Food            string  `json:"food"`
		Quantity        float64 `json:"quantity"`
		Unit            string  `json:"unit"`
		CaloriesPerUnit float64 `json:"calories_per_unit"`
		Confidence      string  `json:"confidence"`
		Source          string  `json:"source"`
		SourceURL       string  `json:"source_url"`
	} `json:"items"`
	Tips []string `json:"tips"`
}

type chatCompletionsRequest struct {
	Model       string               `json:"model"`
	Messages    []chatMessageRequest `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
