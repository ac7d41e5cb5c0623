package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/utils/logger"
)

// FallbackReply is returned whenever the hosted completion API cannot
// produce a response. The assistant degrades, it never errors out.
const FallbackReply = "The AI terminal is currently offline. Please reach out via email instead!"

// ChatMessage is one turn of the conversation, role "user" or "model".
type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

// AssistantService proxies chat turns to a hosted generateContent API
// with a system instruction built from the site owner card.
type AssistantService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	log     *logger.Logger
}

func NewAssistantService(cfg config.AssistantConfig) *AssistantService {
	return &AssistantService{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		log:     logger.New("assistant"),
	}
}

func systemInstruction(site catalog.SiteInfo) string {
	return fmt.Sprintf(`You are the AI assistant for %s's personal portfolio website.
Answer questions about %s based on the following information:
- Name: %s
- Title: %s
- Education: %s
- Bio: %s
- Location: %s
- Contact Email: %s
Be analytical, friendly, and concise. If someone wants to hire or
contact %s, direct them to the email above. Keep responses under 3
sentences unless asked for deep technical detail.`,
		site.FullName, site.Name, site.FullName, site.Title,
		site.Education, site.About, site.Location, site.Email, site.Name)
}

type generateContentRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends the conversation history to the completion API and
// returns the model's reply. Every failure path returns FallbackReply
// with a nil error: unavailability is not a fault of the caller.
func (a *AssistantService) Complete(ctx context.Context, history []ChatMessage) string {
	if a.apiKey == "" {
		a.log.Warn("Assistant API key not configured, serving fallback")
		return FallbackReply
	}

	reply, err := a.send(ctx, history)
	if err != nil {
		a.log.Error("Completion API call failed", err)
		return FallbackReply
	}
	return reply
}

func (a *AssistantService) send(ctx context.Context, history []ChatMessage) (string, error) {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, content{
			Role:  msg.Role,
			Parts: []part{{Text: msg.Text}},
		})
	}

	reqBody := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction(catalog.Site)}}},
		Contents:          contents,
		GenerationConfig:  generationConfig{Temperature: 0.7, TopP: 0.9},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(body))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion API returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
