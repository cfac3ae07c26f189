package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrChatNotConfigured = errors.New("chat assistant is not configured")

// fallbackReply is returned when every model in the list fails; the
// assistant degrades to canned guidance instead of erroring at the user.
func fallbackReply(supportEmail string) string {
	contact := "our support team"
	if supportEmail != "" {
		contact = "our support team at " + supportEmail
	}
	return fmt.Sprintf(`I'm currently experiencing high demand and some technical difficulties. However, I can still help you with:

- Finding buyers and suppliers across Africa and Pakistan
- Trade opportunities and market insights
- Business connections and networking
- Export/import guidance

Please try asking your question again in a moment, or contact %s for immediate assistance.`, contact)
}

// ChatService proxies user questions to an OpenAI-compatible completions
// API, prefixed with a system prompt derived from the company directory.
// Models are tried in order; a rate-limited model advances to the next.
type ChatService struct {
	companyService *CompanyService
	apiKey         string
	baseURL        string
	models         []string
	supportEmail   string
	client         *http.Client
}

func NewChatService(companyService *CompanyService, apiKey, baseURL string, models []string, supportEmail string, timeout time.Duration) *ChatService {
	return &ChatService{
		companyService: companyService,
		apiKey:         apiKey,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		models:         models,
		supportEmail:   supportEmail,
		client:         &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SystemPrompt builds the directory-scoped instruction. A directory read
// failure degrades to an empty listing rather than blocking the chat.
func (s *ChatService) SystemPrompt() string {
	entries, err := s.companyService.PromptData()
	if err != nil {
		slog.Warn("failed to load company data for system prompt", "error", err)
		entries = nil
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		data = []byte("[]")
	}

	return fmt.Sprintf(`You are a helpful assistant for business support.

Only answer questions about the following companies:

%s

If the user's query is not about one of these companies, reply:
"I'm here to assist only with our listed partner companies. Please ask a question related to them."

Stick strictly to this rule.`, data)
}

// Ask forwards message to the first model that answers. HTTP 429 moves on
// to the next model; when no model answers, the canned fallback reply is
// returned with modelUsed "fallback".
func (s *ChatService) Ask(ctx context.Context, message string) (reply, modelUsed string, err error) {
	if s.apiKey == "" {
		return "", "", ErrChatNotConfigured
	}

	systemPrompt := s.SystemPrompt()

	for _, model := range s.models {
		reply, err := s.tryModel(ctx, model, systemPrompt, message)
		if err != nil {
			slog.Warn("chat model failed, trying next", "model", model, "error", err)
			continue
		}
		return reply, model, nil
	}

	slog.Warn("all chat models failed, returning fallback reply")
	return fallbackReply(s.supportEmail), "fallback", nil
}

func (s *ChatService) tryModel(ctx context.Context, model, systemPrompt, message string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("model rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	err = json.NewDecoder(resp.Body).Decode(&parsed)
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}

	return parsed.Choices[0].Message.Content, nil
}
