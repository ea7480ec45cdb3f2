// Package relay forwards conversations to an Ollama chat endpoint and
// returns the model's reply text.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/sachinth/koda/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const chatPath = "/api/chat"

// Client relays conversations to a single Ollama endpoint
type Client struct {
	httpClient   *http.Client
	logger       *logger.StyledLogger
	endpoint     string
	systemPrompt string
}

func NewClient(endpoint, systemPrompt string, connectTimeout, responseTimeout time.Duration, logger *logger.StyledLogger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: responseTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		logger:       logger,
		endpoint:     endpoint,
		systemPrompt: systemPrompt,
	}
}

// BuildMessages assembles the ordered payload for a chat call:
// the system prompt, one user/assistant pair per prior turn, then the
// new user message. For N prior turns the result has 2N+2 entries.
func BuildMessages(systemPrompt string, history []Turn, message string) []Message {
	messages := make([]Message, 0, 2*len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})

	for _, turn := range history {
		messages = append(messages, Message{Role: RoleUser, Content: turn.User})
		messages = append(messages, Message{Role: RoleAssistant, Content: turn.Assistant})
	}

	messages = append(messages, Message{Role: RoleUser, Content: message})
	return messages
}

// Relay sends the conversation to the model and returns the reply
// text. Failures never surface as errors: they collapse to a string
// prefixed with "Error: " which is rendered in the chat log, matching
// how the widget displays replies.
func (c *Client) Relay(ctx context.Context, message string, history []Turn, modelID string, temperature float64) string {
	messages := BuildMessages(c.systemPrompt, history, message)

	reply, err := c.chat(ctx, modelID, messages, temperature)
	if err != nil {
		c.logger.ErrorWithEndpoint("Chat relay failed", c.endpoint, "model", modelID, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	return reply
}

// Generate performs a one-shot completion: a single user message with
// no system prompt and no history. Same error-string collapse as Relay.
func (c *Client) Generate(ctx context.Context, modelID, prompt string, temperature float64) string {
	messages := []Message{{Role: RoleUser, Content: prompt}}

	reply, err := c.chat(ctx, modelID, messages, temperature)
	if err != nil {
		c.logger.ErrorWithEndpoint("One-shot generate failed", c.endpoint, "model", modelID, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	return reply
}

func (c *Client) chat(ctx context.Context, modelID string, messages []Message, temperature float64) (string, error) {
	payload := chatRequest{
		Model:    modelID,
		Messages: messages,
		Stream:   false,
		Options: chatOptions{
			Temperature: clampTemperature(temperature),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	content := gjson.GetBytes(respBody, "message.content")
	if !content.Exists() {
		return "", fmt.Errorf("chat response missing message content")
	}

	return content.String(), nil
}

func clampTemperature(temperature float64) float64 {
	if temperature < 0 {
		return 0
	}
	if temperature > 1 {
		return 1
	}
	return temperature
}
