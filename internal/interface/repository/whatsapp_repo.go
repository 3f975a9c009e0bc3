package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"

	"golang.org/x/oauth2"
)

// WhatsappRepository sends payloads to the WhatsApp gateway
type WhatsappRepository struct {
	logger      logger.Logger
	baseURL     string
	companyID   string
	agentID     string
	tokenSource oauth2.TokenSource
	client      *http.Client
}

// NewWhatsappRepository creates a new WhatsApp repository. The token source
// supplies a self-refreshing bearer token for the gateway.
func NewWhatsappRepository(baseURL, companyID, agentID string, tokenSource oauth2.TokenSource, logger logger.Logger) repository.WhatsappRepository {
	return &WhatsappRepository{
		logger:      logger,
		baseURL:     baseURL,
		companyID:   companyID,
		agentID:     agentID,
		tokenSource: tokenSource,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendPayload sends a payload to the WhatsApp gateway and returns the task ID
func (r *WhatsappRepository) SendPayload(ctx context.Context, payload *entity.Payload) (string, error) {
	scheduleAtUTC := payload.ScheduleAt.UTC().Format(time.RFC3339)

	msg := entity.SendGatewayMessage{
		CompanyID:   r.companyID,
		AgentID:     r.agentID,
		PhoneNumber: payload.Phone,
		Message: entity.Message{
			Text: payload.Text,
		},
		ScheduleAt: scheduleAtUTC,
		Type:       "text",
	}

	if err := msg.Message.Validate(); err != nil {
		return "", fmt.Errorf("invalid message: %w", err)
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	token, err := r.tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get gateway token: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("WhatsApp gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID     string `json:"taskId"`
			Status     string `json:"status"`
			ScheduleAt string `json:"scheduleAt"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("gateway rejected message: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Message queued on gateway",
		"taskId", response.Data.TaskID,
		"phone", payload.Phone,
		"scheduleAt", scheduleAtUTC)

	return response.Data.TaskID, nil
}
