package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/pkg/logger"
)

// CloudClient 通过 WhatsApp Business Cloud API 推送消息
type CloudClient struct {
	apiURL        string
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
}

func NewCloudClient() *CloudClient {
	cfg := config.Cfg

	timeout := time.Duration(cfg.SendTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &CloudClient{
		apiURL:        strings.TrimRight(cfg.WhatsAppAPIURL, "/"),
		accessToken:   cfg.WhatsAppAccessToken,
		phoneNumberID: cfg.WhatsAppPhoneNumberID,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type cloudSendRequest struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             cloudSendText `json:"text"`
}

type cloudSendText struct {
	Body string `json:"body"`
}

type cloudSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send 发送文本消息。仅在拿到 provider 级别的成功确认（messages[0].id）时视为已投递。
func (c *CloudClient) Send(ctx context.Context, to, text string) (*SendResult, error) {
	payload := cloudSendRequest{
		MessagingProduct: "whatsapp",
		To:               cleanPhone(to),
		Type:             "text",
		Text:             cloudSendText{Body: text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &SendResult{Delivered: false, ErrorText: err.Error()}, fmt.Errorf("failed to marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &SendResult{Delivered: false, ErrorText: err.Error()}, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Logger.Error("Failed to send WhatsApp message",
			zap.String("to", to),
			zap.Error(err),
		)
		return &SendResult{Delivered: false, ErrorText: err.Error()}, fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	defer resp.Body.Close()

	var result cloudSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &SendResult{Delivered: false, ErrorText: err.Error()}, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && len(result.Messages) > 0 {
		logger.Logger.Debug("WhatsApp message sent successfully",
			zap.String("to", to),
			zap.String("message_id", result.Messages[0].ID),
		)
		return &SendResult{Delivered: true, MessageID: result.Messages[0].ID}, nil
	}

	errText := fmt.Sprintf("provider error: status=%d", resp.StatusCode)
	if result.Error != nil && result.Error.Message != "" {
		errText = result.Error.Message
	}

	logger.Logger.Error("WhatsApp API returned error",
		zap.String("to", to),
		zap.Int("status_code", resp.StatusCode),
		zap.String("error", errText),
	)

	return &SendResult{Delivered: false, ErrorText: errText}, fmt.Errorf("WhatsApp send failed: %s", errText)
}

// cleanPhone 去掉 + 和空格等非数字字符
func cleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
