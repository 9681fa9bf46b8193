package whatsapp

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/pkg/logger"
)

// SendResult 单次发送结果
type SendResult struct {
	Delivered bool   `json:"delivered"`
	MessageID string `json:"message_id,omitempty"`
	ErrorText string `json:"error_text,omitempty"`
	Demo      bool   `json:"demo,omitempty"`
}

// Client 消息推送客户端接口
type Client interface {
	// Send 发送单条文本消息
	Send(ctx context.Context, to, text string) (*SendResult, error)
}

var (
	client    Client
	notifyLog *Log
	once      sync.Once
)

// Init 根据配置选择真实推送或 demo 模式。
// 凭证缺失不是错误：发送降级为本地日志。
func Init() {
	once.Do(func() {
		notifyLog = NewLog(config.Cfg.NotificationLogSize)

		if config.Cfg.WhatsAppConfigured() {
			client = NewCloudClient()
			logger.Logger.Info("WhatsApp client initialized",
				zap.String("mode", "cloud"),
				zap.String("api_url", config.Cfg.WhatsAppAPIURL),
			)
			return
		}

		client = NewDemoClient()
		logger.Logger.Warn("WhatsApp credentials not configured, using demo transport",
			zap.String("mode", "demo"),
		)
	})
}

func GetClient() Client {
	if client == nil {
		panic("whatsapp client not initialized, call whatsapp.Init() first")
	}
	return client
}

// Notifications 返回通知日志
func Notifications() *Log {
	if notifyLog == nil {
		panic("whatsapp client not initialized, call whatsapp.Init() first")
	}
	return notifyLog
}

// Send 统一发送入口。无论成功、失败还是 demo，每次调用恰好追加一条通知日志。
// 失败以 (Delivered=false, err) 返回，调用方自行决定是否继续后续收件人。
func Send(ctx context.Context, to, text string) (*SendResult, error) {
	res, err := GetClient().Send(ctx, to, text)

	entry := LogEntry{
		To:     to,
		From:   config.Cfg.WhatsAppPhoneNumberID,
		Text:   text,
		SentAt: time.Now(),
	}

	switch {
	case err != nil || res == nil || !res.Delivered:
		entry.Direction = DirectionError
		entry.Status = "failed"
		if err != nil {
			entry.ErrorMessage = err.Error()
		} else if res != nil {
			entry.ErrorMessage = res.ErrorText
		}
		if res == nil {
			res = &SendResult{Delivered: false, ErrorText: entry.ErrorMessage}
		}
	case res.Demo:
		entry.Direction = DirectionDemo
		entry.Status = "demo_sent"
		entry.MessageID = res.MessageID
	default:
		entry.Direction = DirectionOutgoing
		entry.Status = "sent"
		entry.MessageID = res.MessageID
	}

	notifyLog.Append(entry)
	return res, err
}

// RecordIncoming 将入站消息记入通知日志
func RecordIncoming(from, text, messageID string) {
	Notifications().Append(LogEntry{
		Direction: DirectionIncoming,
		To:        config.Cfg.WhatsAppPhoneNumberID,
		From:      from,
		Text:      text,
		SentAt:    time.Now(),
		Status:    "received",
		MessageID: messageID,
	})
}

// ConfigurationStatus 配置状态，用于后台诊断接口
type ConfigurationStatus struct {
	Configured      bool   `json:"configured"`
	HasAccessToken  bool   `json:"has_access_token"`
	HasPhoneNumber  bool   `json:"has_phone_number_id"`
	HasWebhookToken bool   `json:"has_webhook_token"`
	HasAppSecret    bool   `json:"has_app_secret"`
	APIURL          string `json:"api_url"`
}

func GetConfigurationStatus() ConfigurationStatus {
	cfg := config.Cfg
	return ConfigurationStatus{
		Configured:      cfg.WhatsAppConfigured(),
		HasAccessToken:  cfg.WhatsAppAccessToken != "",
		HasPhoneNumber:  cfg.WhatsAppPhoneNumberID != "",
		HasWebhookToken: cfg.WhatsAppVerifyToken != "",
		HasAppSecret:    cfg.WhatsAppAppSecret != "",
		APIURL:          cfg.WhatsAppAPIURL,
	}
}
