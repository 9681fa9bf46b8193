package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/internal/cache"
	"AttendBot/internal/model"
	"AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/response"
	"AttendBot/pkg/whatsapp"
)

// webhookPayload WhatsApp Cloud API 回调结构，只取文本消息需要的字段
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// VerifyWebhook 订阅握手：校验 hub.verify_token 并原样返回 hub.challenge
func VerifyWebhook(ctx context.Context, c *app.RequestContext) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || token == "" || token != config.Cfg.WhatsAppVerifyToken {
		logger.Logger.Warn("Webhook verification handshake rejected",
			zap.String("mode", mode),
			zap.String("client_ip", c.ClientIP()),
		)
		response.Error(ctx, c, errors.WebhookVerifyFailed)
		return
	}

	c.String(consts.StatusOK, "%s", challenge)
}

// ReceiveWebhook 接收入站消息：记录、去重、交给机器人处理并回发应答。
// 签名校验由中间件完成，这里默认输入可信。
func ReceiveWebhook(ctx context.Context, c *app.RequestContext) {
	var payload webhookPayload
	if err := c.BindJSON(&payload); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	handled := 0
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.From == "" || msg.Text.Body == "" {
					continue
				}
				handleInbound(ctx, model.InboundMessage{
					From:      msg.From,
					Body:      msg.Text.Body,
					Timestamp: parseTimestamp(msg.Timestamp),
					MessageID: msg.ID,
				})
				handled++
			}
		}
	}

	response.Success(ctx, c, map[string]interface{}{"handled": handled})
}

func handleInbound(ctx context.Context, msg model.InboundMessage) {
	whatsapp.RecordIncoming(msg.From, msg.Body, msg.MessageID)

	// 平台可能重投同一条消息，按 MessageID 去重；Redis 故障时降级为直接处理
	if msg.MessageID != "" {
		first, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check inbound message dedup status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !first {
			logger.Logger.Info("Duplicate inbound message, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return
		}
	}

	out := deps.Bot.HandleMessage(ctx, msg)

	if _, err := whatsapp.Send(ctx, out.To, out.Text); err != nil {
		logger.Logger.Error("Failed to send bot reply",
			zap.String("to", out.To),
			zap.Error(err),
		)
	}
}

func parseTimestamp(s string) int64 {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Now().Unix()
	}
	return ts
}
