package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/response"
)

const signatureHeader = "X-Hub-Signature-256"

// SignatureMiddleware 校验 webhook 回调的 HMAC-SHA256 签名。
// 签名覆盖原始请求体，格式为 "sha256=<hex>"。AppSecret 未配置时直接放行，
// 核心逻辑默认收到的消息已通过边界校验。
func SignatureMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		secret := config.Cfg.WhatsAppAppSecret
		if secret == "" {
			c.Next(ctx)
			return
		}

		signature := string(c.GetHeader(signatureHeader))
		if !VerifySignature(c.Request.Body(), signature, secret) {
			logger.Logger.Warn("Webhook signature verification failed",
				zap.String("client_ip", c.ClientIP()),
			)
			response.Error(ctx, c, errors.WebhookSignatureBad)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// VerifySignature 恒定时间比较签名
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
