package whatsapp

import (
	"context"

	"github.com/google/uuid"
)

// DemoClient 本地 demo 客户端：不产生任何外部调用，总是报告已投递。
// 凭证未配置时由 Init 选用。
type DemoClient struct{}

func NewDemoClient() *DemoClient {
	return &DemoClient{}
}

func (d *DemoClient) Send(ctx context.Context, to, text string) (*SendResult, error) {
	return &SendResult{
		Delivered: true,
		MessageID: "demo-" + uuid.NewString(),
		Demo:      true,
	}, nil
}
