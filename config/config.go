package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"attendbot"`
	CompanyName string `env:"COMPANY_NAME" envDefault:"Scalinova"`
	HREmail     string `env:"HR_EMAIL" envDefault:"hr@scalinova.com"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"attendbot"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"10"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"100"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"attnd"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// WhatsApp Business API 配置
	// AccessToken 和 PhoneNumberID 任一缺失时，发送降级为本地日志（demo 模式），不影响启动
	WhatsAppAPIURL        string `env:"WHATSAPP_API_URL" envDefault:"https://graph.facebook.com/v18.0"`
	WhatsAppAccessToken   string `env:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID string `env:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppVerifyToken   string `env:"WHATSAPP_WEBHOOK_VERIFY_TOKEN"` // webhook 握手校验
	WhatsAppAppSecret     string `env:"WHATSAPP_APP_SECRET"`           // webhook 签名校验（HMAC-SHA256）
	SendTimeoutSeconds    int    `env:"WHATSAPP_SEND_TIMEOUT_SECONDS" envDefault:"10"`
	NotificationLogSize   int    `env:"NOTIFICATION_LOG_SIZE" envDefault:"100"`

	// 调度配置，时间均为本地时间
	SchedulerPollSeconds int    `env:"SCHEDULER_POLL_SECONDS" envDefault:"30"` // 必须 <= 60，否则可能跳过目标分钟
	SchedulerWorkerPool  int    `env:"SCHEDULER_WORKER_POOL" envDefault:"8"`
	DailyReminderAt      string `env:"DAILY_REMINDER_AT" envDefault:"08:30"`
	CheckoutReminderAt   string `env:"CHECKOUT_REMINDER_AT" envDefault:"17:30"`
	AdminSummaryAt       string `env:"ADMIN_SUMMARY_AT" envDefault:"18:00"`
	WeeklyReportAt       string `env:"WEEKLY_REPORT_AT" envDefault:"17:00"` // 仅周五触发
	LateThreshold        string `env:"LATE_THRESHOLD" envDefault:"09:00:00"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 链路追踪配置，endpoint 为空时不启用
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
}

func init() {

	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if !Cfg.WhatsAppConfigured() {
		log.Printf("WARN: WHATSAPP_ACCESS_TOKEN / WHATSAPP_PHONE_NUMBER_ID not set, running in demo mode (sends are logged locally)")
	}
	if Cfg.WhatsAppAppSecret == "" {
		log.Printf("WARN: WHATSAPP_APP_SECRET is not set, webhook signature verification is disabled")
	}
	if Cfg.WhatsAppVerifyToken == "" {
		log.Printf("WARN: WHATSAPP_WEBHOOK_VERIFY_TOKEN is not set, webhook verification handshake will reject all requests")
	}

	if Cfg.SchedulerPollSeconds <= 0 || Cfg.SchedulerPollSeconds > 60 {
		log.Fatalf("SCHEDULER_POLL_SECONDS must be in (0, 60], got %d", Cfg.SchedulerPollSeconds)
	}

	// 调度时间必须可解析，错误配置直接拒绝启动
	for name, v := range map[string]string{
		"DAILY_REMINDER_AT":    Cfg.DailyReminderAt,
		"CHECKOUT_REMINDER_AT": Cfg.CheckoutReminderAt,
		"ADMIN_SUMMARY_AT":     Cfg.AdminSummaryAt,
		"WEEKLY_REPORT_AT":     Cfg.WeeklyReportAt,
	} {
		if _, err := time.Parse("15:04", v); err != nil {
			log.Fatalf("%s must be HH:MM, got %q", name, v)
		}
	}
	if _, err := time.Parse("15:04:05", Cfg.LateThreshold); err != nil {
		log.Fatalf("LATE_THRESHOLD must be HH:MM:SS, got %q", Cfg.LateThreshold)
	}
}

// WhatsAppConfigured 判断真实推送所需的凭证是否齐全
func (c *Config) WhatsAppConfigured() bool {
	return c.WhatsAppAccessToken != "" && c.WhatsAppPhoneNumberID != ""
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
