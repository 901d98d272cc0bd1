package config

import "time"

type Config struct {
	// Telegram transport
	BotToken            string        `env:"TELEGRAM_BOT_TOKEN"`
	OwnerChatID         int64         `env:"OWNER_CHAT_ID"`
	ConversationTimeout time.Duration `env:"CONVERSATION_TIMEOUT" envDefault:"10m"`
	// Whether a suppressed double-command conflict is worth a warning.
	LogConflicts bool `env:"LOG_CONVERSATION_CONFLICTS"`

	// Inference provider
	LLM LLMConfig

	// Ops surfaces, all optional
	MetricsAddr       string `env:"METRICS_ADDR"`
	HeartbeatSchedule string `env:"HEARTBEAT_SCHEDULE"`
	SettingsPath      string `env:"GEMBOT_SETTINGS"`

	Storage StorageConfig
}

type LLMConfig struct {
	Provider    string `env:"LLM_PROVIDER" envDefault:"gemini"`
	ProjectID   string `env:"GCP_PROJECT"`
	Location    string `env:"GCP_LOCATION" envDefault:"us-central1"`
	Model       string `env:"LLM_MODEL"`
	VisionModel string `env:"LLM_VISION_MODEL"`
	APIKey      string `env:"LLM_API_KEY"`
	BaseURL     string `env:"LLM_BASE_URL"`
}

type StorageConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"minio:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"MINIO_USE_SSL"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"gembot-images"`
}

func (s StorageConfig) Enabled() bool {
	return s.AccessKey != "" && s.SecretKey != ""
}
