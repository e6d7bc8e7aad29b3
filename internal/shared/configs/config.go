package configs

import (
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverFile     = "file"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Mpesa   MpesaConfig   `mapstructure:"mpesa" validate:"required"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int    `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int    `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int    `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig selects and configures the audit log backend.
type StorageConfig struct {
	Driver          string `mapstructure:"driver" validate:"required,oneof=postgres file"`
	DatabaseURL     string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
	MaxConns        int32  `mapstructure:"max_conns" validate:"min=0"`
	MaxConnIdleTime int    `mapstructure:"max_conn_idle_time" validate:"min=0"` // seconds
	RootDir         string `mapstructure:"root_dir" validate:"required_if=Driver file"`
}

// MpesaConfig holds the Daraja credentials and endpoints for both environments.
type MpesaConfig struct {
	Environment   string `mapstructure:"environment"`
	OAuthEndpoint string `mapstructure:"oauth_endpoint"`
	HTTPTimeout   int    `mapstructure:"http_timeout" validate:"min=0"` // seconds, 0 disables

	// Sandbox falls back to these when its own values are empty.
	BaseURL        string `mapstructure:"base_url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`

	Endpoints  EndpointsConfig    `mapstructure:"endpoints"`
	Sandbox    MpesaProfileConfig `mapstructure:"sandbox"`
	Production MpesaProfileConfig `mapstructure:"production"`
}

// MpesaProfileConfig is the per-environment part of MpesaConfig.
type MpesaProfileConfig struct {
	BaseURL        string          `mapstructure:"base_url"`
	ConsumerKey    string          `mapstructure:"consumer_key"`
	ConsumerSecret string          `mapstructure:"consumer_secret"`
	Endpoints      EndpointsConfig `mapstructure:"endpoints"`
}

// EndpointsConfig maps each operation's endpoint key to a Daraja path or absolute URL.
type EndpointsConfig struct {
	STKPush           string `mapstructure:"stk_push"`
	B2C               string `mapstructure:"b2c"`
	B2B               string `mapstructure:"b2b"`
	TransactionStatus string `mapstructure:"transaction_status"`
	AccountBalance    string `mapstructure:"account_balance"`
	Reversal          string `mapstructure:"reversal"`
	QRCode            string `mapstructure:"qr_code"`
	Ratiba            string `mapstructure:"ratiba"`
	PullTransactions  string `mapstructure:"pull_transactions"`
}

// Get returns the endpoint stored under key, or "" for an unknown key.
func (e EndpointsConfig) Get(key string) string {
	switch key {
	case "stk_push":
		return e.STKPush
	case "b2c":
		return e.B2C
	case "b2b":
		return e.B2B
	case "transaction_status":
		return e.TransactionStatus
	case "account_balance":
		return e.AccountBalance
	case "reversal":
		return e.Reversal
	case "qr_code":
		return e.QRCode
	case "ratiba":
		return e.Ratiba
	case "pull_transactions":
		return e.PullTransactions
	default:
		return ""
	}
}

// HTTPClientTimeout is HTTPTimeout as a duration.
func (c MpesaConfig) HTTPClientTimeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// IsProduction reports whether environment names the production profile.
func IsProduction(environment string) bool {
	env := strings.ToLower(strings.TrimSpace(environment))
	return env == "production" || env == "prod"
}

// WebhookConfig holds the shared secret used to verify provider callbacks.
type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}
