package configs

import (
	"fmt"
	"strings"

	"mpesa-gateway/internal/shared/validators"

	"github.com/spf13/viper"
)

// envAliases are extra environment variable names accepted for a key, checked in order
// after the automatic KEY_WITH_UNDERSCORES name.
var envAliases = map[string][]string{
	"server.port":                        {"PORT"},
	"server.host":                        {"HOST"},
	"storage.database_url":               {"DATABASE_URL"},
	"mpesa.environment":                  {"MPESA_ENV"},
	"mpesa.production.base_url":          {"MPESA_PROD_BASE_URL"},
	"mpesa.production.consumer_key":      {"MPESA_PROD_CONSUMER_KEY"},
	"mpesa.production.consumer_secret":   {"MPESA_PROD_CONSUMER_SECRET"},
	"mpesa.endpoints.stk_push":           {"MPESA_STK_PUSH_ENDPOINT"},
	"mpesa.endpoints.b2c":                {"MPESA_B2C_ENDPOINT"},
	"mpesa.endpoints.b2b":                {"MPESA_B2B_ENDPOINT"},
	"mpesa.endpoints.transaction_status": {"MPESA_TRANSACTION_STATUS_ENDPOINT"},
	"mpesa.endpoints.account_balance":    {"MPESA_ACCOUNT_BALANCE_ENDPOINT"},
	"mpesa.endpoints.reversal":           {"MPESA_REVERSAL_ENDPOINT"},
	"mpesa.endpoints.qr_code":            {"MPESA_QR_CODE_ENDPOINT"},
	"mpesa.endpoints.ratiba":             {"MPESA_RATIBA_ENDPOINT"},
	"mpesa.endpoints.pull_transactions":  {"MPESA_PULL_TRANSACTIONS_ENDPOINT"},
}

// defaults also registers every key with viper, which AutomaticEnv needs to
// apply environment overrides during Unmarshal.
var defaults = map[string]any{
	"server.host":                "",
	"server.port":                3000,
	"server.read_header_timeout": 5,
	"server.read_timeout":        15,
	"server.write_timeout":       60,
	"server.idle_timeout":        60,
	"log.level":                  "info",
	"storage.driver":             StorageDriverPostgres,
	"storage.database_url":       "",
	"storage.max_conns":          10,
	"storage.max_conn_idle_time": 300,
	"storage.root_dir":           "",
	"mpesa.environment":          "sandbox",
	"mpesa.oauth_endpoint":       "/oauth/v1/generate?grant_type=client_credentials",
	"mpesa.http_timeout":         30,
	"mpesa.base_url":             "",
	"mpesa.consumer_key":         "",
	"mpesa.consumer_secret":      "",
	"webhook.secret":             "",
}

var profileKeys = []string{"base_url", "consumer_key", "consumer_secret"}

var endpointKeys = []string{
	"stk_push", "b2c", "b2b", "transaction_status", "account_balance",
	"reversal", "qr_code", "ratiba", "pull_transactions",
}

// LoadConfig reads configuration from file and the environment and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	registerKeys(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

func registerKeys(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, profile := range []string{"sandbox", "production"} {
		for _, key := range profileKeys {
			v.SetDefault("mpesa."+profile+"."+key, "")
		}
		for _, key := range endpointKeys {
			v.SetDefault("mpesa."+profile+".endpoints."+key, "")
		}
	}
	for _, key := range endpointKeys {
		v.SetDefault("mpesa.endpoints."+key, "")
	}

	for key, aliases := range envAliases {
		// BindEnv with explicit names replaces the automatic one, so it is listed first.
		names := append([]string{strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "required_if":
		msg = fmt.Sprintf("%s (required when %s)", field, e.Param())
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
