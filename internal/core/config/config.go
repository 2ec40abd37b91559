package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// ErrNoProviders is returned when no shipping provider API key is configured.
var ErrNoProviders = errors.New("missing required configuration: at least one provider API key")

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Providers holds the shipping provider credentials.
	Providers ProvidersConfig `mapstructure:",squash"`
	// Sender is the default ship-from address.
	Sender SenderConfig `mapstructure:",squash"`
	// Labels holds label purchase and storage settings.
	Labels LabelsConfig `mapstructure:",squash"`
	// Redis holds the optional cache connection.
	Redis RedisConfig `mapstructure:",squash"`
	// Proxy holds the optional outbound proxy for provider calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// ProvidersConfig holds API keys and endpoints for the rate providers.
// A provider is enabled when its API key is set.
type ProvidersConfig struct {
	ShippoAPIKey     string `mapstructure:"SHIPPO_API_KEY"`
	ShippoURL        string `mapstructure:"SHIPPO_URL" default:"https://api.goshippo.com"`
	EasyPostAPIKey   string `mapstructure:"EASYPOST_API_KEY"`
	EasyPostURL      string `mapstructure:"EASYPOST_URL" default:"https://api.easypost.com/v2"`
	ShipEngineAPIKey string `mapstructure:"SHIPENGINE_API_KEY"`
	ShipEngineURL    string `mapstructure:"SHIPENGINE_URL" default:"https://api.shipengine.com/v1"`
	EasyshipAPIKey   string `mapstructure:"EASYSHIP_API_KEY"`
	EasyshipURL      string `mapstructure:"EASYSHIP_URL" default:"https://public-api.easyship.com/2024-09"`

	// TimeoutSeconds bounds every provider call.
	TimeoutSeconds int `mapstructure:"PROVIDER_TIMEOUT" default:"8"`
	// RateLimit is the number of requests per second allowed per provider.
	RateLimit float64 `mapstructure:"PROVIDER_RATE_LIMIT" default:"5"`
}

// Timeout returns the provider timeout as a duration.
func (p ProvidersConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// AnyConfigured reports whether at least one provider has an API key.
func (p ProvidersConfig) AnyConfigured() bool {
	return p.ShippoAPIKey != "" || p.EasyPostAPIKey != "" || p.ShipEngineAPIKey != "" || p.EasyshipAPIKey != ""
}

// SenderConfig is the default ship-from address used when a request omits one.
type SenderConfig struct {
	Name    string `mapstructure:"SENDER_NAME" default:"JunQ Trading Technology Inc."`
	Street  string `mapstructure:"SENDER_STREET" required:"true" default:"2755 E Philadelphia St"`
	City    string `mapstructure:"SENDER_CITY" required:"true" default:"Ontario"`
	State   string `mapstructure:"SENDER_STATE" required:"true" default:"CA"`
	Zip     string `mapstructure:"SENDER_ZIP" required:"true" default:"91761"`
	Country string `mapstructure:"SENDER_COUNTRY" default:"US"`
	Phone   string `mapstructure:"SENDER_PHONE" default:"+19178650776"`
	Email   string `mapstructure:"SENDER_EMAIL" default:"gao@junqmarket.com"`
}

// LabelsConfig holds purchase, Drive upload and history settings.
type LabelsConfig struct {
	// DefaultFormat is the label file type used when a purchase omits one.
	DefaultFormat string `mapstructure:"DEFAULT_LABEL_FORMAT" default:"PDF"`
	// DriveCredentialsJSON is the Google service account key. Upload is disabled when empty.
	DriveCredentialsJSON string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	// DriveFolderID is the parent folder for uploaded labels.
	DriveFolderID string `mapstructure:"GOOGLE_DRIVE_FOLDER_ID"`
	// HistoryFile is the JSON file holding purchased label records.
	HistoryFile string `mapstructure:"HISTORY_FILE" required:"true" default:"storage/labels.json"`
	// HistoryLimit caps the number of records kept.
	HistoryLimit int `mapstructure:"HISTORY_LIMIT" default:"1000"`
}

// RedisConfig holds the cache connection. Caching and drafts are disabled when URL is empty.
type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
	// RateCacheTTLSeconds is how long identical quote requests are served from cache.
	RateCacheTTLSeconds int `mapstructure:"RATE_CACHE_TTL" default:"300"`
	// DraftTTLSeconds is how long a saved form draft is kept.
	DraftTTLSeconds int `mapstructure:"DRAFT_TTL" default:"604800"`
}

// ProxyConfig configures an outbound HTTP proxy for provider calls.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Host     string `mapstructure:"PROXY_HOST"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if !config.Providers.AnyConfigured() {
		return nil, ErrNoProviders
	}

	return &config, nil
}

// processTags binds every tagged field to its env key and registers defaults in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
