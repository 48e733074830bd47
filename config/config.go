package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBackendURL     = "http://localhost:5000"
	DefaultFrontendOrigin = "http://localhost:3000"
	DefaultPayPalAPIURL   = "https://api-m.sandbox.paypal.com"
	DefaultPayoneerAPIURL = "https://api.sandbox.payoneer.com"
)

// Config holds application configuration
type Config struct {
	ServiceName    string
	Environment    string
	Port           string
	OTELEndpoint   string
	BackendURL     string
	FrontendOrigin string
	// UpstreamTimeout bounds every outbound call; zero means no client timeout.
	UpstreamTimeout time.Duration

	CORSAllowedOrigins []string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// are believed. Empty means the socket address is the client.
	TrustedProxies     []string
	RateLimitPerMinute int
	RateLimitBurst     int

	PayPal    PayPalConfig
	Payoneer  PayoneerConfig
	Mailchimp MailchimpConfig
}

// PayPalConfig holds the direct Orders API v2 credentials.
type PayPalConfig struct {
	ClientID       string
	ClientSecret   string
	APIURL         string
	PublicClientID string
}

// Configured reports whether both OAuth2 client credentials are set.
func (c PayPalConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type PayoneerConfig struct {
	ProgramID string
	Username  string
	Password  string
	APIURL    string
}

func (c PayoneerConfig) Configured() bool {
	return c.ProgramID != "" && c.Username != "" && c.Password != ""
}

type MailchimpConfig struct {
	APIKey     string
	ListID     string
	DataCenter string
}

func (c MailchimpConfig) Configured() bool {
	return c.APIKey != "" && c.ListID != "" && c.DataCenter != ""
}

// Load loads configuration from a local .env file (if any), an optional
// config.yaml and environment variables. Environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	return FromViper(v)
}

// FromViper binds every setting on v and builds a Config from it.
func FromViper(v *viper.Viper) *Config {
	v.SetDefault("service_name", "checkout-gateway")
	v.SetDefault("environment", "development")
	v.SetDefault("port", "8081")
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("backend_url", DefaultBackendURL)
	v.SetDefault("frontend_origin", DefaultFrontendOrigin)
	v.SetDefault("upstream_timeout", "30s")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("trusted_proxies", "")
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("paypal_api_url", DefaultPayPalAPIURL)
	v.SetDefault("payoneer_api_url", DefaultPayoneerAPIURL)

	_ = v.BindEnv("service_name", "SERVICE_NAME")
	_ = v.BindEnv("environment", "ENVIRONMENT")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	// One fallback chain for the order backend, first non-empty wins.
	_ = v.BindEnv("backend_url", "NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL", "FLASK_BACKEND_URL")
	_ = v.BindEnv("frontend_origin", "FRONTEND_ORIGIN")
	_ = v.BindEnv("upstream_timeout", "UPSTREAM_TIMEOUT")
	_ = v.BindEnv("cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("trusted_proxies", "TRUSTED_PROXIES")
	_ = v.BindEnv("rate_limit_per_minute", "RATE_LIMIT_PER_MINUTE")
	_ = v.BindEnv("rate_limit_burst", "RATE_LIMIT_BURST")
	_ = v.BindEnv("paypal_client_id", "PAYPAL_CLIENT_ID")
	_ = v.BindEnv("paypal_client_secret", "PAYPAL_CLIENT_SECRET")
	_ = v.BindEnv("paypal_api_url", "PAYPAL_API_URL")
	_ = v.BindEnv("paypal_public_client_id", "NEXT_PUBLIC_PAYPAL_CLIENT_ID")
	_ = v.BindEnv("payoneer_program_id", "PAYONEER_PROGRAM_ID")
	_ = v.BindEnv("payoneer_username", "PAYONEER_USERNAME")
	_ = v.BindEnv("payoneer_password", "PAYONEER_PASSWORD")
	_ = v.BindEnv("payoneer_api_url", "PAYONEER_API_URL")
	_ = v.BindEnv("mailchimp_api_key", "MAILCHIMP_API_KEY")
	_ = v.BindEnv("mailchimp_list_id", "MAILCHIMP_LIST_ID")
	_ = v.BindEnv("mailchimp_data_center", "MAILCHIMP_DATA_CENTER")

	mailchimpKey := v.GetString("mailchimp_api_key")
	dataCenter := v.GetString("mailchimp_data_center")
	if dataCenter == "" {
		// Mailchimp keys end in "-<dc>", e.g. "abc123-us21".
		if _, dc, ok := strings.Cut(mailchimpKey, "-"); ok {
			dataCenter = dc
		}
	}

	return &Config{
		ServiceName:        v.GetString("service_name"),
		Environment:        v.GetString("environment"),
		Port:               v.GetString("port"),
		OTELEndpoint:       v.GetString("otel_endpoint"),
		BackendURL:         strings.TrimRight(v.GetString("backend_url"), "/"),
		FrontendOrigin:     strings.TrimRight(v.GetString("frontend_origin"), "/"),
		UpstreamTimeout:    v.GetDuration("upstream_timeout"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		TrustedProxies:     splitList(v.GetString("trusted_proxies")),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
		PayPal: PayPalConfig{
			ClientID:       v.GetString("paypal_client_id"),
			ClientSecret:   v.GetString("paypal_client_secret"),
			APIURL:         strings.TrimRight(v.GetString("paypal_api_url"), "/"),
			PublicClientID: v.GetString("paypal_public_client_id"),
		},
		Payoneer: PayoneerConfig{
			ProgramID: v.GetString("payoneer_program_id"),
			Username:  v.GetString("payoneer_username"),
			Password:  v.GetString("payoneer_password"),
			APIURL:    strings.TrimRight(v.GetString("payoneer_api_url"), "/"),
		},
		Mailchimp: MailchimpConfig{
			APIKey:     mailchimpKey,
			ListID:     v.GetString("mailchimp_list_id"),
			DataCenter: dataCenter,
		},
	}
}

// IsProduction checks if the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
