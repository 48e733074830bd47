package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL", "FLASK_BACKEND_URL", "PAYPAL_CLIENT_ID", "PAYPAL_CLIENT_SECRET", "MAILCHIMP_API_KEY", "MAILCHIMP_DATA_CENTER", "MAILCHIMP_LIST_ID"} {
		t.Setenv(key, "")
	}

	cfg := FromViper(viper.New())

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, DefaultPayPalAPIURL, cfg.PayPal.APIURL)
	assert.False(t, cfg.PayPal.Configured())
	assert.False(t, cfg.Mailchimp.Configured())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg := FromViper(viper.New())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)
}

func TestBackendURLFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "public url wins",
			env:  map[string]string{"NEXT_PUBLIC_BACKEND_URL": "http://a", "BACKEND_URL": "http://b", "FLASK_BACKEND_URL": "http://c"},
			want: "http://a",
		},
		{
			name: "backend url second",
			env:  map[string]string{"NEXT_PUBLIC_BACKEND_URL": "", "BACKEND_URL": "http://b/", "FLASK_BACKEND_URL": "http://c"},
			want: "http://b",
		},
		{
			name: "flask url last",
			env:  map[string]string{"NEXT_PUBLIC_BACKEND_URL": "", "BACKEND_URL": "", "FLASK_BACKEND_URL": "http://c"},
			want: "http://c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, FromViper(viper.New()).BackendURL)
		})
	}
}

func TestMailchimpDataCenterFromKey(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "abc123-us21")
	t.Setenv("MAILCHIMP_LIST_ID", "list")
	t.Setenv("MAILCHIMP_DATA_CENTER", "")

	cfg := FromViper(viper.New())

	assert.Equal(t, "us21", cfg.Mailchimp.DataCenter)
	assert.True(t, cfg.Mailchimp.Configured())
}
