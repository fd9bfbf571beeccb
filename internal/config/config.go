package config

import "github.com/giftjoy/giftjoy/internal/common"

// Config holds runtime settings for the GiftJoy client.
//
// Fields:
//   - DatabasePath / FallbackPath: locations of the durable database and the
//     flat key-value fallback file.
//   - FallbackQuotaBytes: capacity ceiling of the fallback adapter.
//   - RemoteEnabled + S3*: cloud tier settings; the gateway is only built
//     when RemoteEnabled is true and bucket/region are set.
//   - SessionToken: initial cloud session token (usually set at runtime via
//     the login command instead).
type Config struct {
	DatabasePath       string
	FallbackPath       string
	FallbackQuotaBytes int64

	RemoteEnabled  bool
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	SessionToken   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "gifts.db"
	c.FallbackPath = "gifts_fallback.json"
	c.FallbackQuotaBytes = common.FallbackQuotaBytes
	c.RemoteEnabled = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
