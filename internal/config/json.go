package config

import (
	"encoding/json"
	"os"

	"github.com/giftjoy/giftjoy/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Parsed values
// are copied into the runtime Config.
type JsonConfig struct {
	DatabasePath       *string `json:"database_path"`
	FallbackPath       *string `json:"fallback_path"`
	FallbackQuotaBytes *int64  `json:"fallback_quota_bytes"`
	RemoteEnabled      *bool   `json:"remote_enabled"`
	S3Region           *string `json:"s3_region"`
	S3Bucket           *string `json:"s3_bucket"`
	S3BaseEndpoint     *string `json:"s3_base_endpoint"`
	S3AccessKey        *string `json:"s3_access_key"`
	S3SecretKey        *string `json:"s3_secret_key"`
	SessionToken       *string `json:"session_token"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (see
// flagx.JsonConfigFlags); when absent, no JSON is loaded. Only fields
// present in the file override the defaults. Panics on read or unmarshal
// errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.FallbackPath != nil {
		cfg.FallbackPath = *jc.FallbackPath
	}
	if jc.FallbackQuotaBytes != nil {
		cfg.FallbackQuotaBytes = *jc.FallbackQuotaBytes
	}
	if jc.RemoteEnabled != nil {
		cfg.RemoteEnabled = *jc.RemoteEnabled
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
	if jc.S3AccessKey != nil {
		cfg.S3AccessKey = *jc.S3AccessKey
	}
	if jc.S3SecretKey != nil {
		cfg.S3SecretKey = *jc.S3SecretKey
	}
	if jc.SessionToken != nil {
		cfg.SessionToken = *jc.SessionToken
	}
}
