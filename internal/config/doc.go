// Package config loads runtime configuration for the GiftJoy client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the durable gift database
//	-f string   path to the fallback key-value file
//	-r          enable the cloud tier
//	-b string   cloud bucket name
//	-e string   cloud base endpoint (S3-compatible services)
//	-g string   cloud region
//
// # JSON schema
//
//	{
//	  "database_path": "gifts.db",
//	  "fallback_path": "gifts_fallback.json",
//	  "fallback_quota_bytes": 5242880,
//	  "remote_enabled": true,
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "giftjoy",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "s3_access_key": "...",
//	  "s3_secret_key": "...",
//	  "session_token": "..."
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
