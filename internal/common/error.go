// Package common defines shared constants and sentinel errors used across
// GiftJoy storage tiers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrStoreUnavailable means the durable storage engine could not be
	// opened at all (permission, unsupported environment, corruption).
	// The orchestration layer resolves it by substituting the fallback
	// adapter for the rest of the process lifetime.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWriteFailed means a save/delete/clear operation aborted. It is
	// surfaced to the caller and never retried automatically.
	ErrWriteFailed = errors.New("write failed")

	// ErrReadFailed means a get/list operation aborted. An absent record
	// is a successful nil result, not this error.
	ErrReadFailed = errors.New("read failed")

	// ErrQuotaExceeded is the cause attached to writes rejected by the
	// fallback adapter's capacity ceiling.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrRemoteUnavailable marks remote gateway failures. The waterfall
	// absorbs it internally; it never reaches callers.
	ErrRemoteUnavailable = errors.New("remote gateway unavailable")

	// ErrTooManyStickers rejects records exceeding the sticker limit.
	ErrTooManyStickers = errors.New("too many stickers")

	// ErrMissingID rejects records without an identifier.
	ErrMissingID = errors.New("missing gift id")
)
