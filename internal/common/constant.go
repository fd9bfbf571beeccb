package common

// GiftKeyPrefix is the key prefix used by the fallback adapter's flat
// namespace. Unrelated data must not use this prefix.
const GiftKeyPrefix = "gift_"

// MaxStickers is the maximum number of stickers a gift may carry.
const MaxStickers = 5

// FallbackQuotaBytes is the capacity ceiling of the fallback adapter,
// mirroring the ~5MB limit of flat key-value browser storage.
const FallbackQuotaBytes = 5 << 20
