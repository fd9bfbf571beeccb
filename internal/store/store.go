// Package store defines the capability contract every gift storage tier
// implements. The durable SQLite store, the flat key-value fallback adapter
// and the waterfall orchestrator all expose this one interface, so callers
// never care which tier is active.
package store

import (
	"context"

	"github.com/giftjoy/giftjoy/internal/models"
)

// GiftStore is the five-operation persistence contract plus capacity
// introspection.
//
// Semantics shared by all implementations:
//   - SaveGift has put semantics: saving an existing id replaces the prior
//     record entirely (last-writer-wins).
//   - GetGift returns (nil, nil) when the id is absent; absence is not an
//     error.
//   - GetAllGifts gives no ordering guarantee.
//   - DeleteGift is idempotent: deleting an absent id succeeds.
//   - EstimateCapacity is best-effort and never fails; ok=false means the
//     environment exposes no usable quota information.
type GiftStore interface {
	SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error)
	GetGift(ctx context.Context, id string) (*models.GiftRecord, error)
	GetAllGifts(ctx context.Context) ([]*models.GiftRecord, error)
	DeleteGift(ctx context.Context, id string) error
	ClearAllGifts(ctx context.Context) error
	EstimateCapacity(ctx context.Context) (*CapacityEstimate, bool)
}

// CapacityEstimate reports storage usage against the tier's quota.
type CapacityEstimate struct {
	UsedBytes      int64
	QuotaBytes     int64
	PercentUsed    float64
	AvailableBytes int64
}
