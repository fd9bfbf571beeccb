// Package models defines the gift record persisted by every storage tier.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/google/uuid"
)

// GiftRecord is the sole persisted entity: one created greeting with its
// presentation selectors and optional media payloads.
//
// Image and Audio travel in memory as embedded data URIs (or as plain URLs
// once uploaded to the remote tier). The durable store rewrites data URIs to
// binary objects before persisting and reconstructs them on read, so
// consumers always see this one shape.
type GiftRecord struct {
	// ID is globally unique, assigned once at creation, never changed.
	ID string `json:"id"`

	Occasion  string `json:"occasion"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`

	// Theme and GiftType are presentation selectors, opaque to the store.
	Theme    string `json:"theme"`
	GiftType string `json:"giftType"`

	Image string `json:"image,omitempty"`
	Audio string `json:"audio,omitempty"`

	Color    string   `json:"color"`
	Stickers []string `json:"stickers"`

	// EnableQuest gates the reveal flow behind the puzzle mini-games.
	EnableQuest bool `json:"enableQuest"`

	// CreatedAt is an ISO 8601 timestamp set at creation time.
	CreatedAt string `json:"createdAt"`

	// UserID and UpdatedAt are set by the remote tier on cloud saves.
	UserID    string `json:"userId,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewGiftID builds a gift identifier in the form gift_<millis>_<suffix>.
func NewGiftID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s%d_%s", common.GiftKeyPrefix, time.Now().UnixMilli(), suffix)
}

// Now returns the current time formatted the way CreatedAt/UpdatedAt expect.
func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Validate checks the invariants the store refuses to persist without.
func (g *GiftRecord) Validate() error {
	if g.ID == "" {
		return common.ErrMissingID
	}
	if len(g.Stickers) > common.MaxStickers {
		return fmt.Errorf("%w: %d > %d", common.ErrTooManyStickers, len(g.Stickers), common.MaxStickers)
	}
	return nil
}

// ApplyDefaults fills empty free-text fields the way the card editor does.
func (g *GiftRecord) ApplyDefaults() {
	if g.Recipient == "" {
		g.Recipient = "Dear Friend"
	}
	if g.Sender == "" {
		g.Sender = "Anonymous"
	}
	if g.Message == "" {
		g.Message = DefaultMessage(g.Occasion)
	}
	if g.Theme == "" {
		g.Theme = "classic"
	}
	if g.GiftType == "" {
		g.GiftType = "gift-box"
	}
	if g.CreatedAt == "" {
		g.CreatedAt = Now()
	}
}

// Clone returns a deep copy; tiers that rewrite media fields work on copies
// so a failed remote save can still persist the caller's original record.
func (g *GiftRecord) Clone() *GiftRecord {
	c := *g
	if g.Stickers != nil {
		c.Stickers = append([]string(nil), g.Stickers...)
	}
	return &c
}
