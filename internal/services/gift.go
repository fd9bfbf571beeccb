package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/giftjoy/giftjoy/internal/store"
)

// CreateGiftInput carries the user-supplied fields for a new gift.
// ImagePath and AudioPath may be local file paths (read and inlined as
// data URIs), http(s) URLs (kept as-is), or empty.
type CreateGiftInput struct {
	Occasion    string
	Recipient   string
	Sender      string
	Message     string
	Theme       string
	GiftType    string
	ImagePath   string
	AudioPath   string
	Color       string
	Stickers    []string
	EnableQuest bool
}

// GiftService implements gift-related use cases on top of a GiftStore.
type GiftService struct {
	store store.GiftStore
	log   logging.Logger
}

// NewGiftService creates a new GiftService instance.
func NewGiftService(s store.GiftStore, log logging.Logger) *GiftService {
	return &GiftService{store: s, log: log}
}

// resolveMedia turns a user-supplied media reference into a storable value.
// URLs pass through untouched; anything else is treated as a local file and
// inlined as a data URI.
func resolveMedia(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || dataurl.Is(path) {
		return path, nil
	}
	uri, err := dataurl.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("reading media file %s: %w", path, err)
	}
	return uri, nil
}

// Create assembles a gift record from input, fills defaults, validates it
// and persists it. Returns the stored record.
func (s *GiftService) Create(ctx context.Context, in CreateGiftInput) (*models.GiftRecord, error) {
	image, err := resolveMedia(in.ImagePath)
	if err != nil {
		return nil, err
	}
	audio, err := resolveMedia(in.AudioPath)
	if err != nil {
		return nil, err
	}

	gift := &models.GiftRecord{
		ID:          models.NewGiftID(),
		Occasion:    in.Occasion,
		Recipient:   in.Recipient,
		Sender:      in.Sender,
		Message:     in.Message,
		Theme:       in.Theme,
		GiftType:    in.GiftType,
		Image:       image,
		Audio:       audio,
		Color:       in.Color,
		Stickers:    in.Stickers,
		EnableQuest: in.EnableQuest,
	}
	gift.ApplyDefaults()

	if err := gift.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.SaveGift(ctx, gift); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "gift created", "id", gift.ID, "occasion", gift.Occasion)
	return gift, nil
}

// Get returns a single gift by id, or nil when it does not exist.
func (s *GiftService) Get(ctx context.Context, id string) (*models.GiftRecord, error) {
	return s.store.GetGift(ctx, id)
}

// List returns all gifts sorted newest first.
func (s *GiftService) List(ctx context.Context) ([]*models.GiftRecord, error) {
	gifts, err := s.store.GetAllGifts(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(gifts, func(i, j int) bool {
		return gifts[i].CreatedAt > gifts[j].CreatedAt
	})
	return gifts, nil
}

// Delete removes a gift by id. Removing a missing gift is not an error.
func (s *GiftService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteGift(ctx, id)
}

// Clear removes every stored gift.
func (s *GiftService) Clear(ctx context.Context) error {
	return s.store.ClearAllGifts(ctx)
}

// StorageInfo reports the capacity estimate of the active storage tier.
// ok is false when no estimate is available on this platform.
func (s *GiftService) StorageInfo(ctx context.Context) (*store.CapacityEstimate, bool) {
	return s.store.EstimateCapacity(ctx)
}
