package services

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/giftjoy/giftjoy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	gifts   map[string]*models.GiftRecord
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{gifts: make(map[string]*models.GiftRecord)}
}

func (m *memStore) SaveGift(_ context.Context, g *models.GiftRecord) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.gifts[g.ID] = g.Clone()
	return g.ID, nil
}

func (m *memStore) GetGift(_ context.Context, id string) (*models.GiftRecord, error) {
	g, ok := m.gifts[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

func (m *memStore) GetAllGifts(_ context.Context) ([]*models.GiftRecord, error) {
	out := make([]*models.GiftRecord, 0, len(m.gifts))
	for _, g := range m.gifts {
		out = append(out, g.Clone())
	}
	return out, nil
}

func (m *memStore) DeleteGift(_ context.Context, id string) error {
	delete(m.gifts, id)
	return nil
}

func (m *memStore) ClearAllGifts(_ context.Context) error {
	m.gifts = make(map[string]*models.GiftRecord)
	return nil
}

func (m *memStore) EstimateCapacity(_ context.Context) (*store.CapacityEstimate, bool) {
	return &store.CapacityEstimate{UsedBytes: 100, QuotaBytes: 1000, PercentUsed: 10, AvailableBytes: 900}, true
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupService() (*GiftService, *memStore) {
	ms := newMemStore()
	return NewGiftService(ms, testLogger()), ms
}

func TestCreate_FillsDefaultsAndPersists(t *testing.T) {
	svc, ms := setupService()

	gift, err := svc.Create(context.Background(), CreateGiftInput{Occasion: models.OccasionBirthday})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gift.ID, common.GiftKeyPrefix))
	assert.Equal(t, "Dear Friend", gift.Recipient)
	assert.Equal(t, "Anonymous", gift.Sender)
	assert.NotEmpty(t, gift.Message)
	assert.NotEmpty(t, gift.CreatedAt)

	stored, err := ms.GetGift(context.Background(), gift.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, gift.ID, stored.ID)
}

func TestCreate_InlinesLocalImageFile(t *testing.T) {
	svc, ms := setupService()

	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	gift, err := svc.Create(context.Background(), CreateGiftInput{
		Occasion:  models.OccasionBirthday,
		ImagePath: path,
	})
	require.NoError(t, err)

	stored, err := ms.GetGift(context.Background(), gift.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Image, "data:image/jpeg;base64,"))
	assert.Contains(t, stored.Image, base64.StdEncoding.EncodeToString(raw))
}

func TestCreate_KeepsRemoteURL(t *testing.T) {
	svc, _ := setupService()

	gift, err := svc.Create(context.Background(), CreateGiftInput{
		Occasion:  models.OccasionThankYou,
		ImagePath: "https://example.com/pic.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/pic.png", gift.Image)
}

func TestCreate_MissingMediaFile(t *testing.T) {
	svc, _ := setupService()

	_, err := svc.Create(context.Background(), CreateGiftInput{
		Occasion:  models.OccasionBirthday,
		ImagePath: filepath.Join(t.TempDir(), "nope.png"),
	})
	assert.Error(t, err)
}

func TestCreate_TooManyStickers(t *testing.T) {
	svc, _ := setupService()

	_, err := svc.Create(context.Background(), CreateGiftInput{
		Occasion: models.OccasionBirthday,
		Stickers: []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.ErrorIs(t, err, common.ErrTooManyStickers)
}

func TestList_SortedNewestFirst(t *testing.T) {
	svc, ms := setupService()
	ctx := context.Background()

	ms.gifts["gift_1_a"] = &models.GiftRecord{ID: "gift_1_a", CreatedAt: "2024-01-01T00:00:00.000Z"}
	ms.gifts["gift_2_b"] = &models.GiftRecord{ID: "gift_2_b", CreatedAt: "2024-03-01T00:00:00.000Z"}
	ms.gifts["gift_3_c"] = &models.GiftRecord{ID: "gift_3_c", CreatedAt: "2024-02-01T00:00:00.000Z"}

	gifts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 3)
	assert.Equal(t, "gift_2_b", gifts[0].ID)
	assert.Equal(t, "gift_3_c", gifts[1].ID)
	assert.Equal(t, "gift_1_a", gifts[2].ID)
}

func TestDeleteAndClear(t *testing.T) {
	svc, ms := setupService()
	ctx := context.Background()

	g1, err := svc.Create(ctx, CreateGiftInput{Occasion: models.OccasionBirthday})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateGiftInput{Occasion: models.OccasionValentine})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, g1.ID))
	assert.Len(t, ms.gifts, 1)

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, ms.gifts)
}

func TestStorageInfo(t *testing.T) {
	svc, _ := setupService()

	est, ok := svc.StorageInfo(context.Background())
	require.True(t, ok)
	assert.Equal(t, int64(1000), est.QuotaBytes)
	assert.InDelta(t, 10.0, est.PercentUsed, 0.001)
}
