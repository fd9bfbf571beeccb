// Package fallback is the degraded-mode gift store: the same five-operation
// contract as the durable store, kept on a flat string-keyed JSON file with a
// hard capacity ceiling near 5MB.
//
// It is substituted by the orchestration layer only when the durable engine
// fails to open, never because a single write failed. There are no
// transactions and no secondary indexes; each operation is one synchronous
// read-modify-write of the whole namespace. Records are serialized as text
// including any embedded data URIs, so large images or audio exhaust the
// quota considerably sooner than in the durable store. Known limitation.
package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/giftjoy/giftjoy/internal/store"
)

// Adapter keeps the flat namespace in a single JSON file mapping keys to
// serialized records. Gifts live under keys "gift_<id>"; other prefixes are
// preserved untouched, since the namespace is shared by design.
type Adapter struct {
	path  string
	quota int64
	log   logging.Logger

	mu sync.Mutex
}

func New(path string, quota int64, log logging.Logger) *Adapter {
	if quota <= 0 {
		quota = common.FallbackQuotaBytes
	}
	return &Adapter{path: path, quota: quota, log: log}
}

func (a *Adapter) load() (map[string]string, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	kv := map[string]string{}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, err
	}
	return kv, nil
}

func (a *Adapter) flush(kv map[string]string) error {
	data, err := json.Marshal(kv)
	if err != nil {
		return err
	}
	if int64(len(data)) > a.quota {
		return fmt.Errorf("%w: %d bytes over %d limit", common.ErrQuotaExceeded, len(data), a.quota)
	}
	return os.WriteFile(a.path, data, 0o660)
}

func key(id string) string {
	if strings.HasPrefix(id, common.GiftKeyPrefix) {
		return id
	}
	return common.GiftKeyPrefix + id
}

// SaveGift stores the record as serialized text, embedded data URIs and all.
func (a *Adapter) SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error) {
	if err := gift.Validate(); err != nil {
		return "", err
	}

	value, err := json.Marshal(gift)
	if err != nil {
		return "", fmt.Errorf("%w: marshal gift: %v", common.ErrWriteFailed, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	kv[key(gift.ID)] = string(value)

	if err := a.flush(kv); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrWriteFailed, err)
	}
	return gift.ID, nil
}

// GetGift returns (nil, nil) when the id is absent.
func (a *Adapter) GetGift(ctx context.Context, id string) (*models.GiftRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
	}

	value, ok := kv[key(id)]
	if !ok {
		return nil, nil
	}

	var g models.GiftRecord
	if err := json.Unmarshal([]byte(value), &g); err != nil {
		return nil, fmt.Errorf("%w: unmarshal gift: %v", common.ErrReadFailed, err)
	}
	return &g, nil
}

// GetAllGifts scans every key and keeps those under the gift prefix.
func (a *Adapter) GetAllGifts(ctx context.Context) ([]*models.GiftRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
	}

	var result []*models.GiftRecord
	for k, value := range kv {
		if !strings.HasPrefix(k, common.GiftKeyPrefix) {
			continue
		}
		var g models.GiftRecord
		if err := json.Unmarshal([]byte(value), &g); err != nil {
			a.log.Warn(ctx, "skipping unreadable fallback record", "key", k, "error", err)
			continue
		}
		result = append(result, &g)
	}
	return result, nil
}

// DeleteGift removes the key; absent ids succeed silently.
func (a *Adapter) DeleteGift(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	if _, ok := kv[key(id)]; !ok {
		return nil
	}
	delete(kv, key(id))

	if err := a.flush(kv); err != nil {
		return fmt.Errorf("%w: %w", common.ErrWriteFailed, err)
	}
	return nil
}

// ClearAllGifts removes every gift-prefixed key, leaving unrelated keys alone.
func (a *Adapter) ClearAllGifts(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	for k := range kv {
		if strings.HasPrefix(k, common.GiftKeyPrefix) {
			delete(kv, k)
		}
	}

	if err := a.flush(kv); err != nil {
		return fmt.Errorf("%w: %w", common.ErrWriteFailed, err)
	}
	return nil
}

// EstimateCapacity reports usage against the adapter's fixed ceiling.
func (a *Adapter) EstimateCapacity(ctx context.Context) (*store.CapacityEstimate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kv, err := a.load()
	if err != nil {
		return nil, false
	}

	data, err := json.Marshal(kv)
	if err != nil {
		return nil, false
	}

	used := int64(len(data))
	est := &store.CapacityEstimate{
		UsedBytes:      used,
		QuotaBytes:     a.quota,
		AvailableBytes: a.quota - used,
		PercentUsed:    float64(used) / float64(a.quota) * 100,
	}
	return est, true
}

var _ store.GiftStore = (*Adapter)(nil)
