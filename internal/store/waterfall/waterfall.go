// Package waterfall presents one unified gift store while internally
// selecting among three tiers: the remote gateway when it reports itself
// initialized, the durable local store, and the flat key-value fallback
// adapter when the durable engine cannot open.
//
// Reads are opportunistic: try the best available tier, accept the first
// hit. Writes are preference-ordered with fallthrough only on error, never
// on partial success. Remote failures are always absorbed here; callers
// only ever see local-tier errors.
package waterfall

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/giftjoy/giftjoy/internal/remote"
	"github.com/giftjoy/giftjoy/internal/store"
	"golang.org/x/sync/singleflight"
)

// State tracks the lifecycle of the local tier.
//
// Transitions: Uninitialized -> Opening -> Ready on success, or
// Uninitialized -> Opening -> Failed -> UsingFallback on open failure.
// UsingFallback is terminal for the process lifetime; the primary engine is
// not retried once degraded.
type State int32

const (
	StateUninitialized State = iota
	StateOpening
	StateReady
	StateFailed
	StateUsingFallback
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpening:
		return "opening"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateUsingFallback:
		return "using-fallback"
	default:
		return "unknown"
	}
}

// DurableStore is the primary tier: a gift store backed by an engine that
// must be opened before use.
type DurableStore interface {
	store.GiftStore
	Open(ctx context.Context) error
}

// Store is the orchestration layer. Construct with New; the zero value is
// not usable.
type Store struct {
	local    DurableStore
	fallback store.GiftStore
	gateway  remote.Gateway // nil when no cloud tier is configured
	log      logging.Logger

	state atomic.Int32
	group singleflight.Group

	mu     sync.RWMutex
	active store.GiftStore
}

func New(local DurableStore, fallback store.GiftStore, gateway remote.Gateway, log logging.Logger) *Store {
	return &Store{local: local, fallback: fallback, gateway: gateway, log: log}
}

// State returns the lifecycle state of the local tier.
func (s *Store) State() State {
	return State(s.state.Load())
}

// Open drives the local tier's state machine. Idempotent; concurrent calls
// await the same in-flight open. Never returns an error: an open failure is
// resolved by substituting the fallback adapter, not surfaced.
func (s *Store) Open(ctx context.Context) error {
	if s.State() == StateReady || s.State() == StateUsingFallback {
		return nil
	}

	_, _, _ = s.group.Do("open", func() (any, error) {
		if st := s.State(); st == StateReady || st == StateUsingFallback {
			return nil, nil
		}

		s.state.Store(int32(StateOpening))

		if err := s.local.Open(ctx); err != nil {
			s.state.Store(int32(StateFailed))
			s.log.Error(ctx, "durable store failed to open, switching to fallback storage",
				"error", err)

			s.mu.Lock()
			s.active = s.fallback
			s.mu.Unlock()
			s.state.Store(int32(StateUsingFallback))
			return nil, nil
		}

		s.mu.Lock()
		s.active = s.local
		s.mu.Unlock()
		s.state.Store(int32(StateReady))
		return nil, nil
	})

	return nil
}

// activeStore returns the local-tier store, opening it on first use.
func (s *Store) activeStore(ctx context.Context) store.GiftStore {
	_ = s.Open(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Store) remoteReady() bool {
	return s.gateway != nil && s.gateway.IsInitialized()
}

// saveRemote uploads media payloads, swaps them for their download URLs and
// writes the cloud document. Works on a copy so a failure here leaves the
// caller's record intact for the local save.
func (s *Store) saveRemote(ctx context.Context, gift *models.GiftRecord) (string, error) {
	doc := gift.Clone()

	if dataurl.Is(doc.Image) {
		url, err := s.gateway.UploadImage(ctx, doc.Image, doc.ID)
		if err != nil {
			return "", err
		}
		doc.Image = url
	}

	if dataurl.Is(doc.Audio) {
		url, err := s.gateway.UploadAudio(ctx, doc.Audio, doc.ID)
		if err != nil {
			return "", err
		}
		doc.Audio = url
	}

	return s.gateway.SaveGift(ctx, doc)
}

// SaveGift prefers the cloud tier and falls through to local storage on any
// remote failure. Every call either returns a valid id or an error from the
// local tier; remote errors never propagate.
func (s *Store) SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error) {
	if s.remoteReady() {
		id, err := s.saveRemote(ctx, gift)
		if err == nil {
			return id, nil
		}
		s.log.Warn(ctx, "cloud save failed, using local storage",
			"id", gift.ID, "error", err)
	}

	return s.activeStore(ctx).SaveGift(ctx, gift)
}

// GetGift checks the cloud tier first when available; a remote miss or
// failure falls through to local storage.
func (s *Store) GetGift(ctx context.Context, id string) (*models.GiftRecord, error) {
	if s.remoteReady() {
		gift, err := s.gateway.GetGift(ctx, id)
		if err == nil && gift != nil {
			return gift, nil
		}
		if err != nil {
			s.log.Warn(ctx, "cloud load failed, checking local storage",
				"id", id, "error", err)
		} else {
			s.log.Debug(ctx, "gift not found in cloud, checking local storage", "id", id)
		}
	}

	return s.activeStore(ctx).GetGift(ctx, id)
}

// GetAllGifts lists the local tier only; the cloud surface has no listing
// operation.
func (s *Store) GetAllGifts(ctx context.Context) ([]*models.GiftRecord, error) {
	return s.activeStore(ctx).GetAllGifts(ctx)
}

// DeleteGift removes from the local tier.
func (s *Store) DeleteGift(ctx context.Context, id string) error {
	return s.activeStore(ctx).DeleteGift(ctx, id)
}

// ClearAllGifts empties the local tier.
func (s *Store) ClearAllGifts(ctx context.Context) error {
	return s.activeStore(ctx).ClearAllGifts(ctx)
}

// EstimateCapacity introspects whichever local tier is active.
func (s *Store) EstimateCapacity(ctx context.Context) (*store.CapacityEstimate, bool) {
	return s.activeStore(ctx).EstimateCapacity(ctx)
}

var _ store.GiftStore = (*Store)(nil)
