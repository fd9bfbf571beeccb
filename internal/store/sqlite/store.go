// Package sqlite implements the durable gift store: a transactional,
// versioned on-device database keyed by gift id, with secondary indexes on
// creation time and occasion, binary media payloads stored as blobs, and
// best-effort capacity introspection.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/dbx"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/giftjoy/giftjoy/internal/store"
	"github.com/giftjoy/giftjoy/internal/store/sqlite/migrations"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/singleflight"

	_ "modernc.org/sqlite"
)

// Store is the Local Durable Store. The zero value is not usable; construct
// with New. The database handle is opened lazily on first use and shared for
// the process lifetime; concurrent opens coalesce onto one in-flight attempt.
type Store struct {
	path string
	log  logging.Logger

	mu    sync.RWMutex
	db    *sql.DB
	group singleflight.Group
}

func New(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log}
}

// RunMigrations applies the embedded schema migrations. Safe to run against
// an already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating on first use) the database and applies migrations.
// Idempotent; duplicate concurrent calls await the same in-flight open
// instead of opening multiple connections. Returns ErrStoreUnavailable when
// the engine cannot be opened.
func (s *Store) Open(ctx context.Context) error {
	s.mu.RLock()
	opened := s.db != nil
	s.mu.RUnlock()
	if opened {
		return nil
	}

	_, err, _ := s.group.Do("open", func() (any, error) {
		s.mu.RLock()
		db := s.db
		s.mu.RUnlock()
		if db != nil {
			return nil, nil
		}

		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return nil, err
		}

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}

		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}

		s.mu.Lock()
		s.db = db
		s.mu.Unlock()

		s.log.Info(ctx, "gift database opened", "path", s.path)
		return nil, nil
	})

	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) handle(ctx context.Context) (*sql.DB, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db, nil
}

// media splits an in-memory media field into its persisted representation:
// data URIs become (mime, blob), anything else (remote URL or empty) stays
// textual.
func media(field string) (url, mime string, data []byte, err error) {
	if !dataurl.Is(field) {
		return field, "", nil, nil
	}
	p, err := dataurl.Parse(field)
	if err != nil {
		return "", "", nil, err
	}
	return "", p.MIME, p.Data, nil
}

// mediaField reverses media: blobs are re-encoded as embeddable data URIs.
// A non-empty mime with an empty blob is still a payload (a zero-byte data
// URI round-trips with its media type intact).
func mediaField(url, mime string, data []byte) string {
	if len(data) == 0 && mime == "" {
		return url
	}
	p := dataurl.Payload{MIME: mime, Data: data}
	return p.String()
}

// SaveGift upserts the record by id in a single write transaction and
// resolves with the id. Media data URIs are rewritten to binary objects
// before persisting.
func (s *Store) SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error) {
	if err := gift.Validate(); err != nil {
		return "", err
	}

	db, err := s.handle(ctx)
	if err != nil {
		return "", err
	}

	imageURL, imageMIME, imageData, err := media(gift.Image)
	if err != nil {
		return "", fmt.Errorf("%w: image: %v", common.ErrWriteFailed, err)
	}
	audioURL, audioMIME, audioData, err := media(gift.Audio)
	if err != nil {
		return "", fmt.Errorf("%w: audio: %v", common.ErrWriteFailed, err)
	}

	stickers, err := json.Marshal(gift.Stickers)
	if err != nil {
		return "", fmt.Errorf("%w: stickers: %v", common.ErrWriteFailed, err)
	}

	query := `INSERT INTO gifts (id, occasion, recipient, sender, message, theme, gift_type,
			image_url, image_mime, image_data, audio_url, audio_mime, audio_data,
			color, stickers, enable_quest, created_at, user_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET occasion = excluded.occasion,
			recipient = excluded.recipient,
			sender = excluded.sender,
			message = excluded.message,
			theme = excluded.theme,
			gift_type = excluded.gift_type,
			image_url = excluded.image_url,
			image_mime = excluded.image_mime,
			image_data = excluded.image_data,
			audio_url = excluded.audio_url,
			audio_mime = excluded.audio_mime,
			audio_data = excluded.audio_data,
			color = excluded.color,
			stickers = excluded.stickers,
			enable_quest = excluded.enable_quest,
			created_at = excluded.created_at,
			user_id = excluded.user_id,
			updated_at = excluded.updated_at
	`

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, query,
			gift.ID, gift.Occasion, gift.Recipient, gift.Sender, gift.Message,
			gift.Theme, gift.GiftType,
			imageURL, imageMIME, imageData, audioURL, audioMIME, audioData,
			gift.Color, string(stickers), boolToInt(gift.EnableQuest),
			gift.CreatedAt, gift.UserID, gift.UpdatedAt)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: upsert gift: %v", common.ErrWriteFailed, err)
	}

	return gift.ID, nil
}

const selectColumns = `id, occasion, recipient, sender, message, theme, gift_type,
	image_url, image_mime, image_data, audio_url, audio_mime, audio_data,
	color, stickers, enable_quest, created_at, user_id, updated_at`

func scanGift(scan func(dest ...any) error) (*models.GiftRecord, error) {
	var (
		g                    models.GiftRecord
		imageURL, imageMIME  string
		audioURL, audioMIME  string
		imageData, audioData []byte
		stickers             string
		enableQuest          int
	)

	err := scan(&g.ID, &g.Occasion, &g.Recipient, &g.Sender, &g.Message,
		&g.Theme, &g.GiftType,
		&imageURL, &imageMIME, &imageData, &audioURL, &audioMIME, &audioData,
		&g.Color, &stickers, &enableQuest, &g.CreatedAt, &g.UserID, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(stickers), &g.Stickers); err != nil {
		return nil, fmt.Errorf("stickers: %w", err)
	}

	g.Image = mediaField(imageURL, imageMIME, imageData)
	g.Audio = mediaField(audioURL, audioMIME, audioData)
	g.EnableQuest = enableQuest != 0

	return &g, nil
}

// GetGift returns the record for id, or (nil, nil) when absent. Binary media
// payloads are reconstructed into their embeddable form.
func (s *Store) GetGift(ctx context.Context, id string) (*models.GiftRecord, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM gifts WHERE id = ?`, id)

	g, err := scanGift(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get gift: %v", common.ErrReadFailed, err)
	}
	return g, nil
}

// GetAllGifts returns every stored record in no particular order.
func (s *Store) GetAllGifts(ctx context.Context) ([]*models.GiftRecord, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+selectColumns+` FROM gifts`)
	if err != nil {
		return nil, fmt.Errorf("%w: select gifts: %v", common.ErrReadFailed, err)
	}
	defer rows.Close()

	var result []*models.GiftRecord
	for rows.Next() {
		g, err := scanGift(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan gift: %v", common.ErrReadFailed, err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrReadFailed, err)
	}
	return result, nil
}

// DeleteGift removes the record for id. Deleting an absent id succeeds.
func (s *Store) DeleteGift(ctx context.Context, id string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM gifts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete gift: %v", common.ErrWriteFailed, err)
	}
	return nil
}

// ClearAllGifts empties the collection in one statement.
func (s *Store) ClearAllGifts(ctx context.Context) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM gifts`); err != nil {
		return fmt.Errorf("%w: clear gifts: %v", common.ErrWriteFailed, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ store.GiftStore = (*Store)(nil)
