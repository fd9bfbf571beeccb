package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/giftjoy/giftjoy/internal/config"
	"github.com/giftjoy/giftjoy/internal/filex"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/remote"
	"github.com/giftjoy/giftjoy/internal/services"
	"github.com/giftjoy/giftjoy/internal/store/fallback"
	"github.com/giftjoy/giftjoy/internal/store/sqlite"
	"github.com/giftjoy/giftjoy/internal/store/waterfall"
)

type App struct {
	config  *config.Config
	service *services.GiftService
	storage *waterfall.Store
	gateway *remote.S3Gateway
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp wires the storage tiers together: the durable database, the flat
// key-value fallback file and, when configured, the cloud gateway. A cloud
// gateway that fails to construct is logged and skipped, never fatal.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dbPath, fbPath := c.DatabasePath, c.FallbackPath
	if !filepath.IsAbs(dbPath) || !filepath.IsAbs(fbPath) {
		dir, err := filex.EnsureDataDir("giftjoy-data")
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(dir, dbPath)
		}
		if !filepath.IsAbs(fbPath) {
			fbPath = filepath.Join(dir, fbPath)
		}
	}

	local := sqlite.New(dbPath, log)
	fb := fallback.New(fbPath, c.FallbackQuotaBytes, log)

	var gateway *remote.S3Gateway
	if c.RemoteEnabled {
		gw, err := remote.NewS3Gateway(ctx, remote.Config{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}, log)
		if err != nil {
			log.Warn(ctx, "cloud tier unavailable", "error", err)
		} else {
			gateway = gw
			if c.SessionToken != "" {
				gateway.SetSessionToken(c.SessionToken)
			}
		}
	}

	wf := newWaterfall(local, fb, gateway, log)
	svc := services.NewGiftService(wf, log)

	return &App{
		config:  c,
		service: svc,
		storage: wf,
		gateway: gateway,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// newWaterfall keeps the gateway interface nil when no gateway was built,
// rather than wrapping a nil pointer.
func newWaterfall(local waterfall.DurableStore, fb *fallback.Adapter, gw *remote.S3Gateway, log logging.Logger) *waterfall.Store {
	if gw == nil {
		return waterfall.New(local, fb, nil, log)
	}
	return waterfall.New(local, fb, gw, log)
}

func (a *App) isLoggedIn() bool {
	return a.gateway.IsInitialized()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
