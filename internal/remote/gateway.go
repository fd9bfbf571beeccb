// Package remote integrates the optional cloud tier: document storage for
// gift records and object storage for media payloads. The orchestration
// layer prefers this tier whenever it reports itself initialized and treats
// any failure here as a trigger to fall through to local storage.
package remote

import (
	"context"

	"github.com/giftjoy/giftjoy/internal/models"
)

// Gateway is the consumed surface of the remote store.
//
// Every method other than IsInitialized may fail for transport, auth or
// service reasons; callers must be prepared to recover locally. GetGift
// returns (nil, nil) when the record does not exist remotely.
type Gateway interface {
	IsInitialized() bool
	SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error)
	GetGift(ctx context.Context, id string) (*models.GiftRecord, error)
	UploadImage(ctx context.Context, data string, id string) (string, error)
	UploadAudio(ctx context.Context, data string, id string) (string, error)
}
