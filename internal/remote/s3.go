package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
)

// Config holds the cloud bucket settings. BaseEndpoint is optional and used
// for S3-compatible services (MinIO and friends); when set, requests use
// path-style addressing.
type Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// objectAPI is the subset of the S3 client the gateway uses. Kept as an
// interface so tests can substitute a fake service.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Gateway stores gift documents at gifts/<id>/record.json and media
// payloads next to them. It reports itself initialized only while it holds
// an unexpired session token.
type S3Gateway struct {
	cfg Config
	api objectAPI
	log logging.Logger

	mu           sync.RWMutex
	sessionToken string
}

// NewS3Gateway builds the gateway client. Construction failure means the
// remote tier simply stays unavailable; it is not fatal to the application.
func NewS3Gateway(ctx context.Context, cfg Config, log logging.Logger) (*S3Gateway, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", common.ErrRemoteUnavailable)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Gateway{cfg: cfg, api: client, log: log}, nil
}

// SetSessionToken installs the token obtained from the auth flow. An empty
// token signs the gateway out.
func (g *S3Gateway) SetSessionToken(token string) {
	g.mu.Lock()
	g.sessionToken = token
	g.mu.Unlock()
}

func (g *S3Gateway) subject() (string, error) {
	g.mu.RLock()
	token := g.sessionToken
	g.mu.RUnlock()
	return sessionSubject(token)
}

// Subject returns the identity carried by the current session token.
func (g *S3Gateway) Subject() (string, error) {
	return g.subject()
}

// TryToken validates a session token and installs it when usable. On a
// malformed or expired token the previous session is left untouched.
func (g *S3Gateway) TryToken(token string) error {
	if _, err := sessionSubject(token); err != nil {
		return err
	}
	g.SetSessionToken(token)
	return nil
}

// IsInitialized reports whether the cloud tier is worth attempting.
func (g *S3Gateway) IsInitialized() bool {
	if g == nil || g.api == nil {
		return false
	}
	_, err := g.subject()
	return err == nil
}

func recordKey(id string) string {
	return fmt.Sprintf("gifts/%s/record.json", id)
}

// objectURL returns the public address of a stored object.
func (g *S3Gateway) objectURL(key string) string {
	if g.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(g.cfg.BaseEndpoint, "/"), g.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.cfg.Bucket, g.cfg.Region, key)
}

// SaveGift writes the record document, stamping the owner identity and the
// server-side update time.
func (g *S3Gateway) SaveGift(ctx context.Context, gift *models.GiftRecord) (string, error) {
	userID, err := g.subject()
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	doc := gift.Clone()
	doc.UserID = userID
	doc.UpdatedAt = models.Now()

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: marshal gift: %v", common.ErrRemoteUnavailable, err)
	}

	_, err = g.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(recordKey(gift.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put record: %v", common.ErrRemoteUnavailable, err)
	}

	g.log.Info(ctx, "gift saved to cloud", "id", gift.ID, "user", userID)
	return gift.ID, nil
}

// GetGift fetches the record document. A missing document is (nil, nil).
func (g *S3Gateway) GetGift(ctx context.Context, id string) (*models.GiftRecord, error) {
	out, err := g.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(recordKey(id)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get record: %v", common.ErrRemoteUnavailable, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read record: %v", common.ErrRemoteUnavailable, err)
	}

	var gift models.GiftRecord
	if err := json.Unmarshal(body, &gift); err != nil {
		return nil, fmt.Errorf("%w: unmarshal record: %v", common.ErrRemoteUnavailable, err)
	}
	return &gift, nil
}

func (g *S3Gateway) uploadMedia(ctx context.Context, data, id, name string) (string, error) {
	if !dataurl.Is(data) {
		// already a URL (or empty); nothing to upload
		return data, nil
	}

	payload, err := dataurl.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", common.ErrRemoteUnavailable, name, err)
	}

	key := fmt.Sprintf("gifts/%s/%s.%s", id, name, payload.Ext())

	_, err = g.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload.Data),
		ContentType: aws.String(payload.MIME),
	})
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", common.ErrRemoteUnavailable, name, err)
	}

	return g.objectURL(key), nil
}

// UploadImage stores the image payload and returns its download URL.
func (g *S3Gateway) UploadImage(ctx context.Context, data string, id string) (string, error) {
	return g.uploadMedia(ctx, data, id, "image")
}

// UploadAudio stores the audio payload and returns its download URL.
func (g *S3Gateway) UploadAudio(ctx context.Context, data string, id string) (string, error) {
	return g.uploadMedia(ctx, data, id, "audio")
}

var _ Gateway = (*S3Gateway)(nil)
