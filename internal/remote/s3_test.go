package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/golang-jwt/jwt/v5"

	"github.com/giftjoy/giftjoy/internal/common"
	"github.com/giftjoy/giftjoy/internal/dataurl"
	"github.com/giftjoy/giftjoy/internal/logging"
	"github.com/giftjoy/giftjoy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// fakeObjectAPI keeps objects in memory and can be told to fail.
type fakeObjectAPI struct {
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}}
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func setupGateway(t *testing.T, api objectAPI) *S3Gateway {
	t.Helper()
	gw := &S3Gateway{
		cfg: Config{Region: "us-east-1", Bucket: "giftjoy"},
		api: api,
		log: testLogger(),
	}
	gw.SetSessionToken(signToken(t, "user-42", time.Now().Add(time.Hour)))
	return gw
}

func TestSessionSubject(t *testing.T) {
	valid := signToken(t, "user-42", time.Now().Add(time.Hour))
	sub, err := sessionSubject(valid)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)

	noSub := signToken(t, "", time.Now().Add(time.Hour))
	sub, err = sessionSubject(noSub)
	require.NoError(t, err)
	assert.Equal(t, anonymousUser, sub)

	_, err = sessionSubject(signToken(t, "user-42", time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = sessionSubject("")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = sessionSubject("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIsInitialized(t *testing.T) {
	gw := setupGateway(t, newFakeObjectAPI())
	assert.True(t, gw.IsInitialized())

	gw.SetSessionToken("")
	assert.False(t, gw.IsInitialized())

	gw.SetSessionToken(signToken(t, "user-42", time.Now().Add(-time.Hour)))
	assert.False(t, gw.IsInitialized(), "expired session must disable the cloud tier")

	var nilGw *S3Gateway
	assert.False(t, nilGw.IsInitialized())
}

func TestTryToken(t *testing.T) {
	gw := setupGateway(t, newFakeObjectAPI())

	err := gw.TryToken(signToken(t, "user-7", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	sub, err := gw.Subject()
	require.NoError(t, err)
	assert.Equal(t, "user-7", sub)

	err = gw.TryToken(signToken(t, "user-8", time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrSessionExpired)

	sub, err = gw.Subject()
	require.NoError(t, err)
	assert.Equal(t, "user-7", sub, "rejected token must not replace the session")
}

func TestSaveGift_WritesDocumentWithIdentity(t *testing.T) {
	api := newFakeObjectAPI()
	gw := setupGateway(t, api)
	ctx := context.Background()

	gift := &models.GiftRecord{ID: "gift_1_cloud", Occasion: models.OccasionBirthday}
	id, err := gw.SaveGift(ctx, gift)
	require.NoError(t, err)
	assert.Equal(t, "gift_1_cloud", id)

	body, ok := api.objects["gifts/gift_1_cloud/record.json"]
	require.True(t, ok)

	var doc models.GiftRecord
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "user-42", doc.UserID)
	assert.NotEmpty(t, doc.UpdatedAt)

	// the caller's record must stay untouched
	assert.Empty(t, gift.UserID)
}

func TestSaveGift_FailsWithRemoteUnavailable(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = &types.NoSuchBucket{}
	gw := setupGateway(t, api)

	_, err := gw.SaveGift(context.Background(), &models.GiftRecord{ID: "gift_1_x"})
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
}

func TestGetGift_RoundTripAndMiss(t *testing.T) {
	api := newFakeObjectAPI()
	gw := setupGateway(t, api)
	ctx := context.Background()

	want := &models.GiftRecord{ID: "gift_1_rt", Recipient: "Sam", Stickers: []string{"🎉"}}
	_, err := gw.SaveGift(ctx, want)
	require.NoError(t, err)

	got, err := gw.GetGift(ctx, "gift_1_rt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sam", got.Recipient)

	absent, err := gw.GetGift(ctx, "gift_404_x")
	require.NoError(t, err)
	assert.Nil(t, absent, "missing cloud document is a miss, not an error")
}

func TestUploadImage_StoresPayloadAndReturnsURL(t *testing.T) {
	api := newFakeObjectAPI()
	gw := setupGateway(t, api)
	ctx := context.Background()

	raw := []byte{0xff, 0xd8, 0xff}
	uri := (&dataurl.Payload{MIME: "image/jpeg", Data: raw}).String()

	url, err := gw.UploadImage(ctx, uri, "gift_1_img")
	require.NoError(t, err)
	assert.Equal(t, "https://giftjoy.s3.us-east-1.amazonaws.com/gifts/gift_1_img/image.jpg", url)
	assert.Equal(t, raw, api.objects["gifts/gift_1_img/image.jpg"])
}

func TestUploadAudio_PassesThroughNonDataURI(t *testing.T) {
	gw := setupGateway(t, newFakeObjectAPI())

	url, err := gw.UploadAudio(context.Background(), "https://cdn.example.com/a.mp3", "gift_1_a")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.mp3", url)
}

func TestObjectURL_CustomEndpointUsesPathStyle(t *testing.T) {
	gw := &S3Gateway{cfg: Config{
		Region:       "us-east-1",
		Bucket:       "giftjoy",
		BaseEndpoint: "http://localhost:9000/",
	}}

	url := gw.objectURL("gifts/gift_1/image.png")
	assert.Equal(t, "http://localhost:9000/giftjoy/gifts/gift_1/image.png", url)
}
