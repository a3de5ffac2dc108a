package article

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"card-vault/core/apperr"
	"card-vault/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testBucket = "test-bucket"

func notFoundErr() minio.ErrorResponse {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
}

func envelopeReader(t *testing.T, env *Envelope) io.ReadCloser {
	t.Helper()
	data, err := encodeDocument(env)
	require.NoError(t, err)
	return io.NopCloser(strings.NewReader(string(data)))
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(new(mocks.Client), testBucket, zap.NewNop())

	err := svc.Create(context.Background(), "  ", json.RawMessage(`{}`), "1234")
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	err = svc.Create(context.Background(), "Dragon", json.RawMessage(`{}`), " 123 ")
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestCreateConflict(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(minio.ObjectInfo{Key: "articles/Dragon.json"}, nil)

	svc := NewService(client, testBucket, zap.NewNop())
	err := svc.Create(context.Background(), "Dragon", json.RawMessage(`{}`), "1234")

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	client.AssertNumberOfCalls(t, "PutObject", 0)
}

func TestCreateWritesVersionOneEnvelope(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(minio.ObjectInfo{}, notFoundErr())

	var stored []byte
	client.On("PutObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			stored = data
		}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(client, testBucket, zap.NewNop())
	err := svc.Create(context.Background(), "Dragon", json.RawMessage(`{"power":9}`), "1234")
	require.NoError(t, err)

	env, err := decodeDocument(stored)
	require.NoError(t, err)
	assert.JSONEq(t, `{"power":9}`, string(env.Content))
	assert.Equal(t, 1, env.Version)
	assert.Nil(t, env.UpdatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(env.PasswordHash), []byte("1234")))
}

func TestGetNeverReturnsHash(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{"power":9}`),
			PasswordHash: hashOf(t, "1234"),
			Version:      2,
		}), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	art, err := svc.Get(context.Background(), "Dragon")
	require.NoError(t, err)

	assert.Equal(t, "Dragon", art.ID)
	assert.JSONEq(t, `{"power":9}`, string(art.Content))

	body, err := json.Marshal(art)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "passwordHash")
}

func TestGetLegacyDocument(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Old.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"title":"Old","body":"text"}`)), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	art, err := svc.Get(context.Background(), "Old")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Old","body":"text"}`, string(art.Content))
}

func TestGetNotFound(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Ghost.json", mock.Anything).
		Return(nil, notFoundErr())

	svc := NewService(client, testBucket, zap.NewNop())
	_, err := svc.Get(context.Background(), "Ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateIncrementsVersionAndPreservesHash(t *testing.T) {
	hash := hashOf(t, "1234")
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{"power":9}`),
			PasswordHash: hash,
			Version:      1,
		}), nil)

	var stored []byte
	client.On("PutObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			stored = data
		}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(client, testBucket, zap.NewNop())
	version, err := svc.Update(context.Background(), "Dragon", "1234", json.RawMessage(`{"power":10}`))
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	env, err := decodeDocument(stored)
	require.NoError(t, err)
	assert.JSONEq(t, `{"power":10}`, string(env.Content))
	assert.Equal(t, 2, env.Version)
	assert.Equal(t, hash, env.PasswordHash)
	assert.NotNil(t, env.UpdatedAt)
}

func TestUpdateKeepsContentWhenNoneSupplied(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{"power":9}`),
			PasswordHash: hashOf(t, "1234"),
			Version:      4,
		}), nil)

	var stored []byte
	client.On("PutObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			stored = data
		}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(client, testBucket, zap.NewNop())
	version, err := svc.Update(context.Background(), "Dragon", "1234", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, version)

	env, err := decodeDocument(stored)
	require.NoError(t, err)
	assert.JSONEq(t, `{"power":9}`, string(env.Content))
}

func TestUpdateWrongPassword(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{}`),
			PasswordHash: hashOf(t, "1234"),
			Version:      2,
		}), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	_, err := svc.Update(context.Background(), "Dragon", "wrong", json.RawMessage(`{}`))

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	client.AssertNumberOfCalls(t, "PutObject", 0)
}

func TestUpdateLegacyNeedsMigration(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Old.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"body":"legacy"}`)), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	_, err := svc.Update(context.Background(), "Old", "anything", json.RawMessage(`{}`))

	assert.Equal(t, apperr.KindNeedsMigration, apperr.KindOf(err))
	client.AssertNumberOfCalls(t, "PutObject", 0)
}

func TestDeleteVerifiesPassword(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{}`),
			PasswordHash: hashOf(t, "1234"),
			Version:      1,
		}), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	err := svc.Delete(context.Background(), "Dragon", "wrong")

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	client.AssertNumberOfCalls(t, "RemoveObject", 0)
}

func TestDeleteRemovesObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{
			Content:      json.RawMessage(`{}`),
			PasswordHash: hashOf(t, "1234"),
			Version:      1,
		}), nil)
	client.On("RemoveObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(nil)

	svc := NewService(client, testBucket, zap.NewNop())
	require.NoError(t, svc.Delete(context.Background(), "Dragon", "1234"))
	client.AssertCalled(t, "RemoveObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything)
}

func objectCh(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestListReturnsPairs(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return(objectCh("articles/Dragon.json", "articles/Elf.json"))
	client.On("GetObject", mock.Anything, testBucket, "articles/Dragon.json", mock.Anything).
		Return(envelopeReader(t, &Envelope{Content: json.RawMessage(`{"power":9}`), PasswordHash: "h", Version: 1}), nil)
	client.On("GetObject", mock.Anything, testBucket, "articles/Elf.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"legacy":true}`)), nil)

	svc := NewService(client, testBucket, zap.NewNop())
	articles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Dragon", articles[0].ID)
	assert.JSONEq(t, `{"power":9}`, string(articles[0].Content))
	assert.Equal(t, "Elf", articles[1].ID)
	assert.JSONEq(t, `{"legacy":true}`, string(articles[1].Content))
}

func TestListEmptyIsNotFound(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return(objectCh())

	svc := NewService(client, testBucket, zap.NewNop())
	_, err := svc.List(context.Background())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// TestArticleLifecycle walks a full document lifecycle against an in-memory
// store: create, duplicate create, update, wrong password, delete, read.
func TestArticleLifecycle(t *testing.T) {
	store := mocks.NewMemory()
	svc := NewService(store, testBucket, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "Dragon", json.RawMessage(`{"power":9}`), "1234"))

	err := svc.Create(ctx, "Dragon", json.RawMessage(`{"power":1}`), "1234")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	version, err := svc.Update(ctx, "Dragon", "1234", json.RawMessage(`{"power":10}`))
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	_, err = svc.Update(ctx, "Dragon", "wrong", json.RawMessage(`{"power":0}`))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	art, err := svc.Get(ctx, "Dragon")
	require.NoError(t, err)
	assert.JSONEq(t, `{"power":10}`, string(art.Content))

	require.NoError(t, svc.Delete(ctx, "Dragon", "1234"))

	_, err = svc.Get(ctx, "Dragon")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
