package article

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"card-vault/core/apperr"
	"card-vault/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const (
	keyPrefix   = "articles/"
	keySuffix   = ".json"
	minPassword = 4
)

// Article is the caller-facing view of a stored document.
type Article struct {
	ID      string          `json:"id"`
	Content json.RawMessage `json:"content"`
}

// Service implements the password-gated article store.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new article service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func objectKey(id string) string {
	return keyPrefix + id + keySuffix
}

func idFromKey(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), keySuffix)
}

// Create stores a new article under its title. The existence probe and the
// write are two separate round trips: two concurrent creates of the same
// title can both pass the probe, and the later write wins silently.
func (s *Service) Create(ctx context.Context, title string, content json.RawMessage, password string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apperr.BadRequest("title is required")
	}
	password = strings.TrimSpace(password)
	if len(password) < minPassword {
		return apperr.BadRequest("password must be at least 4 characters")
	}
	if len(content) == 0 {
		content = json.RawMessage("null")
	}

	key := objectKey(title)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
		return apperr.Conflict("article already exists")
	} else if !storage.IsNotFound(err) {
		return apperr.Backend("failed to check article existence", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Backend("failed to hash password", err)
	}

	env := &Envelope{
		Content:      content,
		PasswordHash: string(hash),
		Version:      1,
	}
	return s.putEnvelope(ctx, key, env)
}

// Get returns the content stored under id. Legacy documents written before
// the envelope format are returned as-is.
func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	env, err := s.getEnvelope(ctx, objectKey(id))
	if err != nil {
		return nil, err
	}
	return &Article{ID: id, Content: env.Content}, nil
}

// Update verifies the password and rewrites the envelope with the new
// content (when supplied), a fresh timestamp and the version bumped by one.
// Returns the new version.
func (s *Service) Update(ctx context.Context, id, password string, content json.RawMessage) (int, error) {
	key := objectKey(id)
	env, err := s.getEnvelope(ctx, key)
	if err != nil {
		return 0, err
	}
	if err := s.verifyPassword(env, password); err != nil {
		return 0, err
	}

	if len(content) > 0 {
		env.Content = content
	}
	now := time.Now().UTC()
	env.UpdatedAt = &now
	env.Version++

	if err := s.putEnvelope(ctx, key, env); err != nil {
		return 0, err
	}
	return env.Version, nil
}

// Delete verifies the password and removes the document.
func (s *Service) Delete(ctx context.Context, id, password string) error {
	key := objectKey(id)
	env, err := s.getEnvelope(ctx, key)
	if err != nil {
		return err
	}
	if err := s.verifyPassword(env, password); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Backend("failed to delete article", err)
	}
	return nil
}

// List enumerates every document and returns id/content pairs. Documents are
// fetched in parallel; the listing fails as a whole on the first fetch error.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, apperr.Backend("failed to list articles", obj.Err)
		}
		if strings.HasSuffix(obj.Key, keySuffix) {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return nil, apperr.NotFound("no articles found")
	}

	articles := make([]Article, len(keys))
	g, ctxGroup := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			env, err := s.getEnvelope(ctxGroup, key)
			if err != nil {
				return err
			}
			articles[i] = Article{ID: idFromKey(key), Content: env.Content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return articles, nil
}

// verifyPassword gates mutation. A document without a hash predates the
// envelope format; authorship cannot be verified, so mutation is refused
// outright instead of silently allowed or denied.
func (s *Service) verifyPassword(env *Envelope, password string) error {
	if env.PasswordHash == "" {
		return apperr.NeedsMigration("article has no password and needs migration")
	}
	password = strings.TrimSpace(password)
	if err := bcrypt.CompareHashAndPassword([]byte(env.PasswordHash), []byte(password)); err != nil {
		return apperr.Forbidden("invalid password")
	}
	return nil
}

func (s *Service) getEnvelope(ctx context.Context, key string) (*Envelope, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, apperr.Backend("failed to fetch article", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		// The minio client defers missing-key errors to the first read.
		if storage.IsNotFound(err) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, apperr.Backend("failed to read article", err)
	}

	env, err := decodeDocument(raw)
	if err != nil {
		return nil, apperr.Backend("failed to decode article", err)
	}
	return env, nil
}

func (s *Service) putEnvelope(ctx context.Context, key string, env *Envelope) error {
	data, err := encodeDocument(env)
	if err != nil {
		return apperr.Backend("failed to encode article", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return apperr.Backend("failed to store article", err)
	}
	return nil
}
