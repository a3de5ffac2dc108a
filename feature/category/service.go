package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"card-vault/core/apperr"
	"card-vault/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	keyPrefix = "categories/"
	keySuffix = ".json"
)

// Category is a flat id/name record. No versioning, no credential.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Service implements the category store.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Create stores a category record. The write is an unconditional
// overwrite-or-create; there is no existence check by design.
func (s *Service) Create(ctx context.Context, id, name string) error {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return apperr.BadRequest("id and name are required")
	}

	data, err := json.Marshal(Category{ID: id, Name: name})
	if err != nil {
		return apperr.Backend("failed to encode category", err)
	}

	key := keyPrefix + id + keySuffix
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return apperr.Backend("failed to store category", err)
	}
	return nil
}

// List returns every category record. Stored bytes always pass through the
// JSON decoder; a record that does not decode is a data-integrity fault and
// fails the listing naming the offending key.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	opts := minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, apperr.Backend("failed to list categories", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, keySuffix) {
			continue
		}

		cat, err := s.fetch(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}

	if len(categories) == 0 {
		return nil, apperr.NotFound("no categories found")
	}
	return categories, nil
}

func (s *Service) fetch(ctx context.Context, key string) (*Category, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Backend("failed to fetch category", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperr.Backend("failed to read category", err)
	}

	var cat Category
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, apperr.Backend(fmt.Sprintf("corrupt category record %s", key), err)
	}
	return &cat, nil
}
