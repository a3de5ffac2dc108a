package deck

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync/atomic"

	"card-vault/core/apperr"
	"card-vault/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Card is one image asset inside a deck.
type Card struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Deck groups the cards sharing a key prefix. It has no stored record of its
// own; it exists only as a grouping derived from key enumeration.
type Deck struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// CardUpload is one entry of an upload batch. Exactly one of SVGBase64 and
// PNGBase64 must be set.
type CardUpload struct {
	Name      string `json:"name"`
	SVGBase64 string `json:"svgBase64,omitempty"`
	PNGBase64 string `json:"pngBase64,omitempty"`
}

// Service implements the deck/card asset store.
type Service struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewService creates a new deck service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// ListAllDecks walks the whole bucket and groups card keys by deck title.
// Titles keep first-seen order; cards keep enumeration order. Keys without a
// path separator are malformed and skipped.
func (s *Service) ListAllDecks(ctx context.Context) ([]Deck, error) {
	decks := make([]Deck, 0)
	index := make(map[string]int)

	opts := minio.ListObjectsOptions{Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, apperr.Backend("failed to list decks", obj.Err)
		}
		if !isCardKey(obj.Key) {
			continue
		}
		title, file, ok := splitCardKey(obj.Key)
		if !ok {
			continue
		}

		i, seen := index[title]
		if !seen {
			i = len(decks)
			index[title] = i
			decks = append(decks, Deck{Title: title})
		}
		decks[i].Cards = append(decks[i].Cards, Card{
			Name: cardName(file),
			URL:  s.cfg.ObjectURL(obj.Key),
		})
	}

	if len(decks) == 0 {
		return nil, apperr.NotFound("no decks found")
	}
	return decks, nil
}

// ListDeck returns the raw card keys stored under a deck title.
func (s *Service) ListDeck(ctx context.Context, title string) ([]string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.BadRequest("deck title is required")
	}

	keys, err := s.cardKeys(ctx, title+"/")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, apperr.NotFound("deck not found")
	}
	return keys, nil
}

// UploadDeck stores a batch of card images under the deck title. The batch is
// validated up front: a card missing its name or carrying zero or two image
// encodings rejects the whole batch naming the offending index. Valid batches
// upload concurrently; on a storage failure, objects already written stay
// written.
func (s *Service) UploadDeck(ctx context.Context, title string, cards []CardUpload) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, apperr.BadRequest("deck title is required")
	}
	if len(cards) == 0 {
		return 0, apperr.BadRequest("at least one card is required")
	}

	type upload struct {
		key         string
		contentType string
		data        []byte
	}

	uploads := make([]upload, 0, len(cards))
	for i, card := range cards {
		if strings.TrimSpace(card.Name) == "" {
			return 0, apperr.BadRequest(fmt.Sprintf("card %d: name is required", i))
		}
		hasSVG := card.SVGBase64 != ""
		hasPNG := card.PNGBase64 != ""
		if hasSVG == hasPNG {
			return 0, apperr.BadRequest(fmt.Sprintf("card %d: exactly one of svgBase64 or pngBase64 is required", i))
		}

		encoded, ext := card.SVGBase64, ".svg"
		if hasPNG {
			encoded, ext = card.PNGBase64, ".png"
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return 0, apperr.BadRequest(fmt.Sprintf("card %d: invalid base64 image data", i))
		}

		uploads = append(uploads, upload{
			key:         title + "/" + card.Name + ext,
			contentType: imageExtensions[ext],
			data:        data,
		})
	}

	var completed atomic.Int64
	g, ctxGroup := errgroup.WithContext(ctx)
	for _, u := range uploads {
		g.Go(func() error {
			_, err := s.client.PutObject(ctxGroup, s.cfg.Bucket, u.key,
				bytes.NewReader(u.data), int64(len(u.data)),
				minio.PutObjectOptions{ContentType: u.contentType})
			if err != nil {
				return err
			}
			completed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(completed.Load()), apperr.Backend(
			fmt.Sprintf("uploaded %d of %d cards", completed.Load(), len(uploads)), err)
	}
	return len(uploads), nil
}

// DeleteDeck removes every card image under a deck title and returns the
// number of keys deleted.
func (s *Service) DeleteDeck(ctx context.Context, title string) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, apperr.BadRequest("deck title is required")
	}

	keys, err := s.cardKeys(ctx, title+"/")
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, apperr.NotFound("deck not found")
	}
	return s.deleteKeys(ctx, keys)
}

// DeleteAllDecks removes every card image in the bucket and returns the
// number of keys deleted.
func (s *Service) DeleteAllDecks(ctx context.Context) (int, error) {
	keys, err := s.cardKeys(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, apperr.NotFound("no decks found")
	}
	return s.deleteKeys(ctx, keys)
}

// cardKeys enumerates the card keys under a prefix, consuming the listing
// until the backend reports no further pages.
func (s *Service) cardKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, apperr.Backend("failed to list card images", obj.Err)
		}
		if isCardKey(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// deleteKeys partitions keys into batches of at most storage.MaxBatchDelete
// and issues the batch deletes concurrently. Batches are not transactional:
// a failed batch is surfaced with the completed/attempted counts and earlier
// batches stay deleted.
func (s *Service) deleteKeys(ctx context.Context, keys []string) (int, error) {
	var deleted atomic.Int64
	g, ctxGroup := errgroup.WithContext(ctx)

	for start := 0; start < len(keys); start += storage.MaxBatchDelete {
		end := min(start+storage.MaxBatchDelete, len(keys))
		chunk := keys[start:end]

		g.Go(func() error {
			objectsCh := make(chan minio.ObjectInfo, len(chunk))
			for _, key := range chunk {
				objectsCh <- minio.ObjectInfo{Key: key}
			}
			close(objectsCh)

			var failed int
			var firstErr error
			for rmErr := range s.client.RemoveObjects(ctxGroup, s.cfg.Bucket, objectsCh, minio.RemoveObjectsOptions{}) {
				if rmErr.Err != nil {
					failed++
					if firstErr == nil {
						firstErr = rmErr.Err
					}
				}
			}
			deleted.Add(int64(len(chunk) - failed))
			if firstErr != nil {
				return firstErr
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(deleted.Load()), apperr.Backend(
			fmt.Sprintf("deleted %d of %d card images", deleted.Load(), len(keys)), err)
	}
	return int(deleted.Load()), nil
}
