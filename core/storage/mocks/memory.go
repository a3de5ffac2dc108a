package mocks

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

// Memory is an in-memory implementation of storage.Client for tests that
// need real state across calls (create-then-update flows, batch deletes).
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func notFoundErr(key string) error {
	return minio.ErrorResponse{Code: "NoSuchKey", Key: key, StatusCode: http.StatusNotFound}
}

func (m *Memory) BucketExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (m *Memory) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	return nil
}

func (m *Memory) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.mu.Lock()
	m.objects[objectName] = data
	m.mu.Unlock()
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (m *Memory) GetObject(_ context.Context, _, objectName string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	m.mu.Lock()
	data, ok := m.objects[objectName]
	m.mu.Unlock()
	if !ok {
		return nil, notFoundErr(objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) StatObject(_ context.Context, _, objectName string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	m.mu.Lock()
	data, ok := m.objects[objectName]
	m.mu.Unlock()
	if !ok {
		return minio.ObjectInfo{}, notFoundErr(objectName)
	}
	return minio.ObjectInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (m *Memory) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	m.mu.Lock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	m.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func (m *Memory) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	m.mu.Lock()
	delete(m.objects, objectName)
	m.mu.Unlock()
	return nil
}

func (m *Memory) RemoveObjects(_ context.Context, _ string, objectsCh <-chan minio.ObjectInfo, _ minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	errCh := make(chan minio.RemoveObjectError)
	go func() {
		defer close(errCh)
		for obj := range objectsCh {
			m.mu.Lock()
			delete(m.objects, obj.Key)
			m.mu.Unlock()
		}
	}()
	return errCh
}
