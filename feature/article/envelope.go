package article

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the stored wrapper around an article's logical content. The
// password hash never leaves the store; only Content is rendered to callers.
type Envelope struct {
	Content      json.RawMessage `json:"content"`
	PasswordHash string          `json:"passwordHash,omitempty"`
	Version      int             `json:"version,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// decodeDocument resolves the stored format of a document. Documents written
// by this service are wrapped envelopes; documents migrated from older
// deployments are bare content blobs. The format is sniffed once here: a
// top-level JSON object carrying a "content" field is an envelope, anything
// else is legacy content exposed as-is with no version and no hash.
func decodeDocument(raw []byte) (*Envelope, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("stored document is not valid JSON")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		// Not an object (array, string, number): legacy content.
		return &Envelope{Content: json.RawMessage(raw)}, nil
	}
	if _, ok := probe["content"]; !ok {
		return &Envelope{Content: json.RawMessage(raw)}, nil
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode document envelope: %w", err)
	}
	return &env, nil
}

// encodeDocument serializes an envelope for storage.
func encodeDocument(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document envelope: %w", err)
	}
	return data, nil
}
