// Package article implements the password-gated article store.
//
// Articles are JSON documents keyed by their title under the articles/ prefix
// of the bucket. Each document is stored inside an envelope that carries the
// content, a bcrypt hash of the per-article password, a version counter and
// the last update timestamp. Every mutation re-fetches the envelope, verifies
// the password against the hash, and rewrites the whole envelope with the
// version bumped by one.
//
// Documents migrated from older deployments may be bare content blobs with no
// envelope. Reads tolerate both formats; mutations on a credential-less
// document are refused with a needs-migration error because authorship cannot
// be verified.
//
// # Components
//
//   - Service: CRUD state machine over envelopes in the blob store.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /articles         : Create an article.
//   - GET    /articles         : List all articles.
//   - GET    /articles/:title  : Get one article's content.
//   - PUT    /articles/:title  : Update content (password required).
//   - DELETE /articles/:title  : Delete (password required).
package article
