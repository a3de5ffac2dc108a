// Package category implements the flat category store.
//
// Categories are id/name records stored as JSON under the categories/ prefix.
// Create is an unconditional overwrite with no versioning and no credential,
// which makes this the simplest store in the application. List always decodes
// stored bytes through the JSON codec and surfaces corrupt records as errors
// instead of passing raw transport data through.
//
// # HTTP Endpoints
//
//   - POST /categories : Create (or overwrite) a category.
//   - GET  /categories : List all categories.
package category
