// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings: the listen port, the
// API key guarding the API, and the CORS origin allow list.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by cmd/start to wire the auth and CORS middleware.
package server
