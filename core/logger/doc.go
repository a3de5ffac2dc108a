// Package logger provides structured logging built on zap.
//
// New builds a zap.Logger from the Log section of the application config:
// "debug" level selects the development config, and the format switch picks
// between JSON (production) and colorized console encoding.
//
// WithRayID decorates a logger with the per-request ray_id set by the rayid
// middleware, so every log line of a request shares one correlation id.
package logger
