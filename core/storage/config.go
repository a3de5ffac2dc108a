package storage

import "strings"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket that holds articles, categories and
	// card images.
	Bucket string `mapstructure:"bucket" default:"card-vault"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PublicURL is the externally reachable base URL used to build direct
	// links to card images. Falls back to the endpoint when empty.
	PublicURL string `mapstructure:"public_url" default:""`
}

// ObjectURL returns the direct access URL for an object key.
func (c Config) ObjectURL(key string) string {
	base := c.PublicURL
	if base == "" {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + c.Endpoint
	}
	return strings.TrimSuffix(base, "/") + "/" + c.Bucket + "/" + key
}
