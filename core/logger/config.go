package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json or console).
	Format string `mapstructure:"format" default:"json"`
}
