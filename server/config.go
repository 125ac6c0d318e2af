package server

import "time"

// Config is the web server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// BodyLimit is the maximum request body size in bytes (all uploads of one submit).
	BodyLimit int

	// SessionTTL is the lifetime of the session cookie; it matches the store expiry.
	SessionTTL time.Duration
}
