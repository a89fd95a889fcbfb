// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (HTTP ports, TLS, logging level, CORS); AppConfig
// carries everything specific to EduConnect.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max driver connection pool size
	MongoMinPoolSize uint64 // Min driver connection pool size

	// Bearer token configuration
	JWTSecret   string        // HS256 signing secret (must be strong in production)
	TokenExpiry time.Duration // Lifetime of issued tokens

	// Upload storage for announcement images
	UploadPath string // Local directory for stored files (e.g., "./uploads")
	UploadURL  string // URL prefix the directory is served under (e.g., "/files/uploads")
}
