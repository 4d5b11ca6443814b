// Package config loads settings from environment variables, applies
// defaults and validates everything on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Sheets     SheetsConfig
	Pagination PaginationConfig
	Report     ReportConfig
	Rate       RateLimitConfig
	Security   SecurityConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds every request, including a reload (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Published CSV exports of the three sheets. Keep in sync with the SheetsConfig defaults.
const (
	DefaultBranchesURL = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=agencias"
	DefaultClientsURL  = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=clientes"
	DefaultAccountsURL = "https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=contas"
)

// SheetsConfig locates the source sheets. Each source is an http(s) URL
// or a local file path.
type SheetsConfig struct {
	BranchesURL string `env:"SHEET_BRANCHES_URL" default:"https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=agencias"`
	ClientsURL  string `env:"SHEET_CLIENTS_URL" default:"https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=clientes"`
	AccountsURL string `env:"SHEET_ACCOUNTS_URL" default:"https://docs.google.com/spreadsheets/d/1PBN_HQOi5ZpKDd63mouxttFvvCwtmY97Tb5if5_cdBA/gviz/tq?tqx=out:csv&sheet=contas"`

	// FetchTimeout bounds each sheet fetch; 0 disables the bound (default: 0s)
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" default:"0s"`

	// MaxBytes caps a single sheet body (default: 32MB)
	MaxBytes int64 `env:"SHEET_MAX_BYTES" default:"33554432"`

	// ReloadInterval refreshes the snapshot periodically; 0 disables it (default: 0s)
	ReloadInterval time.Duration `env:"SHEET_RELOAD_INTERVAL" default:"0s"`
}

// PaginationConfig holds list view settings.
type PaginationConfig struct {
	// PageSizes is the permitted set; the first entry is the default (default: 16,32)
	PageSizes []int `env:"PAGE_SIZES" default:"16,32"`
}

// ReportConfig holds aggregation settings.
type ReportConfig struct {
	// ReferenceWage is the monthly wage income bands are expressed in (default: 1518)
	ReferenceWage float64 `env:"REPORT_REFERENCE_WAGE" default:"1518"`

	// PolicyFile is an optional YAML file overriding band boundaries
	PolicyFile string `env:"REPORT_POLICY_FILE"`

	// MaxConcurrentExports caps parallel PDF/XLSX renders (default: 2)
	MaxConcurrentExports int `env:"EXPORT_MAX_CONCURRENT" default:"2"`

	// ExportWait is how long an export waits for a free slot (default: 10s)
	ExportWait time.Duration `env:"EXPORT_MAX_WAIT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ReloadLimit is requests per minute for the reload endpoint (default: 5)
	ReloadLimit int `env:"RATE_LIMIT_RELOAD" default:"5"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
