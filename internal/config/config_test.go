package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Sheets: SheetsConfig{
			BranchesURL: "b.csv",
			ClientsURL:  "c.csv",
			AccountsURL: "a.csv",
			MaxBytes:    1024,
		},
		Pagination: PaginationConfig{PageSizes: []int{16, 32}},
		Report:     ReportConfig{ReferenceWage: 1518, MaxConcurrentExports: 2, ExportWait: time.Second},
		Rate:       RateLimitConfig{Enabled: true, RequestsPerMinute: 100, ReloadLimit: 5},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Sheets.ClientsURL != DefaultClientsURL {
		t.Errorf("Sheets.ClientsURL = %q, want %q", cfg.Sheets.ClientsURL, DefaultClientsURL)
	}
	if cfg.Sheets.BranchesURL != DefaultBranchesURL || cfg.Sheets.AccountsURL != DefaultAccountsURL {
		t.Errorf("sheet defaults = %+v", cfg.Sheets)
	}
	if cfg.Sheets.FetchTimeout != 0 {
		t.Errorf("Sheets.FetchTimeout = %v, want 0", cfg.Sheets.FetchTimeout)
	}
	if !reflect.DeepEqual(cfg.Pagination.PageSizes, []int{16, 32}) {
		t.Errorf("Pagination.PageSizes = %v, want [16 32]", cfg.Pagination.PageSizes)
	}
	if cfg.Report.ReferenceWage != 1518 {
		t.Errorf("Report.ReferenceWage = %v, want 1518", cfg.Report.ReferenceWage)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHEET_CLIENTS_URL", "./testdata/clientes.csv")
	t.Setenv("PAGE_SIZES", "10, 25 ,50")
	t.Setenv("REPORT_REFERENCE_WAGE", "1412.50")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Sheets.ClientsURL != "./testdata/clientes.csv" {
		t.Errorf("Sheets.ClientsURL = %q", cfg.Sheets.ClientsURL)
	}
	if !reflect.DeepEqual(cfg.Pagination.PageSizes, []int{10, 25, 50}) {
		t.Errorf("Pagination.PageSizes = %v", cfg.Pagination.PageSizes)
	}
	if cfg.Report.ReferenceWage != 1412.5 {
		t.Errorf("Report.ReferenceWage = %v, want 1412.5", cfg.Report.ReferenceWage)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from PORT", cfg.Server.Port)
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SHEET_FETCH_TIMEOUT", "45s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sheets.FetchTimeout != 45*time.Second {
		t.Errorf("Sheets.FetchTimeout = %v, want 45s", cfg.Sheets.FetchTimeout)
	}
	if cfg.Server.ShutdownTimeout != 2*time.Minute {
		t.Errorf("Server.ShutdownTimeout = %v, want 2m", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.0.0/16,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"10.0.0.0/8", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Security.TrustedProxies, want) {
		t.Errorf("Security.TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, want)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		env, value, want string
	}{
		{"PAGE_SIZES", "16,big", "PAGE_SIZES"},
		{"REPORT_REFERENCE_WAGE", "lots", "REPORT_REFERENCE_WAGE"},
		{"SHEET_FETCH_TIMEOUT", "soon", "SHEET_FETCH_TIMEOUT"},
		{"RATE_LIMIT_ENABLED", "maybe", "RATE_LIMIT_ENABLED"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	var s struct {
		Token string `env:"CLIENTVIEW_TEST_TOKEN" required:"true"`
	}
	err := loadStruct(reflect.ValueOf(&s).Elem())
	if err == nil || !strings.Contains(err.Error(), "CLIENTVIEW_TEST_TOKEN") {
		t.Errorf("loadStruct() error = %v, want missing CLIENTVIEW_TEST_TOKEN", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"empty sheet url", func(c *Config) { c.Sheets.AccountsURL = " " }, "SHEET_ACCOUNTS_URL"},
		{"negative fetch timeout", func(c *Config) { c.Sheets.FetchTimeout = -time.Second }, "SHEET_FETCH_TIMEOUT"},
		{"no page sizes", func(c *Config) { c.Pagination.PageSizes = nil }, "PAGE_SIZES"},
		{"zero page size", func(c *Config) { c.Pagination.PageSizes = []int{0, 16} }, "PAGE_SIZES"},
		{"repeated page size", func(c *Config) { c.Pagination.PageSizes = []int{16, 16} }, "repeated"},
		{"zero wage", func(c *Config) { c.Report.ReferenceWage = 0 }, "REPORT_REFERENCE_WAGE"},
		{"zero export slots", func(c *Config) { c.Report.MaxConcurrentExports = 0 }, "EXPORT_MAX_CONCURRENT"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("validConfig().Validate() = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "LOG_FORMAT") {
		t.Errorf("Validate() = %v, want both problems", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_DropsQuery(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.ClientsURL = "https://example.com/sheet?key=secret"

	str := cfg.String()
	if strings.Contains(str, "secret") {
		t.Errorf("String() leaked the query string: %s", str)
	}
	if !strings.Contains(str, "https://example.com/sheet") {
		t.Errorf("String() should keep the URL path: %s", str)
	}
}
