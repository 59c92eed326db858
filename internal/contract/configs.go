package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gitrecap/gitrecap/schema"
)

// Default values for configuration.
const (
	DefaultScanDepth   = 2
	MaxScanDepth       = 10
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultRepoTimeout = time.Minute
	MinRecapYear       = 1970
)

// DefaultServerURL is the recap service endpoint used when no override is given.
const DefaultServerURL = "https://gitrecap.dev"

// CacheVersion tags cached scan payloads so format changes invalidate old entries.
const CacheVersion = 1

// CacheMaxAge defines how long a cached repository scan stays usable before
// the repository is extracted again.
const CacheMaxAge = 7 * 24 * time.Hour

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a recap run.
// This struct remains the "final, validated" config.
type Config struct {
	ScanDir     string
	Year        int
	AuthorEmail string
	Depth       int
	Workers     int
	RepoTimeout time.Duration
	Excludes    []string
	ResultLimit int // Repositories shown in the table view

	// StartTime and EndTime are the inclusive calendar bounds derived from Year.
	StartTime time.Time
	EndTime   time.Time

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	ServerURL string
	APIKey    string // Please use env var as this is plaintext
	DryRun    bool
	AssumeYes bool

	NoCache bool

	CacheBackend   schema.StoreBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.StoreBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ScanDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Year             int    `mapstructure:"year"`
	Author           string `mapstructure:"author"`
	Depth            int    `mapstructure:"depth"`
	Workers          int    `mapstructure:"workers"`
	Limit            int    `mapstructure:"limit"`
	RepoTimeout      string `mapstructure:"repo-timeout"`
	Exclude          string `mapstructure:"exclude"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	NoCache          bool   `mapstructure:"no-cache"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from reportCmd.Flags() ---
	Key    string `mapstructure:"key"`
	Server string `mapstructure:"server"`
	DryRun bool   `mapstructure:"dry-run"`
	Yes    bool   `mapstructure:"yes"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// CloneWithYear creates a copy of the Config targeting a different recap year.
func (c *Config) CloneWithYear(year int) *Config {
	clone := c.Clone()
	clone.Year = year
	clone.StartTime, clone.EndTime = YearRange(year)
	return clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processYearRange(cfg, input); err != nil {
		return err
	}
	if err := processUploadParams(cfg, input); err != nil {
		return err
	}
	if err := resolveScanDir(cfg, input); err != nil {
		return err
	}
	if err := resolveAuthor(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.StoreBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidStoreBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.StoreBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidStoreBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				historyDBPath := cfg.HistoryDBConnect
				if historyDBPath == "" {
					historyDBPath = GetHistoryDBFilePath()
				}
				if cacheDBPath == historyDBPath {
					return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.NoCache = input.NoCache

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Depth Validation ---
	if input.Depth < 0 || input.Depth > MaxScanDepth {
		return fmt.Errorf("depth must be between 0 and %d (received %d)", MaxScanDepth, input.Depth)
	}
	cfg.Depth = input.Depth

	// --- 1b. Result Limit Validation ---
	// The zero value means unset and falls back to the default, so
	// programmatic callers do not have to care about table sizing.
	switch {
	case input.Limit == 0:
		cfg.ResultLimit = DefaultResultLimit
	case input.Limit < 0 || input.Limit > MaxResultLimit:
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	default:
		cfg.ResultLimit = input.Limit
	}

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Repo Timeout Validation ---
	cfg.RepoTimeout = DefaultRepoTimeout
	if input.RepoTimeout != "" {
		timeout, err := time.ParseDuration(input.RepoTimeout)
		if err != nil {
			return fmt.Errorf("invalid repo-timeout '%s': %w", input.RepoTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("repo-timeout must be positive (received %s)", timeout)
		}
		cfg.RepoTimeout = timeout
	}

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 6. Excludes Processing ---
	// Dot-prefixed directories and node_modules are always skipped by
	// discovery; these are user additions on top of that.
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processYearRange validates the recap year and derives the scan window.
func processYearRange(cfg *Config, input *ConfigRawInput) error {
	currentYear := time.Now().Year()
	if input.Year < MinRecapYear || input.Year > currentYear {
		return fmt.Errorf("year must be between %d and %d (received %d)", MinRecapYear, currentYear, input.Year)
	}
	cfg.Year = input.Year
	cfg.StartTime, cfg.EndTime = YearRange(cfg.Year)
	return nil
}

// processUploadParams handles the report endpoint parameters.
func processUploadParams(cfg *Config, input *ConfigRawInput) error {
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(input.Server), "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://") && !strings.HasPrefix(cfg.ServerURL, "https://") {
		return fmt.Errorf("server URL must start with http:// or https:// (received %s)", cfg.ServerURL)
	}

	cfg.APIKey = strings.TrimSpace(input.Key)
	cfg.DryRun = input.DryRun
	cfg.AssumeYes = input.Yes
	return nil
}

// resolveScanDir resolves the scan root to an absolute directory path.
func resolveScanDir(cfg *Config, input *ConfigRawInput) error {
	scanDir := input.ScanDirStr
	if scanDir == "" {
		scanDir = "."
	}
	absScanDir, err := filepath.Abs(scanDir)
	if err != nil {
		return err
	}
	absScanDir = filepath.Clean(absScanDir)

	info, err := os.Stat(absScanDir)
	if err != nil {
		return fmt.Errorf("scan path %q does not exist", scanDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan path %q is not a directory", scanDir)
	}

	cfg.ScanDir = absScanDir
	return nil
}

// resolveAuthor fills in the author email, falling back to the ambient
// git configuration when the flag is unset. The email may remain empty;
// interactive commands prompt for it before scanning.
func resolveAuthor(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		configured, err := client.GetConfigValue(ctx, "user.email")
		if err != nil {
			return err
		}
		author = strings.TrimSpace(configured)
	}
	cfg.AuthorEmail = author
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
