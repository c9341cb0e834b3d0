package contract

import (
	"maps"
	"strings"
	"time"

	"github.com/zarmaks/gitfolio/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit    = 25
	MaxResultLimit        = 1000
	DefaultTopGaps        = 3
	DefaultCheckThreshold = 50.0
	DefaultCacheTTL       = 6 * time.Hour
	DefaultAPIBaseURL     = "https://api.github.com"
	DefaultHTTPTimeout    = 30 * time.Second
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// CriterionWeightsRaw holds custom criterion weights from the YAML config
// file. Use float64 pointers so absent fields fall back to defaults.
type CriterionWeightsRaw struct {
	Documentation *float64 `mapstructure:"documentation"`
	Testing       *float64 `mapstructure:"testing"`
	Activity      *float64 `mapstructure:"activity"`
	Popularity    *float64 `mapstructure:"popularity"`
	Organization  *float64 `mapstructure:"organization"`
}

// Config holds the runtime configuration for an analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Username string
	RepoName string
	Role     string

	Token       string // Please use env var as this is plaintext
	APIBaseURL  string
	HTTPTimeout time.Duration

	ResultLimit int
	TopGaps     int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseEmojis   bool
	UseColors   bool

	Refresh  bool // Bypass the snapshot cache and refetch
	CacheTTL time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	CheckThreshold float64

	// Weights is the final criterion weight map, computed from defaults plus
	// config file overrides and validated to sum to 1.0.
	Weights map[schema.CriterionKey]float64

	// Catalog is the validated role catalog.
	Catalog []schema.RoleProfile
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	UsernameStr string
	RepoNameStr string
	RoleStr     string

	// --- Fields from rootCmd.PersistentFlags() ---
	Token            string `mapstructure:"token"`
	APIBaseURL       string `mapstructure:"api-url"`
	Timeout          string `mapstructure:"timeout"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	Refresh          bool   `mapstructure:"refresh"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from learnCmd.Flags() ---
	TopGaps int `mapstructure:"top-gaps"`

	// --- Fields from checkCmd.Flags() ---
	Threshold float64 `mapstructure:"threshold"`

	// --- Custom weights from config file ---
	Weights CriterionWeightsRaw `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Weights != nil {
		clone.Weights = make(map[schema.CriterionKey]float64, len(c.Weights))
		maps.Copy(clone.Weights, c.Weights)
	}
	if c.Catalog != nil {
		clone.Catalog = make([]schema.RoleProfile, len(c.Catalog))
		copy(clone.Catalog, c.Catalog)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Any failure is a ConfigurationError;
// nothing runs on a half-valid config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processRoleCatalog(cfg); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Username = strings.TrimSpace(input.UsernameStr)
	cfg.RepoName = strings.TrimSpace(input.RepoNameStr)
	cfg.Role = input.RoleStr
	cfg.Token = input.Token
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Refresh = input.Refresh

	cfg.APIBaseURL = strings.TrimRight(input.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return NewConfigurationError("emoji", "%v", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return NewConfigurationError("color", "%v", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return NewConfigurationError("limit", "must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. TopGaps Validation ---
	if input.TopGaps < 0 {
		return NewConfigurationError("top-gaps", "must not be negative (received %d)", input.TopGaps)
	}
	cfg.TopGaps = input.TopGaps
	if cfg.TopGaps == 0 {
		cfg.TopGaps = DefaultTopGaps
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return NewConfigurationError("output", "invalid format '%s'. must be text, csv, json", input.Output)
	}

	// --- 4. Timeout Validation ---
	cfg.HTTPTimeout = DefaultHTTPTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return NewConfigurationError("timeout", "invalid duration '%s': %v", input.Timeout, err)
		}
		if d <= 0 {
			return NewConfigurationError("timeout", "must be positive (received %s)", d)
		}
		cfg.HTTPTimeout = d
	}

	// --- 5. Cache TTL Validation ---
	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		d, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return NewConfigurationError("cache-ttl", "invalid duration '%s': %v", input.CacheTTL, err)
		}
		if d < 0 {
			return NewConfigurationError("cache-ttl", "must not be negative (received %s)", d)
		}
		cfg.CacheTTL = d
	}

	// --- 6. Check Threshold Validation ---
	cfg.CheckThreshold = input.Threshold
	if cfg.CheckThreshold == 0 {
		cfg.CheckThreshold = DefaultCheckThreshold
	}
	if cfg.CheckThreshold < 0 || cfg.CheckThreshold > 100 {
		return NewConfigurationError("threshold", "must be between 0 and 100 (received %.2f)", input.Threshold)
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return NewConfigurationError("db-connect", "connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return NewConfigurationError("db-connect", "MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return NewConfigurationError("db-connect", "MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return NewConfigurationError("db-connect", "connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return NewConfigurationError("db-connect", "PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return NewConfigurationError("db-connect", "PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates snapshot cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return NewConfigurationError("cache-backend", "invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return NewConfigurationError("history-backend", "invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Cache and history must not share a database
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			historyDBPath := cfg.HistoryDBConnect
			if historyDBPath == "" {
				historyDBPath = GetHistoryDBFilePath()
			}
			if cacheDBPath == historyDBPath {
				return NewConfigurationError("history-db-connect", "cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// ProcessWeightsRawInput merges the raw criterion weight overrides over the
// defaults. If validateSum is true, the merged weights must sum to 1.0.
func ProcessWeightsRawInput(raw CriterionWeightsRaw, validateSum bool) (map[schema.CriterionKey]float64, error) {
	weights := schema.GetDefaultWeights()

	overrides := map[schema.CriterionKey]*float64{
		schema.CriterionDocumentation: raw.Documentation,
		schema.CriterionTesting:       raw.Testing,
		schema.CriterionActivity:      raw.Activity,
		schema.CriterionPopularity:    raw.Popularity,
		schema.CriterionOrganization:  raw.Organization,
	}
	for key, value := range overrides {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, NewConfigurationError("weights", "weight for %s must not be negative (received %.3f)", key, *value)
		}
		weights[key] = *value
	}

	if validateSum {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if sum < 0.999 || sum > 1.001 {
			return nil, NewConfigurationError("weights", "criterion weights must sum to 1.0, got %.3f", sum)
		}
	}

	return weights, nil
}

// processWeights converts the raw input into the final cfg.Weights map and
// validates the sum invariant.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.Weights = weights
	return nil
}

// processRoleCatalog loads and validates the role catalog.
func processRoleCatalog(cfg *Config) error {
	if cfg.Catalog == nil {
		cfg.Catalog = schema.GetDefaultRoleCatalog()
	}
	return ValidateRoleCatalog(cfg.Catalog)
}

// ValidateRoleCatalog checks catalog invariants: non-empty unique role
// names (after normalization, aliases included), required levels in (0,1],
// and non-nil resources on every skill.
func ValidateRoleCatalog(catalog []schema.RoleProfile) error {
	if len(catalog) == 0 {
		return NewConfigurationError("catalog", "role catalog must not be empty")
	}

	seen := make(map[string]string) // normalized name -> role that claimed it
	claim := func(name, role string) error {
		key := schema.NormalizeRoleName(name)
		if key == "" {
			return NewConfigurationError("catalog", "role %q has an empty name or alias", role)
		}
		if prev, ok := seen[key]; ok && prev != role {
			return NewConfigurationError("catalog", "name %q is claimed by both %q and %q", key, prev, role)
		}
		seen[key] = role
		return nil
	}

	for _, role := range catalog {
		if err := claim(role.Name, role.Name); err != nil {
			return err
		}
		for _, alias := range role.Aliases {
			if err := claim(alias, role.Name); err != nil {
				return err
			}
		}
		if len(role.Skills) == 0 {
			return NewConfigurationError("catalog", "role %q has no skills", role.Name)
		}
		for _, skill := range role.Skills {
			if strings.TrimSpace(skill.Skill) == "" {
				return NewConfigurationError("catalog", "role %q has a skill with an empty name", role.Name)
			}
			if skill.Required <= 0 || skill.Required > 1 {
				return NewConfigurationError("catalog", "skill %q of role %q has required level %.3f outside (0,1]", skill.Skill, role.Name, skill.Required)
			}
			if skill.Resources == nil {
				return NewConfigurationError("catalog", "skill %q of role %q has nil resources", skill.Skill, role.Name)
			}
		}
	}

	return nil
}
