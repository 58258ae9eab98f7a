package pagination

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/pagination/types"
)

// Default configuration values.
const (
	DefaultFirstPage = 1
	DefaultPageSize  = 25

	// LargePageSize is the page size above which ValidateWithWarnings warns.
	LargePageSize = 1000
)

// Config holds the initial pagination settings of a Pager.
//
// Pointer fields distinguish "unset" from a legitimate zero: FirstPage may be 0,
// CurrentPage defaults to FirstPage and Order may be explicitly "none".
// Unset fields are filled from DefaultConfig by SetDefaults.
type Config struct {
	// FirstPage is the page numbering origin, 0 or 1 (default 1).
	FirstPage *int `yaml:"firstPage"`

	// CurrentPage is the page materialized at construction (default FirstPage).
	CurrentPage *int `yaml:"currentPage"`

	// PageSize is the number of items per page (default 25).
	PageSize int `yaml:"pageSize"`

	// SortKey names the attribute the full collection is sorted by. Informational.
	SortKey string `yaml:"sortKey"`

	// Order is the sort direction: "asc", "desc" or "none" (default "desc"). Informational.
	Order *types.Order `yaml:"order"`
}

// DefaultConfig returns the default configuration.
//
// Every call returns a fresh value; no default is shared between pagers.
//
// Returns:
//   - Config: FirstPage 1, PageSize 25, Order descending, CurrentPage unset
func DefaultConfig() Config {
	return Config{
		FirstPage: Ptr(DefaultFirstPage),
		PageSize:  DefaultPageSize,
		Order:     Ptr(types.OrderDescending),
	}
}

// SetDefaults fills unset fields with defaults, so a partial Config is merged
// onto DefaultConfig.
//
// Parameters:
//   - cfg: Configuration to complete in place
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.FirstPage == nil {
		cfg.FirstPage = defaults.FirstPage
	}
	if cfg.CurrentPage == nil {
		cfg.CurrentPage = Ptr(*cfg.FirstPage)
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.Order == nil {
		cfg.Order = defaults.Order
	}
}

// Validate checks the configuration for invalid values.
//
// Returns:
//   - error: ErrRange describing the first invalid field, nil if valid
func (cfg *Config) Validate() error {
	if cfg.PageSize < 1 {
		return fmt.Errorf("%w: pageSize must be >= 1, got %d", ErrRange, cfg.PageSize)
	}

	if cfg.FirstPage != nil && *cfg.FirstPage != 0 && *cfg.FirstPage != 1 {
		return fmt.Errorf("%w: firstPage must be 0 or 1, got %d", ErrRange, *cfg.FirstPage)
	}

	if cfg.CurrentPage != nil {
		first := DefaultFirstPage
		if cfg.FirstPage != nil {
			first = *cfg.FirstPage
		}
		if *cfg.CurrentPage < first {
			return fmt.Errorf("%w: currentPage %d is before firstPage %d", ErrRange, *cfg.CurrentPage, first)
		}
	}

	if cfg.Order != nil {
		switch *cfg.Order {
		case types.OrderAscending, types.OrderNone, types.OrderDescending:
		default:
			return fmt.Errorf("%w: unknown order %d", ErrRange, int(*cfg.Order))
		}
	}

	return nil
}

// ValidateWithWarnings logs warnings for legal but questionable values.
//
// Called by New after Validate, once the logger is known.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.PageSize > LargePageSize {
		logger.Warn(
			"page size is very large, every navigation copies a whole page",
			"pageSize", cfg.PageSize,
			"recommended", fmt.Sprintf("<= %d", LargePageSize),
		)
	}

	if cfg.SortKey != "" && cfg.Order != nil && *cfg.Order == types.OrderNone {
		logger.Warn("sortKey is set but order is none", "sortKey", cfg.SortKey)
	}
}

// initialState builds the construction-time candidate state for a full
// collection of the given length. SetDefaults must have run.
func (cfg *Config) initialState(records int) types.State {
	return types.State{
		FirstPage:    *cfg.FirstPage,
		CurrentPage:  *cfg.CurrentPage,
		PageSize:     cfg.PageSize,
		TotalRecords: records,
		SortKey:      cfg.SortKey,
		Order:        *cfg.Order,
	}
}

// ParseConfig decodes a YAML document onto DefaultConfig, applies defaults and
// validates the result. Unknown fields are rejected.
//
// Parameters:
//   - data: YAML document (may be empty)
//
// Returns:
//   - Config: Complete configuration
//   - error: ErrType for values of the wrong YAML type, ErrRange for invalid values
//
// Example:
//
//	cfg, err := pagination.ParseConfig([]byte("pageSize: 10\nfirstPage: 0\n"))
//	pager, err := pagination.New(full, pagination.WithConfig(cfg))
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return Config{}, fmt.Errorf("%w: %s", ErrType, strings.Join(typeErr.Errors, "; "))
		}

		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Complete configuration
//   - error: File read error, or any error from ParseConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// Ptr returns a pointer to v. Handy for the optional Config fields.
func Ptr[V any](v V) *V {
	return &v
}
