package pagination

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/pagination/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg.FirstPage)
	require.Equal(t, 1, *cfg.FirstPage)
	require.Nil(t, cfg.CurrentPage)
	require.Equal(t, 25, cfg.PageSize)
	require.Equal(t, Ptr(types.OrderDescending), cfg.Order)
	require.Empty(t, cfg.SortKey)

	t.Run("every call returns a fresh value", func(t *testing.T) {
		a := DefaultConfig()
		b := DefaultConfig()
		*a.FirstPage = 0

		require.Equal(t, 1, *b.FirstPage)
	})
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, 1, *cfg.FirstPage)
		require.Equal(t, 1, *cfg.CurrentPage)
		require.Equal(t, 25, cfg.PageSize)
		require.Equal(t, Ptr(types.OrderDescending), cfg.Order)
	})

	t.Run("partial config is merged onto the defaults", func(t *testing.T) {
		cfg := Config{PageSize: 4}
		SetDefaults(&cfg)

		require.Equal(t, 4, cfg.PageSize)
		require.Equal(t, 1, *cfg.FirstPage)
		require.Equal(t, types.OrderDescending, *cfg.Order)
	})

	t.Run("explicit none order is kept", func(t *testing.T) {
		cfg := Config{Order: Ptr(types.OrderNone)}
		SetDefaults(&cfg)

		require.Equal(t, types.OrderNone, *cfg.Order)
	})

	t.Run("current page follows a zero-based first page", func(t *testing.T) {
		cfg := Config{FirstPage: Ptr(0)}
		SetDefaults(&cfg)

		require.Equal(t, 0, *cfg.FirstPage)
		require.Equal(t, 0, *cfg.CurrentPage)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			FirstPage:   Ptr(0),
			CurrentPage: Ptr(3),
			PageSize:    4,
			SortKey:     "score",
			Order:       Ptr(types.OrderAscending),
		}
		SetDefaults(&cfg)

		require.Equal(t, 0, *cfg.FirstPage)
		require.Equal(t, 3, *cfg.CurrentPage)
		require.Equal(t, 4, cfg.PageSize)
		require.Equal(t, "score", cfg.SortKey)
		require.Equal(t, types.OrderAscending, *cfg.Order)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative page size", Config{PageSize: -1}},
		{"first page two", Config{FirstPage: Ptr(2), PageSize: 10}},
		{"negative first page", Config{FirstPage: Ptr(-1), PageSize: 10}},
		{"current page before first page", Config{FirstPage: Ptr(1), CurrentPage: Ptr(0), PageSize: 10}},
		{"unknown order", Config{PageSize: 10, Order: Ptr(types.Order(7))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cfg.Validate(), ErrRange)
		})
	}
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	t.Run("large page size", func(t *testing.T) {
		logger := &recordingLogger{}
		cfg := DefaultConfig()
		cfg.PageSize = LargePageSize + 1

		cfg.ValidateWithWarnings(logger)
		require.Len(t, logger.messages("warn"), 1)
	})

	t.Run("sort key without order", func(t *testing.T) {
		logger := &recordingLogger{}
		cfg := DefaultConfig()
		cfg.SortKey = "score"
		cfg.Order = Ptr(types.OrderNone)

		cfg.ValidateWithWarnings(logger)
		require.Len(t, logger.messages("warn"), 1)
	})

	t.Run("defaults are quiet", func(t *testing.T) {
		logger := &recordingLogger{}
		cfg := DefaultConfig()

		cfg.ValidateWithWarnings(logger)
		require.Empty(t, logger.messages("warn"))
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
firstPage: 0
currentPage: 2
pageSize: 4
sortKey: score
order: asc
`))
		require.NoError(t, err)

		require.Equal(t, 0, *cfg.FirstPage)
		require.Equal(t, 2, *cfg.CurrentPage)
		require.Equal(t, 4, cfg.PageSize)
		require.Equal(t, "score", cfg.SortKey)
		require.Equal(t, types.OrderAscending, *cfg.Order)
	})

	t.Run("partial document keeps defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("pageSize: 10\n"))
		require.NoError(t, err)

		require.Equal(t, 1, *cfg.FirstPage)
		require.Equal(t, 1, *cfg.CurrentPage)
		require.Equal(t, 10, cfg.PageSize)
		require.Equal(t, types.OrderDescending, *cfg.Order)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultPageSize, cfg.PageSize)
	})

	t.Run("non-integer page size is a type error", func(t *testing.T) {
		_, err := ParseConfig([]byte("pageSize: ten\n"))
		require.ErrorIs(t, err, ErrType)
	})

	t.Run("non-scalar order is a type error", func(t *testing.T) {
		_, err := ParseConfig([]byte("order: [asc]\n"))
		require.ErrorIs(t, err, ErrType)
	})

	t.Run("unknown order is a range error", func(t *testing.T) {
		_, err := ParseConfig([]byte("order: sideways\n"))
		require.ErrorIs(t, err, ErrRange)
	})

	t.Run("invalid first page is a range error", func(t *testing.T) {
		_, err := ParseConfig([]byte("firstPage: 5\n"))
		require.ErrorIs(t, err, ErrRange)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseConfig([]byte("pageSzie: 10\n"))
		require.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagination.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pageSize: 7\norder: none\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.PageSize)
	require.Equal(t, types.OrderNone, *cfg.Order)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageSize = 12
	cfg.SortKey = "name"

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "order: desc")

	parsed, err := ParseConfig(out)
	require.NoError(t, err)
	require.Equal(t, cfg.PageSize, parsed.PageSize)
	require.Equal(t, cfg.SortKey, parsed.SortKey)
	require.Equal(t, cfg.Order, parsed.Order)
}
