package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordNavigation("next", true)
	p.RecordNavigation("next", true)
	p.RecordNavigation("next", false)
	p.RecordValidationFailure("range")
	p.RecordSync("insert", "window")
	p.RecordEviction()
	p.RecordRefill()
	p.RecordRefill()
	p.RecordWindowSize(4)
	p.RecordTotalRecords(15)

	require.InDelta(t, 2, testutil.ToFloat64(p.navigations.WithLabelValues("next", "true")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.navigations.WithLabelValues("next", "false")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.validationFailures.WithLabelValues("range")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.syncs.WithLabelValues("insert", "window")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.evictions), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.refills), 0)
	require.InDelta(t, 4, testutil.ToFloat64(p.windowSize), 0)
	require.InDelta(t, 15, testutil.ToFloat64(p.totalRecords), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)
	for _, mf := range families {
		require.Contains(t, mf.GetName(), "test_")
	}
}

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "pagination", p.namespace)
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "lazy")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}
