package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/core/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionStats(t *testing.T) {

	assert := assert.New(t)

	m := New()
	stats := service.ConnectionStats{Reads: 3, Coalesced: 7, Failures: 1}
	m.BindConnectionStats(func() service.ConnectionStats { return stats })

	expected := `
# HELP luxtronik_reads_total Reads performed against the controller.
# TYPE luxtronik_reads_total counter
luxtronik_reads_total 3
# HELP luxtronik_coalesced_refreshes_total Refresh calls skipped inside the update window.
# TYPE luxtronik_coalesced_refreshes_total counter
luxtronik_coalesced_refreshes_total 7
`
	assert.NoError(testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"luxtronik_reads_total", "luxtronik_coalesced_refreshes_total"))
}

func TestInstrumentAndTickFailures(t *testing.T) {

	require := require.New(t)

	m := New()
	inst := m.Instrument()
	require.NotNil(inst)
	inst.RecordTime("Read", 20*time.Millisecond)
	inst.RecordTime("Read", 30*time.Millisecond)
	m.TickFailed()

	require.Equal(1, testutil.CollectAndCount(m.wireDuration))
	require.Equal(float64(1), testutil.ToFloat64(m.tickFailures))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(200, rec.Code)
	require.Contains(rec.Body.String(), `luxtronik_wire_operation_duration_seconds_count{operation="Read"} 2`)
}

func TestNilMetrics(t *testing.T) {

	var m *Metrics
	assert.Nil(t, m.Instrument())
	assert.NotPanics(t, func() {
		m.TickFailed()
		m.BindConnectionStats(nil)
	})
}
