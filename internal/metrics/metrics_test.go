package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreValid(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(HTTPRequestsTotal))
	require.NoError(t, reg.Register(HTTPRequestDuration))
	require.NoError(t, reg.Register(AttestationsTotal))
	require.NoError(t, reg.Register(ShipmentEventsTotal))
	require.NoError(t, reg.Register(SweepRecordsTotal))
	require.NoError(t, reg.Register(SweepDuration))
	require.NoError(t, reg.Register(DispatchMessagesTotal))

	SweepRecordsTotal.WithLabelValues("reschedule", "processed").Add(2)
	assert.InDelta(t, 2, testutil.ToFloat64(SweepRecordsTotal.WithLabelValues("reschedule", "processed")), 0)

	_, err := reg.Gather()
	require.NoError(t, err)
}
