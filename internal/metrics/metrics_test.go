package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(ordersCreated.WithLabelValues("online"))
	IncOrderCreated("online")
	assert.Equal(t, before+1, testutil.ToFloat64(ordersCreated.WithLabelValues("online")))

	IncScheduleConflict("coach")
	assert.GreaterOrEqual(t, testutil.ToFloat64(scheduleConflicts.WithLabelValues("coach")), 1.0)

	ObserveHTTP("GET", "/api/health", "200", 0.01)
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/health", "200")), 1.0)
}
