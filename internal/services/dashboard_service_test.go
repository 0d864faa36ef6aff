package services

import (
	"context"
	"testing"
	"time"

	"campbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceStats(t *testing.T) {
	freezeNow(t, time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local))
	stats := &fakeStats{}
	svc := DashboardService{Store: stats}

	st, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-18", st.Date)
	assert.Equal(t, "2025-06-18", stats.gotDate)
	assert.Equal(t, "2025-06-01", stats.gotMonth)
	assert.Equal(t, int64(12500), st.RevenueThisMonth)

	_, err = svc.Stats(context.Background(), "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", stats.gotMonth)

	_, err = svc.Stats(context.Background(), "18/06/2025")
	assert.True(t, domain.IsValidation(err))
}
