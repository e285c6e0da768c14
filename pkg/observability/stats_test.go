package observability

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM games`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	metrics := NewMetrics(prometheus.NewRegistry())
	collector := NewStatsCollector(db, metrics, NewLogger("error", "text", io.Discard))

	require.NoError(t, collector.Refresh(context.Background()))

	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.GamesTotal))
	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.ReviewsTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.UsersTotal))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRefreshQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM games`).
		WillReturnError(fmt.Errorf("table missing"))

	metrics := NewMetrics(prometheus.NewRegistry())
	collector := NewStatsCollector(db, metrics, NewLogger("error", "text", io.Discard))

	err = collector.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table missing")
}

func TestStatsCollectorBadSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Start refreshes once before validating the schedule.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM games`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	metrics := NewMetrics(prometheus.NewRegistry())
	collector := NewStatsCollector(db, metrics, NewLogger("error", "text", io.Discard))

	err = collector.Start("not a schedule")
	require.Error(t, err)
}
