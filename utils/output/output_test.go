package output_test

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
	"github.com/kcc-smart-traffic/corridor-sim/utils/output"
)

func testIntersections() []config.Intersection {
	return []config.Intersection{
		{ID: 100, Name: "junction-1"},
		{ID: 200, Name: "junction-2"},
	}
}

func testRecord(tick int32) entity.MetricsRecord {
	return entity.MetricsRecord{
		Tick: tick,
		Intersections: []entity.IntersectionStatus{
			{ID: 100, Phase: entity.PhaseEastWestGreen, QueueTotal: 12, AverageWaiting: 8.5, PhaseChanges: 2, CameraAngle: 90},
			{ID: 200, Phase: entity.PhaseNorthSouthGreen, QueueTotal: 3, AverageWaiting: 1.5, PhaseChanges: 1, CameraAngle: 270},
		},
	}
}

func TestCSVSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	s, err := output.NewCSV(path, testIntersections())
	assert.NoError(t, err)
	assert.NoError(t, s.Append(testRecord(0)))
	assert.NoError(t, s.Append(testRecord(1)))
	assert.NoError(t, s.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "tick", rows[0][0])
	assert.Equal(t, "junction-1_phase", rows[0][1])
	assert.Equal(t, "junction-2_camera_angle", rows[0][10])
	assert.Equal(t, []string{"1", "EWGreen", "12", "8.5", "2", "90.0", "NSGreen", "3", "1.5", "1", "270.0"}, rows[2])
}

func TestCSVSinkOrderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	s, err := output.NewCSV(path, testIntersections())
	assert.NoError(t, err)
	defer s.Close()

	rec := testRecord(0)
	rec.Intersections[0], rec.Intersections[1] = rec.Intersections[1], rec.Intersections[0]
	assert.Error(t, s.Append(rec))
}

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	s, err := output.NewSQLite(path)
	assert.NoError(t, err)
	assert.NoError(t, s.Append(testRecord(0)))
	assert.NoError(t, s.Append(testRecord(1)))
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite", path)
	assert.NoError(t, err)
	defer db.Close()
	var rows int
	assert.NoError(t, db.QueryRow("SELECT COUNT(*) FROM metrics").Scan(&rows))
	assert.Equal(t, 4, rows)
	var queue int
	assert.NoError(t, db.QueryRow(
		"SELECT queue_total FROM metrics WHERE tick = 1 AND intersection_id = 100").Scan(&queue))
	assert.Equal(t, 12, queue)
}

func TestSummary(t *testing.T) {
	s := output.NewSummary(testIntersections())
	for tick := int32(0); tick < 10; tick++ {
		assert.NoError(t, s.Append(testRecord(tick)))
	}
	assert.NoError(t, s.Close())
}

func TestMultiSink(t *testing.T) {
	dir := t.TempDir()
	m, err := output.New(config.Output{
		CSV:    filepath.Join(dir, "metrics.csv"),
		SQLite: filepath.Join(dir, "metrics.db"),
	}, testIntersections())
	assert.NoError(t, err)
	assert.NoError(t, m.Append(testRecord(0)))
	assert.NoError(t, m.Close())

	_, err = os.Stat(filepath.Join(dir, "metrics.csv"))
	assert.NoError(t, err)
}
