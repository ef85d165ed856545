package output

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
)

// SQLiteSink SQLite指标输出流
// 功能：将每tick每路口的状态作为一行写入metrics表，便于事后SQL分析
type SQLiteSink struct {
	db     *sql.DB
	insert *sql.Stmt
}

// NewSQLite 创建SQLite指标输出流
// 功能：打开数据库文件，建表并准备插入语句
// 参数：path-数据库文件路径
func NewSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS metrics (
			tick INTEGER,
			intersection_id INTEGER,
			phase TEXT,
			queue_total INTEGER,
			avg_waiting REAL,
			phase_changes INTEGER,
			camera_angle REAL
		);
	`); err != nil {
		db.Close()
		return nil, err
	}
	insert, err := db.Prepare(`
		INSERT INTO metrics (tick, intersection_id, phase, queue_total, avg_waiting, phase_changes, camera_angle)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteSink{db: db, insert: insert}, nil
}

// Append 追加一条指标记录
func (s *SQLiteSink) Append(rec entity.MetricsRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, st := range rec.Intersections {
		if _, err := tx.Stmt(s.insert).Exec(
			rec.Tick, st.ID, st.Phase.String(),
			st.QueueTotal, st.AverageWaiting, st.PhaseChanges, st.CameraAngle,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close 关闭数据库
func (s *SQLiteSink) Close() error {
	s.insert.Close()
	return s.db.Close()
}
