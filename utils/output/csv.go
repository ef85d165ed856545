package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// CSVSink CSV指标输出流
// 功能：每tick写出一行，路口状态按走廊顺序展开为固定列
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
	order  []int32 // 路口ID的列顺序
}

// NewCSV 创建CSV指标输出流
// 功能：打开（截断）CSV文件并写入表头
// 参数：path-文件路径，cfgs-路口配置（决定列顺序与列名前缀）
func NewCSV(path string, cfgs []config.Intersection) (*CSVSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &CSVSink{
		file:   file,
		writer: csv.NewWriter(file),
		order: lo.Map(cfgs, func(c config.Intersection, _ int) int32 {
			return c.ID
		}),
	}

	header := []string{"tick"}
	for _, c := range cfgs {
		header = append(header,
			c.Name+"_phase",
			c.Name+"_queue",
			c.Name+"_waiting",
			c.Name+"_phase_changes",
			c.Name+"_camera_angle",
		)
	}
	if err := s.writer.Write(header); err != nil {
		file.Close()
		return nil, err
	}
	return s, nil
}

// Append 追加一条指标记录
// 说明：记录中的路口顺序与构造时的配置顺序一致（管理器按走廊顺序收集）
func (s *CSVSink) Append(rec entity.MetricsRecord) error {
	row := []string{strconv.Itoa(int(rec.Tick))}
	for i, st := range rec.Intersections {
		if i >= len(s.order) || st.ID != s.order[i] {
			return fmt.Errorf("metrics record order mismatch at column %d (id %d)", i, st.ID)
		}
		row = append(row,
			st.Phase.String(),
			strconv.Itoa(int(st.QueueTotal)),
			strconv.FormatFloat(st.AverageWaiting, 'f', 1, 64),
			strconv.Itoa(int(st.PhaseChanges)),
			strconv.FormatFloat(st.CameraAngle, 'f', 1, 64),
		)
	}
	return s.writer.Write(row)
}

// Close 刷新并关闭CSV文件
func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
