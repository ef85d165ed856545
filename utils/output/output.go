// 指标输出，将每tick的走廊状态落地到CSV与SQLite，并在结束时输出运行摘要
// 记录携带的是各tick Prepare阶段的状态快照，tick N决策的相位切换出现在
// tick N+1的记录中
package output

import (
	"fmt"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// multiSink 输出流组合器
// 功能：将一条指标记录广播到多个输出流
// 说明：单个输出流的失败不阻止其余输出流写入，返回第一个遇到的错误
type multiSink struct {
	sinks []entity.IMetricsSink
}

// New 根据输出配置创建指标输出流
// 功能：按配置启用CSV与SQLite输出，并总是附加运行摘要收集器
// 参数：cfg-输出配置，cfgs-路口配置（决定输出列与行的顺序）
// 返回：组合后的输出流与错误信息
func New(cfg config.Output, cfgs []config.Intersection) (entity.IMetricsSink, error) {
	m := &multiSink{}
	if cfg.CSV != "" {
		s, err := NewCSV(cfg.CSV, cfgs)
		if err != nil {
			return nil, fmt.Errorf("failed to open csv output: %w", err)
		}
		m.sinks = append(m.sinks, s)
		log.Infof("csv output enabled: %s", cfg.CSV)
	}
	if cfg.SQLite != "" {
		s, err := NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite output: %w", err)
		}
		m.sinks = append(m.sinks, s)
		log.Infof("sqlite output enabled: %s", cfg.SQLite)
	}
	m.sinks = append(m.sinks, NewSummary(cfgs))
	return m, nil
}

// Append 追加一条指标记录到所有输出流
func (m *multiSink) Append(rec entity.MetricsRecord) error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Append(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close 关闭所有输出流
func (m *multiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
