package output

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// Summary 运行摘要收集器
// 功能：累积每tick的路口状态，在关闭时输出全程的排队与等待统计
// 说明：作为一个总是启用的输出流挂在组合器末尾，数据只进内存不落盘
type Summary struct {
	cfgs    []config.Intersection
	queues  map[int32][]float64
	waits   map[int32][]float64
	changes map[int32]int32
}

// NewSummary 创建运行摘要收集器
// 参数：cfgs-路口配置（决定输出顺序）
func NewSummary(cfgs []config.Intersection) *Summary {
	return &Summary{
		cfgs:    cfgs,
		queues:  make(map[int32][]float64),
		waits:   make(map[int32][]float64),
		changes: make(map[int32]int32),
	}
}

// Append 追加一条指标记录
func (s *Summary) Append(rec entity.MetricsRecord) error {
	for _, st := range rec.Intersections {
		s.queues[st.ID] = append(s.queues[st.ID], float64(st.QueueTotal))
		s.waits[st.ID] = append(s.waits[st.ID], st.AverageWaiting)
		s.changes[st.ID] = st.PhaseChanges
	}
	return nil
}

// Close 输出运行摘要
// 功能：对每个路口输出全程的平均排队（含标准差）、平均等待与相位切换次数
func (s *Summary) Close() error {
	for _, c := range s.cfgs {
		queues := s.queues[c.ID]
		if len(queues) == 0 {
			continue
		}
		std := 0.0
		if len(queues) > 1 {
			std = stat.StdDev(queues, nil)
		}
		log.Infof(
			"%s: avg queue %.2f (std %.2f), avg waiting %.1fs, %d phase changes over %d ticks",
			c.Name,
			stat.Mean(queues, nil), std,
			stat.Mean(s.waits[c.ID], nil),
			s.changes[c.ID],
			len(queues),
		)
	}
	return nil
}
