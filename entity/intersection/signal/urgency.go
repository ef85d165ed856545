package signal

import (
	"math"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// 拥堵升级的乘性系数：固定加性公式对严重拥堵反应不足，越过阈值后对分数做乘法而非加法
const (
	emergencyMultiplier  = 2.0
	congestionMultiplier = 1.5
)

// Scorer 紧急度评分器
// 功能：将当前读数、相机可见性权重、等待时间与历史趋势合成为每个通行轴的
// 紧急度标量，供相位状态机比较
// 说明：独占持有本路口的交通历史缓冲区，每tick通过Record写入一次；
// 紧急度每tick重算，不跨tick持久化
type Scorer struct {
	name    string // 所属路口名称（日志用）
	cfg     config.Signal
	history *History
}

// NewScorer 创建紧急度评分器
// 参数：name-所属路口名称，cfg-信号算法配置
func NewScorer(name string, cfg config.Signal) *Scorer {
	return &Scorer{
		name:    name,
		cfg:     cfg,
		history: NewHistory(cfg.HistoryDepth),
	}
}

// Record 记录一个方向当前tick的停驻车辆数到历史缓冲区
func (s *Scorer) Record(direction entity.Direction, haltingCount int32) {
	s.history.Record(direction, haltingCount)
}

// Trend 获取一个方向的短期交通趋势
func (s *Scorer) Trend(direction entity.Direction) float64 {
	return s.history.Trend(direction)
}

// Score 计算一个通行轴的紧急度
// 功能：合成轴上两个方向的检测数据为单一紧急度标量
// 参数：axis-通行轴，readings-四个方向的当前读数，camera-相机（只读），f-当前焦点
// 返回：有限非负的紧急度分数
// 算法说明：
// 1. 停驻数与总车数按相机可见性加权求和，等待时间取两方向平均，
// 趋势取两方向趋势的最大值
// 2. 加权合成：停驻数主导（代表即时可见的拥堵），总车数为次级信号，
// 等待时间保证公平性，趋势使控制器不完全滞后于负载
// 3. 越过紧急/拥堵阈值后整体分数乘以升级系数
// 4. 有排队时追加清队奖励，奖励随排队长度线性增长
func (s *Scorer) Score(
	axis entity.AxisPair,
	readings *[entity.DirectionCount]entity.DetectorReading,
	camera *Camera,
	f Focus,
) float64 {
	dirs := axis.Directions()

	var halting, total, waiting float64
	for _, d := range dirs {
		r := readings[d]
		w := camera.VisibilityWeight(d, f)
		halting += float64(r.HaltingCount) * w
		total += float64(r.TotalCount) * w
		waiting += r.AverageWaitingSeconds
	}
	waiting /= float64(len(dirs))
	trend := math.Max(s.history.Trend(dirs[0]), s.history.Trend(dirs[1]))

	urgency := halting*s.cfg.HaltingWeight +
		total*s.cfg.TotalWeight +
		waiting*s.cfg.WaitingWeight +
		math.Max(0, trend)*s.cfg.TrendWeight

	if halting >= float64(s.cfg.EmergencyThreshold) {
		urgency *= emergencyMultiplier
		log.Warnf("%s: severe congestion on %v axis (%.0f vehicles halting)", s.name, axis, halting)
	} else if halting >= float64(s.cfg.CongestionThreshold) {
		urgency *= congestionMultiplier
	}

	if halting > 0 {
		urgency += s.cfg.QueueClearingBonus * halting
	}
	return urgency
}
