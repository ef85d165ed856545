package signal

import (
	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// Coordinator 绿波协调器
// 功能：依据上游路口的相位状态对下游路口的东西轴紧急度做乘性增益，
// 使上游放行的车流到达下游时更可能遇到同轴绿灯，减少二次排队
// 说明：协调是单向耦合——下游依赖上游的相位状态，反向不成立，
// 对应两个路口之间车流的物理先后关系
type Coordinator struct {
	cfg config.Coordination
}

// NewCoordinator 创建绿波协调器
func NewCoordinator(cfg config.Coordination) *Coordinator {
	return &Coordinator{cfg: cfg}
}

// Adjust 调整下游东西轴紧急度
// 功能：上游处于东西绿灯时对下游东西轴紧急度乘以协调增益；
// 上游在协调窗口内刚切换过相位时再乘以额外的近期增益
// 参数：ewUrgency-下游东西轴原始紧急度，upstream-上游相位状态（本tick决策后的副本），tick-当前tick
// 返回：调整后的东西轴紧急度
func (c *Coordinator) Adjust(ewUrgency float64, upstream PhaseState, tick int32) float64 {
	if upstream.Current != entity.PhaseEastWestGreen {
		return ewUrgency
	}
	boosted := ewUrgency * c.cfg.Weight
	if tick-upstream.LastChangeTick < c.cfg.WindowTicks {
		boosted *= c.cfg.RecencyBoost
	}
	return boosted
}
