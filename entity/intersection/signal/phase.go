package signal

import (
	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// PhaseState 相位状态
// 功能：存储一个路口的当前相位与计时信息
// 说明：TimeSinceChange恰好在相位切换时清零，其余每tick加一；
// Changes为累计相位切换次数，仅用于指标，不参与决策
type PhaseState struct {
	Current         entity.Phase // 当前相位
	TimeSinceChange int32        // 当前相位已持续的tick数
	LastChangeTick  int32        // 最近一次相位切换的tick
	Changes         int32        // 累计相位切换次数
}

// Decision 相位决策结果
type Decision struct {
	Target entity.Phase // 目标相位（不切换时等于当前相位）
	Change bool         // 是否需要切换
	Forced bool         // 是否为最长绿灯时间触发的强制切换
}

// Machine 相位状态机
// 功能：持有一个路口的相位状态，每tick依据紧急度与时间约束决定相位去留
// 说明：最短绿灯时间防止相位振荡并模拟清空约束，最长绿灯时间保证单侧
// 持续高负载下弱势轴不会被无限饿死；状态机每tick必然结束于确定的相位
type Machine struct {
	cfg      config.Signal
	state    PhaseState
	snapshot PhaseState // Prepare阶段的快照，供外部读取
}

// NewMachine 创建相位状态机
// 功能：初始化相位状态机，初始相位为东西绿灯、计时器为零
// 参数：cfg-信号算法配置，startTick-起始tick
func NewMachine(cfg config.Signal, startTick int32) *Machine {
	m := &Machine{
		cfg: cfg,
		state: PhaseState{
			Current:        entity.PhaseEastWestGreen,
			LastChangeTick: startTick,
		},
	}
	m.snapshot = m.state
	return m
}

// Prepare 准备阶段，写入快照
func (m *Machine) Prepare() {
	m.snapshot = m.state
}

// Snapshot 获取Prepare阶段的相位状态快照
func (m *Machine) Snapshot() PhaseState {
	return m.snapshot
}

// State 获取当前相位状态（副本）
// 说明：下游路口的协调器在上游本tick更新完成后读取该状态，
// 保证读到的是一致的决策结果而非更新中间态
func (m *Machine) State() PhaseState {
	return m.state
}

// Decide 决定本tick的相位去留（不修改状态）
// 功能：比较两个通行轴的紧急度并结合时间约束产生决策
// 参数：ewUrgency-东西轴紧急度，nsUrgency-南北轴紧急度
// 返回：相位决策
// 算法说明：
// 1. 绿灯持续达到最短绿灯时间且对向紧急度超过当前轴紧急度的switchRatio倍
// 时切换到对向相位
// 2. 否则绿灯持续达到最长绿灯时间时强制切换
// 3. 其余情况保持当前相位
func (m *Machine) Decide(ewUrgency, nsUrgency float64) Decision {
	var active, opposing float64
	if m.state.Current == entity.PhaseEastWestGreen {
		active, opposing = ewUrgency, nsUrgency
	} else {
		active, opposing = nsUrgency, ewUrgency
	}

	if m.state.TimeSinceChange >= m.cfg.MinGreenTicks && opposing > active*m.cfg.SwitchRatio {
		return Decision{Target: m.state.Current.Other(), Change: true}
	}
	if m.state.TimeSinceChange >= m.cfg.MaxGreenTicks {
		return Decision{Target: m.state.Current.Other(), Change: true, Forced: true}
	}
	return Decision{Target: m.state.Current}
}

// Commit 提交相位切换
// 功能：将状态机切换到目标相位，清零计时器并累加切换计数
// 参数：tick-当前tick，target-目标相位
// 说明：目标相位与当前相位相同时等价于Hold，不累加切换计数（幂等）
func (m *Machine) Commit(tick int32, target entity.Phase) {
	if target == m.state.Current {
		m.Hold()
		return
	}
	m.state.Current = target
	m.state.TimeSinceChange = 0
	m.state.LastChangeTick = tick
	m.state.Changes++
}

// Hold 保持当前相位，计时器加一
func (m *Machine) Hold() {
	m.state.TimeSinceChange++
}
