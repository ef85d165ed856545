package config

import "fmt"

// 信号控制算法参数的默认值，对应原型系统实测表现最稳定的一组常量
const (
	DefaultMinGreenTicks       = 20
	DefaultMaxGreenTicks       = 90
	DefaultSwitchRatio         = 1.4
	DefaultHaltingWeight       = 4.0
	DefaultTotalWeight         = 1.5
	DefaultWaitingWeight       = 0.8
	DefaultTrendWeight         = 2.5
	DefaultQueueClearingBonus  = 3.0
	DefaultCongestionThreshold = 18
	DefaultEmergencyThreshold  = 25
	DefaultHistoryDepth        = 10

	DefaultRotationSpeed        = 10.0
	DefaultFieldOfView          = 90.0
	DefaultSecondaryVisibility  = 0.7
	DefaultPeripheralVisibility = 0.3

	DefaultCoordinationWeight = 2.5
	DefaultRecencyBoost       = 1.3
	DefaultWindowTicks        = 40
)

// RuntimeConfig 运行时配置
// 功能：存储控制器运行时的配置信息，所有默认值已填充、合法性已校验
type RuntimeConfig struct {
	All           Config         // 全部配置
	C             Control        // 全局控制配置
	Signal        Signal         // 信号算法配置（默认值已填充）
	Intersections []Intersection // 路口配置（按走廊顺序）
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，填充默认值并校验配置的合法性
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针与错误信息
// 算法说明：
// 1. 对信号算法的每个未指定参数填充默认值
// 2. 校验时间参数（总tick数为正、最短绿灯不超过最长绿灯）
// 3. 校验路口列表（非空、ID不重复、上游路口存在且出现在下游之前）
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control
	rc.Signal = withSignalDefaults(config.Signal)
	rc.Intersections = config.Intersections

	if config.Control.Step.Total <= 0 {
		return nil, fmt.Errorf("control.step.total must be positive, got %d", config.Control.Step.Total)
	}
	if rc.Signal.MinGreenTicks > rc.Signal.MaxGreenTicks {
		return nil, fmt.Errorf(
			"signal.min_green_ticks %d exceeds signal.max_green_ticks %d",
			rc.Signal.MinGreenTicks, rc.Signal.MaxGreenTicks,
		)
	}
	if len(config.Intersections) == 0 {
		return nil, fmt.Errorf("at least one intersection must be configured")
	}
	seen := make(map[int32]struct{})
	for _, ic := range config.Intersections {
		if _, ok := seen[ic.ID]; ok {
			return nil, fmt.Errorf("intersections have duplicated ids %d", ic.ID)
		}
		if ic.UpstreamID != nil {
			if *ic.UpstreamID == ic.ID {
				return nil, fmt.Errorf("intersection %d coordinates with itself", ic.ID)
			}
			// 上游必须先于下游出现，保证更新顺序满足单向协调
			if _, ok := seen[*ic.UpstreamID]; !ok {
				return nil, fmt.Errorf(
					"intersection %d references upstream %d that does not precede it",
					ic.ID, *ic.UpstreamID,
				)
			}
		}
		seen[ic.ID] = struct{}{}
	}

	return rc, nil
}

// withSignalDefaults 填充信号算法配置的默认值
func withSignalDefaults(s Signal) Signal {
	setI := func(v *int32, d int32) {
		if *v == 0 {
			*v = d
		}
	}
	setF := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	setI(&s.MinGreenTicks, DefaultMinGreenTicks)
	setI(&s.MaxGreenTicks, DefaultMaxGreenTicks)
	setF(&s.SwitchRatio, DefaultSwitchRatio)
	setF(&s.HaltingWeight, DefaultHaltingWeight)
	setF(&s.TotalWeight, DefaultTotalWeight)
	setF(&s.WaitingWeight, DefaultWaitingWeight)
	setF(&s.TrendWeight, DefaultTrendWeight)
	setF(&s.QueueClearingBonus, DefaultQueueClearingBonus)
	setI(&s.CongestionThreshold, DefaultCongestionThreshold)
	setI(&s.EmergencyThreshold, DefaultEmergencyThreshold)
	if s.HistoryDepth == 0 {
		s.HistoryDepth = DefaultHistoryDepth
	}
	setF(&s.Camera.RotationSpeed, DefaultRotationSpeed)
	setF(&s.Camera.FieldOfView, DefaultFieldOfView)
	setF(&s.Camera.SecondaryVisibility, DefaultSecondaryVisibility)
	setF(&s.Camera.PeripheralVisibility, DefaultPeripheralVisibility)
	setF(&s.Coordination.Weight, DefaultCoordinationWeight)
	setF(&s.Coordination.RecencyBoost, DefaultRecencyBoost)
	setI(&s.Coordination.WindowTicks, DefaultWindowTicks)
	return s
}
