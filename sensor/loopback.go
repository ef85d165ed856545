package sensor

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kcc-smart-traffic/corridor-sim/clock"
	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
	"github.com/kcc-smart-traffic/corridor-sim/utils/input"
	"github.com/kcc-smart-traffic/corridor-sim/utils/randengine"
)

var (
	saturationFlow = flag.Float64("sensor.saturation_flow", 2.5, "绿灯时每个进口每tick的最大放行车辆数")
	joinRate       = flag.Float64("sensor.join_rate", 0.5, "检测范围内行驶车辆每tick汇入排队的比例")
	continueProb   = flag.Float64("sensor.continue_prob", 0.8, "上游东进口放行车辆继续驶向下游路口的概率")
)

var (
	ErrUnknownIntersection = errors.New("unknown intersection")
	ErrUnknownPhaseIndex   = errors.New("unknown phase index")
)

// 主线到达按方向分配的权重（东行略重，模拟典型通勤走廊）
var mainlineSplit = []float64{0.55, 0.45}

// approachState 单个进口的微观状态
type approachState struct {
	queue   float64 // 排队车辆数
	transit float64 // 检测范围内尚在行驶的车辆数
	waiting float64 // 排队车辆的平均等待时间（秒）
}

// junctionModel 单个路口的需求模型
type junctionModel struct {
	cfg        config.Intersection
	phase      entity.Phase           // 执行器最近下发的相位
	byIndex    map[int32]entity.Phase // 模拟器相位编号->逻辑相位
	approaches [entity.DirectionCount]approachState
	downstream *junctionModel // 东行车流的下游路口，无则为nil
}

// Loopback 回环走廊需求模型
// 功能：同时实现传感器与执行器边界，在没有外部微观模拟器时
// 用随机到达、排队与放行的简化动力学为控制器闭环提供数据
// 说明：模型按时钟tick惰性推进，同一tick内的多次Read读到同一份状态；
// 到达率来自需求曲线，按仿真时刻的小时取值
type Loopback struct {
	clock     *clock.Clock
	profile   *input.DemandProfile
	generator *randengine.Engine

	junctions []*junctionModel // 走廊顺序
	data      map[int32]*junctionModel
	lastTick  int32
}

// New 创建回环走廊需求模型
// 功能：根据路口配置构建需求模型并建立东行车流的上下游联系
// 参数：clk-时钟，profile-需求曲线，seed-随机种子，cfgs-路口配置（走廊顺序）
// 返回：回环需求模型实例
func New(clk *clock.Clock, profile *input.DemandProfile, seed uint64, cfgs []config.Intersection) *Loopback {
	lb := &Loopback{
		clock:     clk,
		profile:   profile,
		generator: randengine.New(seed),
		data:      make(map[int32]*junctionModel),
		lastTick:  clk.START_STEP,
	}
	for _, c := range cfgs {
		j := &junctionModel{
			cfg:   c,
			phase: entity.PhaseEastWestGreen,
			byIndex: map[int32]entity.Phase{
				c.EWGreenIndex: entity.PhaseEastWestGreen,
				c.NSGreenIndex: entity.PhaseNorthSouthGreen,
			},
		}
		lb.junctions = append(lb.junctions, j)
		lb.data[c.ID] = j
	}
	// 东行车流的交接：下游路口从其上游的东进口接收放行车辆
	for _, j := range lb.junctions {
		if j.cfg.UpstreamID != nil {
			lb.data[*j.cfg.UpstreamID].downstream = j
		}
	}
	log.Infof("loopback demand model with %d junctions (seed %d)", len(lb.junctions), seed)
	return lb
}

// Read 读取指定路口指定方向当前tick的检测器读数
// 功能：返回模型当前状态对应的检测器读数
// 说明：首次读到新tick时先推进一步模型动力学；未知路口视为没有检测器（ok=false）
func (lb *Loopback) Read(intersectionID int32, direction entity.Direction) (entity.DetectorReading, bool, error) {
	if lb.lastTick != lb.clock.InternalStep {
		lb.step()
		lb.lastTick = lb.clock.InternalStep
	}
	j, ok := lb.data[intersectionID]
	if !ok {
		return entity.DetectorReading{}, false, nil
	}
	a := &j.approaches[direction]
	halting := int32(a.queue)
	return entity.DetectorReading{
		HaltingCount:          halting,
		TotalCount:            halting + int32(math.Ceil(a.transit)),
		AverageWaitingSeconds: a.waiting,
	}, true, nil
}

// SetPhase 设置指定路口的信号灯相位
// 功能：按模拟器相位编号切换模型中路口的放行相位
// 说明：未知的相位编号被拒绝，对应真实模拟器对非法指令的行为
func (lb *Loopback) SetPhase(intersectionID int32, phaseIndex int32) error {
	j, ok := lb.data[intersectionID]
	if !ok {
		return fmt.Errorf("%w %d", ErrUnknownIntersection, intersectionID)
	}
	p, ok := j.byIndex[phaseIndex]
	if !ok {
		return fmt.Errorf("%w %d for intersection %d", ErrUnknownPhaseIndex, phaseIndex, intersectionID)
	}
	j.phase = p
	return nil
}

// step 推进一步模型动力学
// 算法说明：
// 1. 到达：按当前小时的需求强度做泊松采样，主线车辆按东西分配权重
// 落到东、西进口，支路车辆均分到南、北进口，新车先进入行驶状态
// 2. 汇入：行驶车辆按比例汇入排队
// 3. 放行：绿灯轴的进口按饱和流率放行排队车辆，上游东进口放行的
// 车辆按继续概率逐辆交接给下游路口继续东行，其余驶离走廊
// 4. 等待：红灯且有排队时平均等待时间随tick累积，排空后清零
func (lb *Loopback) step() {
	hour, _, _ := lb.clock.GetHourMinuteSecond()
	mainline, cross := lb.profile.Rate(hour)

	for _, j := range lb.junctions {
		// 到达
		for _, n := range []struct {
			rate  float64
			dirs  [2]entity.Direction
			split []float64
		}{
			{mainline, entity.AxisEastWest.Directions(), mainlineSplit},
			{cross, entity.AxisNorthSouth.Directions(), []float64{0.5, 0.5}},
		} {
			if n.rate <= 0 {
				continue
			}
			arrivals := int(distuv.Poisson{Lambda: n.rate, Src: lb.generator.Rand}.Rand())
			for k := 0; k < arrivals; k++ {
				d := n.dirs[lb.generator.DiscreteDistribution(n.split)]
				j.approaches[d].transit++
			}
		}

		for _, d := range entity.Directions {
			a := &j.approaches[d]

			// 汇入
			join := a.transit * *joinRate
			a.transit -= join
			a.queue += join

			// 放行
			green := j.phase.Axis() == d.Axis()
			if green {
				served := math.Min(a.queue, *saturationFlow)
				a.queue -= served
				if d == entity.DirectionEast && j.downstream != nil {
					// 放行车辆逐辆决定是否继续东行，其余在路段中途驶离
					for k := 0; k < int(served); k++ {
						if lb.generator.PTrue(*continueProb) {
							j.downstream.approaches[entity.DirectionEast].transit++
						}
					}
				}
			}

			// 等待
			if a.queue >= 1 && !green {
				a.waiting += lb.clock.DT
			} else if a.queue < 1 {
				a.waiting = 0
			}
		}
	}
}
