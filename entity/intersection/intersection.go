package intersection

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/entity/intersection/signal"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

var (
	// ErrPhaseCommandRejected 执行器拒绝了相位指令
	// 说明：该路口本tick的切换决策作废、相位保持，属于tick级部分失败；
	// 与传感器边界失联不同，不终止整个运行
	ErrPhaseCommandRejected = errors.New("phase command rejected by actuator")
)

// Intersection 受控路口
// 功能：聚合一个路口的相机、评分器、相位状态机与协调器，每tick完成
// 读数采集、紧急度评分、相位决策与下发的完整控制闭环
// 说明：upstream在Init阶段由管理器连接，协调是单向耦合（下游持有上游指针）
type Intersection struct {
	ctx entity.ITaskContext

	id   int32
	name string

	camera      *signal.Camera
	scorer      *signal.Scorer
	machine     *signal.Machine
	coordinator *signal.Coordinator
	upstream    *Intersection // 绿波协调的上游路口，无协调时为nil

	// 逻辑相位到模拟器相位编号的映射，下标为entity.Phase
	phaseIndex [2]int32

	// Prepare阶段生成的状态快照与统计
	status entity.IntersectionStatus

	// 最近一次Update采集的未加权统计（供下一次Prepare写入快照）
	queueTotal int32
	avgWaiting float64
}

// newIntersection 创建并初始化一个受控路口
// 功能：根据路口配置创建Intersection对象，初始化相机、评分器与相位状态机
// 参数：ctx-任务上下文，base-路口配置
// 返回：初始化完成的Intersection实例
func newIntersection(ctx entity.ITaskContext, base config.Intersection) *Intersection {
	cfg := ctx.RuntimeConfig().Signal
	i := &Intersection{
		ctx:         ctx,
		id:          base.ID,
		name:        base.Name,
		camera:      signal.NewCamera(cfg.Camera, base.CameraStartAngle),
		scorer:      signal.NewScorer(base.Name, cfg),
		machine:     signal.NewMachine(cfg, ctx.Clock().START_STEP),
		coordinator: signal.NewCoordinator(cfg.Coordination),
	}
	i.phaseIndex[entity.PhaseEastWestGreen] = base.EWGreenIndex
	i.phaseIndex[entity.PhaseNorthSouthGreen] = base.NSGreenIndex
	return i
}

// ID 获取路口ID
func (i *Intersection) ID() int32 {
	return i.id
}

// Name 获取路口名称
func (i *Intersection) Name() string {
	return i.name
}

// Status 获取路口状态快照（Prepare阶段生成）
func (i *Intersection) Status() entity.IntersectionStatus {
	return i.status
}

// prepare 准备阶段
// 功能：冻结相位状态快照，并基于上一tick的采集结果生成对外状态
func (i *Intersection) prepare() {
	i.machine.Prepare()
	snap := i.machine.Snapshot()
	i.status = entity.IntersectionStatus{
		ID:             i.id,
		Phase:          snap.Current,
		QueueTotal:     i.queueTotal,
		AverageWaiting: i.avgWaiting,
		PhaseChanges:   snap.Changes,
		CameraAngle:    i.camera.Angle(),
	}
}

// update 更新阶段，执行一个完整的控制tick
// 功能：采集四个方向的检测器读数，推进相机并计算紧急度，
// 决策相位去留并在需要时向执行器下发切换指令
// 参数：tick-当前tick
// 返回：错误信息。传感器边界失联返回致命错误；执行器拒绝指令返回包裹
// ErrPhaseCommandRejected的tick级错误，此时相位保持、统计照常更新
// 算法说明：
// 1. 按方向读取检测器，缺失方向以零值读数代替
// 2. 将停驻数写入历史缓冲区，推进相机得到当前焦点
// 3. 分别计算两个通行轴的紧急度，下游路口对东西轴追加协调增益
// 4. 由相位状态机决策；需要切换时先下发指令，下发成功才提交切换，
// 被拒绝时保持当前相位、丢弃本tick决策并向调用方报告
func (i *Intersection) update(tick int32) error {
	var readings [entity.DirectionCount]entity.DetectorReading
	for _, d := range entity.Directions {
		r, ok, err := i.ctx.SensorSource().Read(i.id, d)
		if err != nil {
			return fmt.Errorf("%s: sensor read failed for direction %v: %w", i.name, d, err)
		}
		if !ok {
			// 无检测器数据，零值读数代替
			continue
		}
		readings[d] = r
	}

	for _, d := range entity.Directions {
		i.scorer.Record(d, readings[d].HaltingCount)
	}
	focus := i.camera.Advance()
	log.Debugf("%s: camera at %.0f° (fov %.0f°), watching %v (secondary %v)",
		i.name, focus.Angle, i.camera.FieldOfView(), focus.Primary, focus.Secondary)

	ewUrgency := i.scorer.Score(entity.AxisEastWest, &readings, i.camera, focus)
	nsUrgency := i.scorer.Score(entity.AxisNorthSouth, &readings, i.camera, focus)
	if i.upstream != nil {
		ewUrgency = i.coordinator.Adjust(ewUrgency, i.upstream.machine.State(), tick)
	}

	decision := i.machine.Decide(ewUrgency, nsUrgency)
	var rejection error
	if decision.Change {
		if err := i.ctx.Actuator().SetPhase(i.id, i.phaseIndex[decision.Target]); err != nil {
			i.machine.Hold()
			rejection = fmt.Errorf("%s: %w at tick %d, holding %v: %v",
				i.name, ErrPhaseCommandRejected, tick, i.machine.State().Current, err)
		} else {
			i.machine.Commit(tick, decision.Target)
			log.Infof("%s: switch to %v at tick %d (EW %.1f vs NS %.1f, forced=%v)",
				i.name, decision.Target, tick, ewUrgency, nsUrgency, decision.Forced)
		}
	} else {
		i.machine.Hold()
	}

	// 未加权统计，供指标输出使用（指令被拒绝的tick也照常统计）
	i.queueTotal = lo.SumBy(entity.Directions[:], func(d entity.Direction) int32 {
		return readings[d].HaltingCount
	})
	i.avgWaiting = lo.SumBy(entity.Directions[:], func(d entity.Direction) float64 {
		return readings[d].AverageWaitingSeconds
	}) / entity.DirectionCount
	return rejection
}
