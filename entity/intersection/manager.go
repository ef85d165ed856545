package intersection

import (
	"errors"
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// Intersection管理器
type IntersectionManager struct {
	ctx entity.ITaskContext

	data          map[int32]*Intersection
	intersections []*Intersection // 走廊顺序（上游在前）
}

// NewManager 创建Intersection管理器实例
// 功能：初始化Intersection管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的Intersection管理器实例
func NewManager(ctx entity.ITaskContext) *IntersectionManager {
	return &IntersectionManager{
		ctx:           ctx,
		data:          make(map[int32]*Intersection),
		intersections: make([]*Intersection, 0),
	}
}

// Init 初始化所有受控路口
// 功能：根据配置初始化所有Intersection对象并连接协调关系
// 参数：cfgs-路口配置列表（走廊顺序，配置校验已保证上游先于下游出现）
func (m *IntersectionManager) Init(cfgs []config.Intersection) {
	m.intersections = lo.Map(cfgs, func(c config.Intersection, _ int) *Intersection {
		return newIntersection(m.ctx, c)
	})
	m.data = lo.SliceToMap(m.intersections, func(i *Intersection) (int32, *Intersection) {
		return i.id, i
	})
	for idx, c := range cfgs {
		if c.UpstreamID != nil {
			m.intersections[idx].upstream = m.data[*c.UpstreamID]
		}
	}
	log.Infof("init %d intersections", len(m.intersections))
}

// Get 根据ID获取Intersection实例
// 功能：通过路口ID查找对应的Intersection对象，如果不存在则panic
// 参数：id-路口的唯一标识符
// 返回：对应的Intersection实例，如果不存在则panic
func (m *IntersectionManager) Get(id int32) entity.IIntersection {
	if i, ok := m.data[id]; !ok {
		log.Panicf("no id %d in intersection data", id)
		return nil
	} else {
		return i
	}
}

// GetOrError 根据ID获取Intersection实例（带错误处理）
// 功能：通过路口ID查找对应的Intersection对象，如果不存在则返回错误
// 参数：id-路口的唯一标识符
// 返回：Intersection实例和错误信息，如果不存在则返回nil和错误
func (m *IntersectionManager) GetOrError(id int32) (entity.IIntersection, error) {
	if i, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in intersection data", id)
	} else {
		return i, nil
	}
}

// Prepare 准备阶段，处理所有路口的准备工作
// 功能：对所有路口执行准备阶段，冻结相位快照并生成对外状态
// 说明：准备阶段各路口互不读取，使用并行处理提高性能
func (m *IntersectionManager) Prepare() {
	parallel.GoFor(m.intersections, func(i *Intersection) { i.prepare() })
}

// Update 更新阶段，执行所有路口的控制逻辑
// 功能：按走廊顺序对所有路口执行更新阶段
// 参数：tick-当前tick
// 返回：错误信息。传感器边界失联立即返回致命错误；执行器拒绝指令
// 不中断其余路口的更新，全部完成后合并返回（errors.Is可识别
// ErrPhaseCommandRejected），调用方据此区分干净tick与有决策作废的tick
// 说明：必须串行且保持走廊顺序，下游路口的协调器读取的是上游
// 本tick决策之后的相位状态
func (m *IntersectionManager) Update(tick int32) error {
	var rejections []error
	for _, i := range m.intersections {
		if err := i.update(tick); err != nil {
			if errors.Is(err, ErrPhaseCommandRejected) {
				rejections = append(rejections, err)
				continue
			}
			return err
		}
	}
	return errors.Join(rejections...)
}

// Collect 产生当前tick的指标记录
// 功能：基于Prepare阶段的快照收集各路口状态
// 参数：tick-当前tick
// 返回：指标记录（路口按走廊顺序）
func (m *IntersectionManager) Collect(tick int32) entity.MetricsRecord {
	return entity.MetricsRecord{
		Tick: tick,
		Intersections: lo.Map(m.intersections, func(i *Intersection, _ int) entity.IntersectionStatus {
			return i.Status()
		}),
	}
}
