package entity

import (
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// Manager依赖倒置

// ISensorSource 传感器边界的依赖倒置
// 功能：按（路口，方向）提供当前tick的检测器读数
// 说明：ok为false表示该方向没有检测器数据，调用方以零值读数代替，不视为错误；
// error非空表示与模拟器边界的连接丢失，整个运行必须终止
type ISensorSource interface {
	// 读取指定路口指定方向当前tick的检测器读数
	Read(intersectionID int32, direction Direction) (reading DetectorReading, ok bool, err error)
}

// IActuator 执行器边界的依赖倒置
// 功能：接收按路口下发的相位指令
// 说明：重复下发相同相位是幂等操作；error表示模拟器拒绝了该指令，
// 该路口本tick的切换决策作废（相位保持），不影响其他路口
type IActuator interface {
	// 设置指定路口的信号灯相位（模拟器定义的离散相位编号）
	SetPhase(intersectionID int32, phaseIndex int32) error
}

// IMetricsSink 指标输出流的依赖倒置
// 功能：接收每tick追加的指标记录（仅追加，不修改）
type IMetricsSink interface {
	// 追加一条指标记录
	Append(rec MetricsRecord) error
	// 关闭输出流，释放资源
	Close() error
}

// entity/intersection/intersection.go的依赖倒置
type IIntersection interface {
	ID() int32                  // 获取路口ID
	Name() string               // 获取路口名称
	Status() IntersectionStatus // 获取路口状态快照（Prepare阶段生成）
}

// entity/intersection/manager.go的依赖倒置
type IIntersectionManager interface {
	Init(cfgs []config.Intersection) // 初始化

	// 输入路口ID，查找路口，如果不存在则panic
	Get(id int32) IIntersection
	// 输入路口ID，查找路口，如果不存在则返回error
	GetOrError(id int32) (IIntersection, error)

	Prepare() // 准备阶段
	// 更新阶段。传感器边界失联返回致命错误；执行器拒绝指令返回
	// tick级错误（可用errors.Is识别），相位保持且其他路口不受影响
	Update(tick int32) error

	// 产生当前tick的指标记录（基于Prepare阶段的快照）
	Collect(tick int32) MetricsRecord
}
