package entity

import "fmt"

// Direction 路口进口方向
// 功能：表示路口的四个进口方向，按相机旋转角度逆时针排列（东0°、北90°、西180°、南270°）
// 说明：方向集合是封闭的，任何基于Direction的查找表都可以用长度为DirectionCount的数组实现
type Direction int32

const (
	DirectionEast  Direction = iota // 东（相机0°方位）
	DirectionNorth                  // 北（相机90°方位）
	DirectionWest                   // 西（相机180°方位）
	DirectionSouth                  // 南（相机270°方位）

	// DirectionCount 方向总数
	DirectionCount = 4
)

// Directions 全部方向的固定遍历顺序
var Directions = [DirectionCount]Direction{
	DirectionEast, DirectionNorth, DirectionWest, DirectionSouth,
}

// String 获取方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionEast:
		return "E"
	case DirectionNorth:
		return "N"
	case DirectionWest:
		return "W"
	case DirectionSouth:
		return "S"
	default:
		return fmt.Sprintf("Direction(%d)", int32(d))
	}
}

// Axis 获取方向所属的通行轴
// 功能：将方向映射到其所属的通行轴（东西轴或南北轴）
// 返回：东、西方向返回AxisEastWest，南、北方向返回AxisNorthSouth
func (d Direction) Axis() AxisPair {
	switch d {
	case DirectionEast, DirectionWest:
		return AxisEastWest
	default:
		return AxisNorthSouth
	}
}

// AxisPair 通行轴
// 功能：表示共享同一绿灯相位的一对相反方向（东西轴或南北轴）
type AxisPair int32

const (
	AxisEastWest   AxisPair = iota // 东西轴
	AxisNorthSouth                 // 南北轴

	// AxisCount 通行轴总数
	AxisCount = 2
)

// Directions 获取组成通行轴的两个方向
func (a AxisPair) Directions() [2]Direction {
	if a == AxisEastWest {
		return [2]Direction{DirectionEast, DirectionWest}
	}
	return [2]Direction{DirectionNorth, DirectionSouth}
}

// String 获取通行轴的字符串表示
func (a AxisPair) String() string {
	if a == AxisEastWest {
		return "EW"
	}
	return "NS"
}

// Phase 信号灯逻辑相位
// 功能：表示决策层面的两个绿灯相位
// 说明：黄灯/全红等过渡相位由模拟器边界在相位切换后自动插入，不参与决策
type Phase int32

const (
	PhaseEastWestGreen   Phase = iota // 东西绿灯
	PhaseNorthSouthGreen              // 南北绿灯
)

// Axis 获取相位放行的通行轴
func (p Phase) Axis() AxisPair {
	if p == PhaseEastWestGreen {
		return AxisEastWest
	}
	return AxisNorthSouth
}

// Other 获取相反的相位
func (p Phase) Other() Phase {
	if p == PhaseEastWestGreen {
		return PhaseNorthSouthGreen
	}
	return PhaseEastWestGreen
}

// String 获取相位的字符串表示
func (p Phase) String() string {
	if p == PhaseEastWestGreen {
		return "EWGreen"
	}
	return "NSGreen"
}

// DetectorReading 单方向单tick的检测器读数
// 功能：存储传感器边界每tick按（路口，方向）上报的原始交通数据
// 说明：除历史缓冲区外核心不持久化原始读数；检测器缺失时以零值读数代替
type DetectorReading struct {
	HaltingCount          int32   // 停驻（排队）车辆数
	TotalCount            int32   // 检测范围内车辆总数（不小于HaltingCount）
	AverageWaitingSeconds float64 // 平均等待时间（秒）
}

// IntersectionStatus 路口状态快照
// 功能：供指标输出使用的路口每tick状态，由Prepare阶段生成
type IntersectionStatus struct {
	ID             int32   // 路口ID
	Phase          Phase   // 当前相位
	QueueTotal     int32   // 四个方向停驻车辆总数（未加权）
	AverageWaiting float64 // 四个方向平均等待时间（秒）
	PhaseChanges   int32   // 累计相位切换次数
	CameraAngle    float64 // 当前相机角度（度）
}

// MetricsRecord 指标记录
// 功能：每tick追加到指标输出流的一条记录
// 说明：路口状态取自本tick Prepare阶段的快照，本tick决策的相位切换
// 从下一tick的记录开始体现
type MetricsRecord struct {
	Tick          int32                // tick编号
	Intersections []IntersectionStatus // 各路口状态（按走廊顺序）
}
