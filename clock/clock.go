package clock

import (
	"fmt"

	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// Clock 仿真时钟管理器
// 功能：管理控制器的逻辑时间推进，一个tick为一次完整的决策周期
// 说明：控制器的时间由tick定义而非墙上时钟，维护当前tick编号与对应的仿真时间
type Clock struct {
	DT         float64 // 每个tick对应的仿真时间间隔（秒）
	START_STEP int32   // 起始tick
	END_STEP   int32   // 结束tick，模拟区间[START, END)

	T            float64 // 当前仿真时间（秒）
	InternalStep int32   // 当前tick编号
}

// New 根据配置创建新的时钟实例
// 功能：根据控制步配置初始化时钟信息
// 参数：stepConfig-控制步配置，包含起始tick、总tick数与时间间隔
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         stepConfig.Interval,
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 功能：重置tick编号为起始tick，重新计算当前仿真时间
func (c *Clock) Init() {
	c.InternalStep = c.START_STEP
	c.T = float64(c.InternalStep) * c.DT
}

// String 获取时钟的字符串表示
// 功能：将当前仿真时间格式化为可读的字符串（HH:MM:SS）
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// GetHourMinuteSecond 获取当前仿真时间的小时、分钟、秒
// 功能：将当前仿真时间分解为小时、分钟、秒三个部分
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
