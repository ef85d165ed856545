package task

import (
	"sync/atomic"

	"github.com/kcc-smart-traffic/corridor-sim/clock"
	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/entity/intersection"
	"github.com/kcc-smart-traffic/corridor-sim/sensor"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
	"github.com/kcc-smart-traffic/corridor-sim/utils/input"
	"github.com/kcc-smart-traffic/corridor-sim/utils/output"
)

// Context 控制任务上下文
// 功能：包含一次控制运行的所有变量和状态，替代全局变量
// 说明：管理控制系统的所有组件，包括时钟、路口管理器、传感器与执行器边界、指标输出
type Context struct {
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// Intersection管理器
	intersectionManager entity.IIntersectionManager
	// 传感器边界
	sensorSource entity.ISensorSource
	// 执行器边界
	actuator entity.IActuator
	// 指标输出流
	sink entity.IMetricsSink

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 用于初始化的输入
	initRes *input.Input
}

// NewContext 创建新的控制任务上下文
// 功能：初始化控制系统的所有组件和配置
// 参数：c-配置对象
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建时钟并加载输入数据（需求曲线）
// 2. 构建运行时配置（默认值填充与合法性校验）
// 3. 创建回环需求模型，同时作为传感器与执行器边界
// 4. 按配置打开指标输出流
// 5. 创建Intersection管理器
func NewContext(c config.Config) *Context {
	ctx := &Context{}
	ctx.clock = clock.New(c.Control.Step)

	// 下载控制器启动所需的数据
	ctx.initRes = input.Init(c)

	runtimeConfig, err := config.NewRuntimeConfig(c)
	if err != nil {
		log.Panicf("invalid config: %v", err)
	}
	ctx.runtimeConfig = runtimeConfig

	loopback := sensor.New(ctx.clock, ctx.initRes.Demand, c.Control.Seed, runtimeConfig.Intersections)
	ctx.sensorSource = loopback
	ctx.actuator = loopback

	sink, err := output.New(c.Output, runtimeConfig.Intersections)
	if err != nil {
		log.Panicf("failed to open metrics output: %v", err)
	}
	ctx.sink = sink

	ctx.intersectionManager = intersection.NewManager(ctx)

	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) IntersectionManager() entity.IIntersectionManager {
	return ctx.intersectionManager
}

func (ctx *Context) SensorSource() entity.ISensorSource {
	return ctx.sensorSource
}

func (ctx *Context) Actuator() entity.IActuator {
	return ctx.actuator
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) GetInput() *input.Input {
	return ctx.initRes
}

// Init 初始化
// 功能：重置时钟并初始化所有路口
func (ctx *Context) Init() {
	ctx.clock.Init()

	log.Infof("Intersection: %v", len(ctx.runtimeConfig.Intersections))
	ctx.intersectionManager.Init(ctx.runtimeConfig.Intersections)
}

// Close 关闭任务，输出运行摘要并释放输出流
func (ctx *Context) Close() error {
	if ctx.closed.Load() {
		return nil
	}
	ctx.closed.Store(true)
	return ctx.sink.Close()
}
