package task

import (
	"errors"
	"flag"

	"github.com/kcc-smart-traffic/corridor-sim/entity/intersection"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// prepare 准备阶段，每tick执行一次
// 功能：推进时钟、输出心跳日志，并冻结所有路口的状态快照
// 说明：快照在本tick的任何决策之前生成，指标输出读到的是一致的状态
func (ctx *Context) prepare() {
	ctx.clock.InternalStep++
	ctx.clock.T = float64(ctx.clock.InternalStep) * ctx.clock.DT

	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f)",
			ctx.clock.InternalStep,
			hour, minute, second,
		)
	}

	ctx.intersectionManager.Prepare()
}

// update 更新阶段，每tick执行一次
// 功能：按走廊顺序执行所有路口的控制逻辑，并追加指标记录
// 返回：致命错误（传感器边界失联时非空）
// 说明：执行器拒绝指令是tick级部分失败，相关路口相位保持，记录
// 日志后继续运行；指标输出失败同样不致命
func (ctx *Context) update() error {
	tick := ctx.clock.InternalStep
	if err := ctx.intersectionManager.Update(tick); err != nil {
		if !errors.Is(err, intersection.ErrPhaseCommandRejected) {
			return err
		}
		log.Warnf("tick %d completed with discarded decisions: %v", tick, err)
	}
	if err := ctx.sink.Append(ctx.intersectionManager.Collect(tick)); err != nil {
		log.Errorf("failed to append metrics at tick %d: %v", tick, err)
	}
	return nil
}

// Run 运行
// 功能：执行完整的控制循环直到结束tick，结束时输出运行摘要
// 返回：致命错误（传感器边界失联时非空）
func (ctx *Context) Run() error {
	ctx.Init()
	for {
		ctx.prepare()
		if err := ctx.update(); err != nil {
			log.Errorf("run aborted at tick %d: %v", ctx.clock.InternalStep, err)
			ctx.Close()
			return err
		}
		if ctx.clock.InternalStep+1 >= ctx.clock.END_STEP {
			break
		}
	}
	log.Infof("corridor run complete")
	return ctx.Close()
}
