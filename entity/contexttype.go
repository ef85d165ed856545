package entity

import (
	"github.com/kcc-smart-traffic/corridor-sim/clock"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	IntersectionManager() IIntersectionManager
	SensorSource() ISensorSource
	Actuator() IActuator
	RuntimeConfig() *config.RuntimeConfig
}
