package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

func validConfig() config.Config {
	upstream := int32(100)
	return config.Config{
		Control: config.Control{Step: config.ControlStep{Total: 100, Interval: 1}},
		Intersections: []config.Intersection{
			{ID: 100, Name: "junction-1", EWGreenIndex: 1, NSGreenIndex: 3},
			{ID: 200, Name: "junction-2", EWGreenIndex: 1, NSGreenIndex: 3, UpstreamID: &upstream},
		},
	}
}

func TestRuntimeConfigDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(validConfig())
	assert.NoError(t, err)
	assert.Equal(t, int32(config.DefaultMinGreenTicks), rc.Signal.MinGreenTicks)
	assert.Equal(t, int32(config.DefaultMaxGreenTicks), rc.Signal.MaxGreenTicks)
	assert.InDelta(t, config.DefaultSwitchRatio, rc.Signal.SwitchRatio, 1e-9)
	assert.InDelta(t, config.DefaultRotationSpeed, rc.Signal.Camera.RotationSpeed, 1e-9)
	assert.InDelta(t, config.DefaultCoordinationWeight, rc.Signal.Coordination.Weight, 1e-9)
	assert.Equal(t, config.DefaultHistoryDepth, rc.Signal.HistoryDepth)
}

func TestRuntimeConfigExplicitValuesSurvive(t *testing.T) {
	c := validConfig()
	c.Signal.MinGreenTicks = 5
	c.Signal.SwitchRatio = 2.0
	rc, err := config.NewRuntimeConfig(c)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), rc.Signal.MinGreenTicks)
	assert.InDelta(t, 2.0, rc.Signal.SwitchRatio, 1e-9)
}

func TestRuntimeConfigValidation(t *testing.T) {
	// test: non-positive total
	c := validConfig()
	c.Control.Step.Total = 0
	_, err := config.NewRuntimeConfig(c)
	assert.Error(t, err)

	// test: min green above max green
	c = validConfig()
	c.Signal.MinGreenTicks = 100
	c.Signal.MaxGreenTicks = 50
	_, err = config.NewRuntimeConfig(c)
	assert.Error(t, err)

	// test: empty intersection list
	c = validConfig()
	c.Intersections = nil
	_, err = config.NewRuntimeConfig(c)
	assert.Error(t, err)

	// test: duplicated ids
	c = validConfig()
	c.Intersections[1].ID = 100
	c.Intersections[1].UpstreamID = nil
	_, err = config.NewRuntimeConfig(c)
	assert.Error(t, err)

	// test: self coordination
	c = validConfig()
	self := int32(200)
	c.Intersections[1].UpstreamID = &self
	_, err = config.NewRuntimeConfig(c)
	assert.Error(t, err)

	// test: upstream must precede downstream
	c = validConfig()
	downstream := int32(200)
	c.Intersections[0].UpstreamID = &downstream
	c.Intersections[1].UpstreamID = nil
	_, err = config.NewRuntimeConfig(c)
	assert.Error(t, err)
}
