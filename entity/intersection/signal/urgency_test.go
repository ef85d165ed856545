package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/entity/intersection/signal"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

func testSignalConfig() config.Signal {
	return config.Signal{
		MinGreenTicks:       config.DefaultMinGreenTicks,
		MaxGreenTicks:       config.DefaultMaxGreenTicks,
		SwitchRatio:         config.DefaultSwitchRatio,
		HaltingWeight:       config.DefaultHaltingWeight,
		TotalWeight:         config.DefaultTotalWeight,
		WaitingWeight:       config.DefaultWaitingWeight,
		TrendWeight:         config.DefaultTrendWeight,
		QueueClearingBonus:  config.DefaultQueueClearingBonus,
		CongestionThreshold: config.DefaultCongestionThreshold,
		EmergencyThreshold:  config.DefaultEmergencyThreshold,
		HistoryDepth:        config.DefaultHistoryDepth,
		Camera:              testCameraConfig(),
		Coordination: config.Coordination{
			Weight:       config.DefaultCoordinationWeight,
			RecencyBoost: config.DefaultRecencyBoost,
			WindowTicks:  config.DefaultWindowTicks,
		},
	}
}

// eastFocus 固定主焦点为东、次焦点为北的相机与焦点
func eastFocus(cfg config.Signal) (*signal.Camera, signal.Focus) {
	camera := signal.NewCamera(cfg.Camera, -cfg.Camera.RotationSpeed)
	return camera, camera.Advance()
}

func TestScoreZeroTraffic(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	var readings [entity.DirectionCount]entity.DetectorReading
	assert.Zero(t, s.Score(entity.AxisEastWest, &readings, camera, f))
	assert.Zero(t, s.Score(entity.AxisNorthSouth, &readings, camera, f))
}

func TestScoreWeightedSum(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	var readings [entity.DirectionCount]entity.DetectorReading
	readings[entity.DirectionEast] = entity.DetectorReading{HaltingCount: 10, TotalCount: 12, AverageWaitingSeconds: 30}
	readings[entity.DirectionWest] = entity.DetectorReading{HaltingCount: 4, TotalCount: 6, AverageWaitingSeconds: 10}

	// halting 10*1.0+4*0.3=11.2, total 12*1.0+6*0.3=13.8, waiting (30+10)/2=20
	// urgency 11.2*4.0+13.8*1.5+20*0.8 = 81.5, plus clearing bonus 3.0*11.2
	got := s.Score(entity.AxisEastWest, &readings, camera, f)
	assert.InDelta(t, 115.1, got, 1e-9)
}

func TestScoreCongestionEscalation(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	var readings [entity.DirectionCount]entity.DetectorReading
	readings[entity.DirectionEast] = entity.DetectorReading{HaltingCount: 20, TotalCount: 20}

	// (20*4.0+20*1.5)*1.5 + 3.0*20
	got := s.Score(entity.AxisEastWest, &readings, camera, f)
	assert.InDelta(t, 225, got, 1e-9)
}

func TestScoreEmergencyEscalation(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	var readings [entity.DirectionCount]entity.DetectorReading
	readings[entity.DirectionEast] = entity.DetectorReading{HaltingCount: 30, TotalCount: 30}

	// (30*4.0+30*1.5)*2.0 + 3.0*30
	got := s.Score(entity.AxisEastWest, &readings, camera, f)
	assert.InDelta(t, 420, got, 1e-9)
}

func TestScoreVisibilityDampensThreshold(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	// 30 halting on the peripheral south approach weigh in as 9,
	// below both escalation thresholds
	var readings [entity.DirectionCount]entity.DetectorReading
	readings[entity.DirectionSouth] = entity.DetectorReading{HaltingCount: 30, TotalCount: 30}

	// 9*4.0+9*1.5 + 3.0*9
	got := s.Score(entity.AxisNorthSouth, &readings, camera, f)
	assert.InDelta(t, 76.5, got, 1e-9)
}

func TestScoreTrendContribution(t *testing.T) {
	cfg := testSignalConfig()
	s := signal.NewScorer("junction-1", cfg)
	camera, f := eastFocus(cfg)

	for _, v := range []int32{0, 5, 10, 15, 20} {
		s.Record(entity.DirectionEast, v)
	}
	assert.InDelta(t, 4, s.Trend(entity.DirectionEast), 1e-9)

	// zero current readings: only the positive trend contributes, 4*2.5
	var readings [entity.DirectionCount]entity.DetectorReading
	got := s.Score(entity.AxisEastWest, &readings, camera, f)
	assert.InDelta(t, 10, got, 1e-9)

	// negative trend is clamped to zero
	for _, v := range []int32{20, 15, 10, 5, 0} {
		s.Record(entity.DirectionNorth, v)
		s.Record(entity.DirectionSouth, v)
	}
	assert.Zero(t, s.Score(entity.AxisNorthSouth, &readings, camera, f))
}
