package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/entity/intersection/signal"
)

func TestHistoryTrendInsufficientSamples(t *testing.T) {
	h := signal.NewHistory(10)
	for _, v := range []int32{3, 6, 9, 12} {
		h.Record(entity.DirectionEast, v)
	}
	assert.Equal(t, 4, h.Len(entity.DirectionEast))
	// 4 samples is below the 5 needed for a slope estimate
	assert.Zero(t, h.Trend(entity.DirectionEast))
}

func TestHistoryTrend(t *testing.T) {
	h := signal.NewHistory(10)

	// test: growing queue gives positive slope
	for _, v := range []int32{0, 2, 4, 6, 8} {
		h.Record(entity.DirectionEast, v)
	}
	assert.InDelta(t, 1.6, h.Trend(entity.DirectionEast), 1e-9)

	// test: draining queue gives negative slope
	for _, v := range []int32{10, 8, 6, 4, 2} {
		h.Record(entity.DirectionNorth, v)
	}
	assert.InDelta(t, -1.6, h.Trend(entity.DirectionNorth), 1e-9)

	// test: directions are independent
	assert.Zero(t, h.Trend(entity.DirectionWest))
}

func TestHistoryEviction(t *testing.T) {
	h := signal.NewHistory(10)
	for i := int32(0); i < 15; i++ {
		h.Record(entity.DirectionSouth, i)
	}
	assert.Equal(t, 10, h.Len(entity.DirectionSouth))
	// trend uses the newest 5 samples: (14-10)/5
	assert.InDelta(t, 0.8, h.Trend(entity.DirectionSouth), 1e-9)
}
