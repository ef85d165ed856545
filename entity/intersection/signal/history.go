package signal

import (
	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/container"
)

// trendSamples 趋势估计使用的样本数
const trendSamples = 5

// History 交通历史缓冲区
// 功能：按方向保存最近depth个tick的停驻车辆数，并提供短期趋势估计
// 说明：路口创建时缓冲区为空，每tick通过Record追加一次，超出深度时丢弃最旧样本
type History struct {
	rings [entity.DirectionCount]*container.Ring[int32]
}

// NewHistory 创建交通历史缓冲区
// 参数：depth-每个方向保留的样本数K
func NewHistory(depth int) *History {
	h := &History{}
	for i := range h.rings {
		h.rings[i] = container.NewRing[int32](depth)
	}
	return h
}

// Record 记录一个方向当前tick的停驻车辆数
func (h *History) Record(direction entity.Direction, haltingCount int32) {
	h.rings[direction].Push(haltingCount)
}

// Len 获取一个方向当前的样本数
func (h *History) Len(direction entity.Direction) int {
	return h.rings[direction].Len()
}

// Trend 估计一个方向的短期交通趋势
// 功能：基于最近trendSamples个样本做线性斜率估计，预判近期负载变化
// 返回：每tick停驻车辆数的变化率；样本不足trendSamples个时返回0
// 算法说明：取（最新样本 − 倒数第trendSamples个样本）/ trendSamples，
// 正值表示排队在增长，负值表示排队在消散
func (h *History) Trend(direction entity.Direction) float64 {
	r := h.rings[direction]
	if r.Len() < trendSamples {
		return 0
	}
	return float64(r.FromEnd(0)-r.FromEnd(trendSamples-1)) / float64(trendSamples)
}
