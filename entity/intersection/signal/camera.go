package signal

import (
	"math"

	"github.com/kcc-smart-traffic/corridor-sim/entity"
	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// 可见性权重分层：主焦点方向完全可见，次焦点与外围方向的权重来自配置
const primaryVisibility = 1.0

// quadrantWidth 焦点象限宽度（度），四个象限分别以东0°、北90°、西180°、南270°为中心
const quadrantWidth = 90.0

// Focus 相机焦点
// 功能：表示相机当前tick的注意力分配结果
type Focus struct {
	Primary   entity.Direction // 主焦点方向（完全可见）
	Secondary entity.Direction // 次焦点方向（部分可见）
	Angle     float64          // 当前相机角度（度）
}

// Camera 旋转相机注意力模型
// 功能：模拟一台360°匀速旋转、视场有限的相机，将连续推进的旋转角
// 映射为主/次焦点方向与各方向的可见性权重
// 说明：相机模型是执行质量随朝向变化的根本原因——控制器看到的不是全知
// 检测数据，而是被当前朝向加权后的数据
type Camera struct {
	cfg   config.Camera
	angle float64 // 当前角度，始终在[0, 360)内
}

// NewCamera 创建旋转相机
// 参数：cfg-相机配置，startAngle-初始角度（度，走廊上相邻路口通常反向起始）
func NewCamera(cfg config.Camera, startAngle float64) *Camera {
	return &Camera{
		cfg:   cfg,
		angle: normalizeAngle(startAngle),
	}
}

// Angle 获取当前相机角度（度）
func (c *Camera) Angle() float64 {
	return c.angle
}

// FieldOfView 获取相机视场宽度（度）
func (c *Camera) FieldOfView() float64 {
	return c.cfg.FieldOfView
}

// Advance 推进相机旋转并计算当前焦点
// 功能：将角度按每tick旋转速度推进（模360），再映射为主/次焦点方向
// 返回：当前tick的焦点
// 算法说明：
// 1. 主焦点取角度所在的90°象限（象限以四个正方向为中心划分）
// 2. 次焦点在象限内按中点二分：角度越过象限中心后取逆时针相邻方向，
// 否则取顺时针相邻方向
func (c *Camera) Advance() Focus {
	c.angle = normalizeAngle(c.angle + c.cfg.RotationSpeed)
	return c.focus()
}

// focus 将当前角度映射为焦点（不推进角度）
func (c *Camera) focus() Focus {
	half := quadrantWidth / 2
	idx := int(math.Mod(c.angle+half, 360)/quadrantWidth) % entity.DirectionCount
	primary := entity.Directions[idx]

	// 相对象限中心的偏移，落在[-half, half)内
	offset := math.Mod(c.angle-float64(idx)*quadrantWidth+360, 360)
	if offset >= 180 {
		offset -= 360
	}
	var secondary entity.Direction
	if offset >= 0 {
		secondary = entity.Directions[(idx+1)%entity.DirectionCount]
	} else {
		secondary = entity.Directions[(idx+entity.DirectionCount-1)%entity.DirectionCount]
	}
	return Focus{Primary: primary, Secondary: secondary, Angle: c.angle}
}

// VisibilityWeight 获取一个方向在当前焦点下的可见性权重
// 功能：主焦点方向返回1.0，次焦点方向返回配置的次可见性（默认0.7），
// 其余外围方向返回配置的外围可见性（默认0.3）
func (c *Camera) VisibilityWeight(direction entity.Direction, f Focus) float64 {
	switch direction {
	case f.Primary:
		return primaryVisibility
	case f.Secondary:
		return c.cfg.SecondaryVisibility
	default:
		return c.cfg.PeripheralVisibility
	}
}

// normalizeAngle 将角度规约到[0, 360)
func normalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}
