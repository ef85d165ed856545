package input

import (
	"context"
	"os"
	"sort"

	"git.fiblab.net/general/common/v2/mongoutil"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v2"

	"github.com/kcc-smart-traffic/corridor-sim/utils/config"
)

// HourlyRate 单个小时的走廊需求强度
// 功能：定义一个小时内主线（东西向）与支路（南北向）的平均到达率
type HourlyRate struct {
	Hour     int32   `yaml:"hour" bson:"hour"`         // 小时（0-23）
	Mainline float64 `yaml:"mainline" bson:"mainline"` // 主线每tick平均到达车辆数
	Cross    float64 `yaml:"cross" bson:"cross"`       // 支路每tick平均到达车辆数
}

// DemandProfile 走廊需求曲线
// 功能：按小时组织的需求强度表，供回环传感器模型按仿真时间查询
type DemandProfile struct {
	Hourly []HourlyRate `yaml:"hourly" bson:"hourly"`
}

// Rate 查询指定小时的需求强度
// 功能：返回指定小时的主线与支路到达率
// 参数：hour-小时（超出24按模24处理）
// 返回：主线到达率、支路到达率
// 说明：曲线中没有对应小时的条目时返回全天最低强度，保证总有车流
func (p *DemandProfile) Rate(hour int) (mainline, cross float64) {
	h := int32(hour % 24)
	minMainline, minCross := -1.0, -1.0
	for _, r := range p.Hourly {
		if r.Hour == h {
			return r.Mainline, r.Cross
		}
		if minMainline < 0 || r.Mainline < minMainline {
			minMainline = r.Mainline
		}
		if minCross < 0 || r.Cross < minCross {
			minCross = r.Cross
		}
	}
	if minMainline < 0 {
		return 0, 0
	}
	return minMainline, minCross
}

// Input 输入数据
// 功能：存储控制器运行所需的所有输入数据
type Input struct {
	Demand *DemandProfile
}

// Init 加载输入数据
// 功能：根据配置加载走廊需求曲线
// 参数：c-配置对象
// 返回：加载完成的输入数据指针
// 算法说明：
// 1. 文件加载：配置了文件路径时从YAML文件加载（优先级高于MongoDB）
// 2. 数据库加载：配置了MongoDB时从指定集合按小时加载
// 3. 默认曲线：两者均未配置时使用内置的早晚高峰曲线
// 说明：加载失败视为启动错误，直接panic终止
func Init(c config.Config) (res *Input) {
	res = &Input{}

	demand := c.Input.Demand
	switch {
	case demand.File != "":
		data, err := os.ReadFile(demand.File)
		if err != nil {
			log.Panicf("failed to load demand profile from file: %v", err)
		}
		var p DemandProfile
		if err := yaml.UnmarshalStrict(data, &p); err != nil {
			log.Panicf("failed to parse demand profile: %v", err)
		}
		res.Demand = &p
		log.Infof("demand profile loaded from %s (%d hourly entries)", demand.File, len(p.Hourly))
	case demand.URI != "":
		client := mongoutil.NewClient(demand.URI)
		defer client.Disconnect(context.Background())
		cur, err := client.Database(demand.DB).Collection(demand.Col).Find(context.Background(), bson.M{})
		if err != nil {
			log.Panicf("failed to query demand profile from mongodb: %v", err)
		}
		var rates []HourlyRate
		if err := cur.All(context.Background(), &rates); err != nil {
			log.Panicf("failed to decode demand profile from mongodb: %v", err)
		}
		sort.Slice(rates, func(i, j int) bool { return rates[i].Hour < rates[j].Hour })
		res.Demand = &DemandProfile{Hourly: rates}
		log.Infof("demand profile loaded from %s.%s (%d hourly entries)", demand.DB, demand.Col, len(rates))
	default:
		res.Demand = DefaultDemandProfile()
		log.Info("no demand profile configured, using built-in peak-hour profile")
	}

	return res
}

// DefaultDemandProfile 内置需求曲线
// 功能：返回带早晚高峰的一天需求曲线
// 说明：主线早高峰7-9点、晚高峰17-19点，支路强度全天约为主线的四成
func DefaultDemandProfile() *DemandProfile {
	p := &DemandProfile{}
	for h := int32(0); h < 24; h++ {
		var mainline float64
		switch {
		case h >= 7 && h < 9:
			mainline = 1.2
		case h >= 17 && h < 19:
			mainline = 1.0
		case h >= 9 && h < 17:
			mainline = 0.5
		case h >= 19 && h < 23:
			mainline = 0.3
		default:
			mainline = 0.1
		}
		p.Hourly = append(p.Hourly, HourlyRate{
			Hour:     h,
			Mainline: mainline,
			Cross:    mainline * 0.4,
		})
	}
	return p
}
