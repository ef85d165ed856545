package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持YAML文件与MongoDB两种数据源
// 说明：文件路径优先级高于MongoDB
type InputPath struct {
	URI  string `yaml:"uri,omitempty"`  // MongoDB连接字符串
	DB   string `yaml:"db,omitempty"`   // 数据库名
	Col  string `yaml:"col,omitempty"`  // 集合名
	File string `yaml:"file,omitempty"` // 文件路径（优先级高于MongoDB）
}

// Input 指定控制器所有输入数据的配置项
type Input struct {
	Demand InputPath `yaml:"demand"` // 走廊需求曲线（回环传感器模型使用）
}

// ControlStep 指定模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始tick
	Total    int32   `yaml:"total"`    // 总tick数
	Interval float64 `yaml:"interval"` // 每tick的仿真时间间隔（秒）
}

// Control 控制器全局控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed,omitempty"` // 回环传感器模型的随机种子
}

// Camera 旋转相机注意力模型配置
// 功能：定义模拟旋转相机的视场与可见性权重
// 说明：可见性权重模拟有限视场的旋转传感器（而非全知传感器），
// 这是执行质量随相机朝向变化的根本设计原因
type Camera struct {
	RotationSpeed        float64 `yaml:"rotation_speed,omitempty"`        // 每tick旋转角度（度），默认10
	FieldOfView          float64 `yaml:"field_of_view,omitempty"`         // 视场宽度（度），默认90
	SecondaryVisibility  float64 `yaml:"secondary_visibility,omitempty"`  // 次焦点方向可见性权重，默认0.7
	PeripheralVisibility float64 `yaml:"peripheral_visibility,omitempty"` // 外围方向可见性权重，默认0.3
}

// Coordination 跨路口绿波协调配置
type Coordination struct {
	Weight       float64 `yaml:"weight,omitempty"`        // 上游东西绿灯时下游东西紧急度的乘性增益，默认2.5
	RecencyBoost float64 `yaml:"recency_boost,omitempty"` // 上游近期切换过相位时的额外增益，默认1.3
	WindowTicks  int32   `yaml:"window_ticks,omitempty"`  // 近期切换判定窗口（tick），默认40
}

// Signal 自适应信号控制算法配置
// 功能：集中定义信号控制算法的全部可调参数
// 说明：原型系统的多个控制器变体仅在常量取值上有差异，这里统一为配置项
type Signal struct {
	MinGreenTicks int32   `yaml:"min_green_ticks,omitempty"` // 最短绿灯时间（tick），默认20
	MaxGreenTicks int32   `yaml:"max_green_ticks,omitempty"` // 最长绿灯时间（tick），默认90
	SwitchRatio   float64 `yaml:"switch_ratio,omitempty"`    // 相位切换的紧急度比例阈值，默认1.4

	HaltingWeight      float64 `yaml:"halting_weight,omitempty"`       // 停驻车辆权重，默认4.0
	TotalWeight        float64 `yaml:"total_weight,omitempty"`         // 车辆总数权重，默认1.5
	WaitingWeight      float64 `yaml:"waiting_weight,omitempty"`       // 等待时间权重，默认0.8
	TrendWeight        float64 `yaml:"trend_weight,omitempty"`         // 趋势权重，默认2.5
	QueueClearingBonus float64 `yaml:"queue_clearing_bonus,omitempty"` // 清队奖励系数，默认3.0

	CongestionThreshold int32 `yaml:"congestion_threshold,omitempty"` // 拥堵升级阈值（停驻车辆数），默认18
	EmergencyThreshold  int32 `yaml:"emergency_threshold,omitempty"`  // 紧急升级阈值（停驻车辆数），默认25

	HistoryDepth int `yaml:"history_depth,omitempty"` // 历史缓冲区深度K，默认10

	Camera       Camera       `yaml:"camera"`       // 相机注意力模型
	Coordination Coordination `yaml:"coordination"` // 绿波协调
}

// Intersection 单个路口的配置
// 功能：定义路口ID、模拟器相位编号映射与协调关系
// 说明：UpstreamID指定绿波协调的上游路口，协调是单向耦合（下游依赖上游）
type Intersection struct {
	ID               int32   `yaml:"id"`                           // 路口ID（模拟器中的信号灯ID）
	Name             string  `yaml:"name"`                         // 路口名称（日志与输出用）
	EWGreenIndex     int32   `yaml:"ew_green_index"`               // 东西绿灯对应的模拟器相位编号
	NSGreenIndex     int32   `yaml:"ns_green_index"`               // 南北绿灯对应的模拟器相位编号
	CameraStartAngle float64 `yaml:"camera_start_angle,omitempty"` // 相机初始角度（度）
	UpstreamID       *int32  `yaml:"upstream_id,omitempty"`        // 协调上游路口ID（为空则不参与协调）
}

// Output 指标输出配置
// 功能：定义指标记录的落地方式，可同时启用多种输出
type Output struct {
	CSV    string `yaml:"csv,omitempty"`    // CSV文件路径，为空则禁用
	SQLite string `yaml:"sqlite,omitempty"` // SQLite数据库路径，为空则禁用
}

// Config YAML配置文件的根结构
type Config struct {
	Input         Input          `yaml:"input"`         // 输入
	Control       Control        `yaml:"control"`       // 模拟过程控制
	Signal        Signal         `yaml:"signal"`        // 信号控制算法参数
	Intersections []Intersection `yaml:"intersections"` // 路口列表（按走廊顺序，上游在前）
	Output        Output         `yaml:"output"`        // 输出
}
