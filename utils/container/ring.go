package container

// Ring 固定容量环形缓冲区
// 功能：保存最近写入的capacity个元素，写满后自动覆盖最旧的元素
// 说明：使用泛型支持任意类型的元素，插入顺序有意义，读取不改变内容
type Ring[T any] struct {
	data []T // 底层存储
	head int // 最旧元素的下标
	size int // 当前元素数量
}

// NewRing 创建环形缓冲区
// 功能：初始化一个新的环形缓冲区实例
// 参数：capacity-缓冲区容量（必须为正）
// 返回：新创建的环形缓冲区指针
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("container: ring capacity must be positive")
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Len 获取当前元素数量
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap 获取缓冲区容量
func (r *Ring[T]) Cap() int {
	return len(r.data)
}

// Push 追加元素
// 功能：将元素写入缓冲区末尾，缓冲区已满时覆盖最旧的元素
// 参数：value-要追加的元素
func (r *Ring[T]) Push(value T) {
	if r.size < len(r.data) {
		r.data[(r.head+r.size)%len(r.data)] = value
		r.size++
		return
	}
	r.data[r.head] = value
	r.head = (r.head + 1) % len(r.data)
}

// At 按插入顺序读取元素
// 功能：返回第i个元素，0为最旧的元素
// 参数：i-元素下标，要求0 <= i < Len()
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("container: ring index out of range")
	}
	return r.data[(r.head+i)%len(r.data)]
}

// FromEnd 从末尾读取元素
// 功能：返回倒数第n+1个元素，n=0为最新的元素
// 参数：n-距末尾的偏移，要求0 <= n < Len()
func (r *Ring[T]) FromEnd(n int) T {
	return r.At(r.size - 1 - n)
}

// Values 按插入顺序导出全部元素
// 功能：返回缓冲区中全部元素的副本，最旧的元素在前
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.At(i)
	}
	return out
}

// Reset 清空缓冲区
func (r *Ring[T]) Reset() {
	r.head = 0
	r.size = 0
}
