package strategy

// ExtremaEvent 单次观测产生的极值事件
type ExtremaEvent int

const (
	// EventNone 未刷新任何极值
	EventNone ExtremaEvent = iota
	// EventNewMaximum 刷新运行最大值
	EventNewMaximum
	// EventNewMinimum 刷新最大值之后的运行最小值
	EventNewMinimum
)

// ExtremaTracker 跟踪已遍历价格的运行最大值与最大值之后的运行最小值
//
// 两个极值均以首个 (最旧的) 价格初始化; 刷新最大值时最小值不会上调,
// 只有后续出现更低价格时才会更新, 因此最小值始终相对当前最大值有效
type ExtremaTracker struct {
	max      float64
	min      float64
	declined bool
}

// NewExtremaTracker 以序列最旧价格初始化极值跟踪器
func NewExtremaTracker(first float64) *ExtremaTracker {
	return &ExtremaTracker{max: first, min: first}
}

// Observe 纳入一个新价格并返回触发的极值事件
//
// 比较均为严格不等: 与当前极值相等不产生事件
func (t *ExtremaTracker) Observe(price float64) ExtremaEvent {
	if price > t.max {
		t.max = price
		return EventNewMaximum
	}
	if price < t.min {
		t.min = price
		t.declined = true
		return EventNewMinimum
	}
	return EventNone
}

// Declined 是否出现过回撤 (产生过最小值刷新事件)
//
// 未出现回撤时最小值仍是初始价格, 此时的价格上涨不构成反弹
func (t *ExtremaTracker) Declined() bool {
	return t.declined
}

// Max 当前运行最大值
func (t *ExtremaTracker) Max() float64 {
	return t.max
}

// Min 当前最大值之后的运行最小值
func (t *ExtremaTracker) Min() float64 {
	return t.min
}

// Drawdown 当前回撤幅度: 1 - min/max
func (t *ExtremaTracker) Drawdown() float64 {
	return 1 - t.min/t.max
}

// Rebound 自最大值后最小值起的反弹幅度: max/min - 1
//
// 仅在 Declined 为真时才有反弹语义, 调用方需自行判断
func (t *ExtremaTracker) Rebound() float64 {
	return t.max/t.min - 1
}
