package strategy

import (
	"fmt"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// Rung 阈值梯的单个梯级, 触发幅度与动作比例均已归一化为小数
type Rung struct {
	Trigger float64
	Action  float64
}

// Ladder 阈值梯: 按触发幅度升序排列、一次性消耗的 (触发, 动作) 队列
//
// 构造时复制入参, 消耗通过内部游标推进, 不会改写调用方持有的切片
type Ladder struct {
	rungs  []Rung
	cursor int
}

// NewLadder 校验百分比并构建阈值梯
//
// triggers 与 actions 必须等长, 每个值严格落在 (0,100) 区间,
// 且 triggers 严格递增; 违反任一条件返回 ErrInvalidParameter
func NewLadder(triggers, actions []float64) (*Ladder, error) {
	if len(triggers) != len(actions) {
		return nil, fmt.Errorf("triggers has %d entries, actions has %d: %w",
			len(triggers), len(actions), types.ErrInvalidParameter)
	}
	for i, v := range triggers {
		if v <= 0 || v >= 100 {
			return nil, fmt.Errorf("trigger %.4f at index %d outside (0,100): %w", v, i, types.ErrInvalidParameter)
		}
		if i > 0 && v <= triggers[i-1] {
			return nil, fmt.Errorf("triggers not strictly ascending at index %d: %w", i, types.ErrInvalidParameter)
		}
	}
	for i, v := range actions {
		if v <= 0 || v >= 100 {
			return nil, fmt.Errorf("action %.4f at index %d outside (0,100): %w", v, i, types.ErrInvalidParameter)
		}
	}

	rungs := make([]Rung, len(triggers))
	for i := range triggers {
		rungs[i] = Rung{Trigger: triggers[i] / 100, Action: actions[i] / 100}
	}
	return &Ladder{rungs: rungs}, nil
}

// MaybeFire 以当前幅度贪心消耗队首梯级, 返回触发的动作比例
//
// 幅度必须严格大于触发值才会触发, 相等不触发; 一次幅度跳变可连续
// 触发多个梯级; 已触发的梯级被永久消耗, 队列耗尽后不再产生任何动作
func (l *Ladder) MaybeFire(magnitude float64) []float64 {
	var fired []float64
	for l.cursor < len(l.rungs) && magnitude > l.rungs[l.cursor].Trigger {
		fired = append(fired, l.rungs[l.cursor].Action)
		l.cursor++
	}
	return fired
}

// Front 队首待触发梯级, 队列耗尽时返回 ErrEmptyLadder
func (l *Ladder) Front() (Rung, error) {
	if l.Exhausted() {
		return Rung{}, types.ErrEmptyLadder
	}
	return l.rungs[l.cursor], nil
}

// Remaining 尚未触发的梯级数
func (l *Ladder) Remaining() int {
	return len(l.rungs) - l.cursor
}

// Exhausted 队列是否已耗尽
func (l *Ladder) Exhausted() bool {
	return l.cursor >= len(l.rungs)
}
