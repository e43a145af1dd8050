package types

import "errors"

// 哨兵错误, 调用方通过 errors.Is 判断
var (
	// ErrInvalidParameter 参数非法 (百分比越界、列表长度不匹配、价格非正等)
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientHistory 请求长度超过可用历史数据
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrEmptyLadder 阈值梯已耗尽
	ErrEmptyLadder = errors.New("empty ladder")
)
