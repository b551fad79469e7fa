package game

import (
	"errors"
	"fmt"
)

// 放置失败原因
// 调用方通过 errors.Is 判断具体类型，PlacementError 会把这些哨兵错误作为 Unwrap 结果
var (
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrCellOccupied      = errors.New("cell occupied")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnitOnCooldown    = errors.New("unit on cooldown")
	ErrSessionNotRunning = errors.New("session not running")
	ErrUnknownUnitType   = errors.New("unknown unit type")
)

// ErrRequirementNotMet 转生条件未满足
var ErrRequirementNotMet = errors.New("rebirth requirement not met")

// PlacementError 放置命令被拒绝
// 被拒绝的放置不会修改任何状态
type PlacementError struct {
	Kind error  // 上面的哨兵错误之一
	Row  int    // 目标行
	Col  int    // 目标列
	Unit string // 单位类型名称，未知类型时为空
}

func (e *PlacementError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("cannot place at (%d, %d): %v", e.Row, e.Col, e.Kind)
	}
	return fmt.Sprintf("cannot place %s at (%d, %d): %v", e.Unit, e.Row, e.Col, e.Kind)
}

func (e *PlacementError) Unwrap() error {
	return e.Kind
}

// Message 返回展示给玩家的提示文本
func (e *PlacementError) Message() string {
	switch e.Kind {
	case ErrOutOfBounds:
		return "You can't place a soldier there."
	case ErrCellOccupied:
		return "That cell is already occupied!"
	case ErrInsufficientFunds:
		return fmt.Sprintf("Not enough coins for %s!", e.Unit)
	case ErrUnitOnCooldown:
		return fmt.Sprintf("%s is not ready yet!", e.Unit)
	case ErrSessionNotRunning:
		return "The game is over. Reset to play again."
	case ErrUnknownUnitType:
		return "Select a soldier first."
	default:
		return e.Error()
	}
}

// RebirthError 转生请求被拒绝
type RebirthError struct {
	Kind        error  // ErrRequirementNotMet
	Requirement string // 面向玩家的条件说明
}

func (e *RebirthError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Requirement)
}

func (e *RebirthError) Unwrap() error {
	return e.Kind
}
