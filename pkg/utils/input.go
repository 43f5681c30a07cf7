// Package utils 提供宿主输入相关的工具函数
//
// 统一处理鼠标和触摸：桌面端用光标位置，移动端用第一个触摸点，
// 这样叠加层在两端都能收到同样的指针移动和点击。
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// touchPositionFunc 查询触摸点位置，测试中可替换
type touchPositionFunc func(id ebiten.TouchID) (int, int)

// firstTouch 返回第一个触摸点的位置
func firstTouch(ids []ebiten.TouchID, pos touchPositionFunc) (x, y int, ok bool) {
	if len(ids) == 0 {
		return 0, 0, false
	}
	x, y = pos(ids[0])
	return x, y, true
}

// PointerPosition 获取当前指针位置
// 有活动触摸时返回第一个触摸点，否则返回鼠标位置
func PointerPosition() (int, int) {
	if x, y, ok := firstTouch(ebiten.AppendTouchIDs(nil), ebiten.TouchPosition); ok {
		return x, y
	}
	return ebiten.CursorPosition()
}

// PointerJustPressed 检查是否刚刚按下指针（触摸或鼠标左键）
// 返回是否按下以及按下位置
func PointerJustPressed() (bool, int, int) {
	if x, y, ok := firstTouch(inpututil.AppendJustPressedTouchIDs(nil), ebiten.TouchPosition); ok {
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}
