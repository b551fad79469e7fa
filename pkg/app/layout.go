package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 屏幕布局常量（逻辑像素）
const (
	screenMargin = 20.0
	hudHeight    = 64.0
	cardHeight   = 72.0
	cardGap      = 6.0
	footerHeight = 40.0
	minCardWidth = 96.0
	barHeight    = 5.0
	buttonWidth  = 80.0
	buttonHeight = 20.0
	buttonY      = 38.0

	cardLineHeight   = 13.0
	maxCardDescLines = 2
)

// HUD 按钮（触摸设备没有键盘）
const (
	buttonRebirth = iota
	buttonNewGame
	buttonCount
)

var buttonLabels = [buttonCount]string{"Rebirth", "New game"}

// screenLayout 根据规则集计算出的屏幕布局
type screenLayout struct {
	Width, Height int
	Board         utils.BoardLayout
	CardY         float64
	CardWidth     float64
	CardCount     int
}

// newScreenLayout 计算屏幕布局
// 网格在 HUD 下方，单位卡片在网格下方排成一行
func newScreenLayout(grid config.GridConfig, unitCount int) screenLayout {
	board := utils.BoardLayout{
		OriginX:  screenMargin,
		OriginY:  hudHeight,
		CellSize: grid.CellSize,
		Rows:     grid.Rows,
		Cols:     grid.Cols,
	}

	cardWidth := minCardWidth
	if unitCount > 0 {
		if w := (board.Width() - cardGap*float64(unitCount-1)) / float64(unitCount); w > cardWidth {
			cardWidth = w
		}
	}
	cardsWidth := float64(unitCount)*cardWidth + cardGap*float64(max(unitCount-1, 0))
	width := max(board.Width(), cardsWidth) + screenMargin*2
	cardY := board.OriginY + board.Height() + cardGap*2

	return screenLayout{
		Width:     int(width),
		Height:    int(cardY + cardHeight + footerHeight),
		Board:     board,
		CardY:     cardY,
		CardWidth: cardWidth,
		CardCount: unitCount,
	}
}

// CardX 第 i 张卡片的左边界
func (l screenLayout) CardX(i int) float64 {
	return screenMargin + float64(i)*(l.CardWidth+cardGap)
}

// CardAt 返回 (x, y) 处的卡片下标，不在任何卡片上时返回 -1
func (l screenLayout) CardAt(x, y int) int {
	fy := float64(y)
	if fy < l.CardY || fy >= l.CardY+cardHeight {
		return -1
	}
	fx := float64(x)
	for i := 0; i < l.CardCount; i++ {
		left := l.CardX(i)
		if fx >= left && fx < left+l.CardWidth {
			return i
		}
	}
	return -1
}

// ButtonX 第 i 个按钮的左边界，按钮从右往左排列
func (l screenLayout) ButtonX(i int) float64 {
	return float64(l.Width) - screenMargin - float64(i+1)*buttonWidth - float64(i)*cardGap
}

// ButtonAt 返回 (x, y) 处的按钮，不在任何按钮上时返回 -1
func (l screenLayout) ButtonAt(x, y int) int {
	fy := float64(y)
	if fy < buttonY || fy >= buttonY+buttonHeight {
		return -1
	}
	fx := float64(x)
	for i := 0; i < buttonCount; i++ {
		left := l.ButtonX(i)
		if fx >= left && fx < left+buttonWidth {
			return i
		}
	}
	return -1
}

// cardLines 卡片名称下方的文字：花费和生命值、攻击力和辅助能力、最多两行描述
func cardLines(unit config.UnitType, face text.Face, width float64) []string {
	lines := []string{fmt.Sprintf("$%d  HP %.0f", unit.Cost, unit.HP)}
	attack := fmt.Sprintf("ATK %.0f", unit.Attack)
	if unit.Support != config.SupportNone {
		attack += " " + string(unit.Support)
	}
	lines = append(lines, attack)

	if unit.Description != "" {
		desc := utils.WrapText(unit.Description, face, width)
		if len(desc) > maxCardDescLines {
			desc = desc[:maxCardDescLines]
		}
		lines = append(lines, desc...)
	}
	return lines
}

// parseHexColor 解析 "#rgb" 或 "#rrggbb" 格式的颜色
func parseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// colorOr 解析颜色，失败时返回 fallback
func colorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := parseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
