package main

import (
	"fmt"
	"unicode"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/simulation"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 终端布局
const (
	boardLeft = 2
	boardTop  = 4
	cellChars = 4 // 每个格子占用的字符宽度
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInfo    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCursor  = tcell.StyleDefault.Reverse(true)
)

// tui 终端前端状态
type tui struct {
	screen    tcell.Screen
	session   *simulation.Session
	catalog   []config.UnitType
	cursorRow int
	cursorCol int
}

func newTUI(screen tcell.Screen, session *simulation.Session) *tui {
	return &tui{
		screen:  screen,
		session: session,
		catalog: session.Catalog(),
	}
}

// handleEvent 处理一个输入事件，返回 false 表示退出
func (t *tui) handleEvent(ev tcell.Event) bool {
	snap := t.session.Snapshot()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.moveCursor(-1, 0, snap)
		case tcell.KeyDown:
			t.moveCursor(1, 0, snap)
		case tcell.KeyLeft:
			t.moveCursor(0, -1, snap)
		case tcell.KeyRight:
			t.moveCursor(0, 1, snap)
		case tcell.KeyEnter:
			_, _ = t.session.PlaceAt(t.cursorRow, t.cursorCol)
		case tcell.KeyRune:
			return t.handleRune(ev.Rune(), snap)
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			break
		}
		x, y := ev.Position()
		if row, col, ok := screenToCell(x, y, snap.Rows, snap.Cols); ok {
			t.cursorRow, t.cursorCol = row, col
			_, _ = t.session.PlaceAt(row, col)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}

	t.draw()
	return true
}

func (t *tui) handleRune(r rune, snap simulation.Snapshot) bool {
	switch {
	case r == 'q':
		return false
	case r >= '1' && r <= '9':
		_ = t.session.SelectUnitType(int(r - '1'))
	case r == ' ':
		_, _ = t.session.PlaceAt(t.cursorRow, t.cursorCol)
	case r == 'k':
		t.moveCursor(-1, 0, snap)
	case r == 'j':
		t.moveCursor(1, 0, snap)
	case r == 'h':
		t.moveCursor(0, -1, snap)
	case r == 'l':
		t.moveCursor(0, 1, snap)
	case r == 'r':
		_ = t.session.RequestRebirth()
	case r == 'n':
		t.session.Reset()
	}
	t.draw()
	return true
}

// moveCursor 移动光标并限制在网格内
func (t *tui) moveCursor(dRow, dCol int, snap simulation.Snapshot) {
	t.cursorRow = clamp(t.cursorRow+dRow, 0, snap.Rows-1)
	t.cursorCol = clamp(t.cursorCol+dCol, 0, snap.Cols-1)
}

// screenToCell 终端坐标转换为网格坐标
func screenToCell(x, y, rows, cols int) (row, col int, ok bool) {
	if x < boardLeft || y < boardTop {
		return 0, 0, false
	}
	row = y - boardTop
	col = (x - boardLeft) / cellChars
	if row >= rows || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// enemyColumn 敌人横坐标对应的终端列
func enemyColumn(x, cellSize float64, cols int) int {
	if cellSize <= 0 {
		return boardLeft
	}
	offset := int(x / cellSize * cellChars)
	return boardLeft + clamp(offset, 0, cols*cellChars-1)
}

func (t *tui) draw() {
	snap := t.session.Snapshot()
	cellSize := t.session.Ruleset().Grid.CellSize

	t.screen.Clear()

	t.drawText(0, 0, fmt.Sprintf("Coins: %d  Wave: %d  Income: %d/s  Rebirths: %d (+%d%%)",
		snap.Currency, snap.Wave, snap.IncomePerSec, snap.Rebirths, snap.RebirthBonus), styleDefault)
	t.drawText(0, 1, snap.InventorySummary(), styleDim)
	if snap.Info != "" {
		t.drawText(0, 2, snap.Info, styleInfo)
	}

	// 网格
	for row := 0; row < snap.Rows; row++ {
		y := boardTop + row
		t.screen.SetContent(boardLeft-1, y, '|', nil, styleBase)
		for col := 0; col < snap.Cols; col++ {
			style := styleDim
			if row == t.cursorRow && col == t.cursorCol {
				style = styleCursor
			}
			x := boardLeft + col*cellChars
			for i := 0; i < cellChars; i++ {
				ch := ' '
				if i == 0 {
					ch = '.'
				}
				t.screen.SetContent(x+i, y, ch, nil, style)
			}
		}
	}

	for _, u := range snap.Units {
		style := colorStyle(u.Color)
		if u.Row == t.cursorRow && u.Col == t.cursorCol {
			style = style.Reverse(true)
		}
		t.screen.SetContent(boardLeft+u.Col*cellChars, boardTop+u.Row, unitGlyph(u.Type), nil, style)
	}

	for _, e := range snap.Enemies {
		t.screen.SetContent(enemyColumn(e.X, cellSize, snap.Cols), boardTop+e.Row, 'D', nil, colorStyle(e.Color))
	}

	// 单位卡片
	y := boardTop + snap.Rows + 1
	for i, unit := range t.catalog {
		style := styleDefault
		if unit.Cost > snap.Currency || (i < len(snap.Cooldowns) && snap.Cooldowns[i] > 0) {
			style = styleDim
		}
		marker := " "
		if i == snap.SelectedUnit {
			marker = ">"
		}
		line := fmt.Sprintf("%s%d %-16s $%-4d", marker, i+1, unit.Name, unit.Cost)
		if i < len(snap.Cooldowns) && snap.Cooldowns[i] > 0 {
			line += fmt.Sprintf(" cd %d", snap.Cooldowns[i])
		}
		t.drawText(0, y+i, line, style)
	}

	status := "running"
	if !snap.Running {
		status = "halted, press n for a new game"
	} else if snap.CanRebirth {
		status = "rebirth available (r)"
	}
	t.drawText(0, y+len(t.catalog)+1, fmt.Sprintf("[%s] phase %s", status, snap.Phase), styleDim)

	t.screen.Show()
}

func (t *tui) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// unitGlyph 单位在网格中显示的字符（名称首字母）
func unitGlyph(name string) rune {
	for _, r := range name {
		return unicode.ToUpper(r)
	}
	return '?'
}

// colorStyle 把 "#rgb" / "#rrggbb" 颜色转换为前景色样式，无法解析时使用默认样式
func colorStyle(hex string) tcell.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return styleDefault
	}
	r, g, b := c.RGB255()
	return styleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
