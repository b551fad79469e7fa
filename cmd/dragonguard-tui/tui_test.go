package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/embedded"
	"github.com/decker502/dragonguard/pkg/simulation"
	"github.com/gdamore/tcell/v2"
)

func newTestTUI(t *testing.T) *tui {
	t.Helper()
	embedded.Init(os.DirFS(filepath.Join("..", "..")))
	rs, err := config.LoadBuiltinRuleset(config.RulesetFrontline)
	if err != nil {
		t.Fatalf("LoadBuiltinRuleset failed: %v", err)
	}
	session, err := simulation.NewSession(simulation.Options{Ruleset: rs, Seed: 1})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)
	return newTUI(screen, session)
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestScreenToCell(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		wantRow   int
		wantCol   int
		wantValid bool
	}{
		{name: "第一个格子", x: boardLeft, y: boardTop, wantRow: 0, wantCol: 0, wantValid: true},
		{name: "格子内部", x: boardLeft + 2*cellChars + 3, y: boardTop + 3, wantRow: 3, wantCol: 2, wantValid: true},
		{name: "网格左侧", x: boardLeft - 1, y: boardTop, wantValid: false},
		{name: "网格上方", x: boardLeft, y: boardTop - 1, wantValid: false},
		{name: "超出列", x: boardLeft + 9*cellChars, y: boardTop, wantValid: false},
		{name: "超出行", x: boardLeft, y: boardTop + 5, wantValid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := screenToCell(tt.x, tt.y, 5, 9)
			if ok != tt.wantValid {
				t.Fatalf("valid: expected %v, got %v", tt.wantValid, ok)
			}
			if ok && (row != tt.wantRow || col != tt.wantCol) {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.wantRow, tt.wantCol, row, col)
			}
		})
	}
}

func TestEnemyColumn(t *testing.T) {
	if got := enemyColumn(0, 72, 9); got != boardLeft {
		t.Errorf("x=0 should map to the base column, got %d", got)
	}
	if got := enemyColumn(72*9+100, 72, 9); got != boardLeft+9*cellChars-1 {
		t.Errorf("x beyond the board should clamp to the last column, got %d", got)
	}
	if got := enemyColumn(72*2, 72, 9); got != boardLeft+2*cellChars {
		t.Errorf("x=2 cells: expected %d, got %d", boardLeft+2*cellChars, got)
	}
}

func TestKeyboardPlacement(t *testing.T) {
	ui := newTestTUI(t)

	// 选择 Sniper，光标移到 (1,2)，回车放置
	ui.handleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	ui.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	ui.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone))
	ui.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	ui.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	snap := ui.session.Snapshot()
	unit, ok := snap.UnitAt(1, 2)
	if !ok || unit.Type != "Sniper" {
		t.Fatalf("expected Sniper at (1,2), got %+v found=%v", unit, ok)
	}
	if got := runeAt(ui.screen, boardLeft+2*cellChars, boardTop+1); got != 'S' {
		t.Errorf("expected glyph 'S' on the board, got %q", got)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	ui := newTestTUI(t)
	for i := 0; i < 20; i++ {
		ui.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
		ui.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	}
	if ui.cursorRow != 0 || ui.cursorCol != 0 {
		t.Errorf("cursor should clamp at (0,0), got (%d,%d)", ui.cursorRow, ui.cursorCol)
	}
	for i := 0; i < 20; i++ {
		ui.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
		ui.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	}
	if ui.cursorRow != 4 || ui.cursorCol != 8 {
		t.Errorf("cursor should clamp at (4,8), got (%d,%d)", ui.cursorRow, ui.cursorCol)
	}
}

func TestMousePlacement(t *testing.T) {
	ui := newTestTUI(t)
	ui.handleEvent(tcell.NewEventMouse(boardLeft+3*cellChars+1, boardTop+4, tcell.Button1, tcell.ModNone))

	snap := ui.session.Snapshot()
	if _, ok := snap.UnitAt(4, 3); !ok {
		t.Error("mouse click should place the selected unit")
	}
	if ui.cursorRow != 4 || ui.cursorCol != 3 {
		t.Errorf("cursor should follow the click, got (%d,%d)", ui.cursorRow, ui.cursorCol)
	}
}

func TestQuitKeys(t *testing.T) {
	ui := newTestTUI(t)
	if ui.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if ui.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !ui.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("unbound keys should keep running")
	}
}

func TestDrawHeader(t *testing.T) {
	ui := newTestTUI(t)
	ui.draw()
	want := "Coins: 100"
	for i, r := range want {
		if got := runeAt(ui.screen, i, 0); got != r {
			t.Fatalf("header mismatch at %d: expected %q, got %q", i, r, got)
		}
	}
	if got := runeAt(ui.screen, boardLeft-1, boardTop); got != '|' {
		t.Errorf("base line should be drawn, got %q", got)
	}
}

func TestUnitGlyph(t *testing.T) {
	if got := unitGlyph("engineer"); got != 'E' {
		t.Errorf("expected 'E', got %q", got)
	}
	if got := unitGlyph(""); got != '?' {
		t.Errorf("expected '?', got %q", got)
	}
}

func TestColorStyle(t *testing.T) {
	short := colorStyle("#4af")
	long := colorStyle("#44aaff")
	if short != long {
		t.Error("#4af and #44aaff should produce the same style")
	}
	if colorStyle("") != styleDefault || colorStyle("blue-ish") != styleDefault {
		t.Error("empty or invalid colors should use the default style")
	}
	fg, _, _ := short.Decompose()
	if fg != tcell.NewRGBColor(68, 170, 255) {
		t.Errorf("#4af foreground: expected rgb(68,170,255), got %v", fg)
	}
}
