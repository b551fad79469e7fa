// Package app 提供图形前端的核心包装器
//
// 该包把模拟会话包装为 ebiten.Game，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
// 前端只做三件事：把输入转换为会话命令、按固定步长推进会话、绘制快照。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/game"
	"github.com/decker502/dragonguard/pkg/simulation"
	"github.com/decker502/dragonguard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Ruleset 要运行的规则集（必填）
	Ruleset *config.Ruleset
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Settings 启动器偏好，可为 nil
	Settings *game.SettingsManager
}

var (
	backgroundColor = color.RGBA{R: 0x1b, G: 0x1e, B: 0x24, A: 0xff}
	cellColorA      = color.RGBA{R: 0x2e, G: 0x4a, B: 0x2e, A: 0xff}
	cellColorB      = color.RGBA{R: 0x35, G: 0x55, B: 0x35, A: 0xff}
	hoverColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	baseLineColor   = color.RGBA{R: 0xd0, G: 0x40, B: 0x40, A: 0xff}
	cardColor       = color.RGBA{R: 0x2a, G: 0x2f, B: 0x38, A: 0xff}
	selectedColor   = color.RGBA{R: 0xf0, G: 0xc0, B: 0x40, A: 0xff}
	cooldownColor   = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x90}
	hpBackColor     = color.RGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xff}
	hpColor         = color.RGBA{R: 0x50, G: 0xd0, B: 0x50, A: 0xff}
	textColor       = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	dimTextColor    = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	fallbackColor   = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// App 是图形前端的核心包装器，实现 ebiten.Game 接口
type App struct {
	session  *simulation.Session
	settings *game.SettingsManager
	layout   screenLayout
	face     text.Face
	catalog  []config.UnitType
	snapshot simulation.Snapshot
	step     time.Duration

	lastInfo   string // 用于检测提示文本变化
	infoFrames int    // 当前提示文本已显示的帧数
}

// 提示文本淡入帧数
const infoFadeFrames = 30

// NewApp 创建并初始化图形前端
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Ruleset == nil {
		return nil, errors.New("app: ruleset is required")
	}

	session, err := simulation.NewSession(simulation.Options{Ruleset: cfg.Ruleset, Seed: cfg.Seed})
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	tps := game.DefaultTicksPerSecond
	if cfg.Settings != nil {
		tps = cfg.Settings.GetSettings().TicksPerSecond
	}
	ebiten.SetTPS(tps)
	log.Printf("[App] Ruleset %q, %d ticks/s", cfg.Ruleset.Name, tps)

	catalog := session.Catalog()
	a := &App{
		session:  session,
		settings: cfg.Settings,
		layout:   newScreenLayout(cfg.Ruleset.Grid, len(catalog)),
		face:     text.NewGoXFace(basicfont.Face7x13),
		catalog:  catalog,
		step:     time.Second / time.Duration(tps),
	}
	a.snapshot = session.Snapshot()
	return a, nil
}

// WindowSize 返回推荐的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.layout.Width, a.layout.Height
}

// Update 处理输入并推进一个 tick
// 每个 tick 调用一次（速率由 ebiten.SetTPS 决定）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) && a.settings != nil {
		a.settings.SetDebugOverlay(!a.settings.GetSettings().DebugOverlay)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	a.handleInput()
	a.session.Update(a.step)
	a.snapshot = a.session.Snapshot()

	if a.snapshot.Info != a.lastInfo {
		a.lastInfo = a.snapshot.Info
		a.infoFrames = 0
	} else {
		a.infoFrames++
	}
	return nil
}

// handleInput 把键盘和指针输入转换为会话命令
// 被拒绝的命令只会更新提示文本，这里不需要处理错误
func (a *App) handleInput() {
	if i := utils.JustPressedDigit(); i >= 0 && i < len(a.catalog) {
		_ = a.session.SelectUnitType(i)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		_ = a.session.RequestRebirth()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.session.Reset()
	}

	clicked, x, y := utils.IsJustTouchedOrClicked()
	if !clicked {
		return
	}
	switch a.layout.ButtonAt(x, y) {
	case buttonRebirth:
		_ = a.session.RequestRebirth()
		return
	case buttonNewGame:
		a.session.Reset()
		return
	}
	if card := a.layout.CardAt(x, y); card >= 0 {
		_ = a.session.SelectUnitType(card)
		return
	}
	if row, col, ok := a.layout.Board.ScreenToCell(x, y); ok {
		if _, err := a.session.PlaceAt(row, col); err != nil {
			log.Printf("[App] Placement at (%d,%d) rejected: %v", row, col, err)
		}
	}
}

// Draw 绘制当前快照
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := &a.snapshot

	a.drawBoard(screen, snap)
	a.drawUnits(screen, snap)
	a.drawEnemies(screen, snap)
	a.drawHUD(screen, snap)
	a.drawCards(screen, snap)

	if a.settings != nil && a.settings.GetSettings().DebugOverlay {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  tick %d  phase %s  t=%v",
			ebiten.ActualTPS(), snap.Tick, snap.Phase, snap.Elapsed.Truncate(time.Millisecond)),
			int(screenMargin), a.layout.Height-16)
	}
}

func (a *App) drawBoard(screen *ebiten.Image, snap *simulation.Snapshot) {
	board := a.layout.Board
	size := float32(board.CellSize)
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			x, y := board.CellOrigin(row, col)
			c := cellColorA
			if (row+col)%2 == 1 {
				c = cellColorB
			}
			vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
		}
	}

	// 悬停高亮
	px, py := utils.GetPointerPosition()
	if row, col, ok := board.ScreenToCell(px, py); ok {
		x, y := board.CellOrigin(row, col)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, hoverColor, false)
	}

	// 基地线（x = 0）
	vector.StrokeLine(screen, float32(board.OriginX), float32(board.OriginY),
		float32(board.OriginX), float32(board.OriginY+board.Height()), 3, baseLineColor, false)
}

func (a *App) drawUnits(screen *ebiten.Image, snap *simulation.Snapshot) {
	board := a.layout.Board
	inset := float32(board.CellSize * 0.15)
	size := float32(board.CellSize) - inset*2
	for _, u := range snap.Units {
		x, y := board.CellOrigin(u.Row, u.Col)
		vector.DrawFilledRect(screen, float32(x)+inset, float32(y)+inset, size, size, colorOr(u.Color, fallbackColor), true)
		a.drawLabel(screen, abbreviate(u.Type), x+float64(inset)+2, y+float64(inset)+2, backgroundColor)
		drawHealthBar(screen, float32(x)+inset, float32(y)+inset+size+2, size, u.HP, u.MaxHP)
	}
}

func (a *App) drawEnemies(screen *ebiten.Image, snap *simulation.Snapshot) {
	board := a.layout.Board
	radius := float32(board.CellSize * 0.3)
	for _, e := range snap.Enemies {
		_, cy := board.CellCenter(e.Row, 0)
		cx := float32(board.BoardToScreenX(e.X))
		vector.DrawFilledCircle(screen, cx, float32(cy), radius, colorOr(e.Color, fallbackColor), true)
		drawHealthBar(screen, cx-radius, float32(cy)+radius+2, radius*2, e.HP, e.MaxHP)
	}
}

func (a *App) drawHUD(screen *ebiten.Image, snap *simulation.Snapshot) {
	line1 := fmt.Sprintf("Coins: %d   Wave: %d   Income: %d/s   Rebirths: %d (+%d%%)",
		snap.Currency, snap.Wave, snap.IncomePerSec, snap.Rebirths, snap.RebirthBonus)
	a.drawLabel(screen, line1, screenMargin, 8, textColor)

	a.drawLabel(screen, snap.InventorySummary(), screenMargin, 24, dimTextColor)

	hint := "[1-9] select  [click] place  [R] rebirth  [N] new game"
	if utils.IsMobile() {
		hint = "tap a card, then tap a cell"
	}
	a.drawLabel(screen, hint, screenMargin, 40, dimTextColor)

	for i := 0; i < buttonCount; i++ {
		x := a.layout.ButtonX(i)
		vector.DrawFilledRect(screen, float32(x), buttonY, buttonWidth, buttonHeight, cardColor, false)
		label := dimTextColor
		if i == buttonNewGame || snap.CanRebirth {
			label = textColor
		}
		if i == buttonRebirth && snap.CanRebirth {
			vector.StrokeRect(screen, float32(x), buttonY, buttonWidth, buttonHeight, 2, selectedColor, false)
		}
		a.drawLabel(screen, buttonLabels[i], x+6, buttonY+3, label)
	}

	if snap.Info != "" {
		maxWidth := float64(a.layout.Width) - screenMargin*2
		y := a.layout.CardY + cardHeight + 4
		alpha := float32(utils.FadeIn(a.infoFrames, infoFadeFrames, 0.2))
		for _, line := range utils.WrapText(snap.Info, a.face, maxWidth) {
			op := &text.DrawOptions{}
			op.GeoM.Translate(screenMargin, y)
			op.ColorScale.ScaleWithColor(selectedColor)
			op.ColorScale.ScaleAlpha(alpha)
			text.Draw(screen, line, a.face, op)
			y += 14
		}
	}
}

func (a *App) drawCards(screen *ebiten.Image, snap *simulation.Snapshot) {
	w := float32(a.layout.CardWidth)
	h := float32(cardHeight)
	y := float32(a.layout.CardY)
	for i, unit := range a.catalog {
		x := float32(a.layout.CardX(i))
		vector.DrawFilledRect(screen, x, y, w, h, cardColor, false)
		vector.DrawFilledRect(screen, x+4, y+4, 10, 10, colorOr(unit.Color, fallbackColor), false)

		label := dimTextColor
		if snap.Currency >= unit.Cost {
			label = textColor
		}
		a.drawLabel(screen, fmt.Sprintf("%d %s", i+1, unit.Name), float64(x)+18, float64(y)+2, label)
		for j, line := range cardLines(unit, a.face, float64(w)-8) {
			clr := dimTextColor
			if j == 0 {
				clr = label
			}
			a.drawLabel(screen, line, float64(x)+4, float64(y)+16+float64(j)*cardLineHeight, clr)
		}

		// 冷却遮罩从上往下收缩
		if i < len(snap.Cooldowns) && snap.Cooldowns[i] > 0 && unit.Cooldown > 0 {
			ratio := float32(snap.Cooldowns[i]) / float32(unit.Cooldown)
			vector.DrawFilledRect(screen, x, y, w, h*min(ratio, 1), cooldownColor, false)
		}
		if i == snap.SelectedUnit {
			vector.StrokeRect(screen, x, y, w, h, 2, selectedColor, false)
		}
	}
}

// drawLabel 在 (x, y) 绘制一行文字，(x, y) 为左上角
func (a *App) drawLabel(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, a.face, op)
}

// drawHealthBar 绘制血条，hp 已钳制为 >= 0
func drawHealthBar(screen *ebiten.Image, x, y, width float32, hp, maxHP float64) {
	if maxHP <= 0 {
		return
	}
	ratio := float32(hp / maxHP)
	vector.DrawFilledRect(screen, x, y, width, barHeight, hpBackColor, false)
	vector.DrawFilledRect(screen, x, y, width*min(ratio, 1), barHeight, hpColor, false)
}

// abbreviate 取单位名称每个单词的首字母，如 "Machine Gunner" -> "MG"
func abbreviate(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layout.Width, a.layout.Height
}
