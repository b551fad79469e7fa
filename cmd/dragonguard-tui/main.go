// dragonguard-tui 终端前端
//
// 操作：方向键 / hjkl 移动光标，1-9 选择单位，空格或回车放置，鼠标左键直接放置，
// r 转生，n 新游戏，Esc / q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/embedded"
	"github.com/decker502/dragonguard/pkg/game"
	"github.com/decker502/dragonguard/pkg/simulation"
	"github.com/gdamore/tcell/v2"
)

var (
	logFile     = flag.String("log", "", "日志输出文件（终端被界面占用，默认不输出日志）")
	rulesetName = flag.String("ruleset", config.RulesetFrontline, "内置规则集名称")
	rulesetFile = flag.String("ruleset-file", "", "从文件加载自定义规则集（优先于 -ruleset）")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	tps         = flag.Int("tps", 30, "每秒 tick 数")
)

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(os.DirFS("."))
	var (
		ruleset *config.Ruleset
		err     error
	)
	if *rulesetFile != "" {
		ruleset, err = config.LoadRulesetFile(*rulesetFile)
	} else {
		ruleset, err = config.LoadBuiltinRuleset(*rulesetName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "规则集加载失败: %v\n", err)
		os.Exit(1)
	}

	session, err := simulation.NewSession(simulation.Options{Ruleset: ruleset, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "会话创建失败: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	rate := *tps
	if rate < game.MinTicksPerSecond {
		rate = game.MinTicksPerSecond
	}
	newTUI(screen, session).run(rate)
}

// run 主循环：输入事件和 tick 都在这个 goroutine 上处理
// PollEvent 在单独的 goroutine 中阻塞，通过 channel 转交事件
func (t *tui) run(tps int) {
	step := time.Second / time.Duration(tps)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	t.draw()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.session.Update(step)
			t.draw()
		}
	}
}
