package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/dragonguard/pkg/app"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/embedded"
	"github.com/decker502/dragonguard/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "dragonguard"

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	rulesetName := flag.String("ruleset", "", "内置规则集名称（frontline / field-hospital），为空则使用上次的选择")
	rulesetFile := flag.String("ruleset-file", "", "从文件加载自定义规则集（优先于 -ruleset）")
	seed := flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	tps := flag.Int("tps", 0, "模拟速率（tick/秒），0 表示使用上次的设置")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	// 初始化嵌入资源
	embedded.Init(dataFS)

	settings := game.OpenSettingsManager(appName)
	if *rulesetName != "" {
		settings.SetRuleset(*rulesetName)
	}
	if *tps != 0 {
		settings.SetTicksPerSecond(*tps)
	}

	ruleset, err := loadRuleset(*rulesetFile, settings.GetSettings().Ruleset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "规则集加载失败: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: failed to save settings: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Ruleset:  ruleset,
		Seed:     *seed,
		Settings: settings,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(fmt.Sprintf("Dragon Guard - %s", ruleset.Name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// loadRuleset 优先加载文件，否则加载内置规则集
func loadRuleset(file, builtin string) (*config.Ruleset, error) {
	if file != "" {
		return config.LoadRulesetFile(file)
	}
	return config.LoadBuiltinRuleset(builtin)
}
