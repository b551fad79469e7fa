//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.dragonguard -o build/android/dragonguard.aar -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/dragonguard/pkg/app"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/embedded"
	"github.com/decker502/dragonguard/pkg/game"
)

func init() {
	embedded.Init(dataFS)

	settings := game.OpenSettingsManager("dragonguard")
	ruleset, err := config.LoadBuiltinRuleset(settings.GetSettings().Ruleset)
	if err != nil {
		log.Printf("[Mobile] 规则集 %q 加载失败: %v，使用 %s", settings.GetSettings().Ruleset, err, config.RulesetFrontline)
		ruleset, err = config.LoadBuiltinRuleset(config.RulesetFrontline)
		if err != nil {
			log.Fatalf("规则集加载失败: %v", err)
		}
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:  true,
		Ruleset:  ruleset,
		Settings: settings,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
