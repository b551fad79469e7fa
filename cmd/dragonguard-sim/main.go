// dragonguard-sim 无界面运行一局模拟，结束后以 YAML 输出最终快照
//
// 用法:
//
//	go run ./cmd/dragonguard-sim -ruleset frontline -seed 42 -ticks 7200
//	go run ./cmd/dragonguard-sim -ruleset-file my_rules.yaml -idle
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
	"gopkg.in/yaml.v3"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	rulesetName = flag.String("ruleset", config.RulesetFrontline, "内置规则集名称")
	rulesetFile = flag.String("ruleset-file", "", "从文件加载自定义规则集（优先于 -ruleset）")
	seed        = flag.Int64("seed", 1, "随机种子，0 表示使用当前时间")
	ticks       = flag.Int("ticks", 60*120, "最多运行的 tick 数")
	tps         = flag.Int("tps", game.DefaultTicksPerSecond, "每秒 tick 数（决定每个 tick 推进的虚拟时间）")
	idle        = flag.Bool("idle", false, "不放置任何单位")
)

// report 运行结果
type report struct {
	Ticks    int                 `yaml:"ticksRun"`
	Elapsed  string              `yaml:"elapsed"`
	Placed   int                 `yaml:"unitsPlaced"`
	Events   map[string]int      `yaml:"events"`
	Snapshot simulation.Snapshot `yaml:"snapshot"`
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	ruleset, err := loadRuleset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "规则集加载失败: %v\n", err)
		os.Exit(1)
	}

	session, err := simulation.NewSession(simulation.Options{Ruleset: ruleset, Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}

	counts := make(map[string]int)
	for _, eventType := range []game.EventType{
		game.EventEnemySpawned, game.EventEnemyKilled, game.EventEnemyCaptured,
		game.EventUnitDestroyed, game.EventWaveCleared, game.EventBaseBreached,
	} {
		session.Subscribe(eventType, game.ListenerFunc(func(e game.Event) {
			counts[string(e.Type)]++
		}))
	}

	step := time.Second / time.Duration(max(*tps, 1))
	catalog := session.Catalog()
	placed := 0
	ran := 0
	for ran < *ticks && session.Running() {
		if !*idle {
			if row, col, index, ok := choosePlacement(session.Snapshot(), catalog); ok {
				if _, err := session.TryPlace(row, col, index); err == nil {
					placed++
				}
			}
		}
		session.Update(step)
		ran++
	}

	snap := session.Snapshot()
	out := report{
		Ticks:    ran,
		Elapsed:  snap.Elapsed.String(),
		Placed:   placed,
		Events:   counts,
		Snapshot: snap,
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode report: %v", err)
	}
	_ = enc.Close()
}

// loadRuleset 优先加载 -ruleset-file，否则从 data/rulesets 加载内置规则集
// 内置规则集从工作目录读取，需在项目根目录运行
func loadRuleset() (*config.Ruleset, error) {
	if *rulesetFile != "" {
		return config.LoadRulesetFile(*rulesetFile)
	}
	return config.LoadBuiltinRuleset(*rulesetName)
}
