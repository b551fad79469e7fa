package game

import (
	"fmt"
	"log"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 模拟速率范围（tick/秒）
const (
	MinTicksPerSecond     = 10
	MaxTicksPerSecond     = 240
	DefaultTicksPerSecond = 60
)

// LauncherSettings 启动器偏好
// 只记录启动参数，不包含任何对局进度（对局进度从不持久化）
type LauncherSettings struct {
	Ruleset        string `yaml:"ruleset"`        // 上次选择的内置规则集
	TicksPerSecond int    `yaml:"ticksPerSecond"` // 模拟速率
	DebugOverlay   bool   `yaml:"debugOverlay"`   // 是否显示调试信息
}

// DefaultSettings 返回默认设置
func DefaultSettings() *LauncherSettings {
	return &LauncherSettings{
		Ruleset:        config.RulesetFrontline,
		TicksPerSecond: DefaultTicksPerSecond,
		DebugOverlay:   false,
	}
}

// SettingsManager 设置管理器
// 负责启动器偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager    // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *LauncherSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "launcher"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方的错误位，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// OpenSettingsManager 打开 appName 对应的存储并创建设置管理器
// 存储不可用时退回降级模式
func OpenSettingsManager(appName string) *SettingsManager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: storage unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	sm, _ := NewSettingsManager(manager)
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TicksPerSecond = clampTicksPerSecond(loaded.TicksPerSecond)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 是否有可用的持久化存储
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *LauncherSettings {
	return sm.settings
}

// SetRuleset 记录选择的规则集
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetRuleset(name string) {
	sm.settings.Ruleset = name
}

// SetTicksPerSecond 设置模拟速率
//
// 速率会被限制在 MinTicksPerSecond ~ MaxTicksPerSecond 范围内
func (sm *SettingsManager) SetTicksPerSecond(tps int) {
	sm.settings.TicksPerSecond = clampTicksPerSecond(tps)
}

// SetDebugOverlay 设置调试信息开关
func (sm *SettingsManager) SetDebugOverlay(enabled bool) {
	sm.settings.DebugOverlay = enabled
}

// clampTicksPerSecond 将速率限制在允许范围内，0 视为默认值
func clampTicksPerSecond(tps int) int {
	if tps == 0 {
		return DefaultTicksPerSecond
	}
	if tps < MinTicksPerSecond {
		return MinTicksPerSecond
	}
	if tps > MaxTicksPerSecond {
		return MaxTicksPerSecond
	}
	return tps
}
