package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/inktrail/pkg/trail"
)

// TrailSettings 全局用户设置
// 注意：设置不绑定到某个菜单会话，每次打开菜单都会读取当前值
type TrailSettings struct {
	TrailEnabled bool   `yaml:"trailEnabled"` // 菜单打开时是否绘制光标轨迹
	FadePolicy   string `yaml:"fadePolicy"`   // 淡出策略名：simple / two-phase
}

// DefaultSettings 返回默认设置
func DefaultSettings() *TrailSettings {
	return &TrailSettings{
		TrailEnabled: true,
		FadePolicy:   trail.PolicySimple,
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     TrailSettings  // 无已保存值时使用的设置
	settings     *TrailSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "trail"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不会导致创建失败
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	return NewSettingsManagerWithDefaults(gdataManager, DefaultSettings())
}

// NewSettingsManagerWithDefaults 创建设置管理器，并指定没有已保存值时使用的设置
//
// 已保存的字段优先；存储中缺失的字段（或首次运行时的全部字段）取自 defaults。
// 用于把 trail.yaml 里的 policy 作为淡出策略的初始值。
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 初始设置，nil 时使用 DefaultSettings()；未知策略名被替换为 simple
func NewSettingsManagerWithDefaults(gdataManager *gdata.Manager, defaults *TrailSettings) (*SettingsManager, error) {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
	}
	if !isKnownPolicy(sm.defaults.FadePolicy) {
		log.Printf("[SettingsManager] Unknown default fade policy %q, using %q", sm.defaults.FadePolicy, trail.PolicySimple)
		sm.defaults.FadePolicy = trail.PolicySimple
	}
	sm.settings = sm.initialSettings()

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用初始设置。
// 未知的策略名会被替换为初始设置中的策略。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = sm.initialSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = sm.initialSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = sm.initialSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := sm.initialSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = sm.initialSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if !isKnownPolicy(loaded.FadePolicy) {
		log.Printf("[SettingsManager] Unknown fade policy %q, using %q", loaded.FadePolicy, sm.defaults.FadePolicy)
		loaded.FadePolicy = sm.defaults.FadePolicy
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded: trail=%v policy=%s", loaded.TrailEnabled, loaded.FadePolicy)
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

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *TrailSettings {
	return sm.settings
}

// SetTrailEnabled 设置轨迹开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTrailEnabled(enabled bool) {
	sm.settings.TrailEnabled = enabled
}

// SetFadePolicy 设置淡出策略
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - name: trail.PolicySimple 或 trail.PolicyTwoPhase
//
// 返回：
//   - error: 策略名未知时返回错误，设置保持不变
func (sm *SettingsManager) SetFadePolicy(name string) error {
	if !isKnownPolicy(name) {
		return fmt.Errorf("unknown fade policy %q", name)
	}
	sm.settings.FadePolicy = name
	return nil
}

// CycleFadePolicy 切换到下一个淡出策略并返回其名称
func (sm *SettingsManager) CycleFadePolicy() string {
	if sm.settings.FadePolicy == trail.PolicyTwoPhase {
		sm.settings.FadePolicy = trail.PolicySimple
	} else {
		sm.settings.FadePolicy = trail.PolicyTwoPhase
	}
	return sm.settings.FadePolicy
}

// initialSettings 返回初始设置的副本
func (sm *SettingsManager) initialSettings() *TrailSettings {
	settings := sm.defaults
	return &settings
}

func isKnownPolicy(name string) bool {
	return name == trail.PolicySimple || name == trail.PolicyTwoPhase
}
