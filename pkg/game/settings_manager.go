package game

import (
	"fmt"
	"math"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

var settingsLog = logger.For("SettingsManager")

// GameSettings 玩家偏好设置
// 棋盘尺寸、蛋的比例以及音频开关，每次修改后立即持久化
type GameSettings struct {
	// 棋盘设置
	Width           int     `yaml:"width"`           // 列数
	Height          int     `yaml:"height"`          // 行数
	MinesPercentage float64 `yaml:"minesPercentage"` // 蛋占比 0.05 ~ 0.40

	// 音频设置
	SoundEnabled bool    `yaml:"sound"`       // 音效开关
	MusicEnabled bool    `yaml:"music"`       // 音乐开关
	SoundVolume  float64 `yaml:"soundVolume"` // 音效音量 0.0 ~ 1.0
	MusicVolume  float64 `yaml:"musicVolume"` // 音乐音量 0.0 ~ 1.0
}

// DefaultSettings 返回默认设置（12x8，20%，音效与音乐开启）
func DefaultSettings() *GameSettings {
	return defaultSettingsFrom(config.DefaultGameConfig())
}

func defaultSettingsFrom(cfg *config.GameConfig) *GameSettings {
	board := cfg.DefaultEngineConfig()
	return &GameSettings{
		Width:           board.Width,
		Height:          board.Height,
		MinesPercentage: board.MinesPercentage,
		SoundEnabled:    true,
		MusicEnabled:    true,
		SoundVolume:     cfg.Audio.SoundVolume,
		MusicVolume:     cfg.Audio.MusicVolume,
	}
}

// BoardConfig 返回设置对应的引擎配置
func (s *GameSettings) BoardConfig() engine.Config {
	return engine.Config{Width: s.Width, Height: s.Height, MinesPercentage: s.MinesPercentage}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和范围校正
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	gameConfig   *config.GameConfig
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "dragonsweeper"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - gameConfig: 滑块范围与默认值，nil 时使用内置默认配置
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager, gameConfig *config.GameConfig) *SettingsManager {
	if gameConfig == nil {
		gameConfig = config.DefaultGameConfig()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		gameConfig:   gameConfig,
		settings:     defaultSettingsFrom(gameConfig),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		settingsLog.WithError(err).Warn("failed to load settings, using defaults")
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 缺失的字段保留默认值，超出范围的数值被校正到滑块范围内
//
// 返回：
//   - error: 读取或反序列化失败（此时设置已重置为默认值）
func (sm *SettingsManager) Load() error {
	defaults := defaultSettingsFrom(sm.gameConfig)

	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = defaults
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = defaults
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := *defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = defaults
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = sm.clamp(loaded)
	settingsLog.WithField("board", fmt.Sprintf("%dx%d@%.2f",
		sm.settings.Width, sm.settings.Height, sm.settings.MinesPercentage)).Debug("settings loaded")
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

	settingsLog.Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// GameConfig 返回滑块范围配置
func (sm *SettingsManager) GameConfig() *config.GameConfig {
	return sm.gameConfig
}

// SetBoard 修改棋盘设置，数值会被校正到滑块范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 返回：
//   - bool: 设置是否发生变化
func (sm *SettingsManager) SetBoard(width, height int, minesPercentage float64) bool {
	next := *sm.settings
	next.Width = width
	next.Height = height
	next.MinesPercentage = minesPercentage
	next = *sm.clamp(next)

	changed := next.Width != sm.settings.Width ||
		next.Height != sm.settings.Height ||
		next.MinesPercentage != sm.settings.MinesPercentage
	sm.settings = &next
	return changed
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetMusicEnabled 设置音乐开关
func (sm *SettingsManager) SetMusicEnabled(enabled bool) {
	sm.settings.MusicEnabled = enabled
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0）
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetMusicVolume 设置音乐音量（限制在 0.0 ~ 1.0）
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// clamp 将设置校正到配置的滑块范围内
// 蛋占比按整数百分比处理，与滑块步进一致
func (sm *SettingsManager) clamp(s GameSettings) *GameSettings {
	ranges := sm.gameConfig.Board
	s.Width = ranges.Width.Clamp(s.Width)
	s.Height = ranges.Height.Clamp(s.Height)

	percent := ranges.MinesPercent.Default
	if !math.IsNaN(s.MinesPercentage) && !math.IsInf(s.MinesPercentage, 0) {
		p := math.Round(s.MinesPercentage * 100)
		p = math.Max(float64(ranges.MinesPercent.Min), math.Min(float64(ranges.MinesPercent.Max), p))
		percent = int(p)
	}
	s.MinesPercentage = float64(percent) / 100

	s.SoundVolume = clampVolume(s.SoundVolume)
	s.MusicVolume = clampVolume(s.MusicVolume)
	return &s
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
