// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/decker502/dragonsweeper/internal/audio"
	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/embedded"
	"github.com/decker502/dragonsweeper/pkg/game"
	"github.com/decker502/dragonsweeper/pkg/history"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/decker502/dragonsweeper/pkg/scenes"
	"github.com/decker502/dragonsweeper/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
)

// AppName 用于 gdata 存储目录与默认历史库位置
const AppName = "dragonsweeper"

var appLog = logger.For("App")

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 固定开局种子（可复现），0 表示随机
	Seed uint64
	// ConfigPath 游戏配置文件路径，为空时使用嵌入的 data/dragonsweeper.yaml
	ConfigPath string
	// HistoryPath 战绩数据库路径，为空时使用用户缓存目录；"-" 表示不记录
	HistoryPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	controller               *game.Controller
	audioManager             *game.AudioManager
	history                  *history.Store // 可为 nil
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	logger.SetVerbose(cfg.Verbose)

	gameConfig := loadGameConfig(cfg.ConfigPath)

	if err := utils.EnsureStorageDir(); err != nil {
		appLog.WithError(err).Warn("failed to prepare settings directory")
	}

	// gdata 不可用时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		appLog.WithError(err).Warn("settings storage unavailable, settings will not persist")
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager, gameConfig)

	// 初始化音频
	audioContext := ebitenaudio.NewContext(gameConfig.Audio.SampleRate)
	audioManager := game.NewAudioManager(game.NewSoundBank(audioContext), settingsManager)
	audioManager.Preload(audio.EffectNames())
	appLog.Debug("AudioManager initialized")

	store := openHistory(cfg.HistoryPath)

	// 避免把 nil *Store 包成非 nil 接口
	var recorder game.ResultRecorder
	var summaries scenes.SummaryReader
	if store != nil {
		recorder = store
		summaries = store
	}

	controller := game.NewController(settingsManager, audioManager, recorder, cfg.Seed)
	if err := controller.NewGame(); err != nil {
		closeHistory(store)
		return nil, fmt.Errorf("failed to start first game: %w", err)
	}
	audioManager.SyncMusic()

	boardScene, err := scenes.NewBoardScene(controller, summaries)
	if err != nil {
		closeHistory(store)
		return nil, fmt.Errorf("failed to create board scene: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(boardScene)

	appLog.WithFields(logrus.Fields{
		"board":   fmt.Sprintf("%dx%d", controller.Settings().Width, controller.Settings().Height),
		"history": store != nil,
	}).Info("app started")

	return &App{
		sceneManager: sceneManager,
		controller:   controller,
		audioManager: audioManager,
		history:      store,
	}, nil
}

// loadGameConfig 依次尝试：指定文件、嵌入文件、内置默认值
func loadGameConfig(path string) *config.GameConfig {
	if path != "" {
		cfg, err := config.LoadGameConfig(path)
		if err == nil {
			return cfg
		}
		appLog.WithError(err).WithField("path", path).Warn("failed to load game config, trying embedded copy")
	}

	data, err := embedded.ReadFile(config.DefaultGameConfigPath)
	if err != nil {
		appLog.WithError(err).Warn("embedded game config unavailable, using defaults")
		return config.DefaultGameConfig()
	}
	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		appLog.WithError(err).Warn("embedded game config invalid, using defaults")
		return config.DefaultGameConfig()
	}
	return cfg
}

// openHistory 打开战绩数据库，失败时返回 nil（不记录战绩）
func openHistory(path string) *history.Store {
	if path == "-" {
		return nil
	}
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			appLog.WithError(err).Warn("no cache directory, game history disabled")
			return nil
		}
		dir = filepath.Join(dir, AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			appLog.WithError(err).Warn("cannot create cache directory, game history disabled")
			return nil
		}
		path = filepath.Join(dir, "history.db")
	}

	store, err := history.Open(path)
	if err != nil {
		appLog.WithError(err).WithField("path", path).Warn("failed to open game history")
		return nil
	}
	appLog.WithField("path", path).Debug("game history opened")
	return store
}

func closeHistory(store *history.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		appLog.WithError(err).Warn("failed to close game history")
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			appLog.Debugf("Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			appLog.Debug("Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 停止音乐并关闭战绩数据库
func (a *App) Close() error {
	a.audioManager.StopMusic()
	if a.history == nil {
		return nil
	}
	if err := a.history.Close(); err != nil {
		return fmt.Errorf("failed to close game history: %w", err)
	}
	return nil
}
