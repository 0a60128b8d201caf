package game

import (
	"context"
	"fmt"

	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/history"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/sirupsen/logrus"
)

var controllerLog = logger.For("Controller")

// ResultRecorder 保存已结束的对局
type ResultRecorder interface {
	Record(ctx context.Context, rec history.Record) (history.Record, error)
}

// musicSyncer 由 AudioManager 实现，音乐开关或音量变化时调用
type musicSyncer interface {
	SyncMusic()
}

// Controller 管理当前对局
// 职责：
//   - 按玩家设置开局，设置变化时重新开局
//   - 转发挖掘与标记操作，把引擎事件转成信号
//   - 对局结束时弹出战报并记录结果
type Controller struct {
	settingsManager *SettingsManager
	sink            SignalSink
	recorder        ResultRecorder // 可为 nil

	fixedSeed uint64 // 非 0 时按此种子开局（可复现）
	games     uint64 // 已开局数
	seed      uint64 // 当前对局种子

	session    *engine.Session
	dialogOpen bool
}

// NewController 创建控制器，但不开局；调用 NewGame 开始第一局
//
// 参数：
//   - sm: 设置管理器
//   - sink: 信号接收者，可为 nil
//   - recorder: 结果记录器，可为 nil
//   - seed: 固定种子，0 表示随机
func NewController(sm *SettingsManager, sink SignalSink, recorder ResultRecorder, seed uint64) *Controller {
	if sink == nil {
		sink = SignalSinkFunc(func(Signal) {})
	}
	return &Controller{
		settingsManager: sm,
		sink:            sink,
		recorder:        recorder,
		fixedSeed:       seed,
	}
}

// NewGame 按当前设置开始新对局，发出 start 信号
func (c *Controller) NewGame() error {
	cfg := c.settingsManager.GetSettings().BoardConfig()
	seed := c.nextSeed()

	session, err := engine.NewGame(cfg, engine.NewRand(seed))
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	c.session = session
	c.seed = seed
	c.dialogOpen = false
	c.games++

	controllerLog.WithFields(logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"mines":  cfg.TotalMines(),
		"seed":   seed,
	}).Info("new game")
	c.sink.Emit(SignalStart)
	return nil
}

func (c *Controller) nextSeed() uint64 {
	if c.fixedSeed != 0 {
		return c.fixedSeed + c.games
	}
	return engine.RandomSeed()
}

// Dig 挖开指定格子
// 战报弹出期间操作被拒绝
func (c *Controller) Dig(row, col int) engine.DigResult {
	if c.session == nil || c.dialogOpen {
		return engine.DigResult{Event: engine.EventRejected}
	}

	res := c.session.Dig(row, col)
	if res.Event == engine.EventVictorious {
		// 胜利前先播放这次挖掘本身的提示音
		if tile, ok := c.session.Board().Tile(row, col); ok && tile.Count == 0 {
			c.sink.Emit(SignalClear)
		} else {
			c.sink.Emit(SignalWarning)
		}
	}
	if sig, ok := SignalForEvent(res.Event); ok {
		c.sink.Emit(sig)
	}
	if c.session.Outcome().Terminal() && res.Event != engine.EventRejected {
		c.finish()
	}
	return res
}

// ToggleFlag 标记或取消标记指定格子
func (c *Controller) ToggleFlag(row, col int) engine.Event {
	if c.session == nil || c.dialogOpen {
		return engine.EventRejected
	}
	ev := c.session.ToggleFlag(row, col)
	if sig, ok := SignalForEvent(ev); ok {
		c.sink.Emit(sig)
	}
	return ev
}

func (c *Controller) finish() {
	c.dialogOpen = true
	controllerLog.WithFields(logrus.Fields{
		"outcome": c.session.Outcome().String(),
		"seed":    c.seed,
	}).Info("game finished")

	if c.recorder == nil {
		return
	}
	rec, ok := history.NewRecord(c.session, c.seed)
	if !ok {
		return
	}
	if _, err := c.recorder.Record(context.Background(), rec); err != nil {
		controllerLog.WithError(err).Warn("failed to record game")
	}
}

// ResultsVisible 返回战报是否正在显示
func (c *Controller) ResultsVisible() bool {
	return c.dialogOpen
}

// DismissResults 关闭战报，发出 dialogClosed 信号
//
// 返回：
//   - bool: 战报原本是否在显示
func (c *Controller) DismissResults() bool {
	if !c.dialogOpen {
		return false
	}
	c.dialogOpen = false
	c.sink.Emit(SignalDialogClosed)
	return true
}

// ChangeBoard 修改棋盘设置并持久化；设置有变化时重新开局
//
// 返回：
//   - bool: 是否重新开局
//   - error: 开局失败
func (c *Controller) ChangeBoard(width, height int, minesPercentage float64) (bool, error) {
	if !c.settingsManager.SetBoard(width, height, minesPercentage) {
		return false, nil
	}
	c.saveSettings()
	if err := c.NewGame(); err != nil {
		return false, err
	}
	return true, nil
}

// SetSoundEnabled 设置音效开关并持久化
func (c *Controller) SetSoundEnabled(enabled bool) {
	c.settingsManager.SetSoundEnabled(enabled)
	c.saveSettings()
}

// SetMusicEnabled 设置音乐开关并持久化，立即启停背景音乐
func (c *Controller) SetMusicEnabled(enabled bool) {
	c.settingsManager.SetMusicEnabled(enabled)
	c.saveSettings()
	c.syncMusic()
}

// SetSoundVolume 设置音效音量并持久化，下一个音效生效
func (c *Controller) SetSoundVolume(volume float64) {
	c.settingsManager.SetSoundVolume(volume)
	c.saveSettings()
}

// SetMusicVolume 设置音乐音量并持久化，正在播放的音乐立即生效
func (c *Controller) SetMusicVolume(volume float64) {
	c.settingsManager.SetMusicVolume(volume)
	c.saveSettings()
	c.syncMusic()
}

func (c *Controller) syncMusic() {
	if m, ok := c.sink.(musicSyncer); ok {
		m.SyncMusic()
	}
}

func (c *Controller) saveSettings() {
	if err := c.settingsManager.Save(); err != nil {
		controllerLog.WithError(err).Warn("failed to save settings")
	}
}

// Settings 返回当前设置
func (c *Controller) Settings() *GameSettings {
	return c.settingsManager.GetSettings()
}

// SettingsManager 返回设置管理器
func (c *Controller) SettingsManager() *SettingsManager {
	return c.settingsManager
}

// Board 返回当前棋盘快照
func (c *Controller) Board() *engine.Board {
	if c.session == nil {
		return nil
	}
	return c.session.Board()
}

// Outcome 返回当前对局状态
func (c *Controller) Outcome() engine.Outcome {
	if c.session == nil {
		return engine.InProgress
	}
	return c.session.Outcome()
}

// Results 返回战报，对局进行中返回 nil
func (c *Controller) Results() *engine.Results {
	if c.session == nil {
		return nil
	}
	return c.session.Results()
}

// Seed 返回当前对局种子
func (c *Controller) Seed() uint64 {
	return c.seed
}

// FlagReadout 返回标记计数文本，如 "3 eggs marked out of 20 live ones"
func (c *Controller) FlagReadout() string {
	if c.session == nil {
		return ""
	}
	return FlagReadout(c.session.FlaggedCount(), c.session.TotalMines())
}

// FlagReadout 格式化标记计数文本
func FlagReadout(flagged, total int) string {
	noun := "eggs"
	if flagged == 1 {
		noun = "egg"
	}
	return fmt.Sprintf("%d %s marked out of %d live ones", flagged, noun, total)
}
