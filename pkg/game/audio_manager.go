package game

import (
	sfx "github.com/decker502/dragonsweeper/internal/audio"
	"github.com/decker502/dragonsweeper/pkg/logger"
)

var audioLog = logger.For("AudioManager")

// AudioManager 音频管理器
// 职责：
//   - 把游戏信号转成音效
//   - 播放循环背景音乐
//   - 按 SettingsManager 中的开关和音量控制播放
type AudioManager struct {
	source          PlayerSource     // 播放器来源（合成音效库）
	settingsManager *SettingsManager // 设置管理器（可为 nil）
	soundPlayers    map[string]SoundPlayer
	music           SoundPlayer
	musicID         string
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - source: 播放器来源
//   - sm: SettingsManager 实例（用于读取开关和音量，可为 nil）
func NewAudioManager(source PlayerSource, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		source:          source,
		settingsManager: sm,
		soundPlayers:    make(map[string]SoundPlayer),
		musicID:         sfx.MusicCoboldCavern,
	}
}

// Emit 实现 SignalSink，把信号播放为音效
func (am *AudioManager) Emit(sig Signal) {
	am.PlaySound(string(sig))
}

// PlaySound 播放音效，音效关闭时不播放
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		audioLog.WithError(err).WithField("sound", soundID).Warn("failed to rewind sound")
	}
	player.Play()
	return true
}

// SyncMusic 根据音乐开关启动或停止背景音乐
func (am *AudioManager) SyncMusic() {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		am.StopMusic()
		return
	}
	am.PlayMusic()
}

// PlayMusic 播放循环背景音乐，已在播放时不重复启动
func (am *AudioManager) PlayMusic() bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}
	if am.music != nil && am.music.IsPlaying() {
		am.music.SetVolume(am.getMusicVolume())
		return true
	}

	if am.music == nil {
		player, err := am.source.LoadMusic(am.musicID)
		if err != nil {
			audioLog.WithError(err).WithField("music", am.musicID).Warn("failed to load music")
			return false
		}
		am.music = player
	}

	am.music.SetVolume(am.getMusicVolume())
	am.music.Play()
	audioLog.WithField("music", am.musicID).Debug("playing music")
	return true
}

// StopMusic 暂停背景音乐，下次播放从暂停处继续
func (am *AudioManager) StopMusic() {
	if am.music != nil {
		am.music.Pause()
	}
}

// IsMusicPlaying 返回背景音乐是否正在播放
func (am *AudioManager) IsMusicPlaying() bool {
	return am.music != nil && am.music.IsPlaying()
}

// Preload 预合成所有音效，避免首次播放时的延迟
func (am *AudioManager) Preload(soundIDs []string) {
	for _, id := range soundIDs {
		am.getSoundPlayer(id)
	}
	audioLog.WithField("count", len(soundIDs)).Debug("preloaded sounds")
}

func (am *AudioManager) getSoundPlayer(soundID string) SoundPlayer {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}
	player, err := am.source.LoadSoundEffect(soundID)
	if err != nil {
		audioLog.WithError(err).WithField("sound", soundID).Warn("failed to load sound")
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.15
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.15
}
