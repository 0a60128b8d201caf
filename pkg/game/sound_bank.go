package game

import (
	"bytes"
	"fmt"

	sfx "github.com/decker502/dragonsweeper/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundPlayer 是 AudioManager 用到的 *audio.Player 方法子集
type SoundPlayer interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// PlayerSource 按音效 ID 创建播放器
type PlayerSource interface {
	// LoadSoundEffect 创建单次播放的音效播放器
	LoadSoundEffect(id string) (SoundPlayer, error)
	// LoadMusic 创建循环播放的音乐播放器
	LoadMusic(id string) (SoundPlayer, error)
}

// SoundBank 将合成的音效 PCM 交给 Ebitengine 音频上下文播放
// 所有音效在首次使用时合成并缓存
type SoundBank struct {
	audioContext *audio.Context
	pcmCache     map[string][]byte
}

// NewSoundBank 创建音效库
func NewSoundBank(audioContext *audio.Context) *SoundBank {
	return &SoundBank{
		audioContext: audioContext,
		pcmCache:     make(map[string][]byte),
	}
}

// LoadSoundEffect 为音效创建单次播放的播放器
func (sb *SoundBank) LoadSoundEffect(id string) (SoundPlayer, error) {
	pcm, err := sb.render(id)
	if err != nil {
		return nil, err
	}
	return sb.audioContext.NewPlayerFromBytes(pcm), nil
}

// LoadMusic 创建无限循环播放的音乐播放器
func (sb *SoundBank) LoadMusic(id string) (SoundPlayer, error) {
	pcm, err := sb.render(id)
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := sb.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create music player for %s: %w", id, err)
	}
	return player, nil
}

func (sb *SoundBank) render(id string) ([]byte, error) {
	if pcm, ok := sb.pcmCache[id]; ok {
		return pcm, nil
	}
	cue, ok := sfx.LookupCue(id)
	if !ok {
		return nil, fmt.Errorf("unknown sound cue: %s", id)
	}
	pcm := sfx.Render(cue.Notes, cue.Wave, sb.audioContext.SampleRate())
	sb.pcmCache[id] = pcm
	return pcm, nil
}
