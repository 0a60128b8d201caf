package audio

import (
	"encoding/binary"
	"math"
)

// Note is a single pitched (or silent) step of a cue.
// A Freq of 0 is a rest.
type Note struct {
	Freq     float64 // Hz
	Duration float64 // seconds
}

// Waveform selects the oscillator used by Render.
type Waveform int

const (
	// WaveSquare 方波，用于短促的提示音
	WaveSquare Waveform = iota
	// WaveTriangle 三角波，用于背景音乐
	WaveTriangle
	// WaveSine 正弦波
	WaveSine
)

// bytesPerFrame 16-bit 双声道
const bytesPerFrame = 4

// attack/release 时长（秒），避免音符边界的爆音
const (
	envelopeAttack  = 0.004
	envelopeRelease = 0.02
)

// Render synthesizes notes into 16-bit little-endian stereo PCM, the format
// Ebitengine's audio context plays directly.
//
// 参数：
//   - notes: 音符序列
//   - wave: 波形
//   - sampleRate: 采样率（如 48000）
//
// 返回：
//   - []byte: PCM 数据，长度总是 bytesPerFrame 的整数倍
func Render(notes []Note, wave Waveform, sampleRate int) []byte {
	if sampleRate <= 0 {
		return nil
	}

	total := 0
	for _, n := range notes {
		total += frames(n.Duration, sampleRate)
	}
	buf := make([]byte, total*bytesPerFrame)

	offset := 0
	for _, n := range notes {
		count := frames(n.Duration, sampleRate)
		for i := 0; i < count; i++ {
			var v float64
			if n.Freq > 0 {
				t := float64(i) / float64(sampleRate)
				v = oscillate(wave, n.Freq*t) * envelope(t, n.Duration) * 0.8
			}
			s := int16(v * math.MaxInt16)
			binary.LittleEndian.PutUint16(buf[offset:], uint16(s))
			binary.LittleEndian.PutUint16(buf[offset+2:], uint16(s))
			offset += bytesPerFrame
		}
	}
	return buf
}

func frames(seconds float64, sampleRate int) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * float64(sampleRate))
}

// oscillate 返回 phase（周期数）处的波形值，范围 [-1, 1]
func oscillate(wave Waveform, phase float64) float64 {
	frac := phase - math.Floor(phase)
	switch wave {
	case WaveSquare:
		if frac < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(frac-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}

func envelope(t, duration float64) float64 {
	switch {
	case t < envelopeAttack:
		return t / envelopeAttack
	case duration-t < envelopeRelease:
		return math.Max(0, (duration-t)/envelopeRelease)
	default:
		return 1
	}
}
