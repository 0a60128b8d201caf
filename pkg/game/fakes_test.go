package game

import (
	"context"
	"errors"

	"github.com/decker502/dragonsweeper/pkg/history"
)

// fakePlayer 记录播放调用
type fakePlayer struct {
	plays   int
	playing bool
	volume  float64
}

func (p *fakePlayer) Play()                    { p.plays++; p.playing = true }
func (p *fakePlayer) Pause()                   { p.playing = false }
func (p *fakePlayer) Rewind() error            { return nil }
func (p *fakePlayer) SetVolume(volume float64) { p.volume = volume }
func (p *fakePlayer) IsPlaying() bool          { return p.playing }

type fakeSource struct {
	sounds map[string]*fakePlayer
	music  *fakePlayer
	loads  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{sounds: make(map[string]*fakePlayer)}
}

func (s *fakeSource) LoadSoundEffect(id string) (SoundPlayer, error) {
	if id == "missing" {
		return nil, errors.New("unknown sound cue: missing")
	}
	s.loads++
	p := &fakePlayer{}
	s.sounds[id] = p
	return p, nil
}

func (s *fakeSource) LoadMusic(id string) (SoundPlayer, error) {
	s.music = &fakePlayer{}
	return s.music, nil
}

// recordingSink 记录发出的信号
type recordingSink struct {
	signals []Signal
}

func (r *recordingSink) Emit(sig Signal) { r.signals = append(r.signals, sig) }

func (r *recordingSink) last() Signal {
	if len(r.signals) == 0 {
		return ""
	}
	return r.signals[len(r.signals)-1]
}

func (r *recordingSink) reset() { r.signals = nil }

type fakeRecorder struct {
	records []history.Record
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, rec history.Record) (history.Record, error) {
	if f.err != nil {
		return history.Record{}, f.err
	}
	f.records = append(f.records, rec)
	return rec, nil
}
