package audio

// Cue identifiers. They match the signal names emitted by the game.
const (
	CueStart        = "start"
	CueClear        = "clear"
	CueWarning      = "warning"
	CueMark         = "mark"
	CueUnmark       = "unmark"
	CueDefeat       = "defeat"
	CueVictory      = "victory"
	CueDialogClosed = "dialogClosed"

	// MusicCoboldCavern 背景音乐（循环）
	MusicCoboldCavern = "coboldCavern"
)

// 音高（Hz）
const (
	noteA3 = 220.00
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	rest   = 0
)

// Cue describes how a sound effect or music track is synthesized.
type Cue struct {
	Wave  Waveform
	Notes []Note
}

var cues = map[string]Cue{
	CueStart:   {WaveSquare, []Note{{noteC4, 0.06}, {noteE4, 0.06}, {noteG4, 0.1}}},
	CueClear:   {WaveSquare, []Note{{noteG4, 0.04}, {noteC5, 0.06}}},
	CueWarning: {WaveSquare, []Note{{noteA4, 0.05}}},
	CueMark:    {WaveSquare, []Note{{noteE5, 0.05}}},
	CueUnmark:  {WaveSquare, []Note{{noteB4, 0.05}}},
	CueDefeat: {WaveTriangle, []Note{
		{noteE4, 0.15}, {noteD4, 0.15}, {noteC4, 0.15}, {noteA3, 0.4},
	}},
	CueVictory: {WaveSquare, []Note{
		{noteC5, 0.1}, {noteE5, 0.1}, {noteG5, 0.1}, {rest, 0.05}, {noteG5, 0.08}, {noteC5 * 2, 0.3},
	}},
	CueDialogClosed: {WaveSine, []Note{{noteG4, 0.05}, {noteC4, 0.05}}},
	MusicCoboldCavern: {WaveTriangle, []Note{
		{noteA3, 0.3}, {noteC4, 0.3}, {noteE4, 0.3}, {noteC4, 0.3},
		{noteD4, 0.3}, {noteF4, 0.3}, {noteA4, 0.3}, {noteF4, 0.3},
		{noteE4, 0.3}, {noteG4, 0.3}, {noteB4, 0.3}, {noteG4, 0.3},
		{noteA3, 0.6}, {rest, 0.6},
	}},
}

// LookupCue returns the cue registered under name.
func LookupCue(name string) (Cue, bool) {
	c, ok := cues[name]
	return c, ok
}

// CueNames lists every registered cue, music included.
func CueNames() []string {
	names := make([]string, 0, len(cues))
	for name := range cues {
		names = append(names, name)
	}
	return names
}

// EffectNames lists the sound effect cues, without music.
func EffectNames() []string {
	names := make([]string, 0, len(cues))
	for name := range cues {
		if name != MusicCoboldCavern {
			names = append(names, name)
		}
	}
	return names
}
