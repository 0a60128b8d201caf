package game

import (
	"os"
	"testing"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{AppName: "test_dragonsweeper"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Width != 12 || s.Height != 8 || s.MinesPercentage != 0.2 {
		t.Errorf("board defaults: got %dx%d@%v, want 12x8@0.2", s.Width, s.Height, s.MinesPercentage)
	}
	if !s.SoundEnabled || !s.MusicEnabled {
		t.Error("sound and music should be enabled by default")
	}
	if s.SoundVolume != 0.15 || s.MusicVolume != 0.15 {
		t.Errorf("volumes: got %v/%v, want 0.15", s.SoundVolume, s.MusicVolume)
	}
	if err := s.BoardConfig().Validate(); err != nil {
		t.Errorf("default board invalid: %v", err)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	if sm.GetSettings().Width != 12 {
		t.Errorf("Width: got %d, want 12", sm.GetSettings().Width)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试设置的保存与重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t)

	sm := NewSettingsManager(gdataManager, nil)
	sm.SetBoard(6, 5, 0.33)
	sm.SetSoundEnabled(false)
	sm.SetMusicVolume(0.5)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(gdataManager, nil)
	got := reloaded.GetSettings()
	if got.Width != 6 || got.Height != 5 || got.MinesPercentage != 0.33 {
		t.Errorf("board: got %dx%d@%v, want 6x5@0.33", got.Width, got.Height, got.MinesPercentage)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled: got true, want false")
	}
	if !got.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if got.MusicVolume != 0.5 {
		t.Errorf("MusicVolume: got %v, want 0.5", got.MusicVolume)
	}
}

// TestLoadClampsOutOfRange 存档中超出范围的数值被校正
func TestLoadClampsOutOfRange(t *testing.T) {
	gdataManager := openTestGdata(t)
	raw := []byte("width: 99\nheight: 1\nminesPercentage: 0.9\nsound: false\nmusicVolume: 3\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(gdataManager, nil)
	got := sm.GetSettings()
	if got.Width != 16 || got.Height != 4 || got.MinesPercentage != 0.4 {
		t.Errorf("board: got %dx%d@%v, want 16x4@0.4", got.Width, got.Height, got.MinesPercentage)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled should keep the stored false")
	}
	if !got.MusicEnabled {
		t.Error("missing music key should keep the default true")
	}
	if got.MusicVolume != 1.0 {
		t.Errorf("MusicVolume: got %v, want 1.0", got.MusicVolume)
	}
}

// TestLoadMalformedFallsBack 无法解析的存档回退到默认设置
func TestLoadMalformedFallsBack(t *testing.T) {
	gdataManager := openTestGdata(t)
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("width: [oops")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(gdataManager, nil)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("got %+v, want defaults", *sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the malformed payload")
	}
}

func TestSetBoardReportsChange(t *testing.T) {
	sm := NewSettingsManager(nil, nil)

	if sm.SetBoard(12, 8, 0.2) {
		t.Error("SetBoard with current values reported a change")
	}
	if !sm.SetBoard(10, 8, 0.2) {
		t.Error("SetBoard with a new width reported no change")
	}
	if sm.SetBoard(10, 8, 0.201) {
		t.Error("sub-percent change should round to the same slider step")
	}
	if !sm.SetBoard(10, 8, 0.01) || sm.GetSettings().MinesPercentage != 0.05 {
		t.Errorf("MinesPercentage: got %v, want clamp to 0.05", sm.GetSettings().MinesPercentage)
	}
}

func TestSettingsRespectGameConfigRanges(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Board.Width = config.IntRange{Min: 6, Max: 10, Default: 8}

	sm := NewSettingsManager(nil, cfg)
	if sm.GetSettings().Width != 8 {
		t.Errorf("Width default: got %d, want 8", sm.GetSettings().Width)
	}
	sm.SetBoard(16, 8, 0.2)
	if sm.GetSettings().Width != 10 {
		t.Errorf("Width clamp: got %d, want 10", sm.GetSettings().Width)
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.15, 0.15},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
