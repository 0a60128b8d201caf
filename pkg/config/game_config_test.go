package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
board:
  width: {min: 6, max: 14, default: 10}
  height: {min: 5, max: 9, default: 7}
  minesPercent: {min: 10, max: 30, default: 15}
audio:
  sampleRate: 44100
  soundVolume: 0.5
  musicVolume: 0.25
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Board.Width.Default != 10 {
					t.Errorf("expected width default 10, got %d", cfg.Board.Width.Default)
				}
				if cfg.Audio.SampleRate != 44100 {
					t.Errorf("expected sample rate 44100, got %d", cfg.Audio.SampleRate)
				}
				ec := cfg.DefaultEngineConfig()
				if ec.Width != 10 || ec.Height != 7 || ec.MinesPercentage != 0.15 {
					t.Errorf("unexpected engine config %+v", ec)
				}
				if err := ec.Validate(); err != nil {
					t.Errorf("engine rejected default config: %v", err)
				}
			},
		},
		{
			name: "missing keys keep defaults",
			yamlContent: `
audio:
  soundVolume: 0.3
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Board.Width.Default != 12 || cfg.Board.Height.Default != 8 {
					t.Errorf("expected 12x8 defaults, got %dx%d", cfg.Board.Width.Default, cfg.Board.Height.Default)
				}
				if cfg.Audio.SoundVolume != 0.3 {
					t.Errorf("expected sound volume 0.3, got %v", cfg.Audio.SoundVolume)
				}
			},
		},
		{
			name:        "inverted range",
			yamlContent: "board:\n  width: {min: 12, max: 6, default: 8}\n",
			wantErr:     true,
			errContains: "min(12) > max(6)",
		},
		{
			name:        "range beyond engine limits",
			yamlContent: "board:\n  height: {min: 4, max: 20, default: 8}\n",
			wantErr:     true,
			errContains: "outside engine limits",
		},
		{
			name:        "default outside range",
			yamlContent: "board:\n  minesPercent: {min: 5, max: 40, default: 45}\n",
			wantErr:     true,
			errContains: "default 45",
		},
		{
			name:        "volume out of range",
			yamlContent: "audio:\n  musicVolume: 1.5\n",
			wantErr:     true,
			errContains: "musicVolume",
		},
		{
			name:        "malformed yaml",
			yamlContent: "board: [not a map",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dragonsweeper.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadGameConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	if _, err := LoadGameConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestShippedGameConfigIsValid(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", DefaultGameConfigPath))
	if err != nil {
		t.Fatalf("shipped config invalid: %v", err)
	}
	if cfg.DefaultEngineConfig() != DefaultGameConfig().DefaultEngineConfig() {
		t.Errorf("shipped defaults %+v differ from DefaultGameConfig %+v",
			cfg.DefaultEngineConfig(), DefaultGameConfig().DefaultEngineConfig())
	}
}

func TestIntRangeClamp(t *testing.T) {
	r := IntRange{Min: 4, Max: 16, Default: 12}
	for in, want := range map[int]int{0: 4, 4: 4, 10: 10, 16: 16, 99: 16} {
		if got := r.Clamp(in); got != want {
			t.Errorf("Clamp(%d) = %d, want %d", in, got, want)
		}
	}
}
