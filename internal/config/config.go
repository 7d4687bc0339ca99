package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "lrcsync"

type Config struct {
	CacheDir string `koanf:"cache_dir"` // lrclib result cache (default: XDG cache)
	DBPath   string `koanf:"db_path"`   // draft database (default: XDG data)

	Editor   EditorConfig   `koanf:"editor"`
	Save     SaveConfig     `koanf:"save"`
	Lrclib   LrclibConfig   `koanf:"lrclib"`
	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
}

// EditorConfig holds sync editor behaviour.
type EditorConfig struct {
	AutoAdvance  *bool `koanf:"auto_advance"`  // move to next non-blank line after sync (default: true)
	HistoryLimit int   `koanf:"history_limit"` // undo snapshots kept, 0 = unlimited
}

// SaveConfig selects where edited lyrics are written besides the draft db.
type SaveConfig struct {
	LRCFile   *bool `koanf:"lrc_file"`   // write <audio>.lrc next to the audio file (default: true)
	EmbedTags bool  `koanf:"embed_tags"` // embed lyrics in the audio file tags
	Notify    bool  `koanf:"notify"`     // desktop notification after each save
}

// LrclibConfig holds lrclib.net lookup settings.
type LrclibConfig struct {
	Disabled       bool   `koanf:"disabled"`
	URL            string `koanf:"url"`             // API base URL (default: https://lrclib.net/api)
	TimeoutSeconds int    `koanf:"timeout_seconds"` // request timeout (default: 10)
}

// PlaybackConfig selects where the current playback position comes from.
type PlaybackConfig struct {
	Source string `koanf:"source"`  // "mpris" or "stopwatch" (default: "mpris")
	Player string `koanf:"player"`  // MPRIS bus name suffix, e.g. "spotify" (default: first found)
	TickMS int    `koanf:"tick_ms"` // position polling interval (default: 100)
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	File  string `koanf:"file"`  // log file (default: XDG state dir)
}

// Playback sources.
const (
	PlaybackMPRIS     = "mpris"
	PlaybackStopwatch = "stopwatch"
)

// Load reads the standard config files followed by any extra ones.
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.CacheDir = expandPath(cfg.CacheDir)
	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	// Normalize lrclib URL (remove trailing slash)
	cfg.Lrclib.URL = strings.TrimSuffix(cfg.Lrclib.URL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/lrcsync/config.toml
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// AutoAdvance returns whether syncing advances the cursor.
func (c *Config) AutoAdvance() bool {
	return c.Editor.AutoAdvance == nil || *c.Editor.AutoAdvance
}

// WriteLRCFile returns whether saves write a sibling .lrc file.
func (c *Config) WriteLRCFile() bool {
	return c.Save.LRCFile == nil || *c.Save.LRCFile
}

// HistoryLimit returns the undo history cap, 0 meaning unlimited.
func (c *Config) HistoryLimit() int {
	return max(c.Editor.HistoryLimit, 0)
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.Source != PlaybackStopwatch {
		cfg.Source = PlaybackMPRIS
	}
	if cfg.TickMS <= 0 || cfg.TickMS > 1000 {
		cfg.TickMS = 100
	}
	return cfg
}

// Tick returns the playback polling interval.
func (p PlaybackConfig) Tick() time.Duration {
	return time.Duration(p.TickMS) * time.Millisecond
}

// LrclibTimeout returns the lrclib request timeout.
func (c *Config) LrclibTimeout() time.Duration {
	if c.Lrclib.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Lrclib.TimeoutSeconds) * time.Second
}

// GetCacheDir returns the lyrics cache directory.
func (c *Config) GetCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(xdg.CacheHome, appName, "lyrics")
}

// GetDBPath returns the draft database path, creating its directory.
func (c *Config) GetDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, os.MkdirAll(filepath.Dir(c.DBPath), 0o755)
	}
	return xdg.DataFile(filepath.Join(appName, appName+".db"))
}

// GetLogFile returns the log file path, creating its directory.
func (c *Config) GetLogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, os.MkdirAll(filepath.Dir(c.Log.File), 0o755)
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}
