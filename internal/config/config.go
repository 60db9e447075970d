// Package config loads rtab's TOML options. Every key is optional; missing
// keys take their defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kk-code-lab/rtab/internal/listing"
	"github.com/kk-code-lab/rtab/internal/process"
)

const (
	AppName  = "rtab"
	FileName = "rtab.toml"
)

const (
	DefaultScrollOffset   = 6
	DefaultMaxPreviewSize = 2 * 1024 * 1024
)

// DefaultColumnRatio is the parent/current/preview width split.
var DefaultColumnRatio = [3]int{1, 3, 4}

// SortOptions are the listing modifiers.
type SortOptions struct {
	ShowHidden       bool
	DirectoriesFirst bool
	CaseSensitive    bool
	Reverse          bool
}

// LogOptions configure the log sink.
type LogOptions struct {
	Level  string
	Format string
	Dir    string
}

// Command binds a key to an external command.
type Command struct {
	Key      string
	Template process.Template
	Spawn    bool
}

// Options is the flattened, read-only configuration.
type Options struct {
	ScrollOffset     int
	TildeInTitlebar  bool
	ShowPreview      bool
	MaxPreviewSize   int64
	SortMethod       listing.SortMethod
	Sort             SortOptions
	ColumnRatio      [3]int
	PreviewCommand   []string
	WatchDirectories bool
	Log              LogOptions
	Commands         []Command
}

// Default returns the built-in options.
func Default() *Options {
	return &Options{
		ScrollOffset:    DefaultScrollOffset,
		TildeInTitlebar: true,
		ShowPreview:     true,
		MaxPreviewSize:  DefaultMaxPreviewSize,
		SortMethod:      listing.SortNatural,
		Sort:            SortOptions{DirectoriesFirst: true},
		ColumnRatio:     DefaultColumnRatio,
		Log: LogOptions{
			Level:  "info",
			Format: "json",
			Dir:    defaultLogDir(),
		},
	}
}

// SortConfig returns the listing sort derived from the options.
func (o *Options) SortConfig() listing.SortConfig {
	return listing.SortConfig{
		Method:           o.SortMethod,
		ShowHidden:       o.Sort.ShowHidden,
		DirectoriesFirst: o.Sort.DirectoriesFirst,
		CaseSensitive:    o.Sort.CaseSensitive,
		Reverse:          o.Sort.Reverse,
	}
}

type rawSortOption struct {
	ShowHidden       *bool `toml:"show_hidden"`
	DirectoriesFirst *bool `toml:"directories_first"`
	CaseSensitive    *bool `toml:"case_sensitive"`
	Reverse          *bool `toml:"reverse"`
}

type rawLog struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	Dir    *string `toml:"dir"`
}

type rawCommand struct {
	Key     string   `toml:"key"`
	Command []string `toml:"command"`
	Spawn   bool     `toml:"spawn"`
}

type rawConfig struct {
	ScrollOffset     *int           `toml:"scroll_offset"`
	TildeInTitlebar  *bool          `toml:"tilde_in_titlebar"`
	ShowPreview      *bool          `toml:"show_preview"`
	MaxPreviewSize   *int64         `toml:"max_preview_size"`
	SortMethod       *string        `toml:"sort_method"`
	SortOption       *rawSortOption `toml:"sort_option"`
	ColumnRatio      []int          `toml:"column_ratio"`
	PreviewCommand   []string       `toml:"preview_command"`
	WatchDirectories *bool          `toml:"watch_directories"`
	Log              *rawLog        `toml:"log"`
	Commands         []rawCommand   `toml:"command"`
}

// DefaultPath returns $XDG_CONFIG_HOME/rtab/rtab.toml, falling back to
// ~/.config/rtab/rtab.toml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

func defaultLogDir() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return dir
}

// Load reads path. A missing file yields the defaults. On a parse error the
// defaults are returned together with the error so the caller can report it
// and carry on.
func Load(path string) (*Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text and flattens it onto the defaults.
func Parse(data string) (*Options, error) {
	var raw rawConfig
	if _, err := toml.Decode(data, &raw); err != nil {
		return Default(), fmt.Errorf("config parse error: %w", err)
	}
	opts, err := raw.flatten()
	if err != nil {
		return Default(), err
	}
	return opts, nil
}

func (r rawConfig) flatten() (*Options, error) {
	opts := Default()

	if r.ScrollOffset != nil && *r.ScrollOffset >= 0 {
		opts.ScrollOffset = *r.ScrollOffset
	}
	if r.TildeInTitlebar != nil {
		opts.TildeInTitlebar = *r.TildeInTitlebar
	}
	if r.ShowPreview != nil {
		opts.ShowPreview = *r.ShowPreview
	}
	if r.MaxPreviewSize != nil && *r.MaxPreviewSize > 0 {
		opts.MaxPreviewSize = *r.MaxPreviewSize
	}
	if r.SortMethod != nil {
		opts.SortMethod = listing.ParseSortMethod(*r.SortMethod)
	}
	if s := r.SortOption; s != nil {
		if s.ShowHidden != nil {
			opts.Sort.ShowHidden = *s.ShowHidden
		}
		if s.DirectoriesFirst != nil {
			opts.Sort.DirectoriesFirst = *s.DirectoriesFirst
		}
		if s.CaseSensitive != nil {
			opts.Sort.CaseSensitive = *s.CaseSensitive
		}
		if s.Reverse != nil {
			opts.Sort.Reverse = *s.Reverse
		}
	}
	if r.ColumnRatio != nil {
		ratio, err := parseColumnRatio(r.ColumnRatio)
		if err != nil {
			return nil, err
		}
		opts.ColumnRatio = ratio
	}
	if len(r.PreviewCommand) > 0 {
		opts.PreviewCommand = r.PreviewCommand
	}
	if r.WatchDirectories != nil {
		opts.WatchDirectories = *r.WatchDirectories
	}
	if l := r.Log; l != nil {
		if l.Level != nil {
			opts.Log.Level = *l.Level
		}
		if l.Format != nil {
			opts.Log.Format = *l.Format
		}
		if l.Dir != nil {
			opts.Log.Dir = expandHome(*l.Dir)
		}
	}

	for i, c := range r.Commands {
		cmd := Command{Key: c.Key, Template: process.Template(c.Command), Spawn: c.Spawn}
		if len([]rune(cmd.Key)) != 1 {
			return nil, fmt.Errorf("command %d: key must be a single character, got %q", i+1, c.Key)
		}
		if err := cmd.Template.Validate(); err != nil {
			return nil, fmt.Errorf("command %q: %w", c.Key, err)
		}
		opts.Commands = append(opts.Commands, cmd)
	}
	return opts, nil
}

func parseColumnRatio(values []int) ([3]int, error) {
	var ratio [3]int
	if len(values) != 3 {
		return ratio, fmt.Errorf("column_ratio needs 3 values, got %d", len(values))
	}
	for i, v := range values {
		if v < 0 {
			return ratio, fmt.Errorf("column_ratio values must not be negative")
		}
		ratio[i] = v
	}
	if ratio[1] == 0 {
		return ratio, fmt.Errorf("column_ratio must give the current column a width")
	}
	return ratio, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
