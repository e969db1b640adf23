// Package config loads settings from defaults, an optional JSON file and
// MINETOWER_* environment variables, then validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/audio"
	"github.com/lixenwraith/minetower/grid"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/remote"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Environment variable names
const (
	EnvRows         = "MINETOWER_ROWS"
	EnvCols         = "MINETOWER_COLS"
	EnvCellSize     = "MINETOWER_CELL_SIZE"
	EnvBet          = "MINETOWER_BET"
	EnvServer       = "MINETOWER_SERVER"
	EnvAudioEnabled = "MINETOWER_AUDIO_ENABLED"
	EnvMasterVolume = "MINETOWER_MASTER_VOLUME"
	EnvDebug        = "MINETOWER_DEBUG"
)

// Duration reads "10s" style strings or integer nanoseconds
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration: %s", b)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type GridConfig struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// CellSize in terminal columns; zero fits the screen
	CellSize float64 `json:"cell_size"`

	Bet decimal.Decimal `json:"bet"`

	// Multipliers label the rows before the server sends its own, bottom row first
	Multipliers []decimal.Decimal `json:"multipliers,omitempty"`
}

type RemoteConfig struct {
	URL            string   `json:"url"`
	DialTimeout    Duration `json:"dial_timeout"`
	RequestTimeout Duration `json:"request_timeout"`
	WriteTimeout   Duration `json:"write_timeout"`
}

type AudioConfig struct {
	Enabled      bool    `json:"enabled"`
	MasterVolume float64 `json:"master_volume"`
}

type LogConfig struct {
	Debug bool   `json:"debug"`
	Dir   string `json:"dir"`
}

// Config is the full application configuration
type Config struct {
	Grid   GridConfig   `json:"grid"`
	Remote RemoteConfig `json:"remote"`
	Audio  AudioConfig  `json:"audio"`
	Log    LogConfig    `json:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows: parameter.DefaultRows,
			Cols: parameter.DefaultCols,
			Bet:  decimal.NewFromInt(1),
		},
		Remote: RemoteConfig{
			URL:            parameter.DefaultServerURL,
			DialTimeout:    Duration(parameter.DefaultDialTimeout),
			RequestTimeout: Duration(parameter.DefaultRequestTimeout),
			WriteTimeout:   Duration(parameter.DefaultWriteTimeout),
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: parameter.DefaultMasterVolume,
		},
		Log: LogConfig{
			Dir: parameter.LogDirName,
		},
	}
}

// LoadFile overlays the JSON file at path onto c; fields absent from the file keep their values
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays MINETOWER_* variables; lookup is os.LookupEnv outside tests
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var errs []error
	intVar := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	floatVar := func(name string, dst *float64) {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = f
		}
	}
	boolVar := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = b
		}
	}

	intVar(EnvRows, &c.Grid.Rows)
	intVar(EnvCols, &c.Grid.Cols)
	floatVar(EnvCellSize, &c.Grid.CellSize)
	floatVar(EnvMasterVolume, &c.Audio.MasterVolume)
	boolVar(EnvAudioEnabled, &c.Audio.Enabled)
	boolVar(EnvDebug, &c.Log.Debug)

	if v, ok := lookup(EnvServer); ok {
		c.Remote.URL = v
	}
	if v, ok := lookup(EnvBet); ok {
		bet, err := decimal.NewFromString(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvBet, err))
		} else {
			c.Grid.Bet = bet
		}
	}

	return errors.Join(errs...)
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !grid.IsSupported(c.Grid.Rows) {
		fail("rows %d not in %v", c.Grid.Rows, grid.SupportedRowCounts())
	}
	if c.Grid.Cols <= 0 || c.Grid.Cols > parameter.MaxCols {
		fail("cols %d outside 1..%d", c.Grid.Cols, parameter.MaxCols)
	}
	if c.Grid.CellSize != 0 && (c.Grid.CellSize < parameter.MinCellSize || c.Grid.CellSize > parameter.MaxCellSize) {
		fail("cell size %g outside %d..%d", c.Grid.CellSize, parameter.MinCellSize, parameter.MaxCellSize)
	}
	if !c.Grid.Bet.IsPositive() {
		fail("bet %s must be positive", c.Grid.Bet)
	}
	if n := len(c.Grid.Multipliers); n > 0 && n != c.Grid.Rows {
		fail("%d multipliers for %d rows", n, c.Grid.Rows)
	}
	if c.Remote.URL == "" {
		fail("empty server url")
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		fail("master volume %g outside [0, 1]", c.Audio.MasterVolume)
	}

	return errors.Join(errs...)
}

// RemoteSettings converts to the adjudicator client config
func (c *Config) RemoteSettings() remote.Config {
	rc := remote.DefaultConfig()
	rc.URL = c.Remote.URL
	rc.DialTimeout = time.Duration(c.Remote.DialTimeout)
	rc.RequestTimeout = time.Duration(c.Remote.RequestTimeout)
	rc.WriteTimeout = time.Duration(c.Remote.WriteTimeout)
	return rc
}

// AudioSettings converts to the sound player config
func (c *Config) AudioSettings() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	return ac
}

// Load runs the full chain: defaults, optional file, environment, validation
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
