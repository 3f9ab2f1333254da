package sections

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the per-instance navigation settings. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// TotalSections is the number of sections. Must be at least 1.
	TotalSections int
	// SectionLabels names each section. Empty, or exactly TotalSections long.
	SectionLabels []string

	// PagingAxis is the axis sections are laid out on.
	PagingAxis Axis
	// GestureAxis is the axis wheel deltas and swipe displacement are read
	// on. A vertical mouse wheel pages a horizontal layout.
	GestureAxis Axis

	// TransitionDuration is both the scroll animation length and how long
	// the transition lock is held.
	TransitionDuration time.Duration
	// Cooldown drops wheel and swipe intents for this long after a
	// transition starts.
	Cooldown time.Duration

	// SnapVisibilityThreshold is the visible fraction (0-1) the most visible
	// section must exceed before the snap reconciler corrects toward it.
	SnapVisibilityThreshold float64
	// SnapDebounce is the scroll quiet period before reconciling.
	SnapDebounce time.Duration
	// SnapTolerance is the residual misalignment, as a fraction of one
	// section, below which no correction is issued.
	SnapTolerance float64

	// SwipeThreshold is the minimum gesture-axis displacement in pixels for
	// a swipe intent.
	SwipeThreshold float64
	// TouchMoveSlop is the gesture-axis movement in pixels after which touch
	// moves suppress default scrolling.
	TouchMoveSlop float64

	// CursorLerp is the per-frame smoothing factor of the cursor indicator.
	CursorLerp float64
	// FallbackLerp is the per-frame smoothing factor of the fallback
	// background reveal mask.
	FallbackLerp float64
	// GlowFade is how long a touch glow marker stays visible without further
	// movement.
	GlowFade time.Duration

	// Debug enables rejection and transition logging.
	Debug bool
}

// DefaultConfig returns the four-section layout with the stock timings.
func DefaultConfig() Config {
	return Config{
		TotalSections:           4,
		SectionLabels:           []string{"Home", "About", "Artists", "Contact"},
		PagingAxis:              AxisHorizontal,
		GestureAxis:             AxisVertical,
		TransitionDuration:      600 * time.Millisecond,
		Cooldown:                500 * time.Millisecond,
		SnapVisibilityThreshold: 0.3,
		SnapDebounce:            150 * time.Millisecond,
		SnapTolerance:           0.05,
		SwipeThreshold:          50,
		TouchMoveSlop:           10,
		CursorLerp:              0.15,
		FallbackLerp:            0.05,
		GlowFade:                220 * time.Millisecond,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.TotalSections < 1:
		return fmt.Errorf("%w: total sections must be at least 1, got %d", ErrInvalidConfig, c.TotalSections)
	case len(c.SectionLabels) != 0 && len(c.SectionLabels) != c.TotalSections:
		return fmt.Errorf("%w: %d labels for %d sections", ErrInvalidConfig, len(c.SectionLabels), c.TotalSections)
	case c.PagingAxis > AxisVertical:
		return fmt.Errorf("%w: paging axis %v", ErrInvalidConfig, c.PagingAxis)
	case c.GestureAxis > AxisVertical:
		return fmt.Errorf("%w: gesture axis %v", ErrInvalidConfig, c.GestureAxis)
	case c.TransitionDuration <= 0:
		return fmt.Errorf("%w: transition duration must be positive", ErrInvalidConfig)
	case c.Cooldown < 0:
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidConfig)
	case c.SnapVisibilityThreshold < 0 || c.SnapVisibilityThreshold > 1:
		return fmt.Errorf("%w: snap visibility threshold %v outside [0, 1]", ErrInvalidConfig, c.SnapVisibilityThreshold)
	case c.SnapDebounce <= 0:
		return fmt.Errorf("%w: snap debounce must be positive", ErrInvalidConfig)
	case c.SnapTolerance < 0 || c.SnapTolerance >= 1:
		return fmt.Errorf("%w: snap tolerance %v outside [0, 1)", ErrInvalidConfig, c.SnapTolerance)
	case c.SwipeThreshold < 0 || c.TouchMoveSlop < 0:
		return fmt.Errorf("%w: touch thresholds must not be negative", ErrInvalidConfig)
	case c.CursorLerp <= 0 || c.CursorLerp > 1:
		return fmt.Errorf("%w: cursor lerp %v outside (0, 1]", ErrInvalidConfig, c.CursorLerp)
	case c.FallbackLerp <= 0 || c.FallbackLerp > 1:
		return fmt.Errorf("%w: fallback lerp %v outside (0, 1]", ErrInvalidConfig, c.FallbackLerp)
	case c.GlowFade <= 0:
		return fmt.Errorf("%w: glow fade must be positive", ErrInvalidConfig)
	}
	return nil
}

// Label returns the label of section i, or "Section N" when none is set.
func (c Config) Label(i int) string {
	if i >= 0 && i < len(c.SectionLabels) {
		return c.SectionLabels[i]
	}
	return fmt.Sprintf("Section %d", i+1)
}

// fileConfig is the TOML layout. Pointer and string fields distinguish
// "unset" from zero so absent keys keep their defaults.
type fileConfig struct {
	Debug    *bool `toml:"debug"`
	Sections struct {
		Total       *int     `toml:"total"`
		Labels      []string `toml:"labels"`
		PagingAxis  string   `toml:"paging_axis"`
		GestureAxis string   `toml:"gesture_axis"`
	} `toml:"sections"`
	Transition struct {
		Duration string `toml:"duration"`
		Cooldown string `toml:"cooldown"`
	} `toml:"transition"`
	Snap struct {
		Visibility *float64 `toml:"visibility"`
		Debounce   string   `toml:"debounce"`
		Tolerance  *float64 `toml:"tolerance"`
	} `toml:"snap"`
	Input struct {
		SwipeThreshold *float64 `toml:"swipe_threshold"`
		TouchMoveSlop  *float64 `toml:"touch_move_slop"`
	} `toml:"input"`
	Pointer struct {
		CursorLerp   *float64 `toml:"cursor_lerp"`
		FallbackLerp *float64 `toml:"fallback_lerp"`
		GlowFade     string   `toml:"glow_fade"`
	} `toml:"pointer"`
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Durations are Go duration strings such as "600ms".
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.Sections.Total != nil {
		cfg.TotalSections = *fc.Sections.Total
		if fc.Sections.Labels == nil && len(cfg.SectionLabels) != cfg.TotalSections {
			cfg.SectionLabels = nil
		}
	}
	if fc.Sections.Labels != nil {
		cfg.SectionLabels = fc.Sections.Labels
	}

	var err error
	if err = setAxis(&cfg.PagingAxis, fc.Sections.PagingAxis); err != nil {
		return Config{}, err
	}
	if err = setAxis(&cfg.GestureAxis, fc.Sections.GestureAxis); err != nil {
		return Config{}, err
	}
	if err = setDuration(&cfg.TransitionDuration, "transition.duration", fc.Transition.Duration); err != nil {
		return Config{}, err
	}
	if err = setDuration(&cfg.Cooldown, "transition.cooldown", fc.Transition.Cooldown); err != nil {
		return Config{}, err
	}
	if err = setDuration(&cfg.SnapDebounce, "snap.debounce", fc.Snap.Debounce); err != nil {
		return Config{}, err
	}
	if err = setDuration(&cfg.GlowFade, "pointer.glow_fade", fc.Pointer.GlowFade); err != nil {
		return Config{}, err
	}

	setFloat(&cfg.SnapVisibilityThreshold, fc.Snap.Visibility)
	setFloat(&cfg.SnapTolerance, fc.Snap.Tolerance)
	setFloat(&cfg.SwipeThreshold, fc.Input.SwipeThreshold)
	setFloat(&cfg.TouchMoveSlop, fc.Input.TouchMoveSlop)
	setFloat(&cfg.CursorLerp, fc.Pointer.CursorLerp)
	setFloat(&cfg.FallbackLerp, fc.Pointer.FallbackLerp)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SECTIONS_* environment variables. Files are
// loaded with godotenv first (".env" when none are given); missing files are
// ignored and variables already set take precedence.
//
// Recognized: SECTIONS_TOTAL, SECTIONS_LABELS (comma separated),
// SECTIONS_PAGING_AXIS, SECTIONS_GESTURE_AXIS, SECTIONS_TRANSITION,
// SECTIONS_COOLDOWN, SECTIONS_SNAP_DEBOUNCE, SECTIONS_DEBUG.
func (c *Config) ApplyEnv(files ...string) error {
	_ = godotenv.Load(files...)

	if v := getEnv("SECTIONS_TOTAL", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SECTIONS_TOTAL must be an integer: %w", err)
		}
		c.TotalSections = n
		if len(c.SectionLabels) != n {
			c.SectionLabels = nil
		}
	}
	if v := getEnv("SECTIONS_LABELS", ""); v != "" {
		labels := strings.Split(v, ",")
		for i := range labels {
			labels[i] = strings.TrimSpace(labels[i])
		}
		c.SectionLabels = labels
	}
	if err := setAxis(&c.PagingAxis, getEnv("SECTIONS_PAGING_AXIS", "")); err != nil {
		return err
	}
	if err := setAxis(&c.GestureAxis, getEnv("SECTIONS_GESTURE_AXIS", "")); err != nil {
		return err
	}
	if err := setDuration(&c.TransitionDuration, "SECTIONS_TRANSITION", getEnv("SECTIONS_TRANSITION", "")); err != nil {
		return err
	}
	if err := setDuration(&c.Cooldown, "SECTIONS_COOLDOWN", getEnv("SECTIONS_COOLDOWN", "")); err != nil {
		return err
	}
	if err := setDuration(&c.SnapDebounce, "SECTIONS_SNAP_DEBOUNCE", getEnv("SECTIONS_SNAP_DEBOUNCE", "")); err != nil {
		return err
	}
	if v := getEnv("SECTIONS_DEBUG", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SECTIONS_DEBUG must be a boolean: %w", err)
		}
		c.Debug = b
	}
	return c.Validate()
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setAxis(dst *Axis, s string) error {
	if s == "" {
		return nil
	}
	a, err := ParseAxis(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	*dst = a
	return nil
}

func setDuration(dst *time.Duration, name, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	*dst = d
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
