// Package config loads build configuration files.
//
// A build is described by a TOML or YAML file, chosen by extension:
//
//	name = "Ideate Design Animation"
//	input_dir = "SVG_IMAGES_FOR_ANIMATIONS"
//	output_dir = "animations"
//	output_name = "ideate_design_animation.json"
//	keyframes = ["one.svg", "two.svg", "three.svg"]
//	frames_per_transition = 10
//	fps = 30
//
//	[[rules]]
//	kind = "crossfade"
//	id = "Pencil-Tip"
//	target = "Pencil-Tip-2"
//	from = [157, 142]
//	to = [144.5, 115.43]
//	transition = 0
//
// Relative keyframe paths resolve against input_dir, and a relative
// input_dir or output_dir against the directory holding the file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/tween"
)

// Default values. Numeric defaults are in place before a file is decoded;
// the rest are applied by SetDefaults.
const (
	DefaultFramesPerTransition = 10
	DefaultFPS                 = 30.0
	DefaultOutputDir           = "animations"
	DefaultOutputName          = "animation.json"
	DefaultEasing              = tween.EasingLinear
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config describes one build.
type Config struct {
	// Name is written to the Lottie envelope. Defaults to OutputName
	// without its extension.
	Name       string `toml:"name" yaml:"name"`
	InputDir   string `toml:"input_dir" yaml:"input_dir"`
	OutputDir  string `toml:"output_dir" yaml:"output_dir"`
	OutputName string `toml:"output_name" yaml:"output_name"`

	Keyframes           []string `toml:"keyframes" yaml:"keyframes"`
	FramesPerTransition int      `toml:"frames_per_transition" yaml:"frames_per_transition"`
	FPS                 float64  `toml:"fps" yaml:"fps"`

	// Width and Height override the canvas size read from the first
	// keyframe.
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`

	Easing string       `toml:"easing" yaml:"easing"`
	Rules  []RuleConfig `toml:"rules" yaml:"rules"`

	// Dir is the directory relative paths resolve against. Load sets it to
	// the config file's directory.
	Dir string `toml:"-" yaml:"-"`
}

// RuleConfig is the file form of a [tween.Rule]. Points are [x, y] pairs.
type RuleConfig struct {
	Kind       string    `toml:"kind" yaml:"kind"`
	ID         string    `toml:"id" yaml:"id"`
	Target     string    `toml:"target,omitempty" yaml:"target,omitempty"`
	From       []float64 `toml:"from,omitempty" yaml:"from,omitempty"`
	To         []float64 `toml:"to,omitempty" yaml:"to,omitempty"`
	Center     []float64 `toml:"center,omitempty" yaml:"center,omitempty"`
	Before     string    `toml:"before,omitempty" yaml:"before,omitempty"`
	Class      string    `toml:"class,omitempty" yaml:"class,omitempty"`
	Transition *int      `toml:"transition,omitempty" yaml:"transition,omitempty"`
}

// Load reads the config file at path. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFS(err, "read config %s", path)
	}
	cfg, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}
	cfg.Dir = dir
	return cfg, nil
}

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Default returns a config holding every default value.
func Default() *Config {
	return &Config{
		OutputDir:           DefaultOutputDir,
		OutputName:          DefaultOutputName,
		FramesPerTransition: DefaultFramesPerTransition,
		FPS:                 DefaultFPS,
		Easing:              DefaultEasing,
	}
}

// Parse decodes a config in the given format on top of [Default]. Keys the
// file sets, zero values included, replace the defaults. Unknown keys are
// rejected.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}
	return cfg, nil
}

// SetDefaults fills empty string fields. FramesPerTransition and FPS are left
// alone: a zero there was set explicitly and is rejected by Validate. Build
// configs in code from [Default].
func (c *Config) SetDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	if c.Easing == "" {
		c.Easing = DefaultEasing
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(c.OutputName, filepath.Ext(c.OutputName))
	}
}

// Validate checks the config for errors. Call SetDefaults first.
func (c *Config) Validate() error {
	if len(c.Keyframes) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one keyframe is required")
	}
	for _, k := range c.Keyframes {
		if err := errors.ValidatePath(k); err != nil {
			return err
		}
	}
	if c.FramesPerTransition < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "frames_per_transition must be >= 1, got %d", c.FramesPerTransition)
	}
	if c.FPS <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %g", c.FPS)
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must not be negative")
	}
	if err := errors.ValidateOutputName(c.OutputName); err != nil {
		return err
	}
	if _, err := tween.ParseEasing(c.Easing); err != nil {
		return err
	}
	_, err := c.TweenRules()
	return err
}

// KeyframePaths returns the keyframe paths resolved against InputDir.
func (c *Config) KeyframePaths() []string {
	in := c.resolve(c.InputDir)
	paths := make([]string, len(c.Keyframes))
	for i, k := range c.Keyframes {
		if filepath.IsAbs(k) {
			paths[i] = k
			continue
		}
		paths[i] = filepath.Join(in, k)
	}
	return paths
}

// OutputPath returns the resolved output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.OutputDir)
}

// LottiePath returns the path of the Lottie envelope.
func (c *Config) LottiePath() string {
	return filepath.Join(c.OutputPath(), c.OutputName)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// EasingFunc returns the configured easing.
func (c *Config) EasingFunc() (tween.Easing, error) {
	return tween.ParseEasing(c.Easing)
}

// TweenRules converts and validates the rules table.
func (c *Config) TweenRules() ([]tween.Rule, error) {
	rules := make([]tween.Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		r, err := rc.Rule()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRule, err, "rule %d", i)
		}
		rules = append(rules, r)
	}
	if err := tween.ValidateRules(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Rule converts rc to a [tween.Rule].
func (rc RuleConfig) Rule() (tween.Rule, error) {
	from, err := point("from", rc.From)
	if err != nil {
		return tween.Rule{}, err
	}
	to, err := point("to", rc.To)
	if err != nil {
		return tween.Rule{}, err
	}
	center, err := point("center", rc.Center)
	if err != nil {
		return tween.Rule{}, err
	}
	return tween.Rule{
		Kind:       tween.Kind(strings.ToLower(rc.Kind)),
		ID:         rc.ID,
		Target:     rc.Target,
		From:       from,
		To:         to,
		Center:     center,
		Before:     rc.Before,
		Class:      rc.Class,
		Transition: rc.Transition,
	}, nil
}

func point(name string, v []float64) (tween.Point, error) {
	switch len(v) {
	case 0:
		return tween.Point{}, nil
	case 2:
		return tween.Point{X: v[0], Y: v[1]}, nil
	default:
		return tween.Point{}, errors.New(errors.ErrCodeInvalidRule, "%s must be [x, y], got %d values", name, len(v))
	}
}
