// Package config loads the robot profile that calibrates field navigation:
// sensor mounting geometry, drive feel, and wall-approach tuning.
//
// Profiles are plain JSON files. Loading a profile validates it and fills in
// defaults, so an omitted section is still usable.
package config

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/fieldnav/fieldnav/components/distancesensor"
	"github.com/fieldnav/fieldnav/teleop"
	"github.com/fieldnav/fieldnav/wallreset"
)

// Defaults applied where the profile leaves a value unset.
const (
	DefaultApproachPower       = 0.4
	DefaultApproachThresholdIn = 3.0
	DefaultApproachTimeoutMS   = 3000
)

// Config is a full robot profile.
type Config struct {
	// FieldHalfExtentIn is the distance from field center to each wall.
	FieldHalfExtentIn float64 `json:"field_half_extent_in"`

	Sensors  SensorConfig   `json:"sensors"`
	Teleop   TeleopConfig   `json:"teleop"`
	Approach ApproachConfig `json:"approach"`
}

// SensorConfig holds the mounting geometry of the distance sensors. Offsets
// are measured in inches from the sensor face to the robot's center.
type SensorConfig struct {
	RearLeftOffsetIn  float64 `json:"rear_left_offset_in"`
	RearRightOffsetIn float64 `json:"rear_right_offset_in"`

	// RearSpacingIn is the lateral distance between the two rear sensors.
	RearSpacingIn float64 `json:"rear_spacing_in"`

	LeftOffsetIn  float64 `json:"left_offset_in"`
	RightOffsetIn float64 `json:"right_offset_in"`
}

// TeleopConfig tunes driver-control feel.
type TeleopConfig struct {
	Curve           string  `json:"curve"`
	CurveParam      float64 `json:"curve_param"`
	Deadband        float64 `json:"deadband"`
	TurnSensitivity float64 `json:"turn_sensitivity"`
}

// ApproachConfig tunes the drive-until-wall behavior.
type ApproachConfig struct {
	Power       float64 `json:"power"`
	ThresholdIn float64 `json:"threshold_in"`
	TimeoutMS   int     `json:"timeout_ms"`
}

// Ensure validates the whole profile and fills defaults.
func (c *Config) Ensure() error {
	if c.FieldHalfExtentIn == 0 {
		c.FieldHalfExtentIn = wallreset.DefaultFieldHalfExtent
	}
	if c.FieldHalfExtentIn < 0 {
		return utils.NewConfigValidationError("field_half_extent_in", errors.New("cannot be negative"))
	}

	if err := c.Sensors.Validate("sensors"); err != nil {
		return err
	}
	if err := c.Teleop.Validate("teleop"); err != nil {
		return err
	}
	return c.Approach.Validate("approach")
}

// Validate ensures all parts of the config are valid.
func (sc *SensorConfig) Validate(path string) error {
	if sc.RearSpacingIn == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "rear_spacing_in")
	}
	if sc.RearSpacingIn < 0 {
		return utils.NewConfigValidationError(path, errors.New("rear_spacing_in cannot be negative"))
	}
	offsets := []struct {
		field string
		value float64
	}{
		{"rear_left_offset_in", sc.RearLeftOffsetIn},
		{"rear_right_offset_in", sc.RearRightOffsetIn},
		{"left_offset_in", sc.LeftOffsetIn},
		{"right_offset_in", sc.RightOffsetIn},
	}
	for _, o := range offsets {
		if o.value < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s cannot be negative", o.field))
		}
	}
	return nil
}

// Validate ensures all parts of the config are valid.
func (tc *TeleopConfig) Validate(path string) error {
	if tc.Curve != "" {
		if _, ok := teleop.CurveNamed(tc.Curve); !ok {
			return utils.NewConfigValidationError(path, errors.Errorf("unknown drive curve %q", tc.Curve))
		}
	}
	if tc.Deadband < 0 || tc.Deadband >= 1 {
		return utils.NewConfigValidationError(path, errors.New("deadband must be within [0, 1)"))
	}
	if tc.TurnSensitivity < 0 || tc.TurnSensitivity > 1 {
		return utils.NewConfigValidationError(path, errors.New("turn_sensitivity must be within [0, 1]"))
	}
	return nil
}

// Validate ensures all parts of the config are valid.
func (ac *ApproachConfig) Validate(path string) error {
	if ac.Power == 0 {
		ac.Power = DefaultApproachPower
	}
	if ac.Power < 0 || ac.Power > 1 {
		return utils.NewConfigValidationError(path, errors.New("power must be within (0, 1]"))
	}
	if ac.ThresholdIn == 0 {
		ac.ThresholdIn = DefaultApproachThresholdIn
	}
	if ac.ThresholdIn < 0 {
		return utils.NewConfigValidationError(path, errors.New("threshold_in cannot be negative"))
	}
	if ac.TimeoutMS == 0 {
		ac.TimeoutMS = DefaultApproachTimeoutMS
	}
	if ac.TimeoutMS < 0 {
		return utils.NewConfigValidationError(path, errors.New("timeout_ms cannot be negative"))
	}
	return nil
}

// FromReader parses and validates a profile.
func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot parse profile")
	}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads and validates a profile from disk.
func FromFile(path string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open profile %q", path)
	}
	defer utils.UncheckedErrorFunc(f.Close)
	cfg, err := FromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "profile %q", path)
	}
	return cfg, nil
}

// TeleopOptions translates the teleop section into runtime options.
func (c *Config) TeleopOptions() teleop.Options {
	curve := teleop.CurveLinear
	if c.Teleop.Curve != "" {
		curve, _ = teleop.CurveNamed(c.Teleop.Curve)
	}
	return teleop.Options{
		Curve:           curve,
		CurveParam:      c.Teleop.CurveParam,
		Deadband:        c.Teleop.Deadband,
		TurnSensitivity: c.Teleop.TurnSensitivity,
	}
}

// ApproachGoal translates the approach section into a wall-approach goal.
// The drive direction still comes from the caller.
func (c *Config) ApproachGoal(forwards bool) wallreset.ApproachConfig {
	return wallreset.ApproachConfig{
		ThresholdIn: c.Approach.ThresholdIn,
		Power:       c.Approach.Power,
		Forwards:    forwards,
		Timeout:     time.Duration(c.Approach.TimeoutMS) * time.Millisecond,
	}
}

// RearPair binds the rear calibration to a pair of rangefinders.
func (c *Config) RearPair(left, right distancesensor.Sensor) wallreset.BackSensorPair {
	return wallreset.BackSensorPair{
		Left:          left,
		Right:         right,
		LeftOffsetIn:  c.Sensors.RearLeftOffsetIn,
		RightOffsetIn: c.Sensors.RearRightOffsetIn,
		SpacingIn:     c.Sensors.RearSpacingIn,
	}
}

// LeftSide binds the left-wall calibration to a rangefinder.
func (c *Config) LeftSide(s distancesensor.Sensor) wallreset.SideSensor {
	return wallreset.SideSensor{
		Sensor:     s,
		OffsetIn:   c.Sensors.LeftOffsetIn,
		MountAngle: wallreset.MountAngleLeft,
	}
}

// RightSide binds the right-wall calibration to a rangefinder.
func (c *Config) RightSide(s distancesensor.Sensor) wallreset.SideSensor {
	return wallreset.SideSensor{
		Sensor:     s,
		OffsetIn:   c.Sensors.RightOffsetIn,
		MountAngle: wallreset.MountAngleRight,
	}
}
