// Package main is the fieldnav command: it exercises drive curves, robot
// profiles and autonomous routines against simulated hardware.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/fieldnav/fieldnav/auton"
	fakesensor "github.com/fieldnav/fieldnav/components/distancesensor/fake"
	fakedrive "github.com/fieldnav/fieldnav/components/drivetrain/fake"
	fakemotor "github.com/fieldnav/fieldnav/components/motor/fake"
	fakepiston "github.com/fieldnav/fieldnav/components/piston/fake"
	"github.com/fieldnav/fieldnav/components/posetracker"
	faketracker "github.com/fieldnav/fieldnav/components/posetracker/fake"
	"github.com/fieldnav/fieldnav/config"
	"github.com/fieldnav/fieldnav/teleop"
	"github.com/fieldnav/fieldnav/wallreset"
)

const (
	// Flags.
	flagDebug   = "debug"
	flagConfig  = "config"
	flagCurve   = "curve"
	flagParam   = "param"
	flagSamples = "samples"

	// The simulated robot sits squared up a couple inches off the rear
	// wall with open field to both sides.
	simRearDistanceIn = 2.5
	simSideDistanceIn = 30.0
	simRearSpacingIn  = 6.0

	mmPerInch = 25.4
)

func main() {
	var logger golog.Logger

	app := &cli.App{
		Name:  "fieldnav",
		Usage: "field navigation for a competition robot",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = golog.NewDebugLogger("fieldnav")
			} else {
				logger = zap.NewNop().Sugar()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "routines",
				Usage: "list the built-in autonomous routines",
				Action: func(c *cli.Context) error {
					for _, rt := range auton.Routines() {
						fmt.Fprintln(c.App.Writer, rt.Name)
					}
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "run a routine against simulated hardware",
				ArgsUsage: "<routine>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load the robot profile from `FILE`",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one routine name")
					}
					rt, ok := auton.Lookup(c.Args().First())
					if !ok {
						return errors.Errorf("no routine named %q", c.Args().First())
					}

					cfg, err := loadProfile(c.String(flagConfig))
					if err != nil {
						return err
					}
					robot, tracker := newSimRobot(cfg, logger)
					if err := auton.RunRoutine(c.Context, rt, robot); err != nil {
						return err
					}

					pose, err := tracker.Pose(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "final pose: x=%.2fin y=%.2fin heading=%.1fdeg\n",
						pose.Position.X, pose.Position.Y, pose.Heading)
					return nil
				},
			},
			{
				Name:  "curves",
				Usage: "print drive curve response tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagCurve,
						Usage: "show a single curve by `NAME`",
					},
					&cli.Float64Flag{
						Name:  flagParam,
						Usage: "curve parameter (steepness or breakpoint)",
					},
					&cli.IntFlag{
						Name:  flagSamples,
						Value: 11,
						Usage: "number of sample points",
					},
				},
				Action: CurvesCommand,
			},
			{
				Name:      "profile",
				Usage:     "validate a robot profile",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one profile path")
					}
					cfg, err := config.FromFile(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer,
						"profile ok: field half extent %.1fin, rear spacing %.2fin, curve %s\n",
						cfg.FieldHalfExtentIn, cfg.Sensors.RearSpacingIn, cfg.TeleopOptions().Curve)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// CurvesCommand prints each drive curve's response over the stick range.
func CurvesCommand(c *cli.Context) error {
	curves := teleop.Curves()
	if name := c.String(flagCurve); name != "" {
		cv, ok := teleop.CurveNamed(name)
		if !ok {
			return errors.Errorf("no curve named %q", name)
		}
		curves = []teleop.Curve{cv}
	}
	samples := c.Int(flagSamples)
	if samples < 2 {
		return errors.New("need at least two samples")
	}
	param := c.Float64(flagParam)

	fmt.Fprintf(c.App.Writer, "%-12s", "stick")
	for _, cv := range curves {
		fmt.Fprintf(c.App.Writer, "%12s", cv.String())
	}
	fmt.Fprintln(c.App.Writer)
	for i := 0; i < samples; i++ {
		x := float64(i) / float64(samples-1)
		fmt.Fprintf(c.App.Writer, "%-12.2f", x)
		for _, cv := range curves {
			fmt.Fprintf(c.App.Writer, "%12.3f", cv.Apply(x, param))
		}
		fmt.Fprintln(c.App.Writer)
	}
	return nil
}

func loadProfile(path string) (*config.Config, error) {
	if path != "" {
		return config.FromFile(path)
	}
	cfg := &config.Config{Sensors: config.SensorConfig{RearSpacingIn: simRearSpacingIn}}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSimRobot assembles a robot out of fakes, with the rangefinders seeded so
// wall approaches finish on their first poll.
func newSimRobot(cfg *config.Config, logger golog.Logger) (*auton.Robot, posetracker.Tracker) {
	backLeft := &fakesensor.Sensor{}
	backLeft.SetDistance(simRearDistanceIn * mmPerInch)
	backRight := &fakesensor.Sensor{}
	backRight.SetDistance(simRearDistanceIn * mmPerInch)
	left := &fakesensor.Sensor{}
	left.SetDistance(simSideDistanceIn * mmPerInch)
	right := &fakesensor.Sensor{}
	right.SetDistance(simSideDistanceIn * mmPerInch)

	tracker := faketracker.NewTracker(posetracker.Pose{})
	robot := &auton.Robot{
		Drive:       &fakedrive.Drivetrain{},
		Tracker:     tracker,
		Resetter:    wallreset.NewResetter(tracker, cfg.FieldHalfExtentIn, logger),
		BackSensors: cfg.RearPair(backLeft, backRight),
		LeftSensor:  cfg.LeftSide(left),
		RightSensor: cfg.RightSide(right),
		Intake:      &fakemotor.Motor{},
		Outtake:     &fakemotor.Motor{},
		MidScoring:  &fakepiston.Piston{},
		Unloader:    &fakepiston.Piston{},
		Descore:     &fakepiston.Piston{},
		Logger:      logger,
	}
	return robot, tracker
}
