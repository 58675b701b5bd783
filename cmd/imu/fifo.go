package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/imu/cmd/imu/console"
	"github.com/mklimuk/imu/lsm6dso"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

var scaleFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "gyro-range",
		Value:   "2000",
		Usage:   "configured gyroscope full scale in dps (125, 250, 500, 1000, 2000, 4000 on ISM330DHCX)",
		EnvVars: []string{"IMU_GYRO_RANGE"},
	},
	&cli.StringFlag{
		Name:    "accel-range",
		Value:   "4",
		Usage:   "configured accelerometer full scale in g (2, 4, 8, 16)",
		EnvVars: []string{"IMU_ACCEL_RANGE"},
	},
	&cli.Float64Flag{
		Name:  "gyro-scale",
		Usage: "gyroscope scale in dps/LSB, overrides --gyro-range",
	},
	&cli.Float64Flag{
		Name:  "accel-scale",
		Usage: "accelerometer scale in g/LSB, overrides --accel-range",
	},
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   outputText,
		Usage:   "output format: text or yaml",
	},
}

var fifoCmd = cli.Command{
	Name:  "fifo",
	Usage: "read the sensor FIFO",
	Subcommands: []*cli.Command{
		&fifoPopCmd,
		&fifoDrainCmd,
	},
}

var fifoPopCmd = cli.Command{
	Name:  "pop",
	Usage: "pop entries from the FIFO one at a time",
	Flags: append(append([]cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Value:   1,
			Usage:   "number of entries to pop",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "ask before popping each next entry",
		},
	}, busFlags...), scaleFlags...),
	Action: func(c *cli.Context) error {
		gyroScale, accelScale, err := scales(c)
		if err != nil {
			return console.Exit(1, "%s", err)
		}
		s, release, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer release()
		ctx := commandContext(c)

		var values []lsm6dso.Value
		for i := 0; i < c.Int("count"); i++ {
			if i > 0 && c.Bool("interactive") {
				answer, err := console.YesOrNo("pop next entry?")
				if err != nil || answer == console.No {
					break
				}
			}
			v, err := s.PopFIFO(ctx, gyroScale, accelScale)
			if err != nil {
				_ = printValues(c, values)
				return console.Exit(1, "error popping fifo entry %d: %s", i, console.Red(err))
			}
			if c.String("output") == outputText {
				printValue(console.Output(), v)
				continue
			}
			values = append(values, v)
		}
		return printValues(c, values)
	},
}

var fifoDrainCmd = cli.Command{
	Name:  "drain",
	Usage: "pop entries until the FIFO is empty",
	Flags: append(append([]cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Value: 512,
			Usage: "maximum number of entries to read, 0 for no limit",
		},
	}, busFlags...), scaleFlags...),
	Action: func(c *cli.Context) error {
		gyroScale, accelScale, err := scales(c)
		if err != nil {
			return console.Exit(1, "%s", err)
		}
		s, release, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer release()

		values, err := s.DrainFIFO(commandContext(c), gyroScale, accelScale, c.Int("limit"))
		if c.String("output") == outputText {
			for _, v := range values {
				printValue(console.Output(), v)
			}
		} else if perr := printValues(c, values); perr != nil {
			return perr
		}
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		slog.Info("fifo drained", "entries", len(values))
		return nil
	},
}

func scales(c *cli.Context) (float64, float64, error) {
	if out := c.String("output"); out != outputText && out != outputYAML {
		return 0, 0, fmt.Errorf("unknown output format %q", out)
	}
	gyroScale := c.Float64("gyro-scale")
	if gyroScale == 0 {
		r, err := lsm6dso.ParseGyroRange(c.String("gyro-range"))
		if err != nil {
			return 0, 0, err
		}
		gyroScale = r.Scale()
	}
	accelScale := c.Float64("accel-scale")
	if accelScale == 0 {
		r, err := lsm6dso.ParseAccelRange(c.String("accel-range"))
		if err != nil {
			return 0, 0, err
		}
		accelScale = r.Scale()
	}
	return gyroScale, accelScale, nil
}

func printValue(w io.Writer, v lsm6dso.Value) {
	switch val := v.(type) {
	case lsm6dso.Empty:
		_, _ = fmt.Fprintf(w, "%s %s\n", console.PictoEmpty, console.Faint(val))
	case lsm6dso.Gyro:
		_, _ = fmt.Fprintf(w, "%s %s\n", console.PictoGyro, console.White(val))
	case lsm6dso.Accel:
		_, _ = fmt.Fprintf(w, "%s %s\n", console.PictoAccel, console.White(val))
	case lsm6dso.Other:
		picto := console.PictoChip
		if val.Code == lsm6dso.TagTimestamp {
			picto = console.PictoClock
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", picto, console.Cyan(val))
	}
}

// fifoEntry is the structured form of a decoded value.
type fifoEntry struct {
	Tag    string    `yaml:"tag"`
	Code   byte      `yaml:"code"`
	Vector []float64 `yaml:"vector,omitempty,flow"`
	Raw    string    `yaml:"raw,omitempty"`
}

func toEntry(v lsm6dso.Value) fifoEntry {
	e := fifoEntry{Tag: v.Tag().String(), Code: byte(v.Tag())}
	switch val := v.(type) {
	case lsm6dso.Gyro:
		e.Vector = val[:]
	case lsm6dso.Accel:
		e.Vector = val[:]
	case lsm6dso.Other:
		e.Raw = fmt.Sprintf("% x", val.Raw[:])
	}
	return e
}

func printValues(c *cli.Context, values []lsm6dso.Value) error {
	if c.String("output") != outputYAML || len(values) == 0 {
		return nil
	}
	entries := make([]fifoEntry, 0, len(values))
	for _, v := range values {
		entries = append(entries, toEntry(v))
	}
	enc := yaml.NewEncoder(console.Output())
	defer func() { _ = enc.Close() }()
	if err := enc.Encode(entries); err != nil {
		return console.Exit(1, "encoding error: %s", console.Red(err))
	}
	return nil
}
