package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"periph.io/x/conn/v3/physic"

	"github.com/mklimuk/imu"
	"github.com/mklimuk/imu/adapter"
	"github.com/mklimuk/imu/i2c"
	"github.com/mklimuk/imu/lsm6dso"
	"github.com/mklimuk/imu/snsctx"
)

const (
	adapterMCP2221 = "mcp2221"
	adapterGeneric = "generic"
	adapterNanoPi  = "nanopi"
	adapterGobot   = "gobot"
	adapterReplay  = "replay"
)

// busFlags are shared by all commands talking to the sensor.
var busFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   adapterMCP2221,
		Usage:   "bus adapter: mcp2221, generic|nanopi (periph), gobot or replay",
		EnvVars: []string{"IMU_ADAPTER"},
	},
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Value:   "/dev/i2c-1",
		Usage:   "i2c device for the generic adapter",
		EnvVars: []string{"IMU_DEVICE"},
	},
	&cli.StringFlag{
		Name:  "speed",
		Value: "400kHz",
		Usage: "i2c clock for the generic adapter",
	},
	&cli.IntFlag{
		Name:  "bus",
		Value: 2,
		Usage: "i2c bus number for the gobot adapter",
	},
	&cli.StringFlag{
		Name:    "script",
		Usage:   "transaction script for the replay adapter",
		EnvVars: []string{"IMU_SCRIPT"},
	},
	&cli.StringFlag{
		Name:  "addr",
		Value: "0x6b",
		Usage: "sensor address (0x6b or 0x6a)",
	},
}

func commandContext(c *cli.Context) context.Context {
	return snsctx.SetVerbose(c.Context, c.Bool("verbose"))
}

// openBus connects the adapter selected by flags. The returned function
// releases it and must always be called.
func openBus(c *cli.Context) (imu.RegisterBus, func(), error) {
	switch c.String("adapter") {
	case adapterMCP2221:
		ad := adapter.NewMCP2221()
		if err := ad.Init(); err != nil {
			return nil, nil, err
		}
		return ad, func() {
			if err := ad.Release(c.Context); err != nil {
				slog.Warn("could not release mcp2221 bus", "error", err)
			}
		}, nil
	case adapterGeneric, adapterNanoPi:
		var speed physic.Frequency
		if err := speed.Set(c.String("speed")); err != nil {
			return nil, nil, fmt.Errorf("invalid bus speed: %w", err)
		}
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, err
		}
		if err := bus.SetSpeed(speed); err != nil {
			_ = bus.Close()
			return nil, nil, fmt.Errorf("could not set bus speed: %w", err)
		}
		return bus, closeWith(bus.Close), nil
	case adapterGobot:
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		bus := i2c.NewGobotBus(npi, c.Int("bus"))
		return bus, func() {
			closeWith(bus.Close)()
			closeWith(npi.I2cBusAdaptor.Finalize)()
		}, nil
	case adapterReplay:
		if c.String("script") == "" {
			return nil, nil, fmt.Errorf("replay adapter needs --script")
		}
		bus, err := i2c.LoadReplayBus(c.String("script"))
		if err != nil {
			return nil, nil, err
		}
		return bus, func() {
			if n := bus.Remaining(); n > 0 {
				slog.Debug("replay script not fully consumed", "remaining", n)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}

func closeWith(closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			slog.Warn("could not close bus", "error", err)
		}
	}
}

func openSensor(c *cli.Context) (*lsm6dso.LSM6DSO, func(), error) {
	addr, err := strconv.ParseUint(c.String("addr"), 0, 8)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sensor address %q: %w", c.String("addr"), err)
	}
	bus, release, err := openBus(c)
	if err != nil {
		return nil, nil, err
	}
	return lsm6dso.New(bus, lsm6dso.WithAddress(byte(addr))), release, nil
}
