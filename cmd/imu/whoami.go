package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/imu/cmd/imu/console"
	"github.com/mklimuk/imu/lsm6dso"
)

var whoamiCmd = cli.Command{
	Name:  "whoami",
	Usage: "check the sensor identification register",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		s, release, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer release()

		id, err := s.WhoAmI(commandContext(c))
		switch {
		case errors.Is(err, lsm6dso.ErrUnexpectedDevice):
			console.Warnf("%s", err)
			return console.Exit(2, "device at %#02x is neither an LSM6DSO nor an ISM330DHCX", s.Address())
		case err != nil:
			return console.Exit(1, "%s", console.Red(err))
		}
		console.PInfof(console.PictoChip, "%s at %#02x (WHO_AM_I %s)", lsm6dso.ChipName(id), s.Address(), console.Green(fmt.Sprintf("%#02x", id)))
		return nil
	},
}
