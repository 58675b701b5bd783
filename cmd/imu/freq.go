package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/imu/cmd/imu/console"
	"github.com/mklimuk/imu/lsm6dso"
)

var freqCmd = cli.Command{
	Name:  "freq",
	Usage: "read the oscillator trim and compute the actual output data rate",
	Flags: append([]cli.Flag{
		&cli.Float64Flag{
			Name:  "odr",
			Value: 104,
			Usage: "nominal output data rate configured on the sensor (Hz): 12.5, 26, 52, 104, 208, 416, 833, 1667, 3333, 6667",
		},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		nominal := c.Float64("odr")
		if _, err := lsm6dso.ODRCoefficient(nominal); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		s, release, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer release()

		trim, err := s.ReadFreqFine(commandContext(c))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.Printf("freq fine: %s (0b%b, 0x%x)\n", console.White(trim), trim, trim)
		actual, err := trim.ActualODR(nominal)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.Printf("odr: %g Hz nominal, %s Hz actual\n", nominal, console.White(fmt.Sprintf("%.4f", actual)))
		return nil
	},
}
