// Package lsm6dso reads and decodes the hardware FIFO of the ST LSM6DSO
// accelerometer/gyroscope over a register-addressed I2C bus.
//
// The ISM330DHCX shares the LSM6DSO register map, FIFO format and frequency
// trim and is driven by the same code. It identifies itself with a different
// WHO_AM_I value and adds a ±4000 dps gyroscope range.
//
// The driver does not configure the device. Output data rates, full-scale
// ranges and FIFO batching are expected to be set up by the caller; the scale
// factors matching the configured ranges are passed to each FIFO read (see
// GyroRange and AccelRange).
//
// Typical usage:
//
//	s := lsm6dso.New(bus)
//	v, err := s.PopFIFO(ctx, lsm6dso.Gyro2000DPS.Scale(), lsm6dso.Accel4G.Scale())
//
// Datasheets: https://www.st.com/resource/en/datasheet/lsm6dso.pdf,
// https://www.st.com/resource/en/datasheet/ism330dhcx.pdf
package lsm6dso

import (
	"context"
	"fmt"

	"github.com/mklimuk/imu"
)

const (
	DefaultAddress = 0x6B // SA0 pulled high
	AltAddress     = 0x6A // SA0 pulled low
)

const (
	regWhoAmI           byte = 0x0F
	regInternalFreqFine byte = 0x63
	regFIFODataOutTag   byte = 0x78
)

// WHO_AM_I values of the supported chips.
const (
	WhoAmILSM6DSO    byte = 0x6C
	WhoAmIISM330DHCX byte = 0x6B
)

var chipNames = map[byte]string{
	WhoAmILSM6DSO:    "LSM6DSO",
	WhoAmIISM330DHCX: "ISM330DHCX",
}

// ChipName returns the part number for a WHO_AM_I value, or an empty string
// for an unsupported device.
func ChipName(id byte) string {
	return chipNames[id]
}

var ErrUnexpectedDevice = fmt.Errorf("lsm6dso: unexpected WHO_AM_I value")

// LSM6DSO represents an ST LSM6DSO 6-axis IMU attached to an I2C bus.
// The bus must not be used concurrently by other callers while a method runs.
type LSM6DSO struct {
	transport imu.AddressableWriteReader
	address   byte
}

type Config struct {
	Address byte
}

type Option func(*Config)

func WithAddress(address byte) Option {
	return func(c *Config) {
		c.Address = address
	}
}

func New(trans imu.AddressableWriteReader, opts ...Option) *LSM6DSO {
	config := &Config{
		Address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &LSM6DSO{transport: trans, address: config.Address}
}

func (s *LSM6DSO) Address() byte {
	return s.address
}

// WhoAmI reads the identification register and checks it against the values
// documented for the LSM6DSO and the ISM330DHCX.
func (s *LSM6DSO) WhoAmI(ctx context.Context) (byte, error) {
	id, err := imu.ReadRegister(ctx, s.transport, s.address, regWhoAmI)
	if err != nil {
		return 0, fmt.Errorf("lsm6dso: %w", err)
	}
	if _, ok := chipNames[id]; !ok {
		return id, fmt.Errorf("%w: expected %#02x or %#02x, got %#02x", ErrUnexpectedDevice, WhoAmILSM6DSO, WhoAmIISM330DHCX, id)
	}
	return id, nil
}
