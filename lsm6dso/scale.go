package lsm6dso

import (
	"fmt"
	"strings"
)

// GyroRange is the configured gyroscope full scale in dps.
type GyroRange int

const (
	Gyro125DPS  GyroRange = 125
	Gyro250DPS  GyroRange = 250
	Gyro500DPS  GyroRange = 500
	Gyro1000DPS GyroRange = 1000
	Gyro2000DPS GyroRange = 2000
	Gyro4000DPS GyroRange = 4000 // ISM330DHCX only
)

// gyroSensitivity in mdps/LSB (datasheet table 2)
var gyroSensitivity = map[GyroRange]float64{
	Gyro125DPS:  4.375,
	Gyro250DPS:  8.75,
	Gyro500DPS:  17.50,
	Gyro1000DPS: 35,
	Gyro2000DPS: 70,
	Gyro4000DPS: 140,
}

// Scale returns the conversion factor in dps/LSB, or 0 for an unknown range.
func (r GyroRange) Scale() float64 {
	return gyroSensitivity[r] / 1000
}

func (r GyroRange) String() string {
	return fmt.Sprintf("±%d dps", int(r))
}

// AccelRange is the configured accelerometer full scale in g.
type AccelRange int

const (
	Accel2G  AccelRange = 2
	Accel4G  AccelRange = 4
	Accel8G  AccelRange = 8
	Accel16G AccelRange = 16
)

// accelSensitivity in mg/LSB
var accelSensitivity = map[AccelRange]float64{
	Accel2G:  0.061,
	Accel4G:  0.122,
	Accel8G:  0.244,
	Accel16G: 0.488,
}

// Scale returns the conversion factor in g/LSB, or 0 for an unknown range.
func (r AccelRange) Scale() float64 {
	return accelSensitivity[r] / 1000
}

func (r AccelRange) String() string {
	return fmt.Sprintf("±%d g", int(r))
}

// ParseGyroRange accepts "2000", "2000dps" or "±2000".
func ParseGyroRange(s string) (GyroRange, error) {
	var v int
	_, err := fmt.Sscanf(trimRange(s, "dps"), "%d", &v)
	if err != nil {
		return 0, fmt.Errorf("invalid gyro range %q: %w", s, err)
	}
	r := GyroRange(v)
	if _, ok := gyroSensitivity[r]; !ok {
		return 0, fmt.Errorf("unsupported gyro range %q", s)
	}
	return r, nil
}

// ParseAccelRange accepts "4", "4g" or "±4".
func ParseAccelRange(s string) (AccelRange, error) {
	var v int
	_, err := fmt.Sscanf(trimRange(s, "g"), "%d", &v)
	if err != nil {
		return 0, fmt.Errorf("invalid accel range %q: %w", s, err)
	}
	r := AccelRange(v)
	if _, ok := accelSensitivity[r]; !ok {
		return 0, fmt.Errorf("unsupported accel range %q", s)
	}
	return r, nil
}

func trimRange(s, unit string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "±")
	s = strings.TrimPrefix(s, "+-")
	return strings.TrimSpace(strings.TrimSuffix(s, unit))
}
