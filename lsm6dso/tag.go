package lsm6dso

import (
	"errors"
	"fmt"
)

// SensorTag identifies the sensor a FIFO entry originates from.
// It is carried in bits [7:3] of the first byte of every entry.
type SensorTag byte

const (
	TagEmpty             SensorTag = 0x00
	TagGyroscopeNC       SensorTag = 0x01
	TagAccelerometerNC   SensorTag = 0x02
	TagTemperature       SensorTag = 0x03
	TagTimestamp         SensorTag = 0x04
	TagConfigChange      SensorTag = 0x05
	TagAccelerometerNCT2 SensorTag = 0x06
	TagAccelerometerNCT1 SensorTag = 0x07
	TagAccelerometer2xC  SensorTag = 0x08
	TagAccelerometer3xC  SensorTag = 0x09
	TagGyroscopeNCT2     SensorTag = 0x0A
	TagGyroscopeNCT1     SensorTag = 0x0B
	TagGyroscope2xC      SensorTag = 0x0C
	TagGyroscope3xC      SensorTag = 0x0D
	TagSensorHubSlave0   SensorTag = 0x0E
	TagSensorHubSlave1   SensorTag = 0x0F
	TagSensorHubSlave2   SensorTag = 0x10
	TagSensorHubSlave3   SensorTag = 0x11
	TagStepCounter       SensorTag = 0x12
	TagSensorHubNack     SensorTag = 0x19
)

const (
	maxTag   = TagSensorHubNack
	tagShift = 3
)

var tagNames = map[SensorTag]string{
	TagEmpty:             "empty",
	TagGyroscopeNC:       "gyroscope",
	TagAccelerometerNC:   "accelerometer",
	TagTemperature:       "temperature",
	TagTimestamp:         "timestamp",
	TagConfigChange:      "config-change",
	TagAccelerometerNCT2: "accelerometer-t2",
	TagAccelerometerNCT1: "accelerometer-t1",
	TagAccelerometer2xC:  "accelerometer-2xc",
	TagAccelerometer3xC:  "accelerometer-3xc",
	TagGyroscopeNCT2:     "gyroscope-t2",
	TagGyroscopeNCT1:     "gyroscope-t1",
	TagGyroscope2xC:      "gyroscope-2xc",
	TagGyroscope3xC:      "gyroscope-3xc",
	TagSensorHubSlave0:   "sensor-hub-0",
	TagSensorHubSlave1:   "sensor-hub-1",
	TagSensorHubSlave2:   "sensor-hub-2",
	TagSensorHubSlave3:   "sensor-hub-3",
	TagStepCounter:       "step-counter",
	TagSensorHubNack:     "sensor-hub-nack",
}

func (t SensorTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%#02x)", byte(t))
}

// IsOther reports whether t is a valid tag the driver passes through undecoded.
func (t SensorTag) IsOther() bool {
	return t > TagAccelerometerNC && t <= maxTag
}

var ErrInvalidTag = errors.New("lsm6dso: invalid FIFO tag")

// InvalidTagError is returned when a FIFO entry carries a tag code outside the
// documented range. It matches ErrInvalidTag with errors.Is.
type InvalidTagError struct {
	Code byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("%s: %#02x", ErrInvalidTag, e.Code)
}

func (e *InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// ParseTag classifies a 5-bit tag code (already shifted out of the tag byte).
func ParseTag(code byte) (SensorTag, error) {
	if code > byte(maxTag) {
		return 0, &InvalidTagError{Code: code}
	}
	return SensorTag(code), nil
}

// TagFromByte extracts and classifies the tag from the first byte of a FIFO
// entry. The low 3 bits (tag counter and parity) are ignored.
func TagFromByte(raw byte) (SensorTag, error) {
	return ParseTag(raw >> tagShift)
}
