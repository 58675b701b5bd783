package lsm6dso

import (
	"context"
	"fmt"
	"log/slog"
)

// fifoEntrySize is the tag byte followed by three 16-bit lanes.
const fifoEntrySize = 7

// Value is a single decoded FIFO entry. It is one of Empty, Gyro, Accel or Other.
type Value interface {
	Tag() SensorTag
	isValue()
}

// Empty is returned when the FIFO holds no sample.
type Empty struct{}

// Gyro is angular rate per axis (X, Y, Z) in the units of the gyro scale, usually dps.
type Gyro [3]float64

// Accel is acceleration per axis (X, Y, Z) in the units of the accel scale, usually g.
type Accel [3]float64

// Other carries the raw payload of a valid tag the driver does not decode.
type Other struct {
	Code SensorTag
	Raw  [6]byte
}

func (Empty) Tag() SensorTag { return TagEmpty }
func (Gyro) Tag() SensorTag  { return TagGyroscopeNC }
func (Accel) Tag() SensorTag { return TagAccelerometerNC }
func (o Other) Tag() SensorTag {
	return o.Code
}

func (Empty) isValue() {}
func (Gyro) isValue()  {}
func (Accel) isValue() {}
func (Other) isValue() {}

func (Empty) String() string { return "empty" }

func (g Gyro) String() string {
	return fmt.Sprintf("gyro x=%.3f y=%.3f z=%.3f dps", g[0], g[1], g[2])
}

func (a Accel) String() string {
	return fmt.Sprintf("accel x=%.4f y=%.4f z=%.4f g", a[0], a[1], a[2])
}

func (o Other) String() string {
	return fmt.Sprintf("%s % x", o.Code, o.Raw[:])
}

// PopFIFO reads one entry from the FIFO output registers and decodes it.
// Each successful call consumes one entry of the hardware queue.
//
// Transport failures are returned as they were reported by the bus. A tag code
// outside the documented range yields an *InvalidTagError.
func (s *LSM6DSO) PopFIFO(ctx context.Context, gyroScale, accelScale float64) (Value, error) {
	var buf [fifoEntrySize]byte
	err := s.transport.WriteReadAddr(ctx, s.address, []byte{regFIFODataOutTag}, buf[:])
	if err != nil {
		return nil, err
	}
	tag, err := TagFromByte(buf[0])
	if err != nil {
		slog.Debug("lsm6dso: invalid fifo entry", "raw", fmt.Sprintf("% x", buf[:]))
		return nil, err
	}
	var payload [6]byte
	copy(payload[:], buf[1:])
	switch tag {
	case TagEmpty:
		return Empty{}, nil
	case TagGyroscopeNC:
		return ParseGyroscope(gyroScale, payload), nil
	case TagAccelerometerNC:
		return ParseAccelerometer(accelScale, payload), nil
	default:
		return Other{Code: tag, Raw: payload}, nil
	}
}

// DrainFIFO pops entries until the FIFO reports empty or limit entries were
// read. A limit of 0 or less means no limit. Entries popped before a failure
// are returned together with the error.
func (s *LSM6DSO) DrainFIFO(ctx context.Context, gyroScale, accelScale float64, limit int) ([]Value, error) {
	var values []Value
	for limit <= 0 || len(values) < limit {
		if err := ctx.Err(); err != nil {
			return values, err
		}
		v, err := s.PopFIFO(ctx, gyroScale, accelScale)
		if err != nil {
			return values, fmt.Errorf("lsm6dso: fifo drain stopped after %d entries: %w", len(values), err)
		}
		if _, ok := v.(Empty); ok {
			break
		}
		values = append(values, v)
	}
	slog.Debug("lsm6dso: fifo drained", "entries", len(values))
	return values, nil
}
