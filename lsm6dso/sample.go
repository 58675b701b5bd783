package lsm6dso

import "encoding/binary"

// DecodeLanes interprets the payload as three little-endian (low byte first)
// signed 16-bit lanes in X, Y, Z order and multiplies each by scale.
func DecodeLanes(scale float64, payload [6]byte) [3]float64 {
	var out [3]float64
	for i := range out {
		lane := int16(binary.LittleEndian.Uint16(payload[2*i : 2*i+2]))
		out[i] = float64(lane) * scale
	}
	return out
}

// ParseGyroscope decodes an angular rate sample; scale is in dps/LSB.
func ParseGyroscope(scale float64, payload [6]byte) Gyro {
	return Gyro(DecodeLanes(scale, payload))
}

// ParseAccelerometer decodes an acceleration sample; scale is in g/LSB.
func ParseAccelerometer(scale float64, payload [6]byte) Accel {
	return Accel(DecodeLanes(scale, payload))
}
