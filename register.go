package imu

import (
	"context"
	"fmt"
)

// ReadRegister reads a single byte from the register at sub.
func ReadRegister(ctx context.Context, bus AddressableWriteReader, address, sub byte) (byte, error) {
	buf := []byte{0x00}
	if err := ReadRegisters(ctx, bus, address, sub, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadRegisters reads len(buf) consecutive bytes starting at sub.
func ReadRegisters(ctx context.Context, bus AddressableWriteReader, address, sub byte, buf []byte) error {
	err := bus.WriteReadAddr(ctx, address, []byte{sub}, buf)
	if err != nil {
		return fmt.Errorf("could not read register %#02x: %w", sub, err)
	}
	return nil
}

func WriteRegister(ctx context.Context, bus AddressableWriter, address, sub, value byte) error {
	err := bus.WriteToAddr(ctx, address, []byte{sub, value})
	if err != nil {
		return fmt.Errorf("could not write register %#02x: %w", sub, err)
	}
	return nil
}

// ReadConverted reads the raw register value and passes it through conv,
// which turns it into engineering units.
func ReadConverted[T any](ctx context.Context, bus AddressableWriteReader, address, sub byte, conv func(byte) T) (T, error) {
	raw, err := ReadRegister(ctx, bus, address, sub)
	if err != nil {
		var zero T
		return zero, err
	}
	return conv(raw), nil
}
