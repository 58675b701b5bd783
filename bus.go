package imu

import (
	"context"
	"errors"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// ErrShortRead is returned by transports that received fewer bytes than requested.
var ErrShortRead = errors.New("short read from I2C device")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// AddressableWriteReader performs a combined transaction: w is written to the
// device and, after a repeated start, len(r) bytes are read back into r.
// Implementations either fill r completely or return an error.
type AddressableWriteReader interface {
	WriteReadAddr(ctx context.Context, address byte, w, r []byte) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// RegisterBus is what register-addressed devices need: sub-address selection
// followed by a burst read, and plain register writes.
type RegisterBus interface {
	AddressableWriteReader
	AddressableWriter
}
