package lsm6dso

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBus is a mock implementation of imu.AddressableWriteReader using testify/mock
type MockBus struct {
	mock.Mock
}

func (m *MockBus) WriteReadAddr(ctx context.Context, address byte, w, r []byte) error {
	args := m.Called(ctx, address, w, r)
	if data, ok := args.Get(0).([]byte); ok {
		copy(r, data)
	}
	return args.Error(1)
}

func (m *MockBus) expectFIFO(entry []byte, err error) *mock.Call {
	return m.On("WriteReadAddr", mock.Anything, byte(DefaultAddress), []byte{regFIFODataOutTag},
		mock.MatchedBy(func(r []byte) bool { return len(r) == fifoEntrySize })).
		Return(entry, err).Once()
}
