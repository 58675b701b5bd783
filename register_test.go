package imu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBus struct {
	mock.Mock
}

func (m *mockBus) WriteReadAddr(ctx context.Context, address byte, w, r []byte) error {
	args := m.Called(ctx, address, w, r)
	if data, ok := args.Get(0).([]byte); ok {
		copy(r, data)
	}
	return args.Error(1)
}

func (m *mockBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *mockBus) Release(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestReadRegister(t *testing.T) {
	bus := new(mockBus)
	bus.On("WriteReadAddr", mock.Anything, byte(0x6B), []byte{0x0F}, mock.Anything).
		Return([]byte{0x6C}, nil).Once()

	val, err := ReadRegister(context.Background(), bus, 0x6B, 0x0F)
	require.NoError(t, err)
	assert.Equal(t, byte(0x6C), val)
	bus.AssertExpectations(t)
}

func TestReadRegister_TransportError(t *testing.T) {
	busErr := errors.New("nack")
	bus := new(mockBus)
	bus.On("WriteReadAddr", mock.Anything, byte(0x6B), []byte{0x63}, mock.Anything).
		Return(nil, busErr).Once()

	_, err := ReadRegister(context.Background(), bus, 0x6B, 0x63)
	require.Error(t, err)
	assert.ErrorIs(t, err, busErr)
	assert.Contains(t, err.Error(), "0x63")
}

func TestReadRegisters_Burst(t *testing.T) {
	bus := new(mockBus)
	bus.On("WriteReadAddr", mock.Anything, byte(0x6A), []byte{0x22}, mock.Anything).
		Return([]byte{1, 2, 3, 4}, nil).Once()

	buf := make([]byte, 4)
	err := ReadRegisters(context.Background(), bus, 0x6A, 0x22, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestWriteRegister(t *testing.T) {
	bus := new(mockBus)
	bus.On("WriteToAddr", mock.Anything, byte(0x6B), []byte{0x10, 0x40}).Return(nil).Once()

	err := WriteRegister(context.Background(), bus, 0x6B, 0x10, 0x40)
	require.NoError(t, err)
	bus.AssertExpectations(t)
}

func TestReadConverted(t *testing.T) {
	tests := []struct {
		name     string
		raw      byte
		expected int
	}{
		{"positive", 0x05, 5},
		{"negative", 0xFB, -5},
		{"zero", 0x00, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(mockBus)
			bus.On("WriteReadAddr", mock.Anything, byte(0x6B), []byte{0x63}, mock.Anything).
				Return([]byte{tt.raw}, nil).Once()

			val, err := ReadConverted(context.Background(), bus, 0x6B, 0x63, func(b byte) int { return int(int8(b)) })
			require.NoError(t, err)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestReadConverted_ErrorSkipsConversion(t *testing.T) {
	bus := new(mockBus)
	bus.On("WriteReadAddr", mock.Anything, byte(0x6B), []byte{0x63}, mock.Anything).
		Return(nil, ErrBusBusy).Once()

	called := false
	_, err := ReadConverted(context.Background(), bus, 0x6B, 0x63, func(b byte) float64 {
		called = true
		return 0
	})
	assert.ErrorIs(t, err, ErrBusBusy)
	assert.False(t, called)
}
