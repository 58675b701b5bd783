package lsm6dso

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectFreqFine(bus *MockBus, raw byte, err error) {
	var data []byte
	if err == nil {
		data = []byte{raw}
	}
	bus.On("WriteReadAddr", mock.Anything, byte(DefaultAddress), []byte{regInternalFreqFine}, mock.Anything).
		Return(data, err).Once()
}

func TestFreqFine_Format(t *testing.T) {
	tests := []struct {
		raw                byte
		dec, bin, hex, HEX string
	}{
		{0x00, "0", "0", "00", "00"},
		{0x05, "5", "101", "05", "05"},
		{0xFB, "-5", "11111011", "fb", "FB"},
		{0x80, "-128", "10000000", "80", "80"},
	}
	for _, tt := range tests {
		t.Run(tt.dec, func(t *testing.T) {
			f := freqFineFromRaw(tt.raw)
			assert.Equal(t, tt.dec, fmt.Sprintf("%d", f))
			assert.Equal(t, tt.dec, fmt.Sprintf("%v", f))
			assert.Equal(t, tt.dec, f.String())
			assert.Equal(t, tt.bin, fmt.Sprintf("%b", f))
			assert.Equal(t, tt.hex, fmt.Sprintf("%x", f))
			assert.Equal(t, tt.HEX, fmt.Sprintf("%X", f))
			assert.Equal(t, tt.raw, f.Raw())
		})
	}
}

func TestFreqFine_ActualODR(t *testing.T) {
	tests := []struct {
		trim     FreqFine
		nominal  float64
		expected float64
	}{
		{0, 104, 104.171875},
		{0, 12.5, 6667.0 / 512},
		{0, 6667, 6667},
		{10, 6667, 6667 * 1.015},
		{10, 416, 6667 * 1.015 / 16},
		{-20, 104, 6667 * 0.97 / 64},
		{-128, 208, (6667 - 0.0015*128*6667) / 32},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d@%g", tt.trim, tt.nominal), func(t *testing.T) {
			odr, err := tt.trim.ActualODR(tt.nominal)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, odr, 1e-9)
		})
	}
}

func TestFreqFine_ActualODR_UnsupportedRate(t *testing.T) {
	for _, nominal := range []float64{0, 100, 104.17, 10000} {
		_, err := FreqFine(0).ActualODR(nominal)
		assert.ErrorIs(t, err, ErrUnsupportedODR, nominal)
	}
}

func TestODRCoefficient(t *testing.T) {
	for nominal, expected := range map[float64]float64{12.5: 512, 26: 256, 52: 128, 104: 64, 208: 32, 416: 16, 833: 8, 1667: 4, 3333: 2, 6667: 1} {
		coeff, err := ODRCoefficient(nominal)
		require.NoError(t, err, nominal)
		assert.Equal(t, expected, coeff, nominal)
	}
}

func TestLSM6DSO_ReadFreqFine(t *testing.T) {
	bus := new(MockBus)
	expectFreqFine(bus, 0xF6, nil)

	f, err := New(bus).ReadFreqFine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FreqFine(-10), f)
	bus.AssertExpectations(t)
}

func TestLSM6DSO_ReadFreqFine_Error(t *testing.T) {
	busErr := errors.New("bus timeout")
	bus := new(MockBus)
	expectFreqFine(bus, 0, busErr)

	_, err := New(bus).ReadFreqFine(context.Background())
	assert.ErrorIs(t, err, busErr)
	assert.Contains(t, err.Error(), "frequency trim")
}

func TestLSM6DSO_ActualODR(t *testing.T) {
	bus := new(MockBus)
	expectFreqFine(bus, 0x0A, nil)

	odr, err := New(bus).ActualODR(context.Background(), 416)
	require.NoError(t, err)
	assert.InDelta(t, 6667*1.015/16, odr, 1e-9)
	bus.AssertExpectations(t)
}

func TestLSM6DSO_ActualODR_Error(t *testing.T) {
	busErr := errors.New("bus timeout")
	bus := new(MockBus)
	expectFreqFine(bus, 0, busErr)

	_, err := New(bus).ActualODR(context.Background(), 104)
	assert.ErrorIs(t, err, busErr)
	assert.Contains(t, err.Error(), "lsm6dso: could not read frequency trim")
}

func TestLSM6DSO_ActualODR_UnsupportedRate(t *testing.T) {
	bus := new(MockBus)

	_, err := New(bus).ActualODR(context.Background(), 100)
	assert.ErrorIs(t, err, ErrUnsupportedODR)
	bus.AssertNotCalled(t, "WriteReadAddr", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
