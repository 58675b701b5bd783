package lsm6dso

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLSM6DSO_WhoAmI(t *testing.T) {
	tests := []struct {
		name    string
		given   byte
		chip    string
		wantErr error
	}{
		{"lsm6dso", 0x6C, "LSM6DSO", nil},
		{"ism330dhcx", 0x6B, "ISM330DHCX", nil},
		{"lsm6ds3", 0x69, "", ErrUnexpectedDevice},
		{"no device", 0xFF, "", ErrUnexpectedDevice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockBus)
			bus.On("WriteReadAddr", mock.Anything, byte(DefaultAddress), []byte{regWhoAmI}, mock.Anything).
				Return([]byte{tt.given}, nil).Once()

			id, err := New(bus).WhoAmI(context.Background())
			assert.Equal(t, tt.given, id)
			assert.Equal(t, tt.chip, ChipName(id))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
