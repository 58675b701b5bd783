package i2c

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/imu"
	"github.com/mklimuk/imu/lsm6dso"
)

func TestLoadReplayBus_FIFOScript(t *testing.T) {
	bus, err := LoadReplayBus(filepath.Join("testdata", "fifo.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, bus.Remaining())
	ctx := context.Background()

	s := lsm6dso.New(bus)
	id, err := s.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte(0x6C), id)

	trim, err := s.ReadFreqFine(ctx)
	require.NoError(t, err)
	assert.Equal(t, lsm6dso.FreqFine(-10), trim)

	values, err := s.DrainFIFO(ctx, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []lsm6dso.Value{
		lsm6dso.Gyro{1000, -1000, 0},
		lsm6dso.Accel{0, 0, 8192},
	}, values)
	assert.Zero(t, bus.Remaining())
}

func TestReplayBus_ISM330DHCX(t *testing.T) {
	ctx := context.Background()
	bus := NewReplayBus(
		Transaction{Address: 0x6b, Write: HexBytes{0x0f}, Read: HexBytes{0x6b}},
		Transaction{Address: 0x6b, Write: HexBytes{0x63}, Read: HexBytes{0x00}},
		Transaction{Address: 0x6b, Write: HexBytes{0x78}, Read: HexBytes{0x08, 0x64, 0x00, 0x00, 0x00, 0x00, 0x00}},
	)
	s := lsm6dso.New(bus)

	id, err := s.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ISM330DHCX", lsm6dso.ChipName(id))

	odr, err := s.ActualODR(ctx, 104)
	require.NoError(t, err)
	assert.InDelta(t, 104.171875, odr, 1e-9)

	v, err := s.PopFIFO(ctx, lsm6dso.Gyro4000DPS.Scale(), lsm6dso.Accel16G.Scale())
	require.NoError(t, err)
	require.IsType(t, lsm6dso.Gyro{}, v)
	g := v.(lsm6dso.Gyro)
	assert.InDeltaSlice(t, []float64{14, 0, 0}, g[:], 1e-9)
	assert.Zero(t, bus.Remaining())
}

func TestLoadReplayBus_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplayBus(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("transactions:\n  - address: 0x6b\n    read: \"zz\"\n"), 0o600))
	_, err = LoadReplayBus(bad)
	assert.ErrorContains(t, err, "invalid hex bytes")
}

func TestReplayBus_Mismatch(t *testing.T) {
	ctx := context.Background()
	bus := NewReplayBus(
		Transaction{Address: 0x6b, Write: HexBytes{0x78}, Read: make(HexBytes, 7)},
		Transaction{Address: 0x6b, Write: HexBytes{0x78}, Read: make(HexBytes, 7)},
	)

	err := bus.WriteReadAddr(ctx, 0x6a, []byte{0x78}, make([]byte, 7))
	assert.ErrorIs(t, err, ErrReplayMismatch)

	err = bus.WriteReadAddr(ctx, 0x6b, []byte{0x0f}, make([]byte, 7))
	assert.ErrorIs(t, err, ErrReplayMismatch)

	err = bus.WriteReadAddr(ctx, 0x6b, []byte{0x78}, make([]byte, 7))
	assert.ErrorIs(t, err, ErrReplayExhausted)
}

func TestReplayBus_ShortRead(t *testing.T) {
	bus := NewReplayBus(Transaction{Address: 0x6b, Write: HexBytes{0x78}, Read: HexBytes{0x08, 0x00}})

	err := bus.WriteReadAddr(context.Background(), 0x6b, []byte{0x78}, make([]byte, 7))
	assert.ErrorIs(t, err, imu.ErrShortRead)
}

func TestReplayBus_ScriptedError(t *testing.T) {
	bus := NewReplayBus(Transaction{Address: 0x6b, Write: HexBytes{0x78}, Error: "no acknowledge"})

	_, err := lsm6dso.New(bus).PopFIFO(context.Background(), 1, 1)
	assert.EqualError(t, err, "no acknowledge")
}

func TestReplayBus_PlainReadWrite(t *testing.T) {
	ctx := context.Background()
	bus := NewReplayBus(
		Transaction{Address: 0x6b, Write: HexBytes{0x10, 0x40}},
		Transaction{Address: 0x6b, Read: HexBytes{0xAB, 0xCD}},
	)

	require.NoError(t, imu.WriteRegister(ctx, bus, 0x6b, 0x10, 0x40))
	buf := make([]byte, 2)
	require.NoError(t, bus.ReadFromAddr(ctx, 0x6b, buf))
	assert.Equal(t, []byte{0xAB, 0xCD}, buf)
	require.NoError(t, bus.Release(ctx))
}

func TestHexBytes_YAML(t *testing.T) {
	out, err := yaml.Marshal(Transaction{Address: 0x6b, Write: HexBytes{0x78}, Read: HexBytes{0x08, 0x00, 0xff}})
	require.NoError(t, err)

	var tx Transaction
	require.NoError(t, yaml.Unmarshal(out, &tx))
	assert.Equal(t, byte(0x6b), tx.Address)
	assert.Equal(t, HexBytes{0x78}, tx.Write)
	assert.Equal(t, HexBytes{0x08, 0x00, 0xff}, tx.Read)
}
