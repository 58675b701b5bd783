package i2c

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/imu"
)

var _ imu.I2CBus = &ReplayBus{}
var _ imu.RegisterBus = &ReplayBus{}

var ErrReplayExhausted = errors.New("replay: no more scripted transactions")
var ErrReplayMismatch = errors.New("replay: transaction does not match script")

// HexBytes is a byte slice written in YAML as a hex string; spaces are allowed,
// e.g. "08 00 01 00 02 00 04".
type HexBytes []byte

func (h *HexBytes) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return fmt.Errorf("line %d: invalid hex bytes %q: %w", value.Line, s, err)
	}
	*h = b
	return nil
}

func (h HexBytes) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("% x", []byte(h)), nil
}

// Transaction is one scripted bus operation. A transaction with both Write and
// Read set is a combined write-read; Error makes the bus fail instead.
type Transaction struct {
	Address byte     `yaml:"address"`
	Write   HexBytes `yaml:"write,omitempty"`
	Read    HexBytes `yaml:"read,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

type Script struct {
	Transactions []Transaction `yaml:"transactions"`
}

// ReplayBus plays back a recorded sequence of transactions. It lets the
// drivers and the cli run without hardware.
type ReplayBus struct {
	mx     sync.Mutex
	script []Transaction
	pos    int
}

func NewReplayBus(transactions ...Transaction) *ReplayBus {
	return &ReplayBus{script: transactions}
}

// LoadReplayBus reads a YAML script from path.
func LoadReplayBus(path string) (*ReplayBus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read replay script: %w", err)
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("could not parse replay script %s: %w", path, err)
	}
	return NewReplayBus(script.Transactions...), nil
}

// Remaining returns the number of transactions not played yet.
func (b *ReplayBus) Remaining() int {
	b.mx.Lock()
	defer b.mx.Unlock()
	return len(b.script) - b.pos
}

func (b *ReplayBus) next(address byte, w []byte, readLen int) (Transaction, error) {
	if b.pos >= len(b.script) {
		return Transaction{}, ErrReplayExhausted
	}
	tx := b.script[b.pos]
	b.pos++
	if tx.Address != address {
		return tx, fmt.Errorf("%w: transaction %d expects address %x, got %x", ErrReplayMismatch, b.pos, tx.Address, address)
	}
	if !bytes.Equal(tx.Write, w) {
		return tx, fmt.Errorf("%w: transaction %d expects write [% x], got [% x]", ErrReplayMismatch, b.pos, []byte(tx.Write), w)
	}
	if tx.Error != "" {
		return tx, errors.New(tx.Error)
	}
	if len(tx.Read) != readLen {
		return tx, fmt.Errorf("transaction %d has %d bytes to read, %d requested: %w", b.pos, len(tx.Read), readLen, imu.ErrShortRead)
	}
	return tx, nil
}

func (b *ReplayBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	tx, err := b.next(address, nil, len(buffer))
	if err != nil {
		return err
	}
	copy(buffer, tx.Read)
	return nil
}

func (b *ReplayBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	_, err := b.next(address, buffer, 0)
	return err
}

func (b *ReplayBus) WriteReadAddr(ctx context.Context, address byte, w, r []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	tx, err := b.next(address, w, len(r))
	if err != nil {
		return err
	}
	copy(r, tx.Read)
	return nil
}

func (b *ReplayBus) Release(ctx context.Context) error {
	return nil
}
