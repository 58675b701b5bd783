package lsm6dso

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mklimuk/imu"
)

const (
	// freqFineStep is the relative ODR deviation per LSB of INTERNAL_FREQ_FINE.
	freqFineStep = 0.0015
	// baseODR is the fastest output data rate in Hz, all other rates divide it.
	baseODR = 6667.0
)

var ErrUnsupportedODR = errors.New("lsm6dso: unsupported output data rate")

// odrCoefficients maps the nominal output data rates (Hz) to the divider of
// the internal oscillator frequency.
var odrCoefficients = map[float64]float64{
	12.5: 512,
	26:   256,
	52:   128,
	104:  64,
	208:  32,
	416:  16,
	833:  8,
	1667: 4,
	3333: 2,
	6667: 1,
}

// ODRCoefficient returns the oscillator divider for a nominal output data rate.
func ODRCoefficient(nominal float64) (float64, error) {
	coeff, ok := odrCoefficients[nominal]
	if !ok {
		return 0, fmt.Errorf("%w: %g Hz", ErrUnsupportedODR, nominal)
	}
	return coeff, nil
}

// FreqFine is the factory trim of the internal oscillator (INTERNAL_FREQ_FINE),
// a two's complement value.
//
// It supports %d and %v (signed value), %s, %b and %x/%X (raw register bits).
type FreqFine int8

func (f FreqFine) Raw() byte {
	return byte(f)
}

// ActualODR returns the output data rate (Hz) the device really runs at when
// configured for the nominal one: (6667 + 0.0015 * trim * 6667) / ODR_coeff.
func (f FreqFine) ActualODR(nominal float64) (float64, error) {
	coeff, err := ODRCoefficient(nominal)
	if err != nil {
		return 0, err
	}
	return (baseODR + freqFineStep*float64(f)*baseODR) / coeff, nil
}

func (f FreqFine) String() string {
	return strconv.Itoa(int(f))
}

func (f FreqFine) Format(s fmt.State, verb rune) {
	switch verb {
	case 'b':
		_, _ = fmt.Fprint(s, strconv.FormatUint(uint64(f.Raw()), 2))
	case 'x':
		_, _ = fmt.Fprintf(s, "%02x", f.Raw())
	case 'X':
		_, _ = fmt.Fprintf(s, "%02X", f.Raw())
	default:
		_, _ = fmt.Fprint(s, f.String())
	}
}

func freqFineFromRaw(raw byte) FreqFine {
	return FreqFine(int8(raw))
}

// ReadFreqFine reads the INTERNAL_FREQ_FINE register.
func (s *LSM6DSO) ReadFreqFine(ctx context.Context) (FreqFine, error) {
	f, err := imu.ReadConverted(ctx, s.transport, s.address, regInternalFreqFine, freqFineFromRaw)
	if err != nil {
		return 0, fmt.Errorf("lsm6dso: could not read frequency trim: %w", err)
	}
	return f, nil
}

// ActualODR returns the real output data rate for the nominal one configured
// on the device, taking the oscillator trim into account.
func (s *LSM6DSO) ActualODR(ctx context.Context, nominal float64) (float64, error) {
	if _, err := ODRCoefficient(nominal); err != nil {
		return 0, err
	}
	trim, err := s.ReadFreqFine(ctx)
	if err != nil {
		return 0, err
	}
	return trim.ActualODR(nominal)
}
