// delayx/delayx.go

// Package delayx provides blocking millisecond and microsecond delays driven
// by a dedicated general-purpose hardware timer, leaving the system tick
// timer free for the scheduler. A TimerDelay owns one timer peripheral for
// its whole lifetime: Init enables the timer and fixes the prescalers for the
// current clock tree, the delay calls reprogram and spin on the countdown,
// and Release disables the timer and hands it back.
//
// Accuracy notes: prescalers are rounded up, so an input clock that is not a
// whole multiple of 1 MHz yields delays slightly longer than requested, never
// shorter. Input clocks above 65.536 MHz overflow the 16-bit prescaler
// register; such delays run as repeated countdowns at a truncated prescaler
// and are correspondingly less accurate. Requests wider than the 16-bit
// counter are split into multiple full-width countdowns.
package delayx

// counterMax is the largest value the 16-bit countdown register can hold.
const counterMax = 0xFFFF

// ClockConfig describes the clock tree feeding the timer's bus. It is read
// once at Init; reconfiguring the clock tree afterwards is the caller's
// problem and is not detected.
type ClockConfig struct {
	// PeripheralHz is the bus (APB) clock frequency in Hz.
	PeripheralHz uint32
	// BusDividerIsOne reports whether the bus prescaler divides the core
	// clock by one. When it divides by more, the clock tree feeds timers at
	// twice the bus clock.
	BusDividerIsOne bool
}

// inputHz returns the frequency reaching the timer's prescaler stage.
func (c ClockConfig) inputHz() uint32 {
	if c.BusDividerIsOne {
		return c.PeripheralHz
	}
	return 2 * c.PeripheralHz
}

// Timer is the capability one concrete timer peripheral provides. Exactly
// one implementation is linked into a firmware image, selected by the build
// target. Callers must hold exclusive access to the peripheral for Enable,
// Delay and Disable; TimerDelay's lifecycle provides that.
type Timer interface {
	// Enable gates the peripheral clock on, pulses the peripheral reset and
	// selects down-counting. Not idempotent: calling it twice without an
	// intervening Disable is undefined at the hardware level.
	Enable()
	// Disable pulses reset and gates the peripheral clock off.
	Disable()
	// CalcPrescalers returns the minimal prescalers giving tick periods of
	// at least one microsecond and one millisecond.
	CalcPrescalers(clk ClockConfig) (usPre, msPre uint32)
	// Delay runs one bounded countdown of count ticks at the given
	// prescaler, spinning until the counter expires. It never returns early
	// and has no timeout.
	Delay(prescaler uint32, count uint16)
}

// calcPrescalers computes the microsecond and millisecond prescalers for the
// effective input clock. Division rounds up: a larger-than-exact prescaler
// only lengthens the resulting delay, a smaller one would shorten it.
func calcPrescalers(clk ClockConfig) (usPre, msPre uint32) {
	freqIn := clk.inputHz()
	usPre = (freqIn + 999999) / 1000000
	msPre = (freqIn + 999) / 1000
	return usPre, msPre
}

// splitPrescaler maps a 32-bit prescaler onto the 16-bit PSC register. The
// truncated register value is programmed once and the countdown repeated reps
// times, emulating the full prescaler as a product of two chained divisions.
func splitPrescaler(prescaler uint32) (psc uint16, reps uint32) {
	return uint16(prescaler & counterMax), (prescaler >> 16) + 1
}

// bbAlias returns the Cortex-M4 peripheral bit-band alias address for one
// bit of a memory-mapped register. Writing the alias word toggles that bit
// alone, with no read-modify-write of its neighbours.
func bbAlias(addr uintptr, bit uint8) uintptr {
	return 0x42000000 + (addr-0x40000000)<<5 + uintptr(bit)<<2
}

// TimerDelay drives one hardware timer as a blocking delay source.
// Invariants:
//   - The controller exclusively owns its Timer from Init until Release.
//   - The prescalers are computed once at Init and never refreshed.
//   - Every countdown handed to the Timer fits the 16-bit counter.
type TimerDelay struct {
	tim   Timer
	usPre uint32
	msPre uint32

	stats Stats
}

// Init enables the timer, computes the prescalers for the given clock tree
// and returns a controller that owns t until Release.
func Init(t Timer, clk ClockConfig) *TimerDelay {
	t.Enable()
	usPre, msPre := t.CalcPrescalers(clk)
	return &TimerDelay{tim: t, usPre: usPre, msPre: msPre}
}

// DelayMillis blocks for ms milliseconds.
func (d *TimerDelay) DelayMillis(ms uint32) {
	d.delay(d.msPre, ms)
}

// DelayMicros blocks for us microseconds.
func (d *TimerDelay) DelayMicros(us uint32) {
	d.delay(d.usPre, us)
}

// delay decomposes n ticks into countdowns the 16-bit counter can hold.
func (d *TimerDelay) delay(prescaler, n uint32) {
	passes := uint32(0)
	for n > counterMax {
		d.tim.Delay(prescaler, counterMax)
		n -= counterMax
		passes++
		d.dbgPass(counterMax)
	}
	// The remainder runs even when zero: a countdown-from-zero pass still
	// takes one tick, keeping the pass count at ceil(n/0xFFFF) and the
	// timing of exact-width requests unchanged.
	d.tim.Delay(prescaler, uint16(n))
	d.dbgPass(uint16(n))
	d.dbgCall(passes + 1)
}

// Release disables the timer and hands it back, ending the controller's
// ownership. The controller must not be used afterwards; the cleared timer
// reference makes any further delay call fault immediately.
func (d *TimerDelay) Release() Timer {
	t := d.tim
	t.Disable()
	d.tim = nil
	return t
}

// Unsigned is the set of widths the conventional delay surface accepts.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// DelayMs blocks for ms milliseconds. Values narrower than the counter width
// always run as a single countdown.
func DelayMs[T Unsigned](d *TimerDelay, ms T) {
	d.DelayMillis(uint32(ms))
}

// DelayUs blocks for us microseconds.
func DelayUs[T Unsigned](d *TimerDelay, us T) {
	d.DelayMicros(uint32(us))
}
