// delayx/stm32_tim.go

//go:build stm32f405 || stm32f407 || stm32f411

package delayx

import (
	"device/stm32"
	"runtime/volatile"
	"unsafe"
)

// TIM is one STM32 timer with a 16-bit down-capable counter, together with
// its clock-enable and reset bits in the RCC block.
// Invariants:
//   - A timer's enable and reset bits sit at the same index in their
//     respective RCC registers, so one bit index covers both.
//   - RCC bit toggles go through the bit-band alias region: the enable and
//     reset registers are shared with unrelated peripherals that may be
//     configured concurrently, so a whole-register read-modify-write could
//     clobber a neighbouring bit mid-update.
type TIM struct {
	Bus    *stm32.TIM_Type      // timer register block
	enable *volatile.Register32 // RCC bus clock-enable register
	reset  *volatile.Register32 // RCC bus reset register
	bit    uint8                // bit index of this timer in both registers
}

// bbReg returns the volatile view of one bit of reg in the peripheral
// bit-band alias region. Writing 1 or 0 to it sets or clears that bit.
func bbReg(reg *volatile.Register32, bit uint8) *volatile.Register32 {
	addr := bbAlias(uintptr(unsafe.Pointer(reg)), bit)
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// Enable gates the timer's bus clock on, pulses its reset line and selects
// down-counting. Not idempotent; TimerDelay's lifecycle ensures it runs once
// per ownership.
func (t *TIM) Enable() {
	bbReg(t.enable, t.bit).Set(1)
	bbReg(t.reset, t.bit).Set(1)
	bbReg(t.reset, t.bit).Set(0)
	t.Bus.CR1.SetBits(stm32.TIM_CR1_DIR)
}

// Disable pulses reset and gates the bus clock off, the inverse of Enable.
func (t *TIM) Disable() {
	bbReg(t.reset, t.bit).Set(1)
	bbReg(t.reset, t.bit).Set(0)
	bbReg(t.enable, t.bit).Set(0)
}

// CalcPrescalers returns the microsecond and millisecond prescalers for the
// given clock tree.
func (t *TIM) CalcPrescalers(clk ClockConfig) (usPre, msPre uint32) {
	return calcPrescalers(clk)
}

// Delay runs count ticks at the given prescaler and spins until the counter
// expires. Prescalers above the 16-bit PSC register (input clocks above
// 65.536 MHz) repeat the countdown once per overflow step at the truncated
// register value, so the total still covers the full division ratio.
func (t *TIM) Delay(prescaler uint32, count uint16) {
	psc, reps := splitPrescaler(prescaler)
	t.Bus.PSC.Set(uint32(psc))
	for ; reps > 0; reps-- {
		// Clear the update flag left by any previous countdown.
		t.Bus.SR.ClearBits(stm32.TIM_SR_UIF)
		t.Bus.CNT.Set(uint32(count))
		t.Bus.CR1.SetBits(stm32.TIM_CR1_CEN)
		// Spin until the counter wraps past zero. No timeout: a dead input
		// clock leaves the device here, which is the intended fail-stop.
		for !t.Bus.SR.HasBits(stm32.TIM_SR_UIF) {
		}
		t.Bus.CR1.ClearBits(stm32.TIM_CR1_CEN)
	}
}
