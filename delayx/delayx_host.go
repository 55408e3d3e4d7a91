//go:build !stm32f405 && !stm32f407 && !stm32f411

package delayx

// Host shim: simulated timer for unit tests, no device/stm32 deps.

// pass records one bounded countdown handed to the simulated hardware.
type pass struct {
	psc   uint16
	count uint16
}

// TIM mirrors the hardware adapter with simulated register state instead of
// a register block.
type TIM struct {
	clockOn     bool
	inReset     bool
	resetPulses int
	countsDown  bool
	psc         uint16
	passes      []pass
}

// Public instances to mirror real build.
var (
	TIM1 = &_TIM1
	TIM3 = &_TIM3
	TIM4 = &_TIM4

	_TIM1 TIM
	_TIM3 TIM
	_TIM4 TIM
)

func (t *TIM) Enable() {
	t.clockOn = true
	t.inReset = true
	t.resetPulses++
	t.inReset = false
	t.countsDown = true
}

func (t *TIM) Disable() {
	t.inReset = true
	t.resetPulses++
	t.inReset = false
	t.clockOn = false
}

func (t *TIM) CalcPrescalers(clk ClockConfig) (usPre, msPre uint32) {
	return calcPrescalers(clk)
}

// Delay models the hardware loop: the prescaler is truncated to the PSC
// register width and the countdown recorded once per repetition.
func (t *TIM) Delay(prescaler uint32, count uint16) {
	psc, reps := splitPrescaler(prescaler)
	t.psc = psc
	for ; reps > 0; reps-- {
		t.passes = append(t.passes, pass{psc: psc, count: count})
	}
}
