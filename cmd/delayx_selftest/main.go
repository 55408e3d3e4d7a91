//go:build stm32f405 || stm32f407 || stm32f411

// On-target selftest: drives LED patterns whose timing can be checked with a
// stopwatch or a logic analyser, then exercises the release/re-init
// lifecycle. Expected sequence:
//
//  1. 10 s of 1 Hz blinking (DelayMillis 500/500)
//  2. 2 s of 50 Hz flicker (DelayMicros 10000/10000), visible as a dim glow
//  3. 1 s dark while the timer is released
//  4. 5 s of 1 Hz blinking on a fresh controller
//  5. LED held on
package main

import (
	"machine"
	"runtime/volatile"

	"github.com/jangala-dev/tinygo-delayx/delayx"
)

// APB1 clock on the supported F4 boards: 42 MHz behind a /4 bus divider, so
// the timer input runs at 84 MHz.
var clk = delayx.ClockConfig{
	PeripheralHz:    42_000_000,
	BusDividerIsOne: false,
}

func main() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d := delayx.Init(delayx.TIM3, clk)

	// Phase 1: 1 Hz for 10 s.
	blink(d, led, 10, 500)

	// Phase 2: 50 Hz for 2 s via the microsecond path.
	for i := 0; i < 100; i++ {
		led.High()
		d.DelayMicros(10_000)
		led.Low()
		d.DelayMicros(10_000)
	}

	// Phase 3: release, go dark, then re-init on the same peripheral.
	tim := d.Release()
	led.Low()
	busyPause()
	d = delayx.Init(tim, clk)

	// Phase 4: 1 Hz for 5 s on the fresh controller.
	blink(d, led, 5, 500)

	led.High()
	for {
	}
}

func blink(d *delayx.TimerDelay, led machine.Pin, cycles int, halfMs uint32) {
	for i := 0; i < cycles; i++ {
		led.High()
		d.DelayMillis(halfMs)
		led.Low()
		d.DelayMillis(halfMs)
	}
}

// busyPause burns roughly a second without the timer, which is released
// during phase 3. The volatile read keeps the loop from being elided.
func busyPause() {
	var dummy volatile.Register32
	for i := 0; i < 20_000_000; i++ {
		dummy.Get()
	}
}
