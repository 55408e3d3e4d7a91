//go:build delayxdebug

package delayx

// Stats holds delay accounting since the last reset.
type Stats struct {
	Calls      uint32 // public delay calls completed
	Passes     uint32 // bounded countdowns handed to the hardware
	FullPasses uint32 // full-width (0xFFFF) passes from oversized requests
	ZeroPasses uint32 // zero-count trailing passes
	MaxPasses  uint32 // most passes issued by a single delay call
}

// DebugReset zeroes the counters.
func (d *TimerDelay) DebugReset() {
	d.stats = Stats{}
}

// DebugStats returns a copy of the counters. The core is single-threaded, so
// a plain copy is a consistent snapshot.
func (d *TimerDelay) DebugStats() Stats {
	return d.stats
}

// Called once per bounded countdown with its programmed count.
func (d *TimerDelay) dbgPass(count uint16) {
	d.stats.Passes++
	switch count {
	case counterMax:
		d.stats.FullPasses++
	case 0:
		d.stats.ZeroPasses++
	}
}

// Called once per public delay call with the number of passes it issued.
func (d *TimerDelay) dbgCall(passes uint32) {
	d.stats.Calls++
	if passes > d.stats.MaxPasses {
		d.stats.MaxPasses = passes
	}
}
