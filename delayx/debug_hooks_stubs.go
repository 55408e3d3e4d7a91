//go:build !delayxdebug

package delayx

type Stats struct{}

func (d *TimerDelay) DebugReset()       {}
func (d *TimerDelay) DebugStats() Stats { return Stats{} }

func (d *TimerDelay) dbgPass(uint16) {}
func (d *TimerDelay) dbgCall(uint32) {}
