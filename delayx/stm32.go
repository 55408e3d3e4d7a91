// delayx/stm32.go

//go:build stm32f405 || stm32f407 || stm32f411

package delayx

import "device/stm32"

const deviceName = stm32.Device

// Timers with 16-bit down-capable counters on the F4 buses. TIM2 and TIM5
// carry 32-bit counters and TIM9 through TIM14 only count up, so none of
// them are offered here.
var (
	TIM1  = &_TIM1
	_TIM1 = TIM{
		Bus:    stm32.TIM1,
		enable: &stm32.RCC.APB2ENR,
		reset:  &stm32.RCC.APB2RSTR,
		bit:    stm32.RCC_APB2ENR_TIM1EN_Pos,
	}

	TIM3  = &_TIM3
	_TIM3 = TIM{
		Bus:    stm32.TIM3,
		enable: &stm32.RCC.APB1ENR,
		reset:  &stm32.RCC.APB1RSTR,
		bit:    stm32.RCC_APB1ENR_TIM3EN_Pos,
	}

	TIM4  = &_TIM4
	_TIM4 = TIM{
		Bus:    stm32.TIM4,
		enable: &stm32.RCC.APB1ENR,
		reset:  &stm32.RCC.APB1RSTR,
		bit:    stm32.RCC_APB1ENR_TIM4EN_Pos,
	}
)
