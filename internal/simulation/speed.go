package simulation

import "github.com/David-Antunes/upf-flow/internal"

// Speed returns the per tick advance shared by every active link, using internal.BaseSpeed.
func Speed(p Parameters) float64 {
	return SpeedFrom(internal.BaseSpeed, p)
}

// SpeedFrom applies the DPDK, SR-IOV and traffic load multipliers to base.
// A load of 100% yields exactly 0 and freezes the animation.
func SpeedFrom(base float64, p Parameters) float64 {
	speed := base
	if p.DpdkEnabled {
		speed *= 2
	}
	if p.SriovEnabled {
		speed *= 1.5
	}
	speed *= float64(100-p.TrafficLoad) / 100
	return speed
}
