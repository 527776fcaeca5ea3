package simulation

import (
	"fmt"
	"strings"

	"github.com/David-Antunes/upf-flow/internal"
)

// Parameters holds every user adjustable knob of the widget.
type Parameters struct {
	DpdkEnabled  bool
	SriovEnabled bool
	VfCount      int
	PacketCount  int
	TrafficLoad  int
}

func DefaultParameters() Parameters {
	return Parameters{
		DpdkEnabled:  true,
		SriovEnabled: true,
		VfCount:      2,
		PacketCount:  3,
		TrafficLoad:  50,
	}
}

// Clamp returns a copy with every numeric field forced into its allowed range.
// The second return value reports whether anything had to change.
func (p Parameters) Clamp() (Parameters, bool) {
	c := p
	c.VfCount = internal.Clamp(p.VfCount, internal.MinVfCount, internal.MaxVfCount)
	c.PacketCount = internal.Clamp(p.PacketCount, internal.MinPacketCount, internal.MaxPacketCount)
	c.TrafficLoad = internal.Clamp(p.TrafficLoad, internal.MinTrafficLoad, internal.MaxTrafficLoad)
	return c, c != p
}

func (p Parameters) Summary() string {
	var b strings.Builder
	b.WriteString("Current Configuration:")
	if p.SriovEnabled {
		fmt.Fprintf(&b, " SR-IOV enabled with %d VFs.", p.VfCount)
	} else {
		b.WriteString(" SR-IOV disabled.")
	}
	if p.DpdkEnabled {
		b.WriteString(" DPDK enabled.")
	} else {
		b.WriteString(" DPDK disabled.")
	}
	fmt.Fprintf(&b, " Simulating %d packets. Traffic load: %d%%.", p.PacketCount, p.TrafficLoad)
	return b.String()
}
