package network_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/David-Antunes/upf-flow/internal/network"
	"github.com/David-Antunes/upf-flow/internal/simulation"
	"github.com/David-Antunes/upf-flow/internal/topology"
	. "github.com/onsi/gomega"
)

func derive(p simulation.Parameters) []topology.Link {
	return topology.Links(p, simulation.Speed(p))
}

func TestAnimatorReconcileFollowsActiveLinks(t *testing.T) {
	RegisterTestingT(t)

	a := network.CreateAnimator(time.Millisecond, nil)
	p := simulation.DefaultParameters()
	a.Reconcile(derive(p))

	Expect(a.LiveMarkers()).To(Equal(map[topology.LinkId]int{
		topology.RadioLink:       3,
		topology.SriovIngress:    3,
		topology.SriovEgress:     3,
		topology.FastPath:        3,
		topology.DataNetworkLink: 3,
	}))

	p.SriovEnabled = false
	a.Reconcile(derive(p))
	live := a.LiveMarkers()
	Expect(live).NotTo(HaveKey(topology.SriovIngress))
	Expect(live).NotTo(HaveKey(topology.SriovEgress))
	Expect(live).To(HaveKeyWithValue(topology.KernelBypass, 3))
	Expect(a.Markers()).To(HaveLen(4 * 3))
}

func TestAnimatorShrinkKeepsSurvivors(t *testing.T) {
	RegisterTestingT(t)

	a := network.CreateAnimator(time.Millisecond, nil)
	p := simulation.DefaultParameters()
	p.PacketCount = 8
	a.Reconcile(derive(p))
	a.Step()
	before := a.Markers()

	p.PacketCount = 2
	a.Reconcile(derive(p))
	for _, n := range a.LiveMarkers() {
		Expect(n).To(Equal(2))
	}
	after := a.Markers()
	Expect(after).To(HaveLen(5 * 2))
	Expect(after[0]).To(Equal(before[0]))
	Expect(after[1]).To(Equal(before[1]))
}

func TestAnimatorLoopTicksAndStops(t *testing.T) {
	g := NewWithT(t)

	var seen atomic.Uint64
	a := network.CreateAnimator(2*time.Millisecond, func(ticks uint64) {
		seen.Store(ticks)
	})
	a.Reconcile(derive(simulation.DefaultParameters()))
	a.Start()
	a.Start()
	g.Expect(a.IsRunning()).To(BeTrue())

	g.Eventually(seen.Load, time.Second, time.Millisecond).Should(BeNumerically(">=", 5))
	for _, m := range a.Markers() {
		g.Expect(m.Position).To(BeNumerically("<", 1))
	}

	a.Close()
	g.Expect(a.IsRunning()).To(BeFalse())
	g.Expect(a.Markers()).To(BeEmpty())
	stopped := a.GetTicks()
	g.Consistently(a.GetTicks, 30*time.Millisecond, 5*time.Millisecond).Should(Equal(stopped))

	a.Close()
}

func TestAnimatorShrinkWhileRunning(t *testing.T) {
	g := NewWithT(t)

	a := network.CreateAnimator(time.Millisecond, nil)
	p := simulation.DefaultParameters()
	p.PacketCount = 10
	a.Reconcile(derive(p))
	a.Start()
	defer a.Close()

	p.PacketCount = 4
	a.Reconcile(derive(p))
	g.Eventually(a.Markers, time.Second).Should(HaveLen(5 * 4))
	g.Consistently(a.Markers, 20*time.Millisecond, 2*time.Millisecond).Should(HaveLen(5 * 4))
}

func TestAnimatorPause(t *testing.T) {
	g := NewWithT(t)

	a := network.CreateAnimator(time.Millisecond, nil)
	a.Start()
	defer a.Close()

	g.Eventually(a.GetTicks, time.Second).Should(BeNumerically(">", 0))
	a.Pause()
	g.Expect(a.IsPaused()).To(BeTrue())
	// let an in-flight tick land
	time.Sleep(5 * time.Millisecond)
	paused := a.GetTicks()
	g.Consistently(a.GetTicks, 20*time.Millisecond, 2*time.Millisecond).Should(Equal(paused))

	a.Unpause()
	g.Eventually(a.GetTicks, time.Second).Should(BeNumerically(">", paused))
}

func TestAnimatorStepWithoutLoop(t *testing.T) {
	g := NewWithT(t)

	a := network.CreateAnimator(time.Hour, nil)
	p := simulation.DefaultParameters()
	p.PacketCount = 1
	p.TrafficLoad = 0
	a.Reconcile(derive(p))

	g.Expect(a.Step()).To(Equal(uint64(1)))
	for _, m := range a.Markers() {
		g.Expect(m.Position).To(BeNumerically(">", 0))
	}
	g.Expect(a.IsRunning()).To(BeFalse())
}

func TestAnimatorStaysClosed(t *testing.T) {
	g := NewWithT(t)

	a := network.CreateAnimator(time.Millisecond, nil)
	a.Reconcile(derive(simulation.DefaultParameters()))
	a.Start()
	a.Close()
	g.Expect(a.IsClosed()).To(BeTrue())

	a.Reconcile(derive(simulation.DefaultParameters()))
	a.Start()
	g.Expect(a.IsRunning()).To(BeFalse())
	g.Expect(a.LiveMarkers()).To(BeEmpty())
	stopped := a.GetTicks()
	g.Consistently(a.GetTicks, 20*time.Millisecond, 2*time.Millisecond).Should(Equal(stopped))
}

func TestAnimatorFrameMatchesState(t *testing.T) {
	g := NewWithT(t)

	a := network.CreateAnimator(time.Hour, nil)
	a.Reconcile(derive(simulation.DefaultParameters()))
	a.Step()
	a.Step()
	a.Pause()

	frame := a.Frame()
	g.Expect(frame.Ticks).To(Equal(uint64(2)))
	g.Expect(frame.Paused).To(BeTrue())
	g.Expect(frame.Markers).To(Equal(a.Markers()))
}
