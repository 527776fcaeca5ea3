package application_test

import (
	"testing"
	"time"

	"github.com/David-Antunes/upf-flow/api"
	"github.com/David-Antunes/upf-flow/internal/application"
	"github.com/David-Antunes/upf-flow/internal/simulation"
	"github.com/David-Antunes/upf-flow/internal/topology"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulator(t *testing.T) *application.Simulator {
	t.Helper()
	cfg := application.DefaultConfig()
	cfg.TickInterval = time.Millisecond
	sim := application.NewSimulator(cfg)
	t.Cleanup(sim.Close)
	return sim
}

func activeIds(links []api.Link) []int {
	ids := make([]int, 0)
	for _, l := range links {
		if l.Active {
			ids = append(ids, l.Id)
		}
	}
	return ids
}

func TestInitialScenario(t *testing.T) {
	sim := newSimulator(t)

	snap := sim.Snapshot()
	assert.Equal(t, api.Parameters{DpdkEnabled: true, SriovEnabled: true, VfCount: 2, PacketCount: 3, TrafficLoad: 50}, snap.Parameters)
	assert.Equal(t, []int{1, 2, 3, 5, 6}, activeIds(snap.Links))
	assert.Equal(t, topology.DefaultPrompt, snap.Description)
	assert.Equal(t, "", snap.Selected)
	assert.InDelta(t, 0.03, snap.Speed, 1e-12)
	assert.Len(t, snap.Markers, 5*3)
	assert.Len(t, snap.Nodes, 6)
	assert.Contains(t, snap.Configuration, "SR-IOV enabled with 2 VFs.")

	node, err := sim.SelectNode("kernel_dpdk")
	require.NoError(t, err)
	assert.Equal(t, topology.KernelDpdk, node)
	assert.Equal(t, "Kernel/DPDK: DPDK bypassing kernel for fast packet processing.", sim.Snapshot().Description)
}

func TestSelectionIsSticky(t *testing.T) {
	sim := newSimulator(t)

	_, err := sim.SelectNode("upf")
	require.NoError(t, err)
	_, err = sim.SelectNode("upf")
	require.NoError(t, err)
	assert.Equal(t, topology.Upf, sim.GetSelected())

	_, err = sim.SelectNode("nowhere")
	require.Error(t, err)
	assert.Equal(t, application.ErrUnknownNode, errors.Cause(err))
	assert.Equal(t, topology.Upf, sim.GetSelected())

	snap := sim.Snapshot()
	for _, n := range snap.Nodes {
		assert.Equal(t, n.Id == "upf", n.Selected, n.Id)
	}
}

func TestSriovDescriptionFollowsVfCount(t *testing.T) {
	sim := newSimulator(t)
	_, err := sim.SelectNode("sriov")
	require.NoError(t, err)

	v, clamped, err := sim.SetVfCount(5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.False(t, clamped)
	assert.Contains(t, sim.Description(), "5")
}

func TestTogglesRecomputeLinks(t *testing.T) {
	sim := newSimulator(t)

	p, err := sim.ToggleSriov()
	require.NoError(t, err)
	assert.False(t, p.SriovEnabled)
	assert.Equal(t, []int{1, 4, 5, 6}, activeIds(sim.Snapshot().Links))
	assert.NotContains(t, sim.LiveMarkers(), topology.SriovIngress)

	p, err = sim.ToggleDpdk()
	require.NoError(t, err)
	assert.False(t, p.DpdkEnabled)
	assert.InDelta(t, 0.01, sim.GetSpeed(), 1e-12)

	sim.SetSriov(true)
	assert.Equal(t, []int{1, 2, 5, 6}, activeIds(sim.Snapshot().Links))
	sim.SetDpdk(true)
	assert.Equal(t, []int{1, 2, 3, 5, 6}, activeIds(sim.Snapshot().Links))
}

func TestOutOfRangeValuesAreClamped(t *testing.T) {
	sim := newSimulator(t)

	v, clamped, err := sim.SetVfCount(99)
	require.NoError(t, err)
	assert.Equal(t, 8, v)
	assert.True(t, clamped)

	v, clamped, err = sim.SetPacketCount(0)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, clamped)

	v, clamped, err = sim.SetTrafficLoad(150)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	assert.True(t, clamped)
	assert.Equal(t, 0.0, sim.GetSpeed())

	cfg := application.DefaultConfig()
	cfg.Parameters.PacketCount = 50
	other := application.NewSimulator(cfg)
	defer other.Close()
	assert.Equal(t, 10, other.GetParameters().PacketCount)
}

func TestSetParametersPartial(t *testing.T) {
	sim := newSimulator(t)

	load := 0
	off := false
	p, clamped, err := sim.SetParameters(application.ParameterUpdate{TrafficLoad: &load, DpdkEnabled: &off})
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, simulation.Parameters{DpdkEnabled: false, SriovEnabled: true, VfCount: 2, PacketCount: 3, TrafficLoad: 0}, p)
	assert.InDelta(t, 0.03, sim.GetSpeed(), 1e-12)
}

func TestPacketCountShrinkReleasesMarkers(t *testing.T) {
	g := NewWithT(t)
	sim := newSimulator(t)
	sim.SetPacketCount(10)
	g.Expect(sim.Start()).To(Succeed())

	sim.SetPacketCount(2)
	g.Eventually(sim.LiveMarkers, time.Second).Should(HaveLen(5))
	for _, n := range sim.LiveMarkers() {
		g.Expect(n).To(Equal(2))
	}
	g.Consistently(func() int { return len(sim.Snapshot().Markers) }, 20*time.Millisecond, 2*time.Millisecond).Should(Equal(10))

	sim.Close()
	g.Expect(sim.IsRunning()).To(BeFalse())
	g.Expect(sim.LiveMarkers()).To(BeEmpty())
}

func TestSubscribeReceivesFrames(t *testing.T) {
	g := NewWithT(t)
	sim := newSimulator(t)

	frames, cancel, err := sim.Subscribe()
	g.Expect(err).NotTo(HaveOccurred())
	sim.Start()

	var last api.Snapshot
	g.Eventually(frames, time.Second).Should(Receive(&last))
	g.Expect(last.Links).To(HaveLen(6))
	for _, m := range last.Markers {
		g.Expect(m.Position).To(BeNumerically("<", 1))
	}

	cancel()
	cancel()
	g.Eventually(frames, time.Second).Should(BeClosed())
}

func TestCloseClosesSubscribers(t *testing.T) {
	g := NewWithT(t)
	sim := newSimulator(t)
	frames, _, err := sim.Subscribe()
	g.Expect(err).NotTo(HaveOccurred())
	sim.Start()

	sim.Close()
	g.Eventually(frames, time.Second).Should(BeClosed())

	_, _, err = sim.Subscribe()
	g.Expect(err).To(Equal(application.ErrClosed))
}

func TestPauseAndStep(t *testing.T) {
	sim := newSimulator(t)

	assert.Equal(t, uint64(3), sim.Step(3))
	assert.Equal(t, uint64(3), sim.Step(0))
	assert.Equal(t, uint64(3), sim.Pause())
	assert.True(t, sim.IsPaused())
	assert.True(t, sim.Snapshot().Paused)
	sim.Unpause()
	assert.False(t, sim.IsPaused())
}

func TestClosedSimulatorStaysDown(t *testing.T) {
	g := NewWithT(t)
	sim := newSimulator(t)
	g.Expect(sim.Start()).To(Succeed())
	sim.Close()

	_, _, err := sim.SetPacketCount(7)
	g.Expect(errors.Cause(err)).To(Equal(application.ErrClosed))
	_, err = sim.ToggleDpdk()
	g.Expect(errors.Cause(err)).To(Equal(application.ErrClosed))
	_, err = sim.SelectNode("upf")
	g.Expect(errors.Cause(err)).To(Equal(application.ErrClosed))
	g.Expect(sim.Start()).To(Equal(application.ErrClosed))

	g.Expect(sim.IsRunning()).To(BeFalse())
	g.Expect(sim.LiveMarkers()).To(BeEmpty())
	g.Expect(sim.GetParameters().PacketCount).To(Equal(3))
	stopped := sim.Snapshot().Tick
	g.Consistently(func() uint64 { return sim.Snapshot().Tick }, 30*time.Millisecond, 5*time.Millisecond).Should(Equal(stopped))
}
