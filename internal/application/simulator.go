package application

import (
	"sync"
	"time"

	"github.com/David-Antunes/upf-flow/api"
	"github.com/David-Antunes/upf-flow/internal"
	"github.com/David-Antunes/upf-flow/internal/network"
	"github.com/David-Antunes/upf-flow/internal/simulation"
	"github.com/David-Antunes/upf-flow/internal/topology"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrClosed      = errors.New("simulator is closed")
)

var simLog = logrus.WithField("component", "simulator")

type Config struct {
	Parameters   simulation.Parameters
	BaseSpeed    float64
	TickInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Parameters:   simulation.DefaultParameters(),
		BaseSpeed:    internal.BaseSpeed,
		TickInterval: internal.TickInterval,
	}
}

// ParameterUpdate changes only the non nil fields.
type ParameterUpdate struct {
	DpdkEnabled  *bool
	SriovEnabled *bool
	VfCount      *int
	PacketCount  *int
	TrafficLoad  *int
}

// Simulator owns the widget state. Every mutation ends with recomputeLocked,
// which re-derives speed and links and reconciles the animator.
type Simulator struct {
	sync.Mutex
	params      simulation.Parameters
	selected    topology.NodeId
	baseSpeed   float64
	speed       float64
	links       []topology.Link
	animator    *network.Animator
	metrics     *Metrics
	subscribers map[int]chan api.Snapshot
	nextSub     int
	closed      bool
}

func NewSimulator(cfg Config) *Simulator {
	if cfg.BaseSpeed <= 0 {
		cfg.BaseSpeed = internal.BaseSpeed
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = internal.TickInterval
	}
	params, clamped := cfg.Parameters.Clamp()
	if clamped {
		simLog.WithFields(parameterFields(cfg.Parameters)).Warn("initial parameters out of range, clamped")
	}

	sim := &Simulator{
		params:      params,
		selected:    topology.NodeNone,
		baseSpeed:   cfg.BaseSpeed,
		metrics:     NewMetrics(),
		subscribers: make(map[int]chan api.Snapshot),
	}
	sim.animator = network.CreateAnimator(cfg.TickInterval, sim.onTick)

	sim.Lock()
	sim.recomputeLocked()
	sim.Unlock()
	return sim
}

func parameterFields(p simulation.Parameters) logrus.Fields {
	return logrus.Fields{
		"dpdk":    p.DpdkEnabled,
		"sriov":   p.SriovEnabled,
		"vf":      p.VfCount,
		"packets": p.PacketCount,
		"load":    p.TrafficLoad,
	}
}

func (sim *Simulator) recomputeLocked() {
	sim.speed = simulation.SpeedFrom(sim.baseSpeed, sim.params)
	sim.links = topology.Links(sim.params, sim.speed)
	sim.animator.Reconcile(sim.links)
	sim.metrics.observeTopology(sim.speed, sim.links, sim.animator.LiveMarkers())
}

// Start launches the animation loop. A closed simulator cannot be restarted.
func (sim *Simulator) Start() error {
	sim.Lock()
	defer sim.Unlock()
	if sim.closed {
		return ErrClosed
	}
	sim.animator.Start()
	simLog.Info("animation started")
	return nil
}

// Close stops the animation loop and closes every subscription.
func (sim *Simulator) Close() {
	sim.Lock()
	if sim.closed {
		sim.Unlock()
		return
	}
	sim.closed = true
	sim.Unlock()

	// onTick takes the simulator lock, so the loop must be stopped without it.
	sim.animator.Close()

	sim.Lock()
	defer sim.Unlock()
	for id, ch := range sim.subscribers {
		close(ch)
		delete(sim.subscribers, id)
	}
	sim.metrics.subscribers.Set(0)
	simLog.Info("simulator closed")
}

func (sim *Simulator) GetMetrics() *Metrics {
	return sim.metrics
}

func (sim *Simulator) GetParameters() simulation.Parameters {
	sim.Lock()
	defer sim.Unlock()
	return sim.params
}

func (sim *Simulator) GetSelected() topology.NodeId {
	sim.Lock()
	defer sim.Unlock()
	return sim.selected
}

func (sim *Simulator) GetSpeed() float64 {
	sim.Lock()
	defer sim.Unlock()
	return sim.speed
}

func (sim *Simulator) GetLinks() []topology.Link {
	sim.Lock()
	defer sim.Unlock()
	links := make([]topology.Link, len(sim.links))
	copy(links, sim.links)
	return links
}

func (sim *Simulator) LiveMarkers() map[topology.LinkId]int {
	return sim.animator.LiveMarkers()
}

func (sim *Simulator) IsRunning() bool {
	return sim.animator.IsRunning()
}

// mutate applies fn, clamps the result and recomputes the derived state.
// It reports whether clamping changed the requested values.
func (sim *Simulator) mutate(op string, fn func(p *simulation.Parameters)) (simulation.Parameters, bool, error) {
	sim.Lock()
	defer sim.Unlock()
	if sim.closed {
		simLog.WithField("op", op).Warn("simulator closed, change dropped")
		return sim.params, false, errors.Wrap(ErrClosed, op)
	}

	requested := sim.params
	fn(&requested)
	params, clamped := requested.Clamp()
	if clamped {
		simLog.WithFields(parameterFields(requested)).WithField("op", op).Warn("value out of range, clamped")
	}
	sim.params = params
	sim.recomputeLocked()
	sim.metrics.mutations.WithLabelValues(op).Inc()
	simLog.WithFields(parameterFields(params)).WithField("op", op).Info("parameters changed")
	sim.publishLocked()
	return params, clamped, nil
}

func (sim *Simulator) ToggleDpdk() (simulation.Parameters, error) {
	p, _, err := sim.mutate("toggleDpdk", func(p *simulation.Parameters) {
		p.DpdkEnabled = !p.DpdkEnabled
	})
	return p, err
}

func (sim *Simulator) ToggleSriov() (simulation.Parameters, error) {
	p, _, err := sim.mutate("toggleSriov", func(p *simulation.Parameters) {
		p.SriovEnabled = !p.SriovEnabled
	})
	return p, err
}

func (sim *Simulator) SetDpdk(enabled bool) (simulation.Parameters, error) {
	p, _, err := sim.mutate("setDpdk", func(p *simulation.Parameters) {
		p.DpdkEnabled = enabled
	})
	return p, err
}

func (sim *Simulator) SetSriov(enabled bool) (simulation.Parameters, error) {
	p, _, err := sim.mutate("setSriov", func(p *simulation.Parameters) {
		p.SriovEnabled = enabled
	})
	return p, err
}

func (sim *Simulator) SetVfCount(count int) (int, bool, error) {
	p, clamped, err := sim.mutate("setVfCount", func(p *simulation.Parameters) {
		p.VfCount = count
	})
	return p.VfCount, clamped, err
}

func (sim *Simulator) SetPacketCount(count int) (int, bool, error) {
	p, clamped, err := sim.mutate("setPacketCount", func(p *simulation.Parameters) {
		p.PacketCount = count
	})
	return p.PacketCount, clamped, err
}

func (sim *Simulator) SetTrafficLoad(load int) (int, bool, error) {
	p, clamped, err := sim.mutate("setTrafficLoad", func(p *simulation.Parameters) {
		p.TrafficLoad = load
	})
	return p.TrafficLoad, clamped, err
}

func (sim *Simulator) SetParameters(update ParameterUpdate) (simulation.Parameters, bool, error) {
	return sim.mutate("setParameters", func(p *simulation.Parameters) {
		if update.DpdkEnabled != nil {
			p.DpdkEnabled = *update.DpdkEnabled
		}
		if update.SriovEnabled != nil {
			p.SriovEnabled = *update.SriovEnabled
		}
		if update.VfCount != nil {
			p.VfCount = *update.VfCount
		}
		if update.PacketCount != nil {
			p.PacketCount = *update.PacketCount
		}
		if update.TrafficLoad != nil {
			p.TrafficLoad = *update.TrafficLoad
		}
	})
}

// SelectNode marks id as the selected node. Selecting the current node
// again keeps it selected; there is no way back to no selection.
func (sim *Simulator) SelectNode(id string) (topology.NodeId, error) {
	node, ok := topology.ParseNodeId(id)
	if !ok {
		return topology.NodeNone, errors.Wrapf(ErrUnknownNode, "select %q", id)
	}
	sim.Lock()
	defer sim.Unlock()
	if sim.closed {
		return sim.selected, errors.Wrapf(ErrClosed, "select %q", id)
	}
	sim.selected = node
	sim.metrics.mutations.WithLabelValues("selectNode").Inc()
	simLog.WithField("node", node).Info("node selected")
	sim.publishLocked()
	return node, nil
}

func (sim *Simulator) Description() string {
	sim.Lock()
	defer sim.Unlock()
	return sim.selected.Description(sim.params)
}

func (sim *Simulator) Pause() uint64 {
	sim.animator.Pause()
	simLog.Info("animation paused")
	return sim.animator.GetTicks()
}

func (sim *Simulator) Unpause() uint64 {
	sim.animator.Unpause()
	simLog.Info("animation resumed")
	return sim.animator.GetTicks()
}

func (sim *Simulator) IsPaused() bool {
	return sim.animator.IsPaused()
}

// Step performs n ticks synchronously, independent of the loop.
func (sim *Simulator) Step(n int) uint64 {
	var ticks uint64
	if n < 1 {
		return sim.animator.GetTicks()
	}
	for i := 0; i < n; i++ {
		ticks = sim.animator.Step()
		sim.metrics.ticks.Inc()
	}
	sim.Lock()
	defer sim.Unlock()
	sim.publishLocked()
	return ticks
}

func (sim *Simulator) onTick(uint64) {
	sim.metrics.ticks.Inc()
	sim.Lock()
	defer sim.Unlock()
	if sim.closed {
		return
	}
	sim.publishLocked()
}

func (sim *Simulator) Snapshot() api.Snapshot {
	sim.Lock()
	defer sim.Unlock()
	return sim.snapshotLocked()
}

func (sim *Simulator) snapshotLocked() api.Snapshot {
	nodes := topology.Nodes()
	apiNodes := make([]api.Node, 0, len(nodes))
	for _, n := range nodes {
		apiNodes = append(apiNodes, convertToAPINode(n, sim.selected))
	}
	frame := sim.animator.Frame()
	return api.Snapshot{
		Timestamp:     time.Now().UTC(),
		Tick:          frame.Ticks,
		Paused:        frame.Paused,
		Parameters:    ConvertToAPIParameters(sim.params),
		Speed:         sim.speed,
		Selected:      string(sim.selected),
		Description:   sim.selected.Description(sim.params),
		Configuration: sim.params.Summary(),
		Nodes:         apiNodes,
		Links:         convertToAPILinks(sim.links),
		Markers:       convertToAPIMarkers(frame.Markers, sim.links),
	}
}

// Subscribe returns a channel receiving a snapshot after every tick and
// mutation. Slow readers only see the latest frame. The returned function
// cancels the subscription.
func (sim *Simulator) Subscribe() (<-chan api.Snapshot, func(), error) {
	sim.Lock()
	defer sim.Unlock()
	if sim.closed {
		return nil, nil, ErrClosed
	}
	id := sim.nextSub
	sim.nextSub++
	ch := make(chan api.Snapshot, internal.SubscriberQueueSize)
	sim.subscribers[id] = ch
	sim.metrics.subscribers.Set(float64(len(sim.subscribers)))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			sim.Lock()
			defer sim.Unlock()
			if c, ok := sim.subscribers[id]; ok {
				close(c)
				delete(sim.subscribers, id)
				sim.metrics.subscribers.Set(float64(len(sim.subscribers)))
			}
		})
	}
	return ch, cancel, nil
}

func (sim *Simulator) publishLocked() {
	if len(sim.subscribers) == 0 {
		return
	}
	snap := sim.snapshotLocked()
	for _, ch := range sim.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the stale frame
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
