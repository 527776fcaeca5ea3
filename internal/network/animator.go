package network

import (
	"context"
	"sync"
	"time"

	"github.com/David-Antunes/upf-flow/internal/topology"
	"golang.org/x/time/rate"
)

// Animator advances the markers of every active link from a single paced
// loop. Marker sets live only while their link is active.
type Animator struct {
	sync.Mutex
	running bool
	paused  bool
	closed  bool
	limiter *rate.Limiter
	sets    map[topology.LinkId]*MarkerSet
	order   []topology.LinkId
	ticks   uint64
	onTick  func(ticks uint64)
	cancel  context.CancelFunc
	done    chan struct{}
}

func CreateAnimator(interval time.Duration, onTick func(ticks uint64)) *Animator {
	return &Animator{
		running: false,
		paused:  false,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		sets:    make(map[topology.LinkId]*MarkerSet),
		order:   make([]topology.LinkId, 0),
		onTick:  onTick,
	}
}

func (a *Animator) Start() {
	a.Lock()
	defer a.Unlock()
	if !a.running && !a.closed {
		ctx, cancel := context.WithCancel(context.Background())
		a.running = true
		a.cancel = cancel
		a.done = make(chan struct{})
		go a.run(ctx, a.done)
	}
}

// Stop cancels the loop and returns once its goroutine has exited.
func (a *Animator) Stop() {
	a.Lock()
	if !a.running {
		a.Unlock()
		return
	}
	a.running = false
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.Unlock()

	cancel()
	<-done
}

func (a *Animator) Pause() {
	a.Lock()
	defer a.Unlock()
	a.paused = true
}

func (a *Animator) Unpause() {
	a.Lock()
	defer a.Unlock()
	a.paused = false
}

// Close stops the loop and discards every marker. A closed animator
// cannot be started again and ignores Reconcile.
func (a *Animator) Close() {
	a.Lock()
	a.closed = true
	a.Unlock()
	a.Stop()
	a.Lock()
	defer a.Unlock()
	a.sets = make(map[topology.LinkId]*MarkerSet)
	a.order = a.order[:0]
}

func (a *Animator) IsRunning() bool {
	a.Lock()
	defer a.Unlock()
	return a.running
}

func (a *Animator) IsClosed() bool {
	a.Lock()
	defer a.Unlock()
	return a.closed
}

func (a *Animator) IsPaused() bool {
	a.Lock()
	defer a.Unlock()
	return a.paused
}

func (a *Animator) GetTicks() uint64 {
	a.Lock()
	defer a.Unlock()
	return a.ticks
}

func (a *Animator) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return
		}
		if a.IsPaused() {
			continue
		}
		ticks := a.Step()
		if a.onTick != nil {
			a.onTick(ticks)
		}
	}
}

// Step performs one tick over every marker set and returns the tick count.
func (a *Animator) Step() uint64 {
	a.Lock()
	defer a.Unlock()
	for _, id := range a.order {
		a.sets[id].Advance()
	}
	a.ticks++
	return a.ticks
}

// Reconcile aligns the marker sets with freshly derived links: inactive
// links lose their markers, active ones get exactly MarkerCount markers
// and pick up the new speed.
func (a *Animator) Reconcile(links []topology.Link) {
	a.Lock()
	defer a.Unlock()
	if a.closed {
		return
	}

	order := make([]topology.LinkId, 0, len(links))
	keep := make(map[topology.LinkId]struct{}, len(links))
	for _, link := range links {
		if !link.Active {
			continue
		}
		set, ok := a.sets[link.Id]
		if !ok {
			set = CreateMarkerSet(link.Id, link.Speed, link.MarkerCount)
			a.sets[link.Id] = set
		} else {
			set.SetSpeed(link.Speed).Resize(link.MarkerCount)
		}
		keep[link.Id] = struct{}{}
		order = append(order, link.Id)
	}
	for id := range a.sets {
		if _, ok := keep[id]; !ok {
			delete(a.sets, id)
		}
	}
	a.order = order
}

func (a *Animator) Markers() []Marker {
	a.Lock()
	defer a.Unlock()
	return a.markersLocked()
}

func (a *Animator) markersLocked() []Marker {
	markers := make([]Marker, 0)
	for _, id := range a.order {
		markers = append(markers, a.sets[id].Markers()...)
	}
	return markers
}

// Frame is the animation state of one tick.
type Frame struct {
	Ticks   uint64
	Paused  bool
	Markers []Marker
}

// Frame reads ticks, pause state and markers under one lock so they
// describe the same tick.
func (a *Animator) Frame() Frame {
	a.Lock()
	defer a.Unlock()
	return Frame{
		Ticks:   a.ticks,
		Paused:  a.paused,
		Markers: a.markersLocked(),
	}
}

// LiveMarkers reports the number of markers per active link.
func (a *Animator) LiveMarkers() map[topology.LinkId]int {
	a.Lock()
	defer a.Unlock()
	live := make(map[topology.LinkId]int, len(a.sets))
	for id, set := range a.sets {
		live[id] = set.Len()
	}
	return live
}
