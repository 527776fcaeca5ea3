package network

import (
	"github.com/David-Antunes/upf-flow/internal"
	"github.com/David-Antunes/upf-flow/internal/topology"
)

type Marker struct {
	Link     topology.LinkId
	Index    int
	Position float64
}

// MarkerSet holds the markers travelling one active link.
type MarkerSet struct {
	link      topology.LinkId
	speed     float64
	positions []float64
}

func CreateMarkerSet(link topology.LinkId, speed float64, count int) *MarkerSet {
	if count < 0 {
		count = 0
	}
	return &MarkerSet{
		link:      link,
		speed:     speed,
		positions: make([]float64, count),
	}
}

func (set *MarkerSet) SetSpeed(speed float64) *MarkerSet {
	set.speed = speed
	return set
}

func (set *MarkerSet) Len() int {
	return len(set.positions)
}

// Resize keeps the positions of surviving markers. New markers start at 0.
func (set *MarkerSet) Resize(count int) {
	if count < 0 {
		count = 0
	}
	if count <= len(set.positions) {
		set.positions = set.positions[:count:count]
		return
	}
	set.positions = append(set.positions, make([]float64, count-len(set.positions))...)
}

// Advance moves marker i by speed*(1+0.1*i) and wraps it to 0 once it
// reaches the end of the link, so a position is always in [0,1).
func (set *MarkerSet) Advance() {
	for i := range set.positions {
		next := set.positions[i] + set.speed*(1+float64(i)*internal.MarkerStagger)
		if next >= 1 {
			next = 0
		}
		set.positions[i] = next
	}
}

func (set *MarkerSet) Markers() []Marker {
	markers := make([]Marker, 0, len(set.positions))
	for i, pos := range set.positions {
		markers = append(markers, Marker{Link: set.link, Index: i, Position: pos})
	}
	return markers
}
