package render

import (
	"github.com/David-Antunes/upf-flow/api"
	"github.com/David-Antunes/upf-flow/internal"
)

const (
	Title        = "5G UPF with SR-IOV and DPDK Network Flow Simulator"
	Instructions = "Click on components to see active data flows. Adjust controls to simulate different network configurations."

	selectedFill   = "#4CAF50"
	unselectedFill = "#9E9E9E"
	vfFill         = "#4CAF50"
)

var glyphs = map[string]string{
	"gNodeB":      "((•))",
	"nic":         "NIC",
	"sriov":       "VF",
	"kernel_dpdk": "K/D",
	"upf":         "UPF",
	"dn":          "DN",
}

type SceneLink struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Opacity        float64
}

type SceneMarker struct {
	X, Y  float64
	Color string
}

type SceneNode struct {
	Id    string
	Label string
	Glyph string
	X, Y  float64
	Fill  string
}

type SceneRect struct {
	X, Y float64
}

type Bounds struct {
	MinVfCount, MaxVfCount         int
	MinPacketCount, MaxPacketCount int
	MinTrafficLoad, MaxTrafficLoad int
}

// Scene is everything the templates draw for one frame.
type Scene struct {
	Title         string
	Instructions  string
	Width         int
	Height        int
	Tick          uint64
	Paused        bool
	Parameters    api.Parameters
	Bounds        Bounds
	Links         []SceneLink
	Markers       []SceneMarker
	Nodes         []SceneNode
	VFs           []SceneRect
	Description   string
	Configuration string
}

func BuildScene(snap api.Snapshot) Scene {
	scene := Scene{
		Title:        Title,
		Instructions: Instructions,
		Width:        internal.CanvasWidth,
		Height:       internal.CanvasHeight,
		Tick:         snap.Tick,
		Paused:       snap.Paused,
		Parameters:   snap.Parameters,
		Bounds: Bounds{
			MinVfCount:     internal.MinVfCount,
			MaxVfCount:     internal.MaxVfCount,
			MinPacketCount: internal.MinPacketCount,
			MaxPacketCount: internal.MaxPacketCount,
			MinTrafficLoad: internal.MinTrafficLoad,
			MaxTrafficLoad: internal.MaxTrafficLoad,
		},
		Description:   snap.Description,
		Configuration: snap.Configuration,
	}

	for _, l := range snap.Links {
		opacity := 0.3
		if l.Active {
			opacity = 1
		}
		scene.Links = append(scene.Links, SceneLink{
			X1: l.Start.X, Y1: l.Start.Y,
			X2: l.End.X, Y2: l.End.Y,
			Color:   l.Color,
			Opacity: opacity,
		})
	}

	for _, m := range snap.Markers {
		scene.Markers = append(scene.Markers, SceneMarker{X: m.Point.X, Y: m.Point.Y, Color: m.Color})
	}

	for _, n := range snap.Nodes {
		fill := unselectedFill
		if n.Selected {
			fill = selectedFill
		}
		scene.Nodes = append(scene.Nodes, SceneNode{
			Id:    n.Id,
			Label: n.Label,
			Glyph: glyphs[n.Id],
			X:     n.Position.X,
			Y:     n.Position.Y,
			Fill:  fill,
		})
	}

	if snap.Parameters.SriovEnabled {
		for i := 0; i < snap.Parameters.VfCount; i++ {
			scene.VFs = append(scene.VFs, SceneRect{X: 255, Y: float64(80 + i*15)})
		}
	}
	return scene
}
