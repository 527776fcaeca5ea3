package topology

import "github.com/David-Antunes/upf-flow/internal/simulation"

type LinkId int

const (
	RadioLink LinkId = iota + 1
	SriovIngress
	SriovEgress
	KernelBypass
	FastPath
	DataNetworkLink
)

type Link struct {
	Id          LinkId
	From        NodeId
	To          NodeId
	Start       Point
	End         Point
	Color       string
	Active      bool
	Speed       float64
	MarkerCount int
}

// PointAt maps a marker position in [0,1) to canvas coordinates.
func (link *Link) PointAt(position float64) Point {
	return Lerp(link.Start, link.End, position)
}

type linkTemplate struct {
	id     LinkId
	from   NodeId
	to     NodeId
	start  Point
	end    Point
	color  string
	active func(p simulation.Parameters) bool
	speed  func(p simulation.Parameters, speed float64) float64
}

func always(simulation.Parameters) bool { return true }

func base(_ simulation.Parameters, speed float64) float64 { return speed }

var table = [...]linkTemplate{
	{
		id: RadioLink, from: GNodeB, to: Nic,
		start: Point{75, 100}, end: Point{150, 100}, color: "#2196F3",
		active: always, speed: base,
	},
	{
		id: SriovIngress, from: Nic, to: Sriov,
		start: Point{175, 100}, end: Point{250, 75}, color: "#4CAF50",
		active: func(p simulation.Parameters) bool { return p.SriovEnabled },
		speed:  base,
	},
	{
		id: SriovEgress, from: Sriov, to: KernelDpdk,
		start: Point{275, 75}, end: Point{350, 100}, color: "#9C27B0",
		active: func(p simulation.Parameters) bool { return p.SriovEnabled && p.DpdkEnabled },
		speed:  base,
	},
	{
		id: KernelBypass, from: Nic, to: KernelDpdk,
		start: Point{175, 100}, end: Point{350, 100}, color: "#FF9800",
		active: func(p simulation.Parameters) bool { return !p.SriovEnabled },
		speed:  func(_ simulation.Parameters, speed float64) float64 { return speed * 0.5 },
	},
	{
		id: FastPath, from: KernelDpdk, to: Upf,
		start: Point{375, 100}, end: Point{450, 100}, color: "#E91E63",
		active: always,
		speed: func(p simulation.Parameters, speed float64) float64 {
			if p.DpdkEnabled {
				return speed * 1.5
			}
			return speed
		},
	},
	{
		id: DataNetworkLink, from: Upf, to: DataNetwork,
		start: Point{475, 100}, end: Point{550, 100}, color: "#795548",
		active: always, speed: base,
	},
}

// Links derives the six links of the data path. The order is the drawing
// order; later links are drawn on top.
func Links(p simulation.Parameters, speed float64) []Link {
	links := make([]Link, 0, len(table))
	for _, t := range table {
		links = append(links, Link{
			Id:          t.id,
			From:        t.from,
			To:          t.to,
			Start:       t.start,
			End:         t.end,
			Color:       t.color,
			Active:      t.active(p),
			Speed:       t.speed(p, speed),
			MarkerCount: p.PacketCount,
		})
	}
	return links
}

// ActiveLinks keeps the links that currently carry markers.
func ActiveLinks(links []Link) []Link {
	active := make([]Link, 0, len(links))
	for _, l := range links {
		if l.Active {
			active = append(active, l)
		}
	}
	return active
}
