package application

import (
	"github.com/David-Antunes/upf-flow/api"
	"github.com/David-Antunes/upf-flow/internal/network"
	"github.com/David-Antunes/upf-flow/internal/simulation"
	"github.com/David-Antunes/upf-flow/internal/topology"
)

func ConvertToAPIParameters(p simulation.Parameters) api.Parameters {
	return api.Parameters{
		DpdkEnabled:  p.DpdkEnabled,
		SriovEnabled: p.SriovEnabled,
		VfCount:      p.VfCount,
		PacketCount:  p.PacketCount,
		TrafficLoad:  p.TrafficLoad,
	}
}

func convertToAPIPoint(p topology.Point) api.Point {
	return api.Point{X: p.X, Y: p.Y}
}

func convertToAPINode(n topology.Node, selected topology.NodeId) api.Node {
	return api.Node{
		Id:       string(n.Id),
		Label:    n.Label,
		Position: convertToAPIPoint(n.Position),
		Selected: n.Id == selected,
	}
}

func convertToAPILink(l topology.Link) api.Link {
	return api.Link{
		Id:          int(l.Id),
		From:        string(l.From),
		To:          string(l.To),
		Start:       convertToAPIPoint(l.Start),
		End:         convertToAPIPoint(l.End),
		Color:       l.Color,
		Active:      l.Active,
		Speed:       l.Speed,
		MarkerCount: l.MarkerCount,
	}
}

func convertToAPILinks(links []topology.Link) []api.Link {
	out := make([]api.Link, 0, len(links))
	for _, l := range links {
		out = append(out, convertToAPILink(l))
	}
	return out
}

func convertToAPIMarkers(markers []network.Marker, links []topology.Link) []api.Marker {
	byId := make(map[topology.LinkId]topology.Link, len(links))
	for _, l := range links {
		byId[l.Id] = l
	}
	out := make([]api.Marker, 0, len(markers))
	for _, m := range markers {
		l, ok := byId[m.Link]
		if !ok {
			continue
		}
		out = append(out, api.Marker{
			Link:     int(m.Link),
			Index:    m.Index,
			Position: m.Position,
			Point:    convertToAPIPoint(l.PointAt(m.Position)),
			Color:    l.Color,
		})
	}
	return out
}
