package topology

import (
	"fmt"

	"github.com/David-Antunes/upf-flow/internal/simulation"
)

type NodeId string

const (
	NodeNone    NodeId = ""
	GNodeB      NodeId = "gNodeB"
	Nic         NodeId = "nic"
	Sriov       NodeId = "sriov"
	KernelDpdk  NodeId = "kernel_dpdk"
	Upf         NodeId = "upf"
	DataNetwork NodeId = "dn"
)

const DefaultPrompt = "Hover over components for more information."

type Point struct {
	X float64
	Y float64
}

// Lerp returns the point at fraction t of the segment from a to b.
func Lerp(a Point, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Node is a clickable element of the data path. Position is the top left
// corner of its 50x50 glyph.
type Node struct {
	Id       NodeId
	Position Point
	Label    string
}

var nodes = [...]Node{
	{Id: GNodeB, Position: Point{50, 100}, Label: "gNodeB"},
	{Id: Nic, Position: Point{150, 100}, Label: "NIC"},
	{Id: Sriov, Position: Point{250, 50}, Label: "SR-IOV"},
	{Id: KernelDpdk, Position: Point{350, 100}, Label: "Kernel/DPDK"},
	{Id: Upf, Position: Point{450, 100}, Label: "UPF"},
	{Id: DataNetwork, Position: Point{550, 100}, Label: "Data Network"},
}

// Nodes returns the node catalogue in drawing order.
func Nodes() []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes[:])
	return out
}

func GetNode(id NodeId) (Node, bool) {
	for _, n := range nodes {
		if n.Id == id {
			return n, true
		}
	}
	return Node{}, false
}

// ParseNodeId accepts the wire identifiers of the six nodes. The empty
// string is not a node.
func ParseNodeId(id string) (NodeId, bool) {
	n, ok := GetNode(NodeId(id))
	return n.Id, ok
}

// Description is the status line shown when the node is selected.
func (id NodeId) Description(p simulation.Parameters) string {
	switch id {
	case GNodeB:
		return "gNodeB: 5G base station sending user plane data."
	case Nic:
		return "NIC: Physical network interface handling incoming traffic."
	case Sriov:
		return fmt.Sprintf("SR-IOV: Creating %d virtual functions for direct hardware access.", p.VfCount)
	case KernelDpdk:
		if p.DpdkEnabled {
			return "Kernel/DPDK: DPDK bypassing kernel for fast packet processing."
		}
		return "Kernel/DPDK: Standard kernel network stack processing."
	case Upf:
		return "UPF: User Plane Function processing and routing packets in the 5G core."
	case DataNetwork:
		return "Data Network: Final destination for user traffic."
	case NodeNone:
		return DefaultPrompt
	default:
		panic(fmt.Sprintf("topology: unknown node %q", string(id)))
	}
}
