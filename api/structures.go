package api

import "time"

type Parameters struct {
	DpdkEnabled  bool `json:"dpdkEnabled"`
	SriovEnabled bool `json:"sriovEnabled"`
	VfCount      int  `json:"vfCount"`
	PacketCount  int  `json:"packetCount"`
	TrafficLoad  int  `json:"trafficLoad"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Node struct {
	Id       string `json:"id"`
	Label    string `json:"label"`
	Position Point  `json:"position"`
	Selected bool   `json:"selected"`
}

type Link struct {
	Id          int     `json:"id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Start       Point   `json:"start"`
	End         Point   `json:"end"`
	Color       string  `json:"color"`
	Active      bool    `json:"active"`
	Speed       float64 `json:"speed"`
	MarkerCount int     `json:"markerCount"`
}

type Marker struct {
	Link     int     `json:"link"`
	Index    int     `json:"index"`
	Position float64 `json:"position"`
	Point    Point   `json:"point"`
	Color    string  `json:"color"`
}

type Snapshot struct {
	Timestamp     time.Time  `json:"timestamp"`
	Tick          uint64     `json:"tick"`
	Paused        bool       `json:"paused"`
	Parameters    Parameters `json:"parameters"`
	Speed         float64    `json:"speed"`
	Selected      string     `json:"selected"`
	Description   string     `json:"description"`
	Configuration string     `json:"configuration"`
	Nodes         []Node     `json:"nodes"`
	Links         []Link     `json:"links"`
	Markers       []Marker   `json:"markers"`
}
