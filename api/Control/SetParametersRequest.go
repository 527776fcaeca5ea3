package Control

// SetParametersRequest only changes the fields that are present.
type SetParametersRequest struct {
	DpdkEnabled  *bool `json:"dpdkEnabled,omitempty"`
	SriovEnabled *bool `json:"sriovEnabled,omitempty"`
	VfCount      *int  `json:"vfCount,omitempty"`
	PacketCount  *int  `json:"packetCount,omitempty"`
	TrafficLoad  *int  `json:"trafficLoad,omitempty"`
}
