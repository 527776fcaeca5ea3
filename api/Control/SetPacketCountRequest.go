package Control

type SetPacketCountRequest struct {
	Value int `json:"value"`
}
