package Control

type SetTrafficLoadRequest struct {
	Value int `json:"value"`
}
