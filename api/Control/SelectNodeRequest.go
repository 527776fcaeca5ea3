package Control

type SelectNodeRequest struct {
	Node string `json:"node"`
}
