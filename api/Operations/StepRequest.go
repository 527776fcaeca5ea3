package Operations

type StepRequest struct {
	Ticks int `json:"ticks"`
}
