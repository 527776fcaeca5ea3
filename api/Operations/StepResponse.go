package Operations

import apiErrors "github.com/David-Antunes/upf-flow/api/Errors"

type StepResponse struct {
	Tick    uint64          `json:"tick"`
	Clamped bool            `json:"clamped"`
	Error   apiErrors.Error `json:"err"`
}
