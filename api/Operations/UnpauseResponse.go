package Operations

import apiErrors "github.com/David-Antunes/upf-flow/api/Errors"

type UnpauseResponse struct {
	Paused bool            `json:"paused"`
	Tick   uint64          `json:"tick"`
	Error  apiErrors.Error `json:"err"`
}
