package Control

import apiErrors "github.com/David-Antunes/upf-flow/api/Errors"

type SetPacketCountResponse struct {
	Value   int             `json:"value"`
	Clamped bool            `json:"clamped"`
	Error   apiErrors.Error `json:"err"`
}
