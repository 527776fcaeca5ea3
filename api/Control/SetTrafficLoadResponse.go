package Control

import apiErrors "github.com/David-Antunes/upf-flow/api/Errors"

type SetTrafficLoadResponse struct {
	Value   int             `json:"value"`
	Clamped bool            `json:"clamped"`
	Error   apiErrors.Error `json:"err"`
}
