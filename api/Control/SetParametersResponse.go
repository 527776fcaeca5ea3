package Control

import (
	"github.com/David-Antunes/upf-flow/api"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
)

type SetParametersResponse struct {
	Parameters api.Parameters  `json:"parameters"`
	Clamped    bool            `json:"clamped"`
	Speed      float64         `json:"speed"`
	Error      apiErrors.Error `json:"err"`
}
