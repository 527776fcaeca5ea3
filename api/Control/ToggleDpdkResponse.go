package Control

import (
	"github.com/David-Antunes/upf-flow/api"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
)

type ToggleDpdkResponse struct {
	Parameters api.Parameters  `json:"parameters"`
	Speed      float64         `json:"speed"`
	Error      apiErrors.Error `json:"err"`
}
