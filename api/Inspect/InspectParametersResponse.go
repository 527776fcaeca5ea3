package Inspect

import (
	"github.com/David-Antunes/upf-flow/api"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
)

type InspectParametersResponse struct {
	Parameters    api.Parameters  `json:"parameters"`
	Speed         float64         `json:"speed"`
	Configuration string          `json:"configuration"`
	Error         apiErrors.Error `json:"err"`
}
