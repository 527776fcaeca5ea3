package Inspect

import (
	"github.com/David-Antunes/upf-flow/api"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
)

type InspectTopologyResponse struct {
	Nodes []api.Node      `json:"nodes"`
	Links []api.Link      `json:"links"`
	Error apiErrors.Error `json:"err"`
}
