package Inspect

import (
	"github.com/David-Antunes/upf-flow/api"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
)

type InspectNodeResponse struct {
	Node        api.Node        `json:"node"`
	Description string          `json:"description"`
	Incoming    []api.Link      `json:"incoming"`
	Outgoing    []api.Link      `json:"outgoing"`
	Error       apiErrors.Error `json:"err"`
}
