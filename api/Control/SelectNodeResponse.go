package Control

import apiErrors "github.com/David-Antunes/upf-flow/api/Errors"

type SelectNodeResponse struct {
	Node        string          `json:"node"`
	Description string          `json:"description"`
	Error       apiErrors.Error `json:"err"`
}
