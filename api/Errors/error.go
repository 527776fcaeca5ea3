package api

type Error struct {
	ErrCode int    `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
}

const (
	InvalidRequestFields = iota + 1
	UnknownNode
	Closed
)
