package Control

type SetVfCountRequest struct {
	Value int `json:"value"`
}
