package daemon

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

func ParseRequest(r *http.Request, apiRequestStruct any) error {
	d := json.NewDecoder(r.Body)
	if err := d.Decode(apiRequestStruct); err != nil {
		return errors.Wrap(err, "decode request")
	}
	return nil
}

func (s *Server) SendResponse(w http.ResponseWriter, apiResponseStruct any) {
	if err := s.renderer.JSON(w, http.StatusOK, apiResponseStruct); err != nil {
		daemonLog.WithError(err).Error("error marshalling response")
	}
}

func (s *Server) SendError(w http.ResponseWriter, apiResponseStruct any) {
	if err := s.renderer.JSON(w, http.StatusBadRequest, apiResponseStruct); err != nil {
		daemonLog.WithError(err).Error("error marshalling response")
	}
}

// formInt reads an integer form field. A missing or malformed value is
// reported as absent so the current value is kept.
func formInt(r *http.Request, name string) *int {
	raw := r.FormValue(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		daemonLog.WithField("field", name).WithError(err).Warn("ignoring malformed form value")
		return nil
	}
	return &v
}

func formBool(r *http.Request, name string) *bool {
	v := r.FormValue(name) == "on"
	return &v
}
