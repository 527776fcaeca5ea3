package daemon

import (
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/David-Antunes/upf-flow/internal/application"
)

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.Page(w, http.StatusOK, s.app.Snapshot()); err != nil {
		daemonLog.WithField("op", "page").WithError(err).Error("render failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) sceneSVG(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.SVG(w, http.StatusOK, s.app.Snapshot()); err != nil {
		daemonLog.WithField("op", "sceneSVG").WithError(err).Error("render failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// frames pushes the canvas body after every tick until the client goes
// away or the simulator closes.
func (s *Server) frames(ws *websocket.Conn) {
	defer ws.Close()

	frames, cancel, err := s.app.Subscribe()
	if err != nil {
		daemonLog.WithField("op", "frames").WithError(err).Warn("subscribe failed")
		return
	}
	defer cancel()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard string
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				return
			}
		}
	}()

	log := daemonLog.WithField("op", "frames").WithField("remote", ws.Request().RemoteAddr)
	log.Info("client attached")
	for {
		select {
		case <-gone:
			log.Info("client detached")
			return
		case snap, ok := <-frames:
			if !ok {
				return
			}
			frame, err := s.renderer.Frame(snap)
			if err != nil {
				log.WithError(err).Error("render failed")
				return
			}
			if err := websocket.Message.Send(ws, frame); err != nil {
				log.WithError(err).Info("client detached")
				return
			}
		}
	}
}

func (s *Server) formParameters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		daemonLog.WithField("op", "formParameters").WithError(err).Warn("bad form")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, _, err := s.app.SetParameters(application.ParameterUpdate{
		DpdkEnabled:  formBool(r, "dpdk"),
		SriovEnabled: formBool(r, "sriov"),
		VfCount:      formInt(r, "vfCount"),
		PacketCount:  formInt(r, "packetCount"),
		TrafficLoad:  formInt(r, "trafficLoad"),
	})
	if err != nil {
		daemonLog.WithField("op", "formParameters").WithError(err).Warn("rejected")
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) formSelect(w http.ResponseWriter, r *http.Request) {
	if _, err := s.app.SelectNode(r.URL.Query().Get("node")); err != nil {
		daemonLog.WithField("op", "formSelect").WithError(err).Warn("rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) formPause(w http.ResponseWriter, r *http.Request) {
	s.app.Pause()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) formUnpause(w http.ResponseWriter, r *http.Request) {
	s.app.Unpause()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
