package daemon

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/David-Antunes/upf-flow/internal/application"
	"github.com/David-Antunes/upf-flow/internal/render"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"
)

var daemonLog = logrus.WithField("component", "daemon")

type Options struct {
	Metrics bool
}

// Server is the widget's mount point: the page, the SVG canvas, live
// frames and the JSON control API.
type Server struct {
	httpServer *http.Server
	socket     net.Listener
	app        *application.Simulator
	renderer   *render.Renderer
	handler    http.Handler
}

func CreateDaemon(app *application.Simulator, renderer *render.Renderer, opts Options) *Server {
	s := &Server{
		app:      app,
		renderer: renderer,
	}

	m := http.NewServeMux()
	m.HandleFunc("GET /ping", s.ping)

	m.HandleFunc("GET /{$}", s.page)
	m.HandleFunc("GET /scene.svg", s.sceneSVG)
	m.Handle("GET /frames", websocket.Handler(s.frames))
	m.HandleFunc("POST /form/parameters", s.formParameters)
	m.HandleFunc("GET /form/select", s.formSelect)
	m.HandleFunc("POST /form/pause", s.formPause)
	m.HandleFunc("POST /form/unpause", s.formUnpause)

	m.HandleFunc("GET /snapshot", s.snapshot)
	m.HandleFunc("GET /inspectParameters", s.inspectParameters)
	m.HandleFunc("GET /inspectTopology", s.inspectTopology)
	m.HandleFunc("GET /inspectNode", s.inspectNode)

	m.HandleFunc("POST /toggleDpdk", s.toggleDpdk)
	m.HandleFunc("POST /toggleSriov", s.toggleSriov)
	m.HandleFunc("POST /setParameters", s.setParameters)
	m.HandleFunc("POST /setVfCount", s.setVfCount)
	m.HandleFunc("POST /setPacketCount", s.setPacketCount)
	m.HandleFunc("POST /setTrafficLoad", s.setTrafficLoad)
	m.HandleFunc("POST /selectNode", s.selectNode)

	m.HandleFunc("POST /pause", s.pause)
	m.HandleFunc("POST /unpause", s.unpause)
	m.HandleFunc("POST /step", s.step)

	if opts.Metrics {
		m.Handle("GET /metrics", promhttp.HandlerFor(app.GetMetrics().Registry(), promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}))
	}

	s.handler = m
	s.httpServer = &http.Server{
		Handler:           m,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Listen(ipAddr string) error {
	socket, err := net.Listen("tcp", ipAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", ipAddr)
	}
	s.socket = socket
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.socket == nil {
		return nil
	}
	return s.socket.Addr()
}

// Serve blocks until the server is shut down.
func (s *Server) Serve() error {
	if s.socket == nil {
		return errors.New("daemon is not listening")
	}
	daemonLog.WithField("addr", s.socket.Addr().String()).Info("serving")
	if err := s.httpServer.Serve(s.socket); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
