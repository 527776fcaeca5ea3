package daemon

import (
	"net/http"

	"github.com/David-Antunes/upf-flow/api"
	controlApi "github.com/David-Antunes/upf-flow/api/Control"
	apiErrors "github.com/David-Antunes/upf-flow/api/Errors"
	inspectApi "github.com/David-Antunes/upf-flow/api/Inspect"
	opApi "github.com/David-Antunes/upf-flow/api/Operations"
	"github.com/David-Antunes/upf-flow/internal"
	"github.com/David-Antunes/upf-flow/internal/application"
	"github.com/David-Antunes/upf-flow/internal/topology"
	"github.com/pkg/errors"
)

func invalidRequest(err error) apiErrors.Error {
	return apiErrors.Error{
		ErrCode: apiErrors.InvalidRequestFields,
		ErrMsg:  err.Error(),
	}
}

// appError maps simulator errors onto API error codes.
func appError(err error) apiErrors.Error {
	code := apiErrors.InvalidRequestFields
	switch errors.Cause(err) {
	case application.ErrClosed:
		code = apiErrors.Closed
	case application.ErrUnknownNode:
		code = apiErrors.UnknownNode
	}
	return apiErrors.Error{
		ErrCode: code,
		ErrMsg:  err.Error(),
	}
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	s.SendResponse(w, s.app.Snapshot())
}

func (s *Server) inspectParameters(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	s.SendResponse(w, &inspectApi.InspectParametersResponse{
		Parameters:    snap.Parameters,
		Speed:         snap.Speed,
		Configuration: snap.Configuration,
		Error:         apiErrors.Error{},
	})
}

func (s *Server) inspectTopology(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	s.SendResponse(w, &inspectApi.InspectTopologyResponse{
		Nodes: snap.Nodes,
		Links: snap.Links,
		Error: apiErrors.Error{},
	})
}

func (s *Server) inspectNode(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	nodeId, ok := topology.ParseNodeId(id)
	if !ok {
		daemonLog.WithField("op", "inspectNode").WithField("node", id).Warn("unknown node")
		s.SendError(w, &inspectApi.InspectNodeResponse{
			Error: apiErrors.Error{
				ErrCode: apiErrors.UnknownNode,
				ErrMsg:  "unknown node " + id,
			},
		})
		return
	}

	snap := s.app.Snapshot()
	resp := &inspectApi.InspectNodeResponse{
		Description: nodeId.Description(s.app.GetParameters()),
		Incoming:    make([]api.Link, 0),
		Outgoing:    make([]api.Link, 0),
		Error:       apiErrors.Error{},
	}
	for _, n := range snap.Nodes {
		if n.Id == id {
			resp.Node = n
		}
	}
	for _, l := range snap.Links {
		if l.To == id {
			resp.Incoming = append(resp.Incoming, l)
		}
		if l.From == id {
			resp.Outgoing = append(resp.Outgoing, l)
		}
	}
	s.SendResponse(w, resp)
}

func (s *Server) toggleDpdk(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.ToggleDpdk()
	if err != nil {
		daemonLog.WithField("op", "toggleDpdk").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.ToggleDpdkResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.ToggleDpdkResponse{
		Parameters: application.ConvertToAPIParameters(p),
		Speed:      s.app.GetSpeed(),
		Error:      apiErrors.Error{},
	})
	daemonLog.WithField("op", "toggleDpdk").WithField("dpdk", p.DpdkEnabled).Info("toggled")
}

func (s *Server) toggleSriov(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.ToggleSriov()
	if err != nil {
		daemonLog.WithField("op", "toggleSriov").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.ToggleSriovResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.ToggleSriovResponse{
		Parameters: application.ConvertToAPIParameters(p),
		Speed:      s.app.GetSpeed(),
		Error:      apiErrors.Error{},
	})
	daemonLog.WithField("op", "toggleSriov").WithField("sriov", p.SriovEnabled).Info("toggled")
}

func (s *Server) setParameters(w http.ResponseWriter, r *http.Request) {
	req := &controlApi.SetParametersRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "setParameters").WithError(err).Warn("bad request")
		s.SendError(w, &controlApi.SetParametersResponse{
			Error: invalidRequest(err),
		})
		return
	}

	p, clamped, err := s.app.SetParameters(application.ParameterUpdate{
		DpdkEnabled:  req.DpdkEnabled,
		SriovEnabled: req.SriovEnabled,
		VfCount:      req.VfCount,
		PacketCount:  req.PacketCount,
		TrafficLoad:  req.TrafficLoad,
	})
	if err != nil {
		daemonLog.WithField("op", "setParameters").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.SetParametersResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.SetParametersResponse{
		Parameters: application.ConvertToAPIParameters(p),
		Clamped:    clamped,
		Speed:      s.app.GetSpeed(),
		Error:      apiErrors.Error{},
	})
}

func (s *Server) setVfCount(w http.ResponseWriter, r *http.Request) {
	req := &controlApi.SetVfCountRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "setVfCount").WithError(err).Warn("bad request")
		s.SendError(w, &controlApi.SetVfCountResponse{Error: invalidRequest(err)})
		return
	}
	value, clamped, err := s.app.SetVfCount(req.Value)
	if err != nil {
		daemonLog.WithField("op", "setVfCount").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.SetVfCountResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.SetVfCountResponse{
		Value:   value,
		Clamped: clamped,
		Error:   apiErrors.Error{},
	})
}

func (s *Server) setPacketCount(w http.ResponseWriter, r *http.Request) {
	req := &controlApi.SetPacketCountRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "setPacketCount").WithError(err).Warn("bad request")
		s.SendError(w, &controlApi.SetPacketCountResponse{Error: invalidRequest(err)})
		return
	}
	value, clamped, err := s.app.SetPacketCount(req.Value)
	if err != nil {
		daemonLog.WithField("op", "setPacketCount").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.SetPacketCountResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.SetPacketCountResponse{
		Value:   value,
		Clamped: clamped,
		Error:   apiErrors.Error{},
	})
}

func (s *Server) setTrafficLoad(w http.ResponseWriter, r *http.Request) {
	req := &controlApi.SetTrafficLoadRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "setTrafficLoad").WithError(err).Warn("bad request")
		s.SendError(w, &controlApi.SetTrafficLoadResponse{Error: invalidRequest(err)})
		return
	}
	value, clamped, err := s.app.SetTrafficLoad(req.Value)
	if err != nil {
		daemonLog.WithField("op", "setTrafficLoad").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.SetTrafficLoadResponse{Error: appError(err)})
		return
	}
	s.SendResponse(w, &controlApi.SetTrafficLoadResponse{
		Value:   value,
		Clamped: clamped,
		Error:   apiErrors.Error{},
	})
}

func (s *Server) selectNode(w http.ResponseWriter, r *http.Request) {
	req := &controlApi.SelectNodeRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "selectNode").WithError(err).Warn("bad request")
		s.SendError(w, &controlApi.SelectNodeResponse{Error: invalidRequest(err)})
		return
	}

	node, err := s.app.SelectNode(req.Node)
	if err != nil {
		daemonLog.WithField("op", "selectNode").WithError(err).Warn("rejected")
		s.SendError(w, &controlApi.SelectNodeResponse{
			Node:  req.Node,
			Error: appError(err),
		})
		return
	}
	s.SendResponse(w, &controlApi.SelectNodeResponse{
		Node:        string(node),
		Description: s.app.Description(),
		Error:       apiErrors.Error{},
	})
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	tick := s.app.Pause()
	s.SendResponse(w, &opApi.PauseResponse{
		Paused: true,
		Tick:   tick,
		Error:  apiErrors.Error{},
	})
}

func (s *Server) unpause(w http.ResponseWriter, r *http.Request) {
	tick := s.app.Unpause()
	s.SendResponse(w, &opApi.UnpauseResponse{
		Paused: false,
		Tick:   tick,
		Error:  apiErrors.Error{},
	})
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	req := &opApi.StepRequest{}

	if err := ParseRequest(r, req); err != nil {
		daemonLog.WithField("op", "step").WithError(err).Warn("bad request")
		s.SendError(w, &opApi.StepResponse{Error: invalidRequest(err)})
		return
	}
	ticks := internal.Clamp(req.Ticks, internal.MinStepTicks, internal.MaxStepTicks)
	if ticks != req.Ticks {
		daemonLog.WithField("op", "step").WithField("requested", req.Ticks).WithField("ticks", ticks).Warn("value out of range, clamped")
	}
	s.SendResponse(w, &opApi.StepResponse{
		Tick:    s.app.Step(ticks),
		Clamped: ticks != req.Ticks,
		Error:   apiErrors.Error{},
	})
}
