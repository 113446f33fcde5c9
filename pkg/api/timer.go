package api

import (
	"net/http"
	"strconv"
	"time"

	"tableflip.dev/focus/pkg/session"
)

// TimerRequest is the body of POST /timer/start and /timer/reset.
type TimerRequest struct {
	Minutes  float64 `json:"minutes"`
	Category string  `json:"category"`
}

func (req TimerRequest) duration() time.Duration {
	return time.Duration(req.Minutes * float64(time.Minute))
}

// TimerResponse is a timer state with the time left in seconds.
type TimerResponse struct {
	session.Status
	RemainingSeconds int `json:"remainingSeconds"`
}

func (s *Server) timerResponse(w http.ResponseWriter, r *http.Request, st session.Status, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, TimerResponse{Status: st, RemainingSeconds: int(st.Remaining / time.Second)})
}

func (s *Server) handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.timer.Status(r.Context())
	s.timerResponse(w, r, st, err)
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	var req TimerRequest
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.timer.Start(r.Context(), req.duration(), req.Category)
	s.timerResponse(w, r, st, err)
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	st, err := s.timer.Stop(r.Context())
	s.timerResponse(w, r, st, err)
}

func (s *Server) handleTimerReset(w http.ResponseWriter, r *http.Request) {
	var req TimerRequest
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.timer.Reset(r.Context(), req.duration())
	s.timerResponse(w, r, st, err)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.timer.Log.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, sessions)
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unit, err := session.ParseUnit(q.Get("unit"))
	if err != nil {
		s.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	withHeatmap, _ := strconv.ParseBool(q.Get("heatmap"))

	sessions, err := s.timer.Log.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, session.Summarize(sessions, unit, s.now(), s.location, withHeatmap))
}

// ScratchpadBody is the body of PUT /scratchpad and of its responses.
type ScratchpadBody struct {
	Text string `json:"text"`
}

func (s *Server) handleGetScratchpad(w http.ResponseWriter, r *http.Request) {
	text, err := s.pad.Get(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, ScratchpadBody{Text: text})
}

func (s *Server) handlePutScratchpad(w http.ResponseWriter, r *http.Request) {
	var body ScratchpadBody
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.pad.Set(r.Context(), body.Text); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, body)
}
