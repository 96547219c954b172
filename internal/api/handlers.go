package api

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/buildinfo"
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/errors"
	"github.com/matzehuels/curricula/pkg/schedule"
	"github.com/matzehuels/curricula/pkg/store"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// SolveRequest is the body of POST /v1/solve. POST /v1/bounds reads only
// Instance, Mode and Refresh.
type SolveRequest struct {
	Instance   *curriculum.Instance `json:"instance"`
	Mode       string               `json:"mode,omitempty"`
	VarOrder   string               `json:"var_order,omitempty"`
	Balance    bool                 `json:"balance,omitempty"`
	NodeLimit  int                  `json:"node_limit,omitempty"`
	Timeout    string               `json:"timeout,omitempty"` // Go duration, e.g. "10s"
	Formats    []string             `json:"formats,omitempty"`
	ShowBounds bool                 `json:"show_bounds,omitempty"`
	Refresh    bool                 `json:"refresh,omitempty"`
}

// BoundsResponse is the body returned by POST /v1/bounds.
type BoundsResponse struct {
	Bounds     []bounds.Bound `json:"bounds"`
	Infeasible []int          `json:"infeasible"`
	Cached     bool           `json:"cached"`
}

// SolveResponse is the body returned by POST /v1/solve. Artifacts are the
// rendered formats as text.
type SolveResponse struct {
	*schedule.Result
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Saved     bool              `json:"saved"`
}

// ListResponse is the body returned by GET /v1/schedules.
type ListResponse struct {
	Schedules []*schedule.Record `json:"schedules"`
}

// HealthResponse is the body returned by GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = "static"
	}
	bs, hit, err := s.runner.BoundsWithCacheInfo(r.Context(), schedule.Options{
		Instance: req.Instance,
		Mode:     mode,
		Refresh:  req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	infeasible := []int{}
	for _, b := range bounds.Infeasible(bs) {
		infeasible = append(infeasible, b.Course)
	}
	writeJSON(w, http.StatusOK, BoundsResponse{Bounds: bs, Infeasible: infeasible, Cached: hit})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.solveOptions(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := SolveResponse{Result: result}
	if len(result.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(result.Artifacts))
		for format, data := range result.Artifacts {
			resp.Artifacts[format] = string(data)
		}
	}
	if s.store != nil {
		if err := s.store.Save(r.Context(), schedule.NewRecord(result)); err != nil {
			s.logger.Warn("save schedule", "id", result.ID, "error", err)
		} else {
			resp.Saved = true
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoStore())
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "list schedules"))
		return
	}
	if recs == nil {
		recs = []*schedule.Record{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Schedules: recs})
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoStore())
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errNotFound("schedule %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "get schedule"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoStore())
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "delete schedule"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Request Decoding
// =============================================================================

// decodeRequest reads a JSON SolveRequest, or a TOML instance whose options
// come from the query string.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*SolveRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/toml" {
		inst, err := curriculum.Decode(body, curriculum.FormatTOML)
		if err != nil {
			return nil, err
		}
		return requestFromQuery(r, inst)
	}

	var req SolveRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	if req.Instance == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance is required")
	}
	return &req, nil
}

func requestFromQuery(r *http.Request, inst *curriculum.Instance) (*SolveRequest, error) {
	q := r.URL.Query()
	req := &SolveRequest{
		Instance: inst,
		Mode:     q.Get("mode"),
		VarOrder: q.Get("order"),
		Timeout:  q.Get("timeout"),
	}
	if v := q.Get("formats"); v != "" {
		req.Formats = strings.Split(v, ",")
	}
	for name, dst := range map[string]*bool{
		"balance":     &req.Balance,
		"show_bounds": &req.ShowBounds,
		"refresh":     &req.Refresh,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("node_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid node_limit %q", v)
		}
		req.NodeLimit = n
	}
	return req, nil
}

func (s *Server) solveOptions(req *SolveRequest) (schedule.Options, error) {
	timeout := s.maxTimeout
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return schedule.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid timeout")
		}
		timeout = min(d, s.maxTimeout)
	}
	opts := schedule.Options{
		Instance:   req.Instance,
		Mode:       req.Mode,
		VarOrder:   req.VarOrder,
		Balance:    req.Balance,
		NodeLimit:  req.NodeLimit,
		Timeout:    timeout,
		Formats:    req.Formats,
		ShowBounds: req.ShowBounds,
		Refresh:    req.Refresh,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return schedule.Options{}, err
	}
	return opts, nil
}

func errNotFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

func errNoStore() error {
	return errors.New(errors.ErrCodeUnavailable, "schedule storage is not configured")
}
