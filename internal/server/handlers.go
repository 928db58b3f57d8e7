package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/subnetplan/pkg/errors"
	"github.com/matzehuels/subnetplan/pkg/export"
	"github.com/matzehuels/subnetplan/pkg/plan"
	"github.com/matzehuels/subnetplan/pkg/store"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// maxBodySize caps request bodies; tokens are small by construction.
const maxBodySize = 1 << 20

// tokenRequest is the body of every partition endpoint.
type tokenRequest struct {
	Token  string `json:"token"`
	NodeID string `json:"node_id,omitempty"`
}

// tokenResponse answers mutations with the successor token.
type tokenResponse struct {
	Token   string `json:"token"`
	Changed bool   `json:"changed"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// =============================================================================
// Plan store endpoints
// =============================================================================

// handleSavePlan mints a short id for a share token.
func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToken(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Save(r.Context(), req.Token)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save plan"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleGetPlan resolves a short id back to its record.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, apperrors.New(apperrors.ErrCodePlanNotFound, "plan %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "load plan %s", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeletePlan removes a stored plan.
func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete plan %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Partition endpoints
// =============================================================================

// handleLeaves materializes a token and returns its leaf subnet rows.
func (s *Server) handleLeaves(w http.ResponseWriter, r *http.Request) {
	_, p, ok := s.decodePlan(w, r)
	if !ok {
		return
	}

	rows, _ := planRows(p)
	writeJSON(w, http.StatusOK, rows)
}

// handleSplit splits one subnet and returns the successor token.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(t subnet.Tree, id string) (subnet.Tree, bool) {
		return t.Split(id)
	})
}

// handleJoin joins one subnet and returns the successor token.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(t subnet.Tree, id string) (subnet.Tree, bool) {
		return t.Join(id)
	})
}

// handleExport streams a token's leaf subnets as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, p, ok := s.decodePlan(w, r)
	if !ok {
		return
	}

	rows, _ := planRows(p)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="subnets.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		s.logger.Error("export failed", "err", err)
	}
}

// mutate applies a tree operation addressed by node id and re-encodes the plan.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(subnet.Tree, string) (subnet.Tree, bool)) {
	req, p, ok := s.decodePlan(w, r)
	if !ok {
		return
	}
	if err := apperrors.ValidateNodeID(req.NodeID); err != nil {
		s.writeError(w, err)
		return
	}

	rootID, tree, colors, comments, _ := p.Materialize()
	if _, exists := tree[req.NodeID]; !exists {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNodeNotFound, "node %s does not exist", req.NodeID))
		return
	}

	tree, changed := op(tree, req.NodeID)

	next := plan.Build(p.Network, p.Prefix, p.Azure, subnet.Leaves(tree, rootID), colors, comments)
	writeJSON(w, http.StatusOK, tokenResponse{Token: plan.Encode(next), Changed: changed})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeToken reads and validates the request body.
func (s *Server) decodeToken(w http.ResponseWriter, r *http.Request) (tokenRequest, bool) {
	var req tokenRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid request body"))
		return req, false
	}
	if err := apperrors.ValidateShareToken(req.Token); err != nil {
		s.writeError(w, err)
		return req, false
	}
	return req, true
}

// decodePlan reads the body and decodes its token into a plan.
func (s *Server) decodePlan(w http.ResponseWriter, r *http.Request) (tokenRequest, *plan.Plan, bool) {
	req, ok := s.decodeToken(w, r)
	if !ok {
		return req, nil, false
	}
	p := plan.Decode(req.Token)
	if p == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidToken, "token is not a valid plan"))
		return req, nil, false
	}
	return req, p, true
}

// planRows materializes a plan into rendering-facing rows.
func planRows(p *plan.Plan) ([]subnet.Row, []subnet.LeafDef) {
	rootID, tree, colors, comments, skipped := p.Materialize()
	rows := subnet.Rows(tree, rootID, subnet.ViewOptions{
		Azure:    p.Azure,
		Colors:   colors,
		Comments: comments,
	})
	return rows, skipped
}

// writeError maps an error to a JSON response with a matching status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidAddress, apperrors.ErrCodeInvalidPrefix, apperrors.ErrCodeInvalidCIDR,
		apperrors.ErrCodeInvalidToken, apperrors.ErrCodeInvalidColor, apperrors.ErrCodeInvalidNodeID,
		apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeNodeNotFound, apperrors.ErrCodePlanNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeStore, apperrors.ErrCodeInternal:
		status = http.StatusInternalServerError
	}
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: apperrors.UserMessage(err)})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
