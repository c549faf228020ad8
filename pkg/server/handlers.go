package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/pipeline"
	"github.com/matzehuels/modorder/pkg/profile"
	"github.com/matzehuels/modorder/pkg/resolve"
)

// ResolveRequest is the body of POST /v1/resolve.
type ResolveRequest struct {
	Mods     []*mods.Meta `json:"mods"`
	Order    []mods.ID    `json:"order"`
	Disabled []mods.ID    `json:"disabled"`
}

// ResolveResponse is returned by both resolve endpoints.
type ResolveResponse struct {
	RequestID string            `json:"request_id"`
	Order     []mods.ID         `json:"order"`
	Warnings  []resolve.Warning `json:"warnings"`
	NewMods   []mods.ID         `json:"new_mods"`
	Removed   []mods.ID         `json:"removed"`
	Cached    bool              `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set := make(mods.Set, len(req.Mods))
	for _, m := range req.Mods {
		if m == nil {
			writeErr(w, errors.New(errors.ErrCodeInvalidInput, "mods must not contain null"))
			return
		}
		if err := m.Validate(); err != nil {
			writeErr(w, err)
			return
		}
		if set.Has(m.ID) {
			writeErr(w, errors.New(errors.ErrCodeDuplicateMod, "mod %q listed twice", m.ID))
			return
		}
		set[m.ID] = m
	}

	res, err := s.runner.Resolve(r.Context(), pipeline.Options{
		Mods:    set,
		Inline:  &profile.Profile{Order: req.Order, Disabled: req.Disabled},
		Refresh: refresh(r),
		Logger:  s.logger.With("request_id", RequestID(r.Context())),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(r, res))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	store, ok := s.profiles(w, r)
	if !ok {
		return
	}
	names, err := store.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"profiles": names})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := s.profiles(w, r)
	if !ok {
		return
	}
	p, err := store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := s.profiles(w, r)
	if !ok {
		return
	}
	var p profile.Profile
	if !decodeBody(w, r, &p) {
		return
	}
	if err := store.Save(r.Context(), chi.URLParam(r, "name"), &p); err != nil {
		writeErr(w, err)
		return
	}
	saved, err := store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleResolveProfile resolves the server's mods directory against the named
// profile and saves the result. ?write=false skips saving.
func (s *Server) handleResolveProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.profiles(w, r); !ok {
		return
	}
	if s.modsDir == "" {
		writeErr(w, errors.New(errors.ErrCodeUnsupported, "server has no mods directory configured"))
		return
	}

	write := true
	if v := r.URL.Query().Get("write"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeErr(w, errors.New(errors.ErrCodeInvalidInput, "invalid write parameter: %q", v))
			return
		}
		write = b
	}

	res, err := s.runner.Resolve(r.Context(), pipeline.Options{
		ModsDir: s.modsDir,
		Profile: chi.URLParam(r, "name"),
		Refresh: refresh(r),
		Write:   write,
		Logger:  s.logger.With("request_id", RequestID(r.Context())),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(r, res))
}

func (s *Server) profiles(w http.ResponseWriter, r *http.Request) (profile.Store, bool) {
	if s.runner.Profiles == nil {
		writeErr(w, errors.New(errors.ErrCodeUnsupported, "no profile store configured"))
		return nil, false
	}
	return s.runner.Profiles, true
}

func refresh(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return b
}

func toResponse(r *http.Request, res *pipeline.Result) ResolveResponse {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []resolve.Warning{}
	}
	return ResolveResponse{
		RequestID: RequestID(r.Context()),
		Order:     res.Order,
		Warnings:  warnings,
		NewMods:   res.NewMods,
		Removed:   res.Removed,
		Cached:    res.Cached,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeErr(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return false
	}
	return true
}
