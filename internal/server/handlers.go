package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/storage"
	"github.com/Player01osu/paper-engine/internal/tokenize"
)

func (s *Server) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	path := r.URL.Query().Get("path")
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "missing `path` parameter; give path to document")
		return
	}
	policy := s.defaultPolicy
	if dupe := r.URL.Query().Get("dupe"); dupe != "" {
		var err error
		policy, err = index.ParseDupePolicy(dupe)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.logger.Debug("submit request",
		zap.String("request_id", reqID),
		zap.String("path", path),
		zap.String("dupe_policy", string(policy)),
	)

	title, err := s.submitter.SubmitFile(path, policy)
	if err != nil {
		var dup *index.DuplicateTitleError
		switch {
		case errors.As(err, &dup):
			s.respondError(w, http.StatusConflict, dup.Error())
		case errors.Is(err, os.ErrNotExist):
			s.respondError(w, http.StatusNotFound, err.Error())
		default:
			s.logger.Error("submit failed", zap.String("request_id", reqID), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{
		"title":  title,
		"path":   path,
		"status": "indexed",
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	query := r.URL.Query().Get("s")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "missing `s` parameter; give search terms")
		return
	}
	terms := tokenize.QueryTerms(query, s.store.Pool())
	results := s.store.Rank(terms)
	s.logger.Debug("search request",
		zap.String("request_id", reqID),
		zap.String("query", query),
		zap.Int("terms", len(terms)),
		zap.Int("results", len(results)),
	)
	if results == nil {
		results = []index.Result{}
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":      s.store.Len(),
		"vocabulary":     s.store.VocabSize(),
		"snapshot_path":  s.snapshotPath,
		"snapshot_bytes": storage.SizeBytes(s.snapshotPath),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
