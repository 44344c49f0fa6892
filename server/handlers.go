package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gaurav-prasanna/pagemd/core/normalize"
	"github.com/gaurav-prasanna/pagemd/core/render"
)

// handleConvert converts the HTML request body. Query parameters
// keep_data_uris and main_only override the configured defaults; format
// selects a Markdown or JSON response.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.Server.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	opts := s.cfg.NormalizeOptions()
	if opts.Markdown.KeepDataURIs, err = boolParam(q.Get("keep_data_uris"), opts.Markdown.KeepDataURIs); err != nil {
		jsonError(w, "keep_data_uris: "+err.Error(), http.StatusBadRequest)
		return
	}
	if opts.MainOnly, err = boolParam(q.Get("main_only"), opts.MainOnly); err != nil {
		jsonError(w, "main_only: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = render.FormatMarkdown
	}
	if format != render.FormatMarkdown && format != render.FormatJSON {
		jsonError(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	normalizer, err := normalize.NewForEngine(s.cfg.Engine, opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := normalizer.Normalize(string(body))
	if err != nil {
		if errors.Is(err, normalize.ErrEmptyInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("conversion failed", "error", err)
		jsonError(w, "conversion failed", http.StatusInternalServerError)
		return
	}

	if format == render.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, result.Markdown)
}

func boolParam(v string, fallback bool) (bool, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}
