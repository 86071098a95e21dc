package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/feledger/ledger"
	"github.com/robinvdvleuten/feledger/loader"
)

// SourceResponse is the JSON response for the source endpoints.
type SourceResponse struct {
	Filepath string          `json:"filepath"`
	Source   string          `json:"source"`
	Errors   []ErrorResponse `json:"errors"`
}

type sourceRequest struct {
	Filepath string `json:"filepath"`
	Source   string `json:"source"`
}

// resolveFilepathFromString resolves a filepath string to an absolute path.
// If the path is empty, returns the served ledger file.
// The resolved path is validated to ensure it's within the allowed directory.
func (s *Server) resolveFilepathFromString(path string) (string, error) {
	s.mu.RLock()
	root := s.rootFile
	s.mu.RUnlock()

	if path == "" {
		if root == "" {
			return "", fmt.Errorf("no filepath provided and no ledger file loaded")
		}
		return root, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid filepath: %w", err)
	}

	if err := validateFilepath(root, absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// isPathWithin checks if the resolved path is within the allowed directory.
// Both paths must already be resolved to their canonical form.
func isPathWithin(allowedDir, resolvedPath string) bool {
	rel, err := filepath.Rel(allowedDir, resolvedPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// validateFilepath ensures path is inside the directory of root after
// resolving symlinks, which rules out both ../ and symlink traversal.
func validateFilepath(root, path string) error {
	if root == "" {
		return fmt.Errorf("access denied: no ledger file loaded")
	}

	allowedDir, err := filepath.EvalSymlinks(filepath.Dir(root))
	if err != nil {
		return fmt.Errorf("invalid allowed directory: %w", err)
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		// The file may not exist yet; resolve its parent instead.
		resolvedParent, err := filepath.EvalSymlinks(filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("access denied: invalid path")
		}
		resolvedPath = filepath.Join(resolvedParent, filepath.Base(path))
	}

	if !isPathWithin(allowedDir, resolvedPath) {
		return fmt.Errorf("access denied: filepath outside allowed directory")
	}

	return nil
}

// errorsFor reports the problems of a file. The served file uses the loaded
// state; any other file is parsed and validated on the spot.
func (s *Server) errorsFor(ctx context.Context, filename string, content []byte) []ErrorResponse {
	s.mu.RLock()
	if filename == s.rootFile {
		errs := s.errorsLocked()
		s.mu.RUnlock()
		return newErrorResponses(errs)
	}
	s.mu.RUnlock()

	return newErrorResponses(validate(ctx, filename, content))
}

// errorsLocked returns the parse error or the validation errors of the
// loaded ledger. Must be called with s.mu held for reading.
func (s *Server) errorsLocked() []error {
	if s.parseErr != nil {
		return []error{s.parseErr}
	}
	return s.ledger.Errors()
}

func validate(ctx context.Context, filename string, content []byte) []error {
	result, err := loader.New().LoadBytes(ctx, filename, content)
	if err != nil {
		return []error{err}
	}
	l := ledger.New()
	_ = l.Process(ctx, result.Ledger)
	return l.Errors()
}

// handleGetSource handles GET requests to /api/source.
// Returns the file content and its errors as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	filename, err := s.resolveFilepathFromString(r.URL.Query().Get("filepath"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, errors.New("file not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, errors.New("failed to read file"))
		return
	}

	writeJSONResponse(w, http.StatusOK, &SourceResponse{
		Filepath: filename,
		Source:   string(content),
		Errors:   s.errorsFor(r.Context(), filename, content),
	})
}

// handlePutSource handles PUT requests to /api/source.
//
// The new content is parsed before anything is written: source that does
// not parse is rejected with 422 and the file is left untouched. Source
// that parses is written even when it fails validation, and the validation
// errors are returned.
func (s *Server) handlePutSource(w http.ResponseWriter, r *http.Request) {
	var request sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	filename, err := s.resolveFilepathFromString(request.Filepath)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	content := []byte(request.Source)
	if _, err := loader.New().LoadBytes(r.Context(), filename, content); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	if err := os.WriteFile(filename, content, 0600); err != nil {
		writeError(w, http.StatusInternalServerError, errors.New("failed to write file"))
		return
	}

	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to reload ledger: %w", err))
		return
	}
	s.broadcast("reload")

	writeJSONResponse(w, http.StatusOK, &SourceResponse{
		Filepath: filename,
		Source:   request.Source,
		Errors:   s.errorsFor(r.Context(), filename, content),
	})
}
