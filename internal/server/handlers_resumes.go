package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/store"
)

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	ID     string `json:"id"`
	PDFURL string `json:"pdfUrl"`
}

// resumeURL is where a generated PDF can be downloaded.
func resumeURL(id string) string {
	return "/api/resumes/" + id
}

// handleGenerate validates, corrects and renders the posted resume.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	rec, err := s.svc.Generate(r.Context(), payload)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[generate] failed: %v", err)
		}
		s.errorResponse(w, status, clientMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		ID:     rec.ID,
		PDFURL: resumeURL(rec.ID),
	})
}

// handleListResumes lists generated resumes in creation order.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.List(r.Context())
	if err != nil {
		log.Printf("[list] failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, store.Summaries(records))
}

// handleDownloadResume streams a generated PDF as an attachment. Unknown IDs
// get a plain-text 404.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, file, err := s.svc.Open(r.Context(), id)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusNotFound {
			http.Error(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Printf("[download] failed to open resume %s: %v", id, err)
		http.Error(w, "Failed to read resume", status)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Printf("[download] failed to close %s: %v", rec.FileName, cerr)
		}
	}()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	http.ServeContent(w, r, rec.FileName, rec.CreatedAt, file)
}
