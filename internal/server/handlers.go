package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"fjacquet/docfields/internal/cache"
	"fjacquet/docfields/internal/fileutils"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (s *Server) maxUploadBytes() int64 {
	mb := s.config.MaxUploadMB
	if mb <= 0 {
		mb = 16
	}
	return int64(mb) << 20
}

func (s *Server) handleExtract(docType models.DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.WithFields(
			logging.Field{Key: logging.FieldRequestID, Value: middleware.GetReqID(r.Context())},
			logging.Field{Key: logging.FieldDocumentType, Value: docType.String()})

		limit := s.maxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			s.respondError(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.Warn("No file in request")
			s.respondError(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer func() {
			_ = file.Close()
		}()

		if header.Filename == "" {
			s.respondError(w, http.StatusBadRequest, "No file selected")
			return
		}
		if !fileutils.HasPDFExtension(header.Filename) {
			s.respondError(w, http.StatusBadRequest, "Only PDF files are allowed")
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			logger.WithError(err).Error("Failed to read upload")
			s.respondJSON(w, http.StatusOK, models.EmptyRecord(docType))
			return
		}

		key := cache.Key(content, docType)
		if s.cache != nil {
			if rec, ok := s.cache.Get(key); ok {
				logger.Debug("Serving cached result")
				s.respondJSON(w, http.StatusOK, rec)
				return
			}
		}

		rec, err := s.extractUpload(r, header.Filename, content, logger)
		if err != nil {
			logger.WithError(err).Warn("Extraction produced no record, returning empty structure")
			s.respondJSON(w, http.StatusOK, models.EmptyRecord(docType))
			return
		}
		if s.cache != nil {
			s.cache.Set(key, rec)
		}
		s.respondJSON(w, http.StatusOK, rec)
	}
}

// extractUpload saves the upload under a unique name, extracts it and
// always removes the temporary copy.
func (s *Server) extractUpload(r *http.Request, filename string, content []byte, logger logging.Logger) (models.ExtractedRecord, error) {
	name := uuid.New().String() + "_" + safeFilename(filename)
	path := filepath.Join(s.tempDir, name)

	if err := os.WriteFile(path, content, 0600); err != nil {
		return nil, err
	}
	defer fileutils.RemoveQuietly(path, logger)

	logger.Info("File saved", logging.Field{Key: logging.FieldFile, Value: path})
	return s.extractor.Extract(r.Context(), path)
}

func safeFilename(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "_" {
		return "upload.pdf"
	}
	return base
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Document Extraction API is running",
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
