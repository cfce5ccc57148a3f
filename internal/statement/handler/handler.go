// Package handler exposes the extraction pipeline over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/service"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
	"github.com/FACorreiaa/statement-extractor/pkg/archive"
)

// DefaultMaxUploadBytes caps statement uploads. Statements are small;
// anything past this is a misdirected upload, not a bigger statement.
const DefaultMaxUploadBytes = 16 << 20

// Handler serves the statement upload API.
type Handler struct {
	logger         *slog.Logger
	svc            *service.Service
	store          archive.Archive
	maxUploadBytes int64
}

// New builds a Handler around an extraction service.
func New(logger *slog.Logger, svc *service.Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, svc: svc, maxUploadBytes: DefaultMaxUploadBytes}
}

// WithArchive enables archival of uploads and their results. Archival
// failures are logged and never fail the request.
func (h *Handler) WithArchive(store archive.Archive) *Handler {
	h.store = store
	return h
}

// Routes registers the API on a new router.
func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/v1/statements", h.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	return router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a multipart statement file under the "file" field.
// The source format comes from the file extension. "?mode=bank" routes the
// document through the per-bank registry instead of the generic pipeline.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	var entry *archive.Entry
	if h.store != nil {
		entry, err = h.store.SaveUpload(fileHeader.Filename, file)
		if err != nil {
			h.logger.Error("archive upload failed", "filename", fileHeader.Filename, "error", err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			writeError(w, http.StatusInternalServerError, "upload could not be re-read")
			return
		}
	}

	var src table.Source
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv", ".tsv", ".txt":
		src, err = table.NewCSVSource(file, 0)
		if err != nil {
			if errors.Is(err, table.ErrEmptyInput) {
				writeError(w, http.StatusBadRequest, "uploaded file is empty")
				return
			}
			h.logger.Error("csv source failed", "filename", fileHeader.Filename, "error", err)
			writeError(w, http.StatusBadRequest, "uploaded file could not be read")
			return
		}
	case ".xlsx", ".xlsm":
		src = table.NewExcelSource(file)
	case ".xls":
		src = table.NewXLSSource(file)
	default:
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type; upload .csv or .xlsx")
		return
	}

	h.logger.Info("statement upload",
		"filename", fileHeader.Filename, "size", fileHeader.Size, "mode", r.URL.Query().Get("mode"))

	if r.URL.Query().Get("mode") == "bank" {
		result, err := h.svc.ProcessBankSource(r.Context(), src)
		if err != nil {
			if errors.Is(err, registry.ErrBankUnrecognized) {
				writeError(w, http.StatusUnprocessableEntity, "bank not recognized")
				return
			}
			h.logger.Error("bank extraction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "extraction failed")
			return
		}
		h.archiveResult(entry, result)
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.svc.ProcessSource(r.Context(), src)
	if err != nil {
		h.logger.Error("extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}
	h.archiveResult(entry, result)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) archiveResult(entry *archive.Entry, result any) {
	if h.store == nil || entry == nil {
		return
	}
	if err := h.store.SaveResult(entry.ID, result); err != nil {
		h.logger.Error("archive result failed", "id", entry.ID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
