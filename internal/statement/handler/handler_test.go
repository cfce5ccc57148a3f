package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/service"
	"github.com/FACorreiaa/statement-extractor/pkg/archive"
)

func newTestHandler(t *testing.T, opts ...service.Option) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, service.New(logger, opts...))
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

const sampleCSV = "Date,Description,Debit,Credit,Balance\n" +
	"01/02/2022,Hitachi ATM Cash,500.00,,1200.00\n" +
	"02/02/2022,Salary Credit,,5000.00,6200.00\n"

func TestUploadCSV(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "statement.csv", sampleCSV)

	req := httptest.NewRequest(http.MethodPost, "/v1/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, service.CodeSuccess, result.ResponseCode)
	assert.Equal(t, "00", result.Code)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "01-02-2022", result.Transactions[0].Date)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "statement.pdf", "%PDF-1.4")

	req := httptest.NewRequest(http.MethodPost, "/v1/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadLegacyWorkbookAccepted(t *testing.T) {
	h := newTestHandler(t)
	// Not a real OLE workbook; the point is that .xls is accepted and its
	// open failure comes back as a processing-error envelope, not a 415.
	body, contentType := multipartBody(t, "statement.xls", "Date,Debit\n")

	req := httptest.NewRequest(http.MethodPost, "/v1/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, service.CodeProcessingError, result.ResponseCode)
	assert.Equal(t, "99", result.Code)
}

func TestUploadRequiresFileField(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/statements", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadEmptyFile(t *testing.T) {
	h := newTestHandler(t)
	body, contentType := multipartBody(t, "statement.csv", "")

	req := httptest.NewRequest(http.MethodPost, "/v1/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadBankModeUnrecognized(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := newTestHandler(t, service.WithRegistry(registry.DefaultRegistry("", logger)))
	body, contentType := multipartBody(t, "statement.csv", sampleCSV)

	req := httptest.NewRequest(http.MethodPost, "/v1/statements?mode=bank", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadBankMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := newTestHandler(t,
		service.WithRegistry(registry.DefaultRegistry("", logger)),
		service.WithPolicy(service.PolicyMetadata))

	csv := "Central Bank of India,Statement,,,,,,\n" +
		"02/03/2023,02/03/2023,280350,,HITACHI ATM CASH WDL,500.00,,17900.00\n"
	body, contentType := multipartBody(t, "statement.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/v1/statements?mode=bank", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result service.BankResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, registry.CentralBankOfIndia, result.Metadata.BankName)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "02-03-2023", result.Transactions[0].PostDate)
}

func TestUploadArchivesFileAndResult(t *testing.T) {
	h := newTestHandler(t)
	store, err := archive.NewLocal(t.TempDir())
	require.NoError(t, err)
	h.WithArchive(store)

	body, contentType := multipartBody(t, "statement.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/v1/statements", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "statement.csv", entries[0].Filename)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
