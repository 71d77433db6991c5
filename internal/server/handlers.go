package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
)

// Request is the body of POST /api/labels. Omitted fields keep the server
// defaults. Format is a format identifier or, for compatibility with older
// clients, its zero-based position in the format listing.
type Request struct {
	Format         json.RawMessage `json:"format,omitempty"`
	Grid           *string         `json:"grid,omitempty"`
	LabelPrefix    *string         `json:"labelPrefix,omitempty"`
	NumberOfDigits *int            `json:"numberOfDigits,omitempty"`
	StartingNumber *int            `json:"startingNumber,omitempty"`
	Count          *int            `json:"count,omitempty"`
	QR             *bool           `json:"qr,omitempty"`
	QRSizeMm       *float64        `json:"qrSizeMm,omitempty"`
	QRTemplate     *string         `json:"qrTemplate,omitempty"`
	QRLevel        *string         `json:"qrLevel,omitempty"`
	FontSizePt     *float64        `json:"fontSizePt,omitempty"`
	Border         *bool           `json:"border,omitempty"`
	Output         *string         `json:"output,omitempty"`
	Title          *string         `json:"title,omitempty"`
	SingleSheet    *bool           `json:"singleSheet,omitempty"`
	MaxSheets      *int            `json:"maxSheets,omitempty"`
	Refresh        bool            `json:"refresh,omitempty"`
}

// Options overlays the request on defaults.
func (req Request) Options(defaults pipeline.Options, formats []format.Summary) (pipeline.Options, error) {
	opts := defaults
	if len(req.Format) > 0 && !bytes.Equal(req.Format, []byte("null")) {
		id, err := formatID(req.Format, formats)
		if err != nil {
			return opts, err
		}
		opts.Format, opts.Grid = id, ""
	}
	set(&opts.Grid, req.Grid)
	set(&opts.Prefix, req.LabelPrefix)
	set(&opts.PaddingZeros, req.NumberOfDigits)
	set(&opts.StartingNumber, req.StartingNumber)
	set(&opts.Count, req.Count)
	set(&opts.QR, req.QR)
	set(&opts.QRSizeMm, req.QRSizeMm)
	set(&opts.QRTemplate, req.QRTemplate)
	set(&opts.QRLevel, req.QRLevel)
	set(&opts.FontSizePt, req.FontSizePt)
	set(&opts.Border, req.Border)
	set(&opts.Output, req.Output)
	set(&opts.Title, req.Title)
	set(&opts.SingleSheet, req.SingleSheet)
	set(&opts.MaxSheets, req.MaxSheets)
	opts.Refresh = req.Refresh
	return opts, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func formatID(raw json.RawMessage, formats []format.Summary) (string, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}
	var idx int
	if err := json.Unmarshal(raw, &idx); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "format must be an identifier or an index")
	}
	if idx < 0 || idx >= len(formats) {
		known := make([]string, len(formats))
		for i, f := range formats {
			known[i] = f.ID
		}
		return "", errors.NewUnknownFormat(strconv.Itoa(idx), known)
	}
	return formats[idx].ID, nil
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Formats []string `json:"formats,omitempty"`
}

type formatResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Columns   int     `json:"columns"`
	Rows      int     `json:"rows"`
	Capacity  int     `json:"capacity"`
	LabelW    float64 `json:"label_width_mm"`
	LabelH    float64 `json:"label_height_mm"`
	PageWidth float64 `json:"page_width_mm"`
	PageH     float64 `json:"page_height_mm"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	formats := s.runner.Registry.Formats()
	out := make([]formatResponse, len(formats))
	for i, f := range formats {
		lw, lh := f.CellSize()
		pw, ph := f.PageSize()
		out[i] = formatResponse{
			ID: f.ID, Name: f.Name,
			Columns: f.ColumnsPerRow, Rows: f.RowsPerSheet, Capacity: f.Capacity(),
			LabelW: lw, LabelH: lh, PageWidth: pw, PageH: ph,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts, err := req.Options(s.opts.Defaults, s.runner.Formats())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set("X-Label-Count", strconv.Itoa(res.Stats.Labels))
	h.Set("X-Sheet-Count", strconv.Itoa(res.Stats.Sheets))
	h.Set("X-QR-Fallbacks", strconv.Itoa(res.Stats.Fallbacks))
	h.Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifact); err != nil {
		s.logger.Warn("write response", "err", err, "request_id", RequestID(r.Context()))
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidInput,
		errors.ErrCodeUnknownFormat, errors.ErrCodeUnsupportedType:
		return http.StatusBadRequest
	case errors.ErrCodeCapacity:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	resp := errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
		Formats: errors.KnownFormats(err),
	}
	if status >= 500 {
		s.logger.Error("generate labels", "err", err, "request_id", RequestID(r.Context()))
		switch {
		case status == http.StatusGatewayTimeout:
			resp.Message = "request timed out"
		case code == errors.ErrCodeInternal:
			resp.Message = "internal error"
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
