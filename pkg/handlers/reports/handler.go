package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/rtb-report/pkg/models/api"
	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/services/ingest"
	"github.com/de-tools/rtb-report/pkg/services/pipeline"
	"github.com/de-tools/rtb-report/pkg/services/schema"
)

// maxUploadBytes caps the multipart form held in memory.
const maxUploadBytes = 64 << 20

// Handler serves the analyze endpoint: one uploaded file in, the full
// set of aggregates and formatted blocks out.
type Handler struct {
	defaults domain.ReportConfig
}

func NewHandler(defaults domain.ReportConfig) *Handler {
	return &Handler{defaults: defaults}
}

// Analyze handles POST /api/v1/reports/analyze. The file arrives as
// the "file" multipart field; top_n, amount_col, from, to and
// pmp_first query parameters override the configured defaults.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := h.config(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("expected a multipart upload with a \"file\" field"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("missing \"file\" field"))
		return
	}
	defer file.Close()

	doc, err := ingest.Read(header.Filename, file, cfg.MaxRows)
	if err != nil {
		logger.Error().Err(err).Str("file", header.Filename).Msg("failed to parse upload")
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := pipeline.Analyze(ctx, doc, cfg)
	if err != nil {
		var schemaErr *schema.SchemaError
		var cfgErr *domain.ConfigError
		switch {
		case errors.As(err, &schemaErr):
			writeSchemaError(w, schemaErr)
		case errors.As(err, &cfgErr):
			writeError(w, http.StatusBadRequest, cfgErr)
		default:
			logger.Error().Err(err).Str("file", header.Filename).Msg("analysis failed")
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	logger.Info().
		Str("file", header.Filename).
		Int("rows_read", result.Summary.RowsRead).
		Int("rows_kept", result.Summary.RowsKept).
		Msg("analysis complete")

	response := api.AnalyzeResponse{
		Summary: api.FromSummary(result.Summary),
		Totals:  api.FromSectionTotals(result.Totals),
		Ranked:  api.FromRanked(result.Ranked),
		Weekly:  api.FromWeekly(result.Weekly),
		Tables:  api.FromTables(result.Tables),
		Blocks:  api.FromBlocks(result.Blocks),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode analyze response")
	}
}

func (h *Handler) config(r *http.Request) (domain.ReportConfig, error) {
	cfg := h.defaults
	q := r.URL.Query()

	if v := q.Get("top_n"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return cfg, errors.New("top_n must be a positive integer")
		}
		cfg.TopN = n
	}
	if v := q.Get("amount_col"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return cfg, errors.New("amount_col must be a positive integer")
		}
		cfg.AmountCol = n
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return cfg, errors.New("from must be YYYY-MM-DD")
		}
		cfg.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return cfg, errors.New("to must be YYYY-MM-DD")
		}
		cfg.To = t
	}
	if v := q.Get("pmp_first"); v != "" {
		cfg.PMPFirst = v == "true"
	}
	return cfg, nil
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("not positive")
	}
	return n, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

func writeSchemaError(w http.ResponseWriter, schemaErr *schema.SchemaError) {
	missing := make([]string, len(schemaErr.Missing))
	for i, f := range schemaErr.Missing {
		missing[i] = string(f)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(api.Error{Error: schemaErr.Error(), Missing: missing})
}
