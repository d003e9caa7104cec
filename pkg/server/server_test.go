package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

func TestWebAPI_AnalyzeRoute(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	api := NewWebAPI(logger, Config{
		Addr:     ":8080",
		Defaults: domain.DefaultReportConfig(),
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "revenue.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Date,Revenue\n7/9/2025,$5\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"summary\"")
}

func TestWebAPI_UnknownRoute(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	api := NewWebAPI(logger, Config{Addr: ":8080", Defaults: domain.DefaultReportConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
