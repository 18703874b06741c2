package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filip867/Karl-Filip/internal/adapter/driven/config"
	"github.com/filip867/Karl-Filip/internal/adapter/driven/export"
	"github.com/filip867/Karl-Filip/internal/adapter/driven/source"
	"github.com/filip867/Karl-Filip/internal/application/usecase"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/internal/shared/types"
	"github.com/filip867/Karl-Filip/pkg/console"
)

const sampleExport = "Listing Nickname,Month,Owner Revenue,Occupancy,ANR\n" +
	"Apt 1102,jan 2026,10000,\"0,8\",1200\n" +
	"1404 Big,jan 2026,20000,\"0,6\",1400\n" +
	"Loft Suite,feb 2026,500,,\n"

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	uc := usecase.NewReportUseCase(
		source.NewSourceRepository,
		export.NewExportRepository(),
		config.NewConfigRepository(filepath.Join(t.TempDir(), "none.env")),
		console.NewConsole(),
	)
	_, err := uc.Configure(&types.CLIArgs{})
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(uc, opts...).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetReport_BeforeImport(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var model struct {
		ClientName string `json:"client_name"`
		Prior      struct {
			TotalRevenue int64 `json:"total_revenue"`
		} `json:"prior"`
		Current struct {
			Revenue map[string]int64 `json:"revenue"`
		} `json:"current"`
	}
	decode(t, resp, &model)
	assert.Equal(t, "Kungsholms Strand 167", model.ClientName)
	assert.Equal(t, int64(488617), model.Prior.TotalRevenue)
	assert.Empty(t, model.Current.Revenue)
}

func TestImport_RawBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/import?name=export.csv", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result usecase.ImportResult
	decode(t, resp, &result)
	assert.Equal(t, "Imported! 3 listings · Total 2026: 30 500 kr", result.Message)
	assert.Equal(t, "export.csv", result.Info.Source)
	assert.Equal(t, []string{"Loft Suite"}, result.Unlisted)
}

func TestImport_Multipart(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleExport))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/import", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	var model struct {
		Current struct {
			Revenue map[string]int64 `json:"revenue"`
		} `json:"current"`
	}
	decode(t, resp, &model)
	assert.Equal(t, int64(30000), model.Current.Revenue["Jan"])
}

func currentTotal(t *testing.T, srv *httptest.Server) int64 {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	var model struct {
		Current struct {
			TotalRevenue int64 `json:"total_revenue"`
		} `json:"current"`
	}
	decode(t, resp, &model)
	return model.Current.TotalRevenue
}

func postLocation(t *testing.T, srv *httptest.Server, location string) int {
	t.Helper()
	body, err := json.Marshal(map[string]string{"location": location})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/v1/import", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestImport_Location(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))
	srv := newTestServer(t, WithImportLocations(dir, "s3://reports/exports/"))

	assert.Equal(t, http.StatusCreated, postLocation(t, srv, path))
	assert.Equal(t, int64(30500), currentTotal(t, srv))
	assert.Equal(t, http.StatusCreated, postLocation(t, srv, "export.csv"), "relative to the import dir")
	assert.Equal(t, http.StatusNotFound, postLocation(t, srv, path+".missing"))

	resp, err := http.Post(srv.URL+"/api/v1/import", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestImport_LocationOutsideAllowedRoots(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.csv")
	require.NoError(t, os.WriteFile(outside, []byte(sampleExport), 0o644))

	srv := newTestServer(t, WithImportLocations(dir, "s3://reports/exports/"))
	for _, location := range []string{
		outside,
		"../" + filepath.Base(filepath.Dir(outside)) + "/secret.csv",
		"/etc/passwd",
		"s3://other-bucket/export.csv",
		"s3://reports/private/export.csv",
		"s3://reports/exports/../private/export.csv",
	} {
		assert.Equal(t, http.StatusForbidden, postLocation(t, srv, location), location)
	}
	assert.Equal(t, int64(0), currentTotal(t, srv))

	closed := newTestServer(t)
	assert.Equal(t, http.StatusForbidden, postLocation(t, closed, outside), "location imports are off by default")
	assert.Equal(t, http.StatusForbidden, postLocation(t, closed, "s3://reports/exports/export.csv"))
}

func TestImport_EmptyBodyEmptiesCurrentYear(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, int64(30500), currentTotal(t, srv))

	resp, err = http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader("  "))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var result usecase.ImportResult
	decode(t, resp, &result)
	assert.Equal(t, 0, result.Info.Listings)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, int64(0), currentTotal(t, srv))
}

func TestImport_FailureKeepsModel(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/v1/import?name=old.xls", "application/vnd.ms-excel", strings.NewReader("legacy"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var errBody ErrResponse
	decode(t, resp, &errBody)
	assert.Contains(t, errBody.Error, ".xls")

	assert.Equal(t, int64(30500), currentTotal(t, srv))
}

func TestImport_OversizedBodyRejected(t *testing.T) {
	srv := newTestServer(t, WithMaxUpload(int64(len(sampleExport))))

	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	oversized := sampleExport + "1102,mar 2026,99999\n"
	resp, err = http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(oversized))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, int64(30500), currentTotal(t, srv), "a truncated export is never imported")
}

func TestListings(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/listings?start=Nov&months=3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Months []string `json:"months"`
		Rows   []struct {
			ID      string           `json:"id"`
			Revenue map[string]int64 `json:"revenue"`
		} `json:"rows"`
		Extremes []struct {
			Month string `json:"month"`
			Min   *int64 `json:"min"`
			Max   *int64 `json:"max"`
		} `json:"extremes"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"Nov", "Dec", "Jan"}, body.Months)
	require.Len(t, body.Rows, 12)
	require.Len(t, body.Extremes, 3)
	require.NotNil(t, body.Extremes[2].Max)
	assert.Equal(t, int64(20000), *body.Extremes[2].Max)
	assert.Equal(t, int64(10000), *body.Extremes[2].Min)

	for _, bad := range []string{"?start=Smarch", "?months=four"} {
		resp, err = http.Get(srv.URL + "/api/v1/listings" + bad)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
		resp.Body.Close()
	}
}

func TestPutEdits(t *testing.T) {
	srv := newTestServer(t)

	put := func(body string) *http.Response {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, srv.URL+"/api/v1/report/edits", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := put(`{"client_name":"New Name","listing_window":{"start":"Okt","count":20},"bullets":{"actions":["Fix sauna"]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var model struct {
		ClientName    string `json:"client_name"`
		ListingWindow struct {
			Start string `json:"start"`
			Count int    `json:"count"`
		} `json:"listing_window"`
		Bullets struct {
			Actions []string `json:"actions"`
		} `json:"bullets"`
	}
	decode(t, resp, &model)
	assert.Equal(t, "New Name", model.ClientName)
	assert.Equal(t, "Okt", model.ListingWindow.Start)
	assert.Equal(t, 12, model.ListingWindow.Count)
	assert.Equal(t, []string{"Fix sauna"}, model.Bullets.Actions)

	resp = put(`{"quality":{"overall":6}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = put(`{"chart_months":["Smarch"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestImport_RateLimited(t *testing.T) {
	srv := newTestServer(t, WithImportLimit(0.001, 1))

	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/report")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads are not throttled")
	resp.Body.Close()
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/import", "text/csv", strings.NewReader(sampleExport))
	require.NoError(t, err)
	resp.Body.Close()
	resp, err = http.Post(srv.URL+"/api/v1/import?name=old.xls", "text/csv", strings.NewReader("legacy"))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `rapport_imports_total{result="ok"} 1`)
	assert.Contains(t, body, `rapport_imports_total{result="error"} 1`)
	assert.Contains(t, body, `rapport_import_rows_total{outcome="retained"} 3`)
	assert.Contains(t, body, "rapport_current_listings 3")
	assert.Contains(t, body, "rapport_current_revenue_kr 30500")
	assert.Contains(t, body, `route="/api/v1/import"`)
}

var _ repository.SourceFactory = source.NewSourceRepository
