// Package httpapi exposes a report session over HTTP so an editor front end
// can import exports, read the model and push edits.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/filip867/Karl-Filip/internal/application/usecase"
	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

const maxUploadBytes = 32 << 20

// ReportService is the session the handlers drive.
type ReportService interface {
	Snapshot() (*entity.ReportModel, error)
	Import(ctx context.Context, location string) (*usecase.ImportResult, error)
	ImportUpload(name string, data []byte) (*usecase.ImportResult, error)
	ApplyEdits(edits entity.Edits) (*entity.ReportModel, error)
	Listings(window entity.MonthWindow) ([]entity.ListingRow, entity.Extremes, entity.MonthWindow, error)
}

// Server serves the report API.
type Server struct {
	service   ReportService
	validate  *validator.Validate
	metrics   *Metrics
	limiter   *importLimiter
	maxUpload int64
	locations importLocations
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records into m instead of a fresh registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithImportLimit sets the import rate (per second) and burst. Non-positive
// values fall back to the defaults.
func WithImportLimit(rps float64, burst int) Option {
	return func(s *Server) { s.limiter = newImportLimiter(rps, burst) }
}

// WithMaxUpload caps the size of an uploaded export in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// WithImportLocations lets JSON imports name files under dir and objects
// under s3Prefix (for example "s3://bucket/exports/"). Without it location
// imports are refused.
func WithImportLocations(dir, s3Prefix string) Option {
	return func(s *Server) { s.locations = newImportLocations(dir, s3Prefix) }
}

// NewServer creates a new Server.
func NewServer(service ReportService, opts ...Option) *Server {
	s := &Server{service: service, validate: validator.New(), maxUpload: maxUploadBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.limiter == nil {
		s.limiter = newImportLimiter(DefaultImportRate, DefaultImportBurst)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/report", s.getReport)
		r.Put("/report/edits", s.putEdits)
		r.With(s.limiter.Handler).Post("/import", s.postImport)
		r.Get("/listings", s.getListings)
	})
	return r
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	model, err := s.service.Snapshot()
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, model)
}

func (s *Server) putEdits(w http.ResponseWriter, r *http.Request) {
	var edits entity.Edits
	if err := render.DecodeJSON(r.Body, &edits); err != nil {
		_ = render.Render(w, r, errResponse(http.StatusBadRequest, fmt.Errorf("invalid edits: %w", err)))
		return
	}
	if err := s.validate.Struct(edits); err != nil {
		renderError(w, r, err)
		return
	}

	model, err := s.service.ApplyEdits(edits)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, model)
}

// importRequest asks the server to fetch an export itself.
type importRequest struct {
	Location string `json:"location" validate:"required"`
}

// postImport accepts a multipart upload (field "file"), a JSON body naming a
// location, or the raw export as the request body.
func (s *Server) postImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		result *usecase.ImportResult
		err    error
	)
	switch mediaType {
	case "multipart/form-data":
		result, err = s.importMultipart(r)
	case "application/json":
		var req importRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			_ = render.Render(w, r, errResponse(http.StatusBadRequest, fmt.Errorf("invalid import request: %w", err)))
			return
		}
		if err := s.validate.Struct(req); err != nil {
			renderError(w, r, err)
			return
		}
		var location string
		if location, err = s.locations.resolve(req.Location); err == nil {
			result, err = s.service.Import(r.Context(), location)
		}
	default:
		var data []byte
		data, err = io.ReadAll(r.Body)
		if err == nil {
			result, err = s.service.ImportUpload(uploadName(r.URL.Query().Get("name")), data)
		}
	}
	s.metrics.ObserveImport(result, err)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

func (s *Server) importMultipart(r *http.Request) (*usecase.ImportResult, error) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnsupportedSource, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing form field \"file\"", types.ErrNoInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return s.service.ImportUpload(uploadName(header.Filename), data)
}

func uploadName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "upload.csv"
	}
	return name
}

// listingsResponse is the listing table for one window.
type listingsResponse struct {
	Window   entity.MonthWindow  `json:"window"`
	Months   []entity.Month      `json:"months"`
	Rows     []entity.ListingRow `json:"rows"`
	Extremes entity.Extremes     `json:"extremes"`
}

func (s *Server) getListings(w http.ResponseWriter, r *http.Request) {
	var window entity.MonthWindow
	if start := r.URL.Query().Get("start"); start != "" {
		m, err := entity.ParseMonth(start)
		if err != nil {
			renderError(w, r, fmt.Errorf("%w: start=%q", types.ErrInvalidMonth, start))
			return
		}
		window.Start = m
	}
	if months := r.URL.Query().Get("months"); months != "" {
		n, err := strconv.Atoi(months)
		if err != nil {
			_ = render.Render(w, r, errResponse(http.StatusBadRequest, fmt.Errorf("months must be a number, got %q", months)))
			return
		}
		window.Count = n
	}
	if window.Start == 0 && window.Count != 0 {
		window.Start = entity.Jan
	}

	rows, extremes, used, err := s.service.Listings(window)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, listingsResponse{
		Window:   used,
		Months:   used.Months(),
		Rows:     rows,
		Extremes: extremes,
	})
}
