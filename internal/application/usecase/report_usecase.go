package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filip867/Karl-Filip/internal/application/engine"
	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/internal/shared/types"
	"github.com/filip867/Karl-Filip/pkg/console"
)

// ReportUseCase owns one reporting session: the reference data, the engine
// built from it and the current report model. Imports and edits replace the
// model as a whole, so readers always see a consistent snapshot.
type ReportUseCase struct {
	newSource  repository.SourceFactory
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	mu     sync.RWMutex
	cfg    *types.Config
	source repository.SourceRepository
	engine *engine.Engine
	model  *entity.ReportModel

	now   func() time.Time
	newID func() string
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	newSource repository.SourceFactory,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		newSource:  newSource,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// ImportResult describes a successful import.
type ImportResult struct {
	Info     entity.ImportInfo     `json:"import"`
	Stats    entity.AggregateStats `json:"stats"`
	Total    int64                 `json:"total"`
	Unlisted []string              `json:"unlisted"`
	Message  string                `json:"message"`
}

// Configure loads the configuration, applies the command-line overrides and
// starts a fresh session over the resulting reference data.
func (uc *ReportUseCase) Configure(args *types.CLIArgs) (*types.Config, error) {
	cfg, err := uc.configRepo.LoadConfig(args.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := applyArgs(cfg, args); err != nil {
		return nil, err
	}

	ref, err := uc.configRepo.BuildReference(cfg)
	if err != nil {
		return nil, err
	}

	eng := engine.New(ref)
	model, err := initialModel(eng, cfg)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.cfg = cfg
	uc.engine = eng
	uc.model = model
	uc.source = uc.newSource(cfg.Profile)
	uc.mu.Unlock()

	return cfg, nil
}

// applyArgs lets explicitly set flags win over the loaded configuration.
func applyArgs(cfg *types.Config, args *types.CLIArgs) error {
	if args.Input != "" {
		cfg.Input = args.Input
	}
	if args.Profile != "" {
		cfg.Profile = args.Profile
	}
	if args.Year != 0 {
		cfg.Year = args.Year
		cfg.DefaultYear = args.Year
	}
	if args.ReportName != "" {
		cfg.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		cfg.ReportType = args.ReportType
	}
	if args.Dir != "" {
		cfg.Dir = args.Dir
	}
	if args.StartMonth != "" {
		if _, err := entity.ParseMonth(args.StartMonth); err != nil {
			return fmt.Errorf("%w: --start-month %q", types.ErrInvalidMonth, args.StartMonth)
		}
		cfg.ListingWindow.Start = args.StartMonth
	}
	if args.Months != 0 {
		cfg.ListingWindow.Months = args.Months
	}
	if args.ClientName != "" {
		cfg.ClientName = args.ClientName
	}
	if args.ReportDate != "" {
		cfg.ReportDate = args.ReportDate
	}
	if args.Trend {
		cfg.Trend = true
	}
	return nil
}

// initialModel is the engine's starting model with the editor fields the
// configuration presets.
func initialModel(eng *engine.Engine, cfg *types.Config) (*entity.ReportModel, error) {
	edits := entity.Edits{
		Bullets: &entity.Bullets{
			Revenue:   cfg.Bullets.Revenue,
			Occupancy: cfg.Bullets.Occupancy,
			Rate:      cfg.Bullets.Rate,
			Listings:  cfg.Bullets.Listings,
			Total:     cfg.Bullets.Total,
			Quality:   cfg.Bullets.Quality,
			Actions:   cfg.Bullets.Actions,
		},
	}
	if cfg.ReportDate != "" {
		edits.ReportDate = &cfg.ReportDate
	}

	window := entity.MonthWindow{Start: entity.Jan, Count: cfg.ListingWindow.Months}
	if cfg.ListingWindow.Start != "" {
		start, err := entity.ParseMonth(cfg.ListingWindow.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: listing window start %q", types.ErrInvalidMonth, cfg.ListingWindow.Start)
		}
		window.Start = start
	}
	edits.ListingWindow = &window

	return engine.ApplyEdits(eng.NewModel(), edits), nil
}

func (uc *ReportUseCase) session() (*engine.Engine, repository.SourceRepository, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.engine == nil {
		return nil, nil, fmt.Errorf("report session is not configured")
	}
	return uc.engine, uc.source, nil
}

// Import fetches the export at location and replaces the current-year
// figures. On failure the previous model stays in place.
func (uc *ReportUseCase) Import(ctx context.Context, location string) (*ImportResult, error) {
	eng, src, err := uc.session()
	if err != nil {
		return nil, err
	}
	doc, err := src.Fetch(ctx, location)
	if err != nil {
		uc.console.LogError("Import failed: %s", err)
		return nil, err
	}
	return uc.ingest(eng, location, doc)
}

// ImportUpload is Import for export bytes that were uploaded rather than
// fetched.
func (uc *ReportUseCase) ImportUpload(name string, data []byte) (*ImportResult, error) {
	eng, src, err := uc.session()
	if err != nil {
		return nil, err
	}
	doc, err := src.Decode(name, data)
	if err != nil {
		uc.console.LogError("Import failed: %s", err)
		return nil, err
	}
	return uc.ingest(eng, name, doc)
}

// ingest aggregates doc with eng and merges it into the model of the session
// eng belongs to. A session started by Configure in between rejects the merge.
func (uc *ReportUseCase) ingest(eng *engine.Engine, sourceName string, doc entity.SourceDocument) (*ImportResult, error) {
	agg := eng.IngestDocument(doc)

	info := entity.ImportInfo{
		ID:         uc.newID(),
		Source:     sourceName,
		ImportedAt: uc.now().UTC(),
		Rows:       agg.Stats.Rows,
		Listings:   len(agg.Listings),
	}

	uc.mu.Lock()
	if uc.engine != eng {
		uc.mu.Unlock()
		uc.console.LogError("Import failed: %s", types.ErrSessionChanged)
		return nil, types.ErrSessionChanged
	}
	uc.model = engine.Merge(uc.model, agg, &info)
	model := uc.model
	uc.mu.Unlock()

	result := &ImportResult{
		Info:     info,
		Stats:    agg.Stats,
		Total:    agg.TotalRevenue,
		Unlisted: engine.UnlistedListings(eng.Reference(), model),
		Message: fmt.Sprintf("Imported! %d listings · Total %d: %s",
			len(agg.Listings), agg.Year, console.FormatKr(agg.TotalRevenue)),
	}
	if result.Unlisted == nil {
		result.Unlisted = []string{}
	}

	uc.console.LogSuccess("%s", result.Message)
	if agg.Stats.DroppedMonth > 0 {
		uc.console.LogWarning("%d rows skipped: month label not recognised", agg.Stats.DroppedMonth)
	}
	if agg.Stats.OtherYear > 0 {
		uc.console.LogInfo("%d rows belong to another year than %d", agg.Stats.OtherYear, agg.Year)
	}
	if len(result.Unlisted) > 0 {
		uc.console.LogWarning("Listings not in the listing table (counted in totals only): %v", result.Unlisted)
	}
	return result, nil
}

// Snapshot returns a copy of the current model.
func (uc *ReportUseCase) Snapshot() (*entity.ReportModel, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.model == nil {
		return nil, fmt.Errorf("report session is not configured")
	}
	return uc.model.Clone(), nil
}

// ApplyEdits updates the editor-owned fields and returns the new model.
func (uc *ReportUseCase) ApplyEdits(edits entity.Edits) (*entity.ReportModel, error) {
	for _, m := range edits.ChartMonths {
		if !m.Valid() {
			return nil, fmt.Errorf("%w: chart month %d", types.ErrInvalidMonth, m)
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.model == nil {
		return nil, fmt.Errorf("report session is not configured")
	}
	uc.model = engine.ApplyEdits(uc.model, edits)
	return uc.model.Clone(), nil
}

// Listings returns the listing table for window, with its extremes. A zero
// window means the model's own listing window.
func (uc *ReportUseCase) Listings(window entity.MonthWindow) ([]entity.ListingRow, entity.Extremes, entity.MonthWindow, error) {
	eng, _, err := uc.session()
	if err != nil {
		return nil, nil, entity.MonthWindow{}, err
	}
	model, err := uc.Snapshot()
	if err != nil {
		return nil, nil, entity.MonthWindow{}, err
	}
	if window == (entity.MonthWindow{}) {
		window = model.ListingWindow
	}
	window = window.Normalized()
	return eng.ListingTable(model), eng.Extremes(model, window), window, nil
}

// Export bundles the current model with its derived tables.
func (uc *ReportUseCase) Export() (repository.ReportExport, error) {
	eng, _, err := uc.session()
	if err != nil {
		return repository.ReportExport{}, err
	}
	model, err := uc.Snapshot()
	if err != nil {
		return repository.ReportExport{}, err
	}
	return repository.ReportExport{
		Model:    model,
		Listings: eng.ListingTable(model),
		Extremes: eng.Extremes(model, model.ListingWindow),
		Unlisted: engine.UnlistedListings(eng.Reference(), model),
	}, nil
}

// Config returns the configuration the session was started with.
func (uc *ReportUseCase) Config() *types.Config {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.cfg
}
