package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fleet-dashboard-service/internal/metrics"
	"fleet-dashboard-service/internal/model"
	"fleet-dashboard-service/internal/session"
)

// RecordSource is the read side of the report tables.
type RecordSource interface {
	FetchTripRecords(ctx context.Context) ([]model.TripRecord, error)
	FetchAlcoholRecords(ctx context.Context) ([]model.AlcoholRecord, error)
	OperationDates(ctx context.Context) ([]time.Time, error)
	DefaultOperationDate(ctx context.Context) (time.Time, bool, error)
}

type ExcelGenerator interface {
	Generate(result model.DashboardResult) ([]byte, error)
}

type PDFGenerator interface {
	Generate(result model.DashboardResult) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

type DashboardService struct {
	source       RecordSource
	sessions     *session.Store
	excel        ExcelGenerator
	pdf          PDFGenerator
	rankingLimit int
}

// NewDashboardService wires the service. pdf may be nil, in which case PDF
// export reports ErrExportUnavailable.
func NewDashboardService(source RecordSource, sessions *session.Store, excel ExcelGenerator, pdf PDFGenerator, rankingLimit int) *DashboardService {
	return &DashboardService{
		source:       source,
		sessions:     sessions,
		excel:        excel,
		pdf:          pdf,
		rankingLimit: rankingLimit,
	}
}

func (s *DashboardService) DateOptions(ctx context.Context) (*model.DateOptions, error) {
	dates, err := s.source.OperationDates(ctx)
	if err != nil {
		return nil, err
	}
	first, ok, err := s.source.DefaultOperationDate(ctx)
	if err != nil {
		return nil, err
	}
	options := model.NewDateOptions(dates, first, ok)
	return &options, nil
}

// QueryDashboard computes the dashboard for the query date from a fresh read
// of the source and makes it the session's current bundle.
func (s *DashboardService) QueryDashboard(ctx context.Context, query model.DashboardQuery) (*model.DashboardResult, error) {
	query = query.Normalize()

	result, err := s.compute(ctx, query.Date)
	if err != nil {
		return nil, err
	}

	s.sessions.Save(query.SessionID, result)
	return result, nil
}

// OpenDetail resolves a chart click against the session's last bundle and
// opens the drill-down modal with the matching rows.
func (s *DashboardService) OpenDetail(cmd model.DetailCommand) (model.DrillDownModal, error) {
	if cmd.SeriesIndex < 0 {
		return model.DrillDownModal{}, fmt.Errorf("%w: series_index must not be negative", ErrInvalidInput)
	}
	if cmd.Hour < 0 {
		return model.DrillDownModal{}, fmt.Errorf("%w: hour must not be negative", ErrInvalidInput)
	}

	direction := cmd.Direction()
	return s.sessions.UpdateModal(cmd.SessionID, func(bundle *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		if bundle == nil {
			return current, ErrNotQueried
		}
		rows := metrics.ResolveDetail(bundle, direction, cmd.Hour)
		return current.Open(direction, cmd.Hour, rows), nil
	})
}

func (s *DashboardService) CloseDetail(sessionID uuid.UUID) model.DrillDownModal {
	modal, _ := s.sessions.UpdateModal(sessionID, func(_ *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		return current.Close(), nil
	})
	return modal
}

// ClearDashboard discards the session bundle after a query without a date,
// so later chart clicks cannot resolve against a previous date.
func (s *DashboardService) ClearDashboard(sessionID uuid.UUID) {
	s.sessions.Clear(sessionID)
}

func (s *DashboardService) Modal(sessionID uuid.UUID) model.DrillDownModal {
	return s.sessions.Modal(sessionID)
}

// ExportXLSX renders the dashboard of date as a workbook. Exports do not
// touch the session bundle.
func (s *DashboardService) ExportXLSX(ctx context.Context, date time.Time) (*ExportResult, error) {
	if s.excel == nil {
		return nil, ErrExportUnavailable
	}
	result, err := s.compute(ctx, date)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*result)
	if err != nil {
		return nil, fmt.Errorf("generate workbook: %w", err)
	}
	return &ExportResult{FileName: exportFileName(result.Date, "xlsx"), Content: content}, nil
}

func (s *DashboardService) ExportPDF(ctx context.Context, date time.Time) (*ExportResult, error) {
	if s.pdf == nil {
		return nil, ErrExportUnavailable
	}
	result, err := s.compute(ctx, date)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*result)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return &ExportResult{FileName: exportFileName(result.Date, "pdf"), Content: content}, nil
}

func (s *DashboardService) compute(ctx context.Context, date time.Time) (*model.DashboardResult, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var (
		trips   []model.TripRecord
		alcohol []model.AlcoholRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.source.FetchTripRecords(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		alcohol, err = s.source.FetchAlcoholRecords(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := metrics.ComputeDashboard(trips, alcohol, date)
	if s.rankingLimit > 0 && len(result.Ranking) > s.rankingLimit {
		result.Ranking = result.Ranking[:s.rankingLimit]
	}
	return result, nil
}

func exportFileName(date time.Time, ext string) string {
	return fmt.Sprintf("fleet-dashboard-%s.%s", date.Format(model.DateLayout), ext)
}
