package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	"github.com/ecotreat/portal-api/pkg/logger"
)

// Renderer serializes a report model to the downloadable document container.
type Renderer interface {
	Render(ctx context.Context, model *entity.ReportModel) ([]byte, error)
}

// ExportUseCase runs the build -> render pipeline for one calculator export.
// The whole artifact is assembled in memory before the HTTP handoff, so an
// abandoned request never leaves a partial file behind.
type ExportUseCase struct {
	renderer Renderer
	log      *logger.Logger
}

// NewExportUseCase builds the export use case.
func NewExportUseCase(renderer Renderer, log *logger.Logger) *ExportUseCase {
	return &ExportUseCase{renderer: renderer, log: log}
}

// Export builds the model for kind, renders it, and returns the bytes plus the
// kind's fixed filename. Failures carry the originating cause and are reported
// to the caller, never retried here.
func (uc *ExportUseCase) Export(ctx context.Context, kind string, res CalculatorResult) ([]byte, string, error) {
	model, err := BuildModel(kind, res)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownReportKind) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", domain.ErrReportBuild, err)
	}

	data, err := uc.renderer.Render(ctx, model)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrReportRender, err)
	}

	filename, _ := Filename(kind)
	uc.log.Info().Str("kind", kind).Str("filename", filename).Int("bytes", len(data)).Msg("report exported")
	return data, filename, nil
}
