package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/export"
)

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

var progressExportHeaders = []string{"Alumno", "Modulo", "Leccion", "Respondidas", "Total", "Estado"}

type exportProgressRepository interface {
	ListAll(ctx context.Context) ([]models.ProgressRow, error)
}

// ExportService renders progress listings as downloadable documents.
type ExportService struct {
	progress exportProgressRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(progress exportProgressRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		progress: progress,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ExportProgress renders the cross-student progress listing in the requested
// format and returns the payload with its content type.
func (s *ExportService) ExportProgress(ctx context.Context, format ExportFormat) ([]byte, string, error) {
	rows, err := s.progress.ListAll(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list progress")
	}

	dataset := export.Dataset{Headers: progressExportHeaders}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Alumno":      row.NombreAlumno,
			"Modulo":      row.NombreModulo,
			"Leccion":     row.TituloLeccion,
			"Respondidas": strconv.Itoa(row.TotalRespondidas),
			"Total":       strconv.Itoa(row.TotalPreguntas),
			"Estado":      row.Estado,
		})
	}

	switch format {
	case ExportCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportPDF:
		payload, err := s.pdf.Render(dataset, "Progreso de alumnos")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("formato no soportado: %s", format))
	}
}
