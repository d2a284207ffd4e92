package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var (
	errInvalidBucket = fmt.Errorf("%w: bucket debe ser dia, semana o mes", domain.ErrInvalidInput)
	errInvalidRange  = fmt.Errorf("%w: fecha final anterior a la inicial", domain.ErrInvalidInput)
)

// DashboardUseCase dashboard de producción (solo lectura).
type DashboardUseCase struct {
	repo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Build carga todas las filas y arma el dashboard con los filtros de la consulta.
func (uc *DashboardUseCase) Build(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	f, err := ParseFilter(req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	rows, err := uc.repo.LoadProductionRows(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(rows, f), nil
}

// FilteredBatches tabla de blocos filtrada (una fila por código) para exportación.
func (uc *DashboardUseCase) FilteredBatches(ctx context.Context, req dto.DashboardRequest) ([]dto.BatchRow, error) {
	d, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return d.Batches, nil
}
