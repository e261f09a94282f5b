package stock

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura: stock actual de un producto y libro
// de movimientos con filtros. Los repos van atados al pool (sin transacción).
type QueryUseCase struct {
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, productRepo: productRepo}
}

// GetStock devuelve cantidad y estado de stock de un producto del tenant.
func (uc *QueryUseCase) GetStock(ctx context.Context, tenantID, productID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	rec, err := uc.stockRepo.Get(tenantID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:            rec.ProductID,
		Quantity:             rec.Quantity,
		MinimumStockQuantity: rec.MinimumStockQuantity,
		Status:               rec.Status,
		UpdatedAt:            rec.UpdatedAt,
	}, nil
}

// ListMovements lista el libro de movimientos del tenant, más recientes
// primero, con filtros por producto, tipo, razón y rango de fechas.
func (uc *QueryUseCase) ListMovements(ctx context.Context, tenantID string, in dto.MovementListRequest) ([]*dto.MovementResponse, error) {
	in.DefaultPage()

	filter := repository.MovementFilter{
		ProductID:    in.ProductID,
		MovementType: in.Type,
		Reason:       in.Reason,
	}
	from, err := parseDate(in.From)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	filter.From = from
	to, err := parseDate(in.To)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	filter.To = to

	list, err := uc.movRepo.ListByTenant(tenantID, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// parseDate acepta RFC 3339 o 2006-01-02; vacío devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.MovementType,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		ReferenceID:      m.ReferenceID,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
