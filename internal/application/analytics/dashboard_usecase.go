// Package analytics agrega las cifras del panel operativo y el reporte por IA.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/application/ports"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/internal/domain/visibility"
)

const currency = "FCFA"

// DashboardUseCase calcula los agregados del panel sobre el ámbito visible del actor.
type DashboardUseCase struct {
	parcels   repository.ParcelStore
	customers repository.CustomerStore
	llm       ports.LLMService
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(parcels repository.ParcelStore, customers repository.CustomerStore, llm ports.LLMService) *DashboardUseCase {
	return &DashboardUseCase{parcels: parcels, customers: customers, llm: llm}
}

// Stats calcula totales y desglose por estado sobre los paquetes visibles.
// La recaudación suma solo paquetes originados en la sucursal del actor
// (SUPER_ADMIN agrega sobre todo) y se deniega por completo al OPERATOR.
func (uc *DashboardUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.DashboardStats, error) {
	all, err := uc.parcels.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := visibility.FilterParcels(actor.Role, actor.Branch, all)

	stats := &dto.DashboardStats{
		TotalParcels: len(visible),
		ByStatus:     make(map[string]int, len(entity.ParcelStatuses)),
		Revenue:      decimal.Zero,
		Currency:     currency,
	}
	for _, s := range entity.ParcelStatuses {
		stats.ByStatus[s] = 0
	}

	for _, p := range visible {
		stats.ByStatus[p.Status]++
		switch p.Status {
		case entity.StatusDelivered:
			stats.Delivered++
		default:
			stats.Pending++
		}
		if p.Status == entity.StatusInTransit {
			stats.InTransit++
		}
		if p.Status == entity.StatusInWarehouse {
			stats.InWarehouse++
		}
	}

	if visibility.CanViewRevenue(actor.Role) {
		for _, p := range all {
			if visibility.InRevenueScope(actor.Role, actor.Branch, p) {
				stats.Revenue = stats.Revenue.Add(p.Cost)
			}
		}
	}

	customers, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = len(customers)

	return stats, nil
}

// Revenue devuelve solo la cifra de recaudación del ámbito del actor.
// OPERATOR recibe una denegación tipada, no un cero silencioso.
func (uc *DashboardUseCase) Revenue(ctx context.Context, actor entity.Actor) (decimal.Decimal, error) {
	if !visibility.CanViewRevenue(actor.Role) {
		return decimal.Zero, domain.ErrForbidden
	}
	all, err := uc.parcels.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range all {
		if visibility.InRevenueScope(actor.Role, actor.Branch, p) {
			total = total.Add(p.Cost)
		}
	}
	return total, nil
}

// Report genera el resumen ejecutivo por IA a partir de las cifras del actor.
func (uc *DashboardUseCase) Report(ctx context.Context, actor entity.Actor) (*dto.ReportResponse, error) {
	stats, err := uc.Stats(ctx, actor)
	if err != nil {
		return nil, err
	}

	branch := actor.Branch
	if actor.Role == entity.RoleSuperAdmin {
		branch = "Global"
	}
	payload := map[string]any{
		"branch":          branch,
		"total_parcels":   stats.TotalParcels,
		"total_revenue":   stats.Revenue,
		"delivered_count": stats.Delivered,
		"pending_count":   stats.Pending,
		"currency":        currency,
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	report, err := uc.llm.LogisticsReport(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{Report: report}, nil
}
