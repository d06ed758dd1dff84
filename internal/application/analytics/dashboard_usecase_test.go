package analytics

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/internal/infrastructure/localcache"
)

type fakeLLM struct{ report string }

func (f *fakeLLM) SuggestPrice(ctx context.Context, weight float64, origin, destination, parcelType string) (int64, error) {
	return 5000, nil
}

func (f *fakeLLM) LogisticsReport(ctx context.Context, stats any) (string, error) {
	return f.report, nil
}

func newDashboardFixture(t *testing.T) *DashboardUseCase {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := localcache.New(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })

	ctx := context.Background()
	require.NoError(t, cache.Parcels.Replace(ctx, []*entity.Parcel{
		{ID: "p1", Origin: "Bata", Destination: "Malabo", Status: entity.StatusDelivered, Cost: decimal.NewFromInt(5000)},
		{ID: "p2", Origin: "Malabo", Destination: "Bata", Status: entity.StatusInTransit, Cost: decimal.NewFromInt(3000)},
		{ID: "p3", Origin: "Malabo", Destination: "Ebebiyín", Status: entity.StatusReceived, Cost: decimal.NewFromInt(2000)},
		{ID: "p4", Origin: "Ebebiyín", Destination: "Mongomo", Status: entity.StatusInWarehouse, Cost: decimal.NewFromInt(1000)},
	}))
	require.NoError(t, cache.Customers.Replace(ctx, []*entity.Customer{{ID: "c1"}, {ID: "c2"}}))

	return NewDashboardUseCase(cache.Parcels, cache.Customers, &fakeLLM{report: "todo en orden"})
}

func TestStats_AdminMalabo(t *testing.T) {
	uc := newDashboardFixture(t)
	admin := entity.Actor{Role: entity.RoleAdmin, Branch: "Malabo"}

	stats, err := uc.Stats(context.Background(), admin)
	require.NoError(t, err)

	// Malabo ve p1 (llega), p2 y p3 (salen); p4 no lo toca.
	assert.Equal(t, 3, stats.TotalParcels)
	assert.Equal(t, 1, stats.Delivered)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.InTransit)
	assert.Equal(t, 0, stats.InWarehouse)
	assert.Equal(t, 1, stats.ByStatus[entity.StatusReceived])

	// Recaudación solo sobre origen Malabo: p2 + p3.
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(5000)), "recaudación %s", stats.Revenue)
	assert.Equal(t, 2, stats.TotalCustomers)
}

func TestStats_SuperAdminGlobal(t *testing.T) {
	uc := newDashboardFixture(t)
	boss := entity.Actor{Role: entity.RoleSuperAdmin, Branch: entity.BranchSedeCentral}

	stats, err := uc.Stats(context.Background(), boss)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalParcels)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(11000)))
}

func TestRevenue_OperadorDenegado(t *testing.T) {
	uc := newDashboardFixture(t)
	operador := entity.Actor{Role: entity.RoleOperator, Branch: "Malabo"}

	_, err := uc.Revenue(context.Background(), operador)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// En los agregados generales la cifra queda en cero, sin error.
	stats, err := uc.Stats(context.Background(), operador)
	require.NoError(t, err)
	assert.True(t, stats.Revenue.IsZero())
}

func TestReport_DelegaEnElModelo(t *testing.T) {
	uc := newDashboardFixture(t)
	admin := entity.Actor{Role: entity.RoleAdmin, Branch: "Malabo"}

	resp, err := uc.Report(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "todo en orden", resp.Report)
}
