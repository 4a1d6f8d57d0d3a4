package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimatica/chemstock-api/internal/application/dto"
	"github.com/quimatica/chemstock-api/internal/application/inventory"
	"github.com/quimatica/chemstock-api/internal/domain"
	"github.com/quimatica/chemstock-api/internal/domain/entity"
	"github.com/quimatica/chemstock-api/internal/domain/repository"
	"github.com/quimatica/chemstock-api/internal/testutil"
)

func newUseCase(t *testing.T) (*inventory.UpdateStockUseCase, *testutil.MemStore, int64) {
	t.Helper()
	store := testutil.NewMemStore()
	product := &entity.Product{Name: "Formaldehyde", CASNumber: "50-00-0", Unit: entity.UnitKG}
	require.NoError(t, store.ProductRepo().Create(product))
	require.NoError(t, store.InventoryRepo().Init(product.ID))
	uc := inventory.NewUpdateStockUseCase(store.TxRunner(), store.ProductRepo())
	return uc, store, product.ID
}

func apply(t *testing.T, uc *inventory.UpdateStockUseCase, productID int64, kind string, qty int64) *dto.StockUpdateResponse {
	t.Helper()
	out, err := uc.ApplyMovement(context.Background(), dto.UpdateStockRequest{
		ProductID:    productID,
		MovementType: kind,
		Quantity:     decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
	return out
}

func TestApplyMovement_RejectsInvalidKind(t *testing.T) {
	uc, store, id := newUseCase(t)
	_, err := uc.ApplyMovement(context.Background(), dto.UpdateStockRequest{
		ProductID:    id,
		MovementType: "TRANSFER",
		Quantity:     decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Movements, "a rejected movement must not be logged")
}

func TestApplyMovement_RejectsNonPositiveQuantity(t *testing.T) {
	uc, store, id := newUseCase(t)
	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := uc.ApplyMovement(context.Background(), dto.UpdateStockRequest{
			ProductID:    id,
			MovementType: entity.MovementIN,
			Quantity:     qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %s must be rejected", qty)
	}
	assert.Empty(t, store.Movements)
}

func TestApplyMovement_UnknownProduct(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.ApplyMovement(context.Background(), dto.UpdateStockRequest{
		ProductID:    999,
		MovementType: entity.MovementIN,
		Quantity:     decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_InOutSequence(t *testing.T) {
	uc, store, id := newUseCase(t)

	out := apply(t, uc, id, entity.MovementIN, 100)
	assert.True(t, out.PreviousStock.Equal(decimal.Zero), "previous = %s", out.PreviousStock)
	assert.True(t, out.NewStock.Equal(decimal.NewFromInt(100)), "new = %s", out.NewStock)

	out = apply(t, uc, id, entity.MovementOUT, 30)
	assert.True(t, out.PreviousStock.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.NewStock.Equal(decimal.NewFromInt(70)))

	// an OUT larger than the balance is rejected and leaves no trace
	_, err := uc.ApplyMovement(context.Background(), dto.UpdateStockRequest{
		ProductID:    id,
		MovementType: entity.MovementOUT,
		Quantity:     decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.CurrentStock.Equal(decimal.NewFromInt(70)))
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(1000)))

	assert.True(t, store.Balances[id].Quantity.Equal(decimal.NewFromInt(70)), "balance must be unchanged after the rejection")
	require.Len(t, store.Movements, 2)

	// history newest first: (OUT,30,100->70) then (IN,100,0->100)
	history, err := store.MovementRepo().ListByProduct(id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.MovementOUT, history[0].Kind)
	assert.True(t, history[0].PreviousStock.Equal(decimal.NewFromInt(100)))
	assert.True(t, history[0].NewStock.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, entity.MovementIN, history[1].Kind)
	assert.True(t, history[1].PreviousStock.Equal(decimal.Zero))
	assert.True(t, history[1].NewStock.Equal(decimal.NewFromInt(100)))
}

func TestApplyMovement_ReplayMatchesSum(t *testing.T) {
	uc, store, id := newUseCase(t)

	seq := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementIN, 50},
		{entity.MovementIN, 25},
		{entity.MovementOUT, 10},
		{entity.MovementIN, 5},
		{entity.MovementOUT, 40},
		{entity.MovementOUT, 30},
	}
	expected := decimal.Zero
	for _, step := range seq {
		apply(t, uc, id, step.kind, step.qty)
		if step.kind == entity.MovementIN {
			expected = expected.Add(decimal.NewFromInt(step.qty))
		} else {
			expected = expected.Sub(decimal.NewFromInt(step.qty))
		}
	}

	assert.True(t, store.Balances[id].Quantity.Equal(expected),
		"balance %s, expected sum(IN)-sum(OUT) = %s", store.Balances[id].Quantity, expected)
	assert.False(t, store.Balances[id].Quantity.IsNegative())

	// every record satisfies new = previous +/- quantity and chains onto the
	// previous record's result
	prior := decimal.Zero
	for _, m := range store.Movements {
		assert.True(t, m.Quantity.IsPositive())
		assert.True(t, m.PreviousStock.Equal(prior), "movement %d must start from the prior balance", m.ID)
		want := m.PreviousStock.Add(m.Quantity)
		if m.Kind == entity.MovementOUT {
			want = m.PreviousStock.Sub(m.Quantity)
		}
		assert.True(t, m.NewStock.Equal(want))
		prior = m.NewStock
	}
}

func TestApplyMovement_StorageFailureRollsBack(t *testing.T) {
	uc, store, id := newUseCase(t)
	apply(t, uc, id, entity.MovementIN, 10)

	// a failing transaction publishes nothing
	failing := &failingTxRunner{}
	broken := inventory.NewUpdateStockUseCase(failing, store.ProductRepo())
	_, err := broken.ApplyMovement(context.Background(), dto.UpdateStockRequest{
		ProductID:    id,
		MovementType: entity.MovementIN,
		Quantity:     decimal.NewFromInt(5),
	})
	require.Error(t, err)
	assert.True(t, store.Balances[id].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, store.Movements, 1)
}

type failingTxRunner struct{}

func (r *failingTxRunner) Run(_ context.Context, _ func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	return errors.New("begin transaction: connection refused")
}
