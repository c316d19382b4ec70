package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/simaogato/inventory-backend/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductStore is a mock implementation of ProductStore for testing
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.LineItemRecorded) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestService(store domain.ProductStore, publisher domain.EventPublisher) *SubmissionService {
	service := NewSubmissionService(ledger.NewLedger(), &domain.PricingCalculator{TaxRate: domain.DefaultTaxRate}, store, publisher)
	service.now = func() time.Time { return fixedNow }
	return service
}

func widgetInput() domain.RawInput {
	return domain.RawInput{
		AssetID:            "SKU-1",
		Name:               "Widget",
		Quantity:           "10",
		AmountPaid:         "100",
		TaxLines:           []string{"10"},
		ProjectedSalePrice: "15",
	}
}

func TestSubmit_WorkedExample(t *testing.T) {
	service := newTestService(nil, nil)

	result, err := service.Submit(context.Background(), widgetInput())

	require.NoError(t, err)
	item := result.Item
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "SKU-1", item.AssetID)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, 10, item.Quantity)
	assert.InDelta(t, 10.0, item.UnitPaid, 1e-9)
	assert.InDelta(t, 10.0, item.TaxPaid, 1e-9)
	assert.InDelta(t, 50.0, item.MarginPercent, 1e-9)
	assert.InDelta(t, 50.0, item.ProjectedEarnings, 1e-9)
	assert.InDelta(t, 15.0, item.ProjectedTaxExpected, 1e-9)
	assert.InDelta(t, 100.0, item.AmountPaid, 1e-9)
	assert.Equal(t, fixedNow, item.CreatedAt)
	assert.Nil(t, result.Product)
	assert.NoError(t, result.SyncErr)
	assert.Equal(t, 1, service.Ledger.Len())
}

func TestSubmit_MissingNameLeavesLedgerUnchanged(t *testing.T) {
	service := newTestService(nil, nil)
	_, err := service.Submit(context.Background(), widgetInput())
	require.NoError(t, err)

	input := widgetInput()
	input.Name = ""
	result, err := service.Submit(context.Background(), input)

	assert.Nil(t, result)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Product Name is required.", verrs[domain.FieldName])
	assert.Equal(t, 1, service.Ledger.Len())
}

func TestSubmit_FailedSubmissionDoesNotConsumeID(t *testing.T) {
	service := newTestService(nil, nil)
	ctx := context.Background()

	first, err := service.Submit(ctx, widgetInput())
	require.NoError(t, err)

	bad := widgetInput()
	bad.AmountPaid = "-5"
	_, err = service.Submit(ctx, bad)
	require.Error(t, err)

	second, err := service.Submit(ctx, widgetInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Item.ID)
	assert.Equal(t, int64(2), second.Item.ID)
}

func TestSubmit_QuantityDefaults(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
	}{
		{name: "blank quantity", quantity: ""},
		{name: "zero quantity", quantity: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(nil, nil)
			input := widgetInput()
			input.Quantity = tt.quantity
			input.AmountPaid = "40"

			result, err := service.Submit(context.Background(), input)

			require.NoError(t, err)
			assert.Equal(t, 1, result.Item.Quantity)
			assert.InDelta(t, 40.0, result.Item.UnitPaid, 1e-9)
			assert.InDelta(t, 40.0, result.Item.AmountPaid, 1e-9)
		})
	}
}

func TestSubmit_TwoSubmissionsTotals(t *testing.T) {
	service := newTestService(nil, nil)
	ctx := context.Background()

	first, err := service.Submit(ctx, widgetInput())
	require.NoError(t, err)

	second, err := service.Submit(ctx, domain.RawInput{
		AssetID:            "SKU-2",
		Name:               "Gadget",
		Quantity:           "3",
		AmountPaid:         "30",
		TaxLines:           []string{"1.5", "0.5"},
		ProjectedSalePrice: "8",
	})
	require.NoError(t, err)

	totals := service.GetTotals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.InDelta(t, first.Item.AmountPaid+second.Item.AmountPaid, totals.AmountPaid, 1e-9)
	assert.InDelta(t, first.Item.TaxPaid+second.Item.TaxPaid, totals.TaxPaid, 1e-9)
	assert.InDelta(t, first.Item.ProjectedTaxExpected+second.Item.ProjectedTaxExpected, totals.ProjectedTaxExpected, 1e-9)
	assert.InDelta(t, first.Item.ProjectedEarnings+second.Item.ProjectedEarnings, totals.ProjectedEarnings, 1e-9)
	assert.InDelta(t, 44.0, totals.ProjectedEarnings, 1e-9) // 50 + (8-10)*3

	assert.Equal(t, totals, service.GetTotals())
	assert.Len(t, service.ListItems(), 2)
}

func TestSubmit_SyncsProductAndPublishesEvent(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockProductStore)
	mockPublisher := new(MockEventPublisher)
	service := newTestService(mockStore, mockPublisher)

	stored := &domain.Product{ID: 42, Name: "Widget"}
	mockStore.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.LedgerID != nil && *p.LedgerID == 1 && p.AssetID == "SKU-1" && p.Price == 100 && p.ID == 0
	})).Return(stored, nil)
	mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e domain.LineItemRecorded) bool {
		return e.LedgerID == 1 && e.AssetID == "SKU-1" && e.OccurredAt.Equal(fixedNow)
	})).Return(nil)

	result, err := service.Submit(ctx, widgetInput())

	require.NoError(t, err)
	assert.Equal(t, stored, result.Product)
	assert.NotEqual(t, result.Item.ID, result.Product.ID, "store id is independent of ledger id")
	assert.NoError(t, result.SyncErr)
	mockStore.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestSubmit_StoreFailureKeepsLocalAppend(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockProductStore)
	service := newTestService(mockStore, nil)

	mockStore.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	result, err := service.Submit(ctx, widgetInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Error(t, result.SyncErr)
	assert.Contains(t, result.SyncErr.Error(), "connection refused")
	assert.Nil(t, result.Product)
	assert.Equal(t, 1, service.Ledger.Len())
	mockStore.AssertExpectations(t)
}

func TestSubmit_PublishFailureIsNotAnError(t *testing.T) {
	ctx := context.Background()
	mockPublisher := new(MockEventPublisher)
	service := newTestService(nil, mockPublisher)

	mockPublisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

	result, err := service.Submit(ctx, widgetInput())

	require.NoError(t, err)
	assert.NoError(t, result.SyncErr)
	assert.Equal(t, 1, service.Ledger.Len())
	mockPublisher.AssertExpectations(t)
}

func TestSubmit_InvalidInputSkipsCollaborators(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockProductStore)
	mockPublisher := new(MockEventPublisher)
	service := newTestService(mockStore, mockPublisher)

	_, err := service.Submit(ctx, domain.RawInput{})

	require.Error(t, err)
	mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Equal(t, 0, service.Ledger.Len())
}
