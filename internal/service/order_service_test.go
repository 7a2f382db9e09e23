package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bistro-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validOrderJSON = `{
	"shopId": "s001",
	"shopName": "Bistro Parisien",
	"fullName": "Jeanne Dupont",
	"email": "jeanne@example.fr",
	"phone": "0612345678",
	"cart": [
		{"productId": 1, "name": "Croque Monsieur", "unitPrice": 10, "qty": 2},
		{"productId": 2, "name": "Café", "unitPrice": 5.5, "qty": 1}
	],
	"totals": {"ht": 25.5, "vat": 5.1, "ttc": 30.6}
}`

func orderRequest(t *testing.T, body string) *model.OrderRequest {
	t.Helper()
	var req model.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

type orderServiceMocks struct {
	repo     *MockOrderRepository
	notifier *MockNotifier
	tx       *MockTx
}

func newOrderServiceUnderTest() (OrderService, orderServiceMocks) {
	m := orderServiceMocks{
		repo:     new(MockOrderRepository),
		notifier: new(MockNotifier),
		tx:       new(MockTx),
	}
	return NewOrderService(m.repo, m.notifier, zerolog.Nop()), m
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	var stored *model.OrderRecord
	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.OrderRecord")).
		Run(func(args mock.Arguments) { stored = args.Get(2).(*model.OrderRecord) }).
		Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("OrderPlaced", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)

	resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))

	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, stored)

	assert.Equal(t, stored.ID.String(), resp.ID)
	assert.Equal(t, stored.CreatedAt, resp.CreatedAt)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.Equal(t, "s001", stored.ShopID)
	assert.Equal(t, "Jeanne Dupont", stored.FullName)
	assert.Equal(t, "25.50", stored.HT.StringFixed(2))
	assert.Equal(t, "5.10", stored.VAT.StringFixed(2))
	assert.Equal(t, "30.60", stored.TTC.StringFixed(2))
	assert.JSONEq(t, `[{"productId":1,"name":"Croque Monsieur","unitPrice":10,"qty":2},{"productId":2,"name":"Café","unitPrice":5.5,"qty":1}]`, string(stored.Cart))

	m.repo.AssertExpectations(t)
	m.tx.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.tx.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestOrderService_CreateOrder_CreatedAtFitsTimestampPrecision(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("OrderPlaced", ctx, mock.AnythingOfType("*model.OrderRecord")).Return(nil)

	for i := 0; i < 20; i++ {
		resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))
		require.NoError(t, err)
		assert.Equal(t, resp.CreatedAt.Truncate(time.Microsecond), resp.CreatedAt)
		assert.Equal(t, time.UTC, resp.CreatedAt.Location())
	}
}

func TestOrderService_CreateOrder_TwoSubmissionsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.Anything).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("OrderPlaced", ctx, mock.Anything).Return(nil)

	first, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))
	require.NoError(t, err)
	second, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	m.repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestOrderService_CreateOrder_ValidationFailureSkipsDatabase(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	body := `{
		"shopId": "s001", "shopName": "Bistro Parisien", "fullName": "Jeanne Dupont",
		"email": "jeanne@example.fr", "phone": "0612345678",
		"cart": [{"productId": 1, "qty": 1}],
		"totals": {"ht": 10, "ttc": 12}
	}`

	resp, err := service.CreateOrder(ctx, orderRequest(t, body))

	assert.Nil(t, resp)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"totals.vat": msgRequired}, verr.Fields)

	m.repo.AssertNotCalled(t, "BeginTx", mock.Anything)
	m.notifier.AssertNotCalled(t, "OrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_BeginTxFails(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(nil, errors.New("connection refused"))

	resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to create order")
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InsertFailsRollsBack(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.Anything).Return(errors.New("insert failed"))
	m.tx.On("Rollback", ctx).Return(nil)

	resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))

	require.Error(t, err)
	assert.Nil(t, resp)
	m.tx.AssertCalled(t, "Rollback", ctx)
	m.tx.AssertNotCalled(t, "Commit", mock.Anything)
	m.notifier.AssertNotCalled(t, "OrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_CommitFailsRollsBack(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.Anything).Return(nil)
	m.tx.On("Commit", ctx).Return(errors.New("commit failed"))
	m.tx.On("Rollback", ctx).Return(nil)

	resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))

	require.Error(t, err)
	assert.Nil(t, resp)
	m.tx.AssertExpectations(t)
	m.notifier.AssertNotCalled(t, "OrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_NotificationFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	service, m := newOrderServiceUnderTest()

	m.repo.On("BeginTx", ctx).Return(m.tx, nil)
	m.repo.On("Create", ctx, m.tx, mock.Anything).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("OrderPlaced", ctx, mock.Anything).Return(errors.New("sendgrid down"))

	resp, err := service.CreateOrder(ctx, orderRequest(t, validOrderJSON))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	m.tx.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	record := &model.OrderRecord{ID: id, ShopID: "s001", CreatedAt: time.Now()}

	tests := []struct {
		name      string
		repoOrder *model.OrderRecord
		repoErr   error
		wantErr   error
	}{
		{name: "found", repoOrder: record},
		{name: "not found", wantErr: model.ErrOrderNotFound},
		{name: "repository error", repoErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newOrderServiceUnderTest()
			if tt.repoOrder != nil {
				m.repo.On("GetByID", ctx, id).Return(tt.repoOrder, nil)
			} else {
				m.repo.On("GetByID", ctx, id).Return(nil, tt.repoErr)
			}

			got, err := service.GetByID(ctx, id)

			switch {
			case tt.repoOrder != nil:
				require.NoError(t, err)
				assert.Equal(t, record, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to get order")
			}
		})
	}
}
