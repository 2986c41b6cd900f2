package services

import (
	"testing"
	"time"

	"bakeShop/entities"
	"bakeShop/models"
	"bakeShop/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	created      *models.Order_db
	createdItems []models.OrdersProducts_db
	err          error
}

func (m *mockOrderRepo) CreateOrder(order models.Order_db, prods []models.OrdersProducts_db) (int, string, error) {
	if m.err != nil {
		return 0, "", m.err
	}
	m.created = &order
	m.createdItems = prods
	return 7, "BAK-7", nil
}

func (m *mockOrderRepo) GetOrderItems(int) ([]entities.OrderLine, error) { return nil, m.err }
func (m *mockOrderRepo) GetOrderById(int) (entities.Order, error)       { return entities.Order{}, m.err }
func (m *mockOrderRepo) SearchOrders(models.OrderSearchData) ([]entities.Order, error) {
	return nil, m.err
}
func (m *mockOrderRepo) SetOrderStatus(int, string) error { return m.err }
func (m *mockOrderRepo) CancelOrder(int, int) error       { return m.err }

type mockSessionRepo struct {
	customerId int
	role       string
	exists     bool
	err        error
}

func (m *mockSessionRepo) CreateSession(int, string) (string, error) { return "session", m.err }
func (m *mockSessionRepo) CheckSession(string) (bool, error)         { return m.exists, m.err }
func (m *mockSessionRepo) DeleteSession(string) error                { return m.err }
func (m *mockSessionRepo) RefreshSession(string, time.Duration) error {
	return m.err
}
func (m *mockSessionRepo) GetCustomerSessionInfo(string) (int, string, bool, error) {
	return m.customerId, m.role, m.exists, m.err
}

func validPayload() models.OrderPayload {
	return models.OrderPayload{
		Items: []models.OrderPayloadItem{
			{ProductId: 7, ProductName: "Carrot Cake", Quantity: 2, Price: 45.00, Total: 90.00},
			{ProductId: 8, ProductName: "Lemon Tart", Quantity: 1, Price: 18.00, Total: 18.00},
		},
		TotalPrice: 108.00,
		OrderDate:  time.Now().UTC().Format(time.RFC3339),
		Status:     "pending",
	}
}

func newOrderService(repo *mockOrderRepo) OrderService {
	catalog := repository.NewStaticCatalog(repository.BakeryProducts())
	return NewOrderService(repo, catalog, &mockSessionRepo{})
}

func TestCreateOrder_PersistsAndReturnsOrderNumber(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	customerId := 12
	orderNumber, err := sut.CreateOrder(validPayload(), &customerId)
	require.NoError(t, err)
	assert.Equal(t, "BAK-7", orderNumber)

	require.NotNil(t, repo.created)
	assert.Equal(t, "pending", repo.created.Status)
	assert.InDelta(t, 108.00, repo.created.TotalPrice, 0.0001)
	assert.True(t, repo.created.CustomerId.Valid)
	assert.EqualValues(t, 12, repo.created.CustomerId.Int64)
	assert.Len(t, repo.createdItems, 2)
}

func TestCreateOrder_GuestOrderHasNoCustomer(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	_, err := sut.CreateOrder(validPayload(), nil)
	require.NoError(t, err)
	assert.False(t, repo.created.CustomerId.Valid)
}

func TestCreateOrder_EmptyPayloadRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	_, err := sut.CreateOrder(models.OrderPayload{Status: "pending"}, nil)
	require.ErrorIs(t, err, models.ErrBadRequest)
	assert.Nil(t, repo.created)
}

func TestCreateOrder_NonPositiveQuantityRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := validPayload()
	payload.Items[0].Quantity = 0
	_, err := sut.CreateOrder(payload, nil)
	require.ErrorIs(t, err, models.ErrBadRequest)
}

func TestCreateOrder_UnknownProductRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := validPayload()
	payload.Items[0].ProductId = 999
	_, err := sut.CreateOrder(payload, nil)
	require.ErrorIs(t, err, models.ErrBadRequest)
}

func TestCreateOrder_UnavailableProductRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := models.OrderPayload{
		Items: []models.OrderPayloadItem{
			// the seasonal galette is flagged unavailable in the catalog
			{ProductId: 10, ProductName: "Seasonal Fruit Galette", Quantity: 1, Price: 22.00, Total: 22.00},
		},
		TotalPrice: 22.00,
	}
	_, err := sut.CreateOrder(payload, nil)
	require.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestCreateOrder_TotalMismatchRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := validPayload()
	payload.TotalPrice = 90.00
	_, err := sut.CreateOrder(payload, nil)
	require.ErrorIs(t, err, models.ErrBadRequest)
}

func TestCreateOrder_NonPendingStatusRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := validPayload()
	payload.Status = "confirmed"
	_, err := sut.CreateOrder(payload, nil)
	require.ErrorIs(t, err, models.ErrBadRequest)
}

func TestCreateOrder_BadDateFallsBackToNow(t *testing.T) {
	repo := &mockOrderRepo{}
	sut := newOrderService(repo)

	payload := validPayload()
	payload.OrderDate = "yesterday-ish"
	_, err := sut.CreateOrder(payload, nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), repo.created.Date, time.Minute)
}
