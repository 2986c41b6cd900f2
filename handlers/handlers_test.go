package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"bakeShop/currency"
	"bakeShop/entities"
	"bakeShop/models"
	"bakeShop/repository"
	"bakeShop/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	nextId int
	orders []models.Order_db
}

func (f *fakeOrderRepo) CreateOrder(order models.Order_db, prods []models.OrdersProducts_db) (int, string, error) {
	f.nextId++
	order.Id = f.nextId
	f.orders = append(f.orders, order)
	return f.nextId, "BAK-" + strconv.Itoa(f.nextId), nil
}

func (f *fakeOrderRepo) GetOrderItems(int) ([]entities.OrderLine, error) { return nil, nil }
func (f *fakeOrderRepo) GetOrderById(int) (entities.Order, error) {
	return entities.Order{}, models.ErrNotFoundError
}
func (f *fakeOrderRepo) SearchOrders(models.OrderSearchData) ([]entities.Order, error) {
	return nil, models.ErrNotFoundError
}
func (f *fakeOrderRepo) SetOrderStatus(int, string) error { return nil }
func (f *fakeOrderRepo) CancelOrder(int, int) error       { return nil }

type fakeSessionRepo struct{}

func (fakeSessionRepo) CreateSession(int, string) (string, error)          { return "s", nil }
func (fakeSessionRepo) CheckSession(string) (bool, error)                  { return false, nil }
func (fakeSessionRepo) DeleteSession(string) error                         { return nil }
func (fakeSessionRepo) RefreshSession(string, time.Duration) error         { return nil }
func (fakeSessionRepo) GetCustomerSessionInfo(string) (int, string, bool, error) {
	return 0, "", false, nil
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) GetCustomerByEmail(string) (models.Customer_db, bool, error) {
	return models.Customer_db{}, false, nil
}
func (fakeCustomerRepo) GetCustomerById(int) (models.Customer_db, bool, error) {
	return models.Customer_db{}, false, nil
}
func (fakeCustomerRepo) AddNewCustomer(models.Customer_db) (int, error) { return 1, nil }
func (fakeCustomerRepo) ChangePassword(int, string) error               { return nil }
func (fakeCustomerRepo) EncryptPassword(p string) (string, error)       { return p, nil }
func (fakeCustomerRepo) ComparePasswords(a, b string) bool              { return a == b }

func newStorefront(t *testing.T) (*httptest.Server, *fakeOrderRepo) {
	t.Helper()
	catalog := repository.NewStaticCatalog(repository.BakeryProducts())
	orderRepo := &fakeOrderRepo{}
	ordService := services.NewOrderService(orderRepo, catalog, fakeSessionRepo{})
	cusService := services.NewCustomerService(fakeCustomerRepo{}, fakeSessionRepo{})
	formatter := currency.MustFormatter("en-US", "USD")

	// The order-creation endpoint runs as its own server, the way the real
	// storefront talks to a separate backend.
	backendHandler := NewHandler(HandlerParams{
		OrdService: ordService,
		CusService: cusService,
		Catalog:    catalog,
		Formatter:  formatter,
	})
	backendRouter := mux.NewRouter()
	backendRouter.HandleFunc("/orders", backendHandler.CreateOrder).Methods("POST")
	backend := httptest.NewServer(backendRouter)
	t.Cleanup(backend.Close)

	ha := NewHandler(HandlerParams{
		Carts:      services.NewCartManager(repository.NewMemoryStore()),
		Checkout:   services.NewCheckoutService(backend.URL+"/orders", nil),
		OrdService: ordService,
		CusService: cusService,
		Catalog:    catalog,
		Formatter:  formatter,
	})
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.UpdateCartItem).Methods("PATCH")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, orderRepo
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeCart(t *testing.T, resp *http.Response) entities.CartView {
	t.Helper()
	defer resp.Body.Close()
	var view entities.CartView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func cookieClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func TestStorefront_AddBrowseCheckoutFlow(t *testing.T) {
	srv, orderRepo := newStorefront(t)
	client := cookieClient(t)

	// add carrot cake x1
	resp := doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 7, Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// add lemon tart x3
	resp = doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 8, Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	view := decodeCart(t, doJSON(t, client, "GET", srv.URL+"/cart", nil))
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 4, view.TotalItems)
	assert.InDelta(t, 99.00, view.TotalPrice, 0.0001)
	assert.Contains(t, view.TotalDisplay, "99")

	// drop the cake via a zero-quantity update
	view = decodeCart(t, doJSON(t, client, "PATCH", srv.URL+"/cart",
		models.UpdateCartItemRequest{LineId: view.Lines[0].Id, Quantity: 0}))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Lemon Tart", view.Lines[0].Name)
	assert.InDelta(t, 54.00, view.TotalPrice, 0.0001)

	// checkout against the backend order endpoint
	resp = doJSON(t, client, "POST", srv.URL+"/cart/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmation map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&confirmation))
	resp.Body.Close()
	assert.Equal(t, "BAK-1", confirmation["order_number"])

	require.Len(t, orderRepo.orders, 1)
	assert.InDelta(t, 54.00, orderRepo.orders[0].TotalPrice, 0.0001)

	// the cart is empty after a successful submission
	view = decodeCart(t, doJSON(t, client, "GET", srv.URL+"/cart", nil))
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.TotalItems)
}

func TestStorefront_CheckoutEmptyCartRejected(t *testing.T) {
	srv, orderRepo := newStorefront(t)
	client := cookieClient(t)

	resp := doJSON(t, client, "POST", srv.URL+"/cart/checkout", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, orderRepo.orders)
}

func TestStorefront_AddUnknownProductRejected(t *testing.T) {
	srv, _ := newStorefront(t)
	client := cookieClient(t)

	resp := doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 999, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStorefront_AddUnavailableProductRejected(t *testing.T) {
	srv, _ := newStorefront(t)
	client := cookieClient(t)

	resp := doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 10, Quantity: 1})
	require.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
	resp.Body.Close()
}

func TestStorefront_AddWithVariant(t *testing.T) {
	srv, _ := newStorefront(t)
	client := cookieClient(t)

	variant := "10 inch"
	resp := doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 7, Quantity: 1, Variant: &variant})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	view := decodeCart(t, doJSON(t, client, "GET", srv.URL+"/cart", nil))
	require.Len(t, view.Lines, 1)
	assert.InDelta(t, 65.00, view.Lines[0].UnitPrice, 0.0001)

	bogus := "16 inch"
	resp = doJSON(t, client, "POST", srv.URL+"/cart", models.AddToCartRequest{ProductId: 7, Quantity: 1, Variant: &bogus})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStorefront_GetCartWithoutSessionIsEmpty(t *testing.T) {
	srv, _ := newStorefront(t)

	view := decodeCart(t, doJSON(t, &http.Client{}, "GET", srv.URL+"/cart", nil))
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.TotalItems)
}

func TestOrderEndpoint_MalformedPayloadGetsFailureBody(t *testing.T) {
	catalog := repository.NewStaticCatalog(repository.BakeryProducts())
	ha := NewHandler(HandlerParams{
		OrdService: services.NewOrderService(&fakeOrderRepo{}, catalog, fakeSessionRepo{}),
		CusService: services.NewCustomerService(fakeCustomerRepo{}, fakeSessionRepo{}),
		Catalog:    catalog,
		Formatter:  currency.MustFormatter("en-US", "USD"),
	})

	req := httptest.NewRequest("POST", "/orders", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	ha.CreateOrder(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestProductsEndpoint_ListAndFilter(t *testing.T) {
	srv, _ := newStorefront(t)

	resp := doJSON(t, &http.Client{}, "GET", srv.URL+"/products?category=bread", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prods []entities.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prods))
	assert.Len(t, prods, 3)
}
