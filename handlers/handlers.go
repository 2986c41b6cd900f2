package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"bakeShop/currency"
	"bakeShop/entities"
	"bakeShop/models"
	"bakeShop/repository"
	"bakeShop/services"

	"github.com/gorilla/mux"
)

type Handler struct {
	carts    *services.CartManager
	checkout services.CheckoutService
	ors      services.OrderService
	cus      services.CustomerService
	catalog  repository.ProductCatalog
	fmtr     currency.Formatter
}

type HandlerParams struct {
	Carts      *services.CartManager
	Checkout   services.CheckoutService
	OrdService services.OrderService
	CusService services.CustomerService
	Catalog    repository.ProductCatalog
	Formatter  currency.Formatter
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		carts:    params.Carts,
		checkout: params.Checkout,
		ors:      params.OrdService,
		cus:      params.CusService,
		catalog:  params.Catalog,
		fmtr:     params.Formatter,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if c, err := r.Cookie("sessionId"); err == nil {
		data, exists, _ := h.cus.CurrentCustomer(c.Value)
		if exists {
			name = data.Name
		}
	}
	w.Write([]byte("Hello, " + name + "! Welcome to the bakery."))
}

// customers

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	creds.Role = "customer"

	_, err = h.cus.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, sessionId, err := h.cus.SigninRequest(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	err := h.cus.DeleteSessionRequest(c.Value)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

// catalog

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var prods []entities.Product
	if category != "" {
		prods = h.catalog.GetProductsByCategory(category)
	} else {
		prods = h.catalog.AllProducts()
	}
	writeJSON(w, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, exists := h.catalog.GetProductById(id)
	if !exists {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, prod)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		writeJSON(w, entities.CartView{Lines: []entities.CartLineView{}})
		return
	}
	writeJSON(w, h.cartView(h.carts.Store(c.Value)))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := models.AddToCartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var cartSessionId string
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		switch {
		case errors.Is(err, http.ErrNoCookie):
			cartSessionId = h.carts.NewCartSession()
			http.SetCookie(w, &http.Cookie{
				Name:    "cartSessionId",
				Value:   cartSessionId,
				Path:    "/",
				Expires: time.Now().Add(30 * 24 * time.Hour),
			})
		default:
			log.Printf("Cookie err:%v", err)
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	} else {
		cartSessionId = c.Value
	}

	product, exists := h.catalog.GetProductById(req.ProductId)
	if !exists {
		WriteErrorResponse(w, models.ErrBadRequest)
		return
	}
	if !product.Available {
		WriteErrorResponse(w, models.ErrNotAllowed)
		return
	}
	var variant *entities.ProductVariant
	if req.Variant != nil {
		for i := range product.Variants {
			if product.Variants[i].Name == *req.Variant {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			WriteErrorResponse(w, models.ErrBadRequest)
			return
		}
	}

	line, err := h.carts.Store(cartSessionId).AddItem(product, req.Quantity, variant, req.Notes)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	// The add confirmation belongs to this layer, not the store.
	writeJSON(w, map[string]any{
		"message": product.Name + " added to cart",
		"line":    line,
	})
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	req := models.UpdateCartItemRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	store := h.carts.Store(c.Value)
	store.UpdateQuantity(req.LineId, req.Quantity)
	writeJSON(w, h.cartView(store))
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.RemoveCartItemRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	store := h.carts.Store(c.Value)
	store.RemoveItem(req.LineId)
	writeJSON(w, h.cartView(store))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.carts.Store(c.Value).Clear()
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	store := h.carts.Store(c.Value)
	store.ToggleCart()
	writeJSON(w, h.cartView(store))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("cartSessionId")
	if err != nil {
		WriteErrorResponse(w, models.ErrValidation)
		return
	}
	orderNumber, err := h.checkout.SubmitOrder(h.carts.Store(c.Value))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]string{
		"message":      "order placed, your order number is " + orderNumber,
		"order_number": orderNumber,
	})
}

// orders

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	payload := models.OrderPayload{}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		writeOrderFailure(w, http.StatusBadRequest, "malformed order payload")
		return
	}

	var customerId *int
	if c, e := r.Cookie("sessionId"); e == nil {
		data, exists, _ := h.cus.CurrentCustomer(c.Value)
		if exists {
			customerId = &data.Id
		}
	}

	orderNumber, err := h.ors.CreateOrder(payload, customerId)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrNotAllowed):
			writeOrderFailure(w, http.StatusBadRequest, err.Error())
		default:
			writeOrderFailure(w, http.StatusInternalServerError, "order could not be saved")
		}
		return
	}
	writeJSON(w, models.OrderResponse{
		Success: true,
		Order:   &models.OrderConfirmation{OrderNumber: orderNumber},
	})
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	order, err := h.ors.GetOrderById(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	customerId := r.URL.Query().Get("customerid")

	searchData := models.OrderSearchData{}
	if status != "" {
		if !(status == "pending" || status == "confirmed" || status == "rejected" || status == "cancelled") {
			http.Error(w, "status is wrong", http.StatusBadRequest)
			return
		}
		searchData.Status = &status
	}
	if customerId != "" {
		cId, err := strconv.Atoi(customerId)
		if err != nil {
			http.Error(w, "customer id is wrong", http.StatusBadRequest)
			return
		}
		searchData.CustomerId = &cId
	}

	orders, err := h.ors.SearchOrders(searchData)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) GetCurrentCustomerOrders(w http.ResponseWriter, r *http.Request) {
	sessionId, _ := r.Cookie("sessionId")
	orders, err := h.ors.GetCurrentCustomerOrders(sessionId.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var status struct {
		Status string `json:"status"`
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = json.NewDecoder(r.Body).Decode(&status)
	if err != nil || !(status.Status == "confirmed" || status.Status == "rejected") {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.ors.SetOrderStatus(id, status.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId, err := r.Cookie("sessionId")
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	err = h.ors.CancelOrder(orderId, sessionId.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.cus.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ManagerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.cus.CheckAccess(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckAccess: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact the bakery", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrSubmission):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, models.ErrPersistence), errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *Handler) cartView(store *services.CartStore) entities.CartView {
	items := store.Items()
	view := entities.CartView{
		Lines:  make([]entities.CartLineView, 0, len(items)),
		IsOpen: store.IsOpen(),
	}
	for _, l := range items {
		view.Lines = append(view.Lines, entities.CartLineView{
			Id:           l.Id,
			ProductId:    l.Product.ProductId,
			Name:         l.Product.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice(),
			LineTotal:    l.LineTotal(),
			PriceDisplay: h.fmtr.Format(l.LineTotal()),
			Notes:        l.Notes,
		})
	}
	view.TotalItems = store.TotalItems()
	view.TotalPrice = store.TotalPrice()
	view.TotalDisplay = h.fmtr.Format(view.TotalPrice)
	return view
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func writeOrderFailure(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	jsonData, _ := json.Marshal(models.OrderResponse{Success: false, Error: reason})
	w.Write(jsonData)
}
