package services

import (
	"database/sql"
	"log"
	"math"
	"time"

	"bakeShop/entities"
	"bakeShop/models"
	"bakeShop/repository"
)

// OrderService implements the order-creation endpoint's business rules: it
// validates an incoming payload against the catalog, recomputes the total and
// persists the order.
type OrderService struct {
	or repository.OrderRepository
	pc repository.ProductCatalog
	sr repository.SessionRepository
}

func NewOrderService(orderRepo repository.OrderRepository, catalog repository.ProductCatalog, sessionRepo repository.SessionRepository) OrderService {
	return OrderService{
		or: orderRepo,
		pc: catalog,
		sr: sessionRepo,
	}
}

const totalTolerance = 0.005

func (os *OrderService) CreateOrder(payload models.OrderPayload, customerId *int) (orderNumber string, err error) {
	if len(payload.Items) == 0 {
		log.Printf("CreateOrder: empty order payload")
		err = models.ErrBadRequest
		return
	}
	if payload.Status != "" && payload.Status != "pending" {
		log.Printf("CreateOrder: new orders must be pending, got %q", payload.Status)
		err = models.ErrBadRequest
		return
	}

	prods := make([]models.OrdersProducts_db, 0, len(payload.Items))
	var computed float64
	for _, item := range payload.Items {
		if item.Quantity <= 0 {
			log.Printf("CreateOrder: non-positive quantity for product %v", item.ProductId)
			err = models.ErrBadRequest
			return
		}
		p, exists := os.pc.GetProductById(item.ProductId)
		if !exists {
			log.Printf("CreateOrder: unknown product %v", item.ProductId)
			err = models.ErrBadRequest
			return
		}
		if !p.Available {
			log.Printf("CreateOrder: product %v is unavailable", p.Name)
			err = models.ErrNotAllowed
			return
		}
		computed = computed + item.Price*float64(item.Quantity)
		prods = append(prods, models.OrdersProducts_db{
			ProductId:   item.ProductId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	// The client recomputes totalAmount at submission time; a mismatch means a
	// stale or tampered payload.
	if math.Abs(computed-payload.TotalPrice) > totalTolerance {
		log.Printf("CreateOrder: total mismatch, payload %v computed %v", payload.TotalPrice, computed)
		err = models.ErrBadRequest
		return
	}

	date, e := time.Parse(time.RFC3339, payload.OrderDate)
	if e != nil {
		date = time.Now().UTC()
	}

	order := models.Order_db{
		Date:       date,
		TotalPrice: computed,
		Status:     "pending",
	}
	if customerId != nil {
		order.CustomerId = sql.NullInt64{Int64: int64(*customerId), Valid: true}
	}

	_, orderNumber, err = os.or.CreateOrder(order, prods)
	return
}

func (os *OrderService) GetOrderById(orderId int) (order entities.Order, err error) {
	order, err = os.or.GetOrderById(orderId)
	return
}

func (os *OrderService) SearchOrders(data models.OrderSearchData) (orders []entities.Order, err error) {
	orders, err = os.or.SearchOrders(data)
	return
}

func (os *OrderService) GetCurrentCustomerOrders(sessionId string) (orders []entities.Order, err error) {
	customerId, _, exists, e := os.sr.GetCustomerSessionInfo(sessionId)
	if e != nil {
		log.Printf("GetCurrentCustomerOrders: %v", e)
		err = models.ErrServerError
		return
	}
	if !exists {
		err = models.ErrUnauthorized
		return
	}
	data := models.OrderSearchData{
		CustomerId: &customerId,
	}
	orders, err = os.or.SearchOrders(data)
	return
}

func (os *OrderService) SetOrderStatus(orderId int, status string) (err error) {
	err = os.or.SetOrderStatus(orderId, status)
	return
}

func (os *OrderService) CancelOrder(orderId int, sessionId string) (err error) {
	customerId, _, exists, e := os.sr.GetCustomerSessionInfo(sessionId)
	if e != nil {
		err = models.ErrServerError
		return
	}
	if !exists {
		err = models.ErrUnauthorized
		return
	}
	err = os.or.CancelOrder(orderId, customerId)
	return
}
