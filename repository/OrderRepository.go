package repository

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"bakeShop/entities"
	"bakeShop/models"
)

type OrderRepository interface {
	CreateOrder(order models.Order_db, prods []models.OrdersProducts_db) (orderId int, orderNumber string, err error)
	GetOrderItems(orderId int) (prods []entities.OrderLine, err error)
	GetOrderById(orderId int) (order entities.Order, err error)
	SearchOrders(data models.OrderSearchData) (orders []entities.Order, err error)
	SetOrderStatus(orderId int, status string) (err error)
	CancelOrder(orderId int, customerId int) (err error)
}

type OrderRepo struct {
	db *sql.DB
}

const ordersSchema = `
CREATE TABLE IF NOT EXISTS Orders (
	Id INTEGER PRIMARY KEY,
	OrderNumber TEXT NOT NULL,
	CustomerId INTEGER,
	Date TIMESTAMP NOT NULL,
	TotalPrice DOUBLE PRECISION NOT NULL,
	Status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS OrdersProducts (
	Id INTEGER PRIMARY KEY,
	OrderId INTEGER NOT NULL,
	ProductId INTEGER NOT NULL,
	ProductName TEXT NOT NULL,
	Quantity INTEGER NOT NULL,
	Price DOUBLE PRECISION NOT NULL
);`

const ordersSchemaPostgres = `
CREATE TABLE IF NOT EXISTS Orders (
	Id SERIAL PRIMARY KEY,
	OrderNumber TEXT NOT NULL,
	CustomerId INTEGER,
	Date TIMESTAMP NOT NULL,
	TotalPrice DOUBLE PRECISION NOT NULL,
	Status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS OrdersProducts (
	Id SERIAL PRIMARY KEY,
	OrderId INTEGER NOT NULL,
	ProductId INTEGER NOT NULL,
	ProductName TEXT NOT NULL,
	Quantity INTEGER NOT NULL,
	Price DOUBLE PRECISION NOT NULL
);`

func NewOrderRepository(conn *sql.DB, driver string) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	schema := ordersSchema
	if driver == "postgres" {
		schema = ordersSchemaPostgres
	}
	_, err = conn.Exec(schema)
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db: conn,
	}, nil
}

func (o *OrderRepo) CreateOrder(order models.Order_db, prods []models.OrdersProducts_db) (orderId int, orderNumber string, err error) {
	tx, e := o.db.Begin()
	if e != nil {
		log.Printf("CreateOrder[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var oId int64
	e = tx.QueryRow("INSERT INTO Orders (OrderNumber, CustomerId, Date, TotalPrice, Status) VALUES ('', $1, $2, $3, $4) RETURNING Id",
		order.CustomerId, order.Date, order.TotalPrice, order.Status).Scan(&oId)
	if e != nil {
		log.Printf("CreateOrder[2]: %v", e)
		err = models.ErrServerError
		return
	}
	orderId = int(oId)
	orderNumber = "BAK-" + strconv.Itoa(orderId)

	_, e = tx.Exec("UPDATE Orders SET OrderNumber=$1 WHERE Id=$2", orderNumber, orderId)
	if e != nil {
		log.Printf("CreateOrder[3]: %v", e)
		err = models.ErrServerError
		return
	}

	for _, v := range prods {
		_, e = tx.Exec("INSERT INTO OrdersProducts (OrderId, ProductId, ProductName, Quantity, Price) VALUES ($1, $2, $3, $4, $5)",
			orderId, v.ProductId, v.ProductName, v.Quantity, v.Price)
		if e != nil {
			log.Printf("CreateOrder[4]: %v", e)
			err = models.ErrServerError
			return
		}
	}

	e = tx.Commit()
	if e != nil {
		log.Printf("CreateOrder[5]: %v", e)
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) GetOrderItems(orderId int) (prods []entities.OrderLine, err error) {
	rows, e := o.db.Query("SELECT ProductId, ProductName, Quantity, Price FROM OrdersProducts WHERE OrderId=$1", orderId)
	if e != nil {
		log.Printf("GetOrderItems: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	for rows.Next() {
		prod := entities.OrderLine{}
		err = rows.Scan(&prod.ProductId, &prod.ProductName, &prod.Quantity, &prod.Price)
		if err != nil {
			log.Printf("GetOrderItems: %v", err)
			err = models.ErrServerError
			return
		}
		prod.Total = prod.Price * float64(prod.Quantity)
		prods = append(prods, prod)
	}
	return
}

func (o *OrderRepo) GetOrderById(orderId int) (order entities.Order, err error) {
	row := o.db.QueryRow("SELECT Id, OrderNumber, CustomerId, Date, TotalPrice, Status FROM Orders WHERE Id=$1", orderId)
	var or models.Order_db
	err = row.Scan(&or.Id, &or.OrderNumber, &or.CustomerId, &or.Date, &or.TotalPrice, &or.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Printf("GetOrderById: %v", err)
			err = models.ErrServerError
		}
		return
	}

	prods, e := o.GetOrderItems(orderId)
	if e != nil {
		err = e
		return
	}

	order = entities.Order{
		OrderId:     or.Id,
		OrderNumber: or.OrderNumber,
		Date:        or.Date,
		Status:      or.Status,
		TotalPrice:  or.TotalPrice,
		Products:    prods,
	}
	if or.CustomerId.Valid {
		order.Customer.Id = int(or.CustomerId.Int64)
	}
	return
}

func (o *OrderRepo) SearchOrders(data models.OrderSearchData) (orders []entities.Order, err error) {
	var query string
	var queryParams []any
	var count int

	query = "SELECT Id, OrderNumber, CustomerId, Date, TotalPrice, Status FROM Orders WHERE "

	if data.Status != nil {
		count = count + 1
		query = query + "Status=$" + strconv.Itoa(count) + " AND "
		queryParams = append(queryParams, data.Status)
	}
	if data.CustomerId != nil {
		count = count + 1
		query = query + "CustomerId=$" + strconv.Itoa(count) + " AND "
		queryParams = append(queryParams, data.CustomerId)
	}
	if count > 0 {
		query = query[0 : len(query)-4] //AND
	} else {
		query = query[0 : len(query)-6] //WHERE
	}
	query = query + "ORDER BY Id"

	rows, e := o.db.Query(query, queryParams...)
	if e != nil {
		log.Printf("SearchOrders: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()

	for rows.Next() {
		var or models.Order_db
		err = rows.Scan(&or.Id, &or.OrderNumber, &or.CustomerId, &or.Date, &or.TotalPrice, &or.Status)
		if err != nil {
			log.Printf("SearchOrders: %v", err)
			err = models.ErrServerError
			return
		}
		ord := entities.Order{
			OrderId:     or.Id,
			OrderNumber: or.OrderNumber,
			Date:        or.Date,
			Status:      or.Status,
			TotalPrice:  or.TotalPrice,
		}
		if or.CustomerId.Valid {
			ord.Customer.Id = int(or.CustomerId.Int64)
		}
		orders = append(orders, ord)
	}

	for i := range orders {
		orders[i].Products, err = o.GetOrderItems(orders[i].OrderId)
		if err != nil {
			return
		}
	}

	if len(orders) == 0 {
		err = models.ErrNotFoundError
	}
	return
}

func (o *OrderRepo) SetOrderStatus(orderId int, status string) (err error) {
	row := o.db.QueryRow("SELECT Status FROM Orders WHERE Id=$1", orderId)
	var current string
	err = row.Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Printf("SetOrderStatus[1]: %v", err)
			err = models.ErrServerError
		}
		return
	}
	if current != "pending" {
		log.Printf("order %v is %v, status can no longer change", orderId, current)
		err = models.ErrNotAllowed
		return
	}

	_, err = o.db.Exec("UPDATE Orders SET Status=$1 WHERE Id=$2", status, orderId)
	if err != nil {
		log.Printf("SetOrderStatus[2]: %v", err)
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) CancelOrder(orderId int, customerId int) (err error) {
	row := o.db.QueryRow("SELECT Date, Status FROM Orders WHERE Id=$1 AND CustomerId=$2", orderId, customerId)
	var or models.Order_db
	err = row.Scan(&or.Date, &or.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Printf("CancelOrder[1]: %v", err)
			err = models.ErrServerError
		}
		return
	}
	if or.Status != "pending" {
		err = models.ErrNotAllowed
		return
	}
	if time.Since(or.Date.UTC()) > 10*time.Minute {
		log.Printf("order %v is past the cancellation window", orderId)
		err = models.ErrNotAllowed
		return
	}

	_, err = o.db.Exec("UPDATE Orders SET Status=$1 WHERE Id=$2", "cancelled", orderId)
	if err != nil {
		log.Printf("CancelOrder[2]: %v", err)
		err = models.ErrServerError
	}
	return
}
