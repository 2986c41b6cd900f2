package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"bakeShop/currency"
	"bakeShop/handlers"
	"bakeShop/repository"
	"bakeShop/services"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/redis/go-redis/v9"
)

var db *sql.DB
var rdb *redis.Client
var dbDriver string

func main() {
	initDB()
	defer db.Close()
	defer rdb.Close()

	cartStorage, err := repository.NewRedisStore(rdb, context.Background())
	sessR, err2 := repository.NewSessionRepository(rdb, context.Background())
	ordR, err3 := repository.NewOrderRepository(db, dbDriver)
	cusR, err4 := repository.NewCustomerRepository(db, dbDriver)
	if err != nil {
		panic(err)
	}
	if err2 != nil {
		panic(err2)
	}
	log.Printf("redis connected")
	if err3 != nil {
		panic(err3)
	}
	if err4 != nil {
		panic(err4)
	}
	log.Printf("db connected (%v)", dbDriver)

	catalog := repository.NewStaticCatalog(repository.BakeryProducts())

	orderAPI := os.Getenv("ORDER_API_URL")
	if orderAPI == "" {
		orderAPI = "http://localhost:8080/orders"
	}

	hp := handlers.HandlerParams{
		Carts:      services.NewCartManager(cartStorage),
		Checkout:   services.NewCheckoutService(orderAPI, nil),
		OrdService: services.NewOrderService(ordR, catalog, sessR),
		CusService: services.NewCustomerService(cusR, sessR),
		Catalog:    catalog,
		Formatter:  currency.MustFormatter("en-US", "USD"),
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subManAuth := router.NewRoute().Subrouter()
	subManAuth.Use(ha.ManagerAuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/customers/signup", ha.Signup)
	router.HandleFunc("/customers/signin", ha.Signin)
	subAuth.HandleFunc("/customers/logout", ha.Logout)

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.UpdateCartItem).Methods("PATCH")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/all", ha.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/toggle", ha.ToggleCart).Methods("POST")
	router.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")

	router.HandleFunc("/orders", ha.CreateOrder).Methods("POST")
	subAuth.HandleFunc("/orders/", ha.GetCurrentCustomerOrders)
	subAuth.HandleFunc("/orders/{id:[0-9]+}/cancel", ha.CancelOrder)
	subManAuth.HandleFunc("/orders/{id:[0-9]+}", ha.GetOrderById)
	subManAuth.HandleFunc("/orders/search", ha.SearchOrders)
	subManAuth.HandleFunc("/orders/{id:[0-9]+}/update", ha.SetOrderStatus).Methods("POST")

	log.Printf("starting server...")
	http.ListenAndServe(":8080", router)
}

func initDB() {
	var err error

	dbDriver = os.Getenv("ORDERS_DRIVER")
	if dbDriver == "" {
		dbDriver = "postgres"
	}
	switch dbDriver {
	case "postgres":
		host := os.Getenv("DATABASE_HOST")
		port := os.Getenv("DATABASE_PORT")
		user := os.Getenv("DATABASE_USER")
		pass := os.Getenv("DATABASE_PASSWORD")
		dbname := os.Getenv("DATABASE_NAME")
		connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)
		db, err = sql.Open("postgres", connStr)
	case "sqlite3":
		file := os.Getenv("ORDERS_DB_FILE")
		if file == "" {
			file = "bakeshop.db"
		}
		db, err = sql.Open("sqlite3", file)
	default:
		panic("unknown ORDERS_DRIVER: " + dbDriver)
	}
	if err != nil {
		panic(err)
	}

	redis_host := os.Getenv("REDIS_HOST")
	redis_port := os.Getenv("REDIS_PORT")

	rdb = redis.NewClient(&redis.Options{
		Addr:     redis_host + ":" + redis_port,
		Password: "",
		DB:       0,
	})
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()
	if status := rdb.Ping(ctx); status.Err() != nil {
		panic("redis is not working: " + status.Err().Error())
	}
}
