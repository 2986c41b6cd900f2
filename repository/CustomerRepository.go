package repository

import (
	"database/sql"
	"errors"
	"log"

	"bakeShop/models"

	"golang.org/x/crypto/bcrypt"
)

type CustomerRepository interface {
	GetCustomerByEmail(email string) (customer models.Customer_db, exists bool, err error)
	GetCustomerById(customerId int) (customer models.Customer_db, exists bool, err error)
	AddNewCustomer(customer models.Customer_db) (customerId int, err error)
	ChangePassword(customerId int, newPassword string) (err error)
	EncryptPassword(customerPass string) (hashed string, err error)
	ComparePasswords(hashedPassword string, sentPassword string) bool
}

type CustomerRepo struct {
	db *sql.DB
}

const customersSchema = `
CREATE TABLE IF NOT EXISTS Customers (
	Id INTEGER PRIMARY KEY,
	Email TEXT NOT NULL UNIQUE,
	Name TEXT NOT NULL,
	Password TEXT NOT NULL,
	Role TEXT NOT NULL
);`

const customersSchemaPostgres = `
CREATE TABLE IF NOT EXISTS Customers (
	Id SERIAL PRIMARY KEY,
	Email TEXT NOT NULL UNIQUE,
	Name TEXT NOT NULL,
	Password TEXT NOT NULL,
	Role TEXT NOT NULL
);`

func NewCustomerRepository(conn *sql.DB, driver string) (CustomerRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	schema := customersSchema
	if driver == "postgres" {
		schema = customersSchemaPostgres
	}
	_, err = conn.Exec(schema)
	if err != nil {
		return nil, err
	}
	return &CustomerRepo{
		db: conn,
	}, nil
}

func (c *CustomerRepo) GetCustomerByEmail(email string) (customer models.Customer_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Email, Name, Password, Role FROM Customers WHERE Email=$1", email)
	err = row.Scan(&customer.Id, &customer.Email, &customer.Name, &customer.Password, &customer.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("GetCustomerByEmail: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (c *CustomerRepo) GetCustomerById(customerId int) (customer models.Customer_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Email, Name, Password, Role FROM Customers WHERE Id=$1", customerId)
	err = row.Scan(&customer.Id, &customer.Email, &customer.Name, &customer.Password, &customer.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("GetCustomerById: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (c *CustomerRepo) AddNewCustomer(customer models.Customer_db) (customerId int, err error) {
	var cId int64
	e := c.db.QueryRow("INSERT INTO Customers (Email, Name, Password, Role) VALUES ($1,$2,$3,$4) RETURNING Id",
		customer.Email, customer.Name, customer.Password, customer.Role).Scan(&cId)
	if e != nil {
		log.Printf("AddNewCustomer: %v", e)
		err = models.ErrServerError
		return
	}
	customerId = int(cId)
	return
}

func (c *CustomerRepo) ChangePassword(customerId int, newPassword string) (err error) {
	_, err = c.db.Exec("UPDATE Customers SET Password=$1 WHERE Id=$2", newPassword, customerId)
	if err != nil {
		log.Printf("ChangePassword: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CustomerRepo) EncryptPassword(customerPass string) (hashed string, err error) {
	password, err := bcrypt.GenerateFromPassword([]byte(customerPass), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashed = string(password)
	return
}

func (c *CustomerRepo) ComparePasswords(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	return err == nil
}
