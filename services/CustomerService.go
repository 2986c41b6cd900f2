package services

import (
	"log"
	"time"

	"bakeShop/models"
	"bakeShop/repository"
)

type CustomerService struct {
	cr repository.CustomerRepository
	sr repository.SessionRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, sessionRepo repository.SessionRepository) CustomerService {
	return CustomerService{
		cr: customerRepo,
		sr: sessionRepo,
	}
}

func (us *CustomerService) SignupRequest(creds models.Credentials) (customer models.Customer_db, err error) {
	customer.Email = creds.Email
	customer.Name = creds.Name
	if creds.Role == "" {
		creds.Role = "customer"
	}
	customer.Role = creds.Role

	var ex bool
	_, ex, err = us.cr.GetCustomerByEmail(customer.Email)
	if err != nil {
		return
	}
	if ex {
		log.Printf("SignupRequest: customer already exists")
		err = models.ErrNotAllowed
		return
	}
	customer.Password, err = us.cr.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	customer.Id, err = us.cr.AddNewCustomer(customer)
	return
}

func (us *CustomerService) SigninRequest(email, password string) (customer models.Customer_db, sessionId string, err error) {
	var ex bool
	customer, ex, err = us.cr.GetCustomerByEmail(email)
	if err != nil {
		return
	}
	if !ex {
		err = models.ErrUnauthorized
		return
	}
	if !us.cr.ComparePasswords(customer.Password, password) {
		err = models.ErrUnauthorized
		return
	}
	sessionId, err = us.sr.CreateSession(customer.Id, customer.Role)
	return
}

func (us *CustomerService) RefreshRequest(sessionId string) (err error) {
	err = us.sr.RefreshSession(sessionId, 30*time.Minute)
	return
}

func (us *CustomerService) DeleteSessionRequest(sessionId string) (err error) {
	err = us.sr.DeleteSession(sessionId)
	return
}

func (us *CustomerService) CheckAuth(sessionId string) (ok bool, err error) {
	ok, err = us.sr.CheckSession(sessionId)
	return
}

func (us *CustomerService) CheckAccess(sessionId string) (ok bool, err error) {
	_, role, exists, e := us.sr.GetCustomerSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	ok = exists && role == "manager"
	return
}

func (us *CustomerService) CurrentCustomer(sessionId string) (data models.CustomerData, exists bool, err error) {
	customerId, _, exists, e := us.sr.GetCustomerSessionInfo(sessionId)
	if e != nil || !exists {
		err = e
		return
	}
	var customer models.Customer_db
	customer, exists, err = us.cr.GetCustomerById(customerId)
	if err != nil || !exists {
		return
	}
	data = models.CustomerData{
		Id:    customer.Id,
		Email: customer.Email,
		Name:  customer.Name,
		Role:  customer.Role,
	}
	return
}
