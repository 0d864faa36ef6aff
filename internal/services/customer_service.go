package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/repositories"
	"campbook/internal/utils"
)

type CustomerService struct {
	Customers CustomerStore
	Orders    OrderStore
	RequestID string
}

type CustomerInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Wechat string `json:"wechat"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	IDCard string `json:"idCard"`
	Source string `json:"source"`
	Tags   string `json:"tags"`
	Notes  string `json:"notes"`
}

func (in CustomerInput) toModel() (models.Customer, error) {
	c := models.Customer{
		Name:   utils.NormalizeSpace(in.Name),
		Phone:  utils.NormalizePhone(in.Phone),
		Wechat: strings.TrimSpace(in.Wechat),
		Email:  strings.TrimSpace(in.Email),
		Gender: strings.TrimSpace(in.Gender),
		IDCard: strings.TrimSpace(in.IDCard),
		Source: strings.TrimSpace(in.Source),
		Tags:   strings.Join(utils.SplitTags(in.Tags), ","),
		Notes:  strings.TrimSpace(in.Notes),
	}
	if c.Name == "" {
		return c, required("name")
	}
	if c.Phone == "" {
		return c, required("phone")
	}
	if !utils.ValidPhone(c.Phone) {
		return c, domain.ValidationError{Field: "phone", Msg: "must be 6 to 20 digits"}
	}
	if c.Source == "" {
		c.Source = models.SourceWalkIn
	}
	if !models.ValidSource(c.Source) {
		return c, domain.ValidationError{Field: "source", Msg: "unknown source " + c.Source}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return c, domain.ValidationError{Field: "email", Msg: "is not a valid address"}
	}
	return c, nil
}

func (s CustomerService) List(ctx context.Context, f models.CustomerFilter) (domain.Page[models.Customer], error) {
	if f.Source != "" && !models.ValidSource(f.Source) {
		return domain.Page[models.Customer]{}, domain.ValidationError{Field: "source", Msg: "unknown source " + f.Source}
	}
	return s.Customers.List(ctx, f)
}

// Get returns the customer with order count and total spent filled in.
func (s CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	c, err := s.Customers.GetByID(ctx, id)
	if err != nil {
		return c, notFound(err, "customer")
	}
	count, spent, err := s.Customers.OrderStats(ctx, id)
	if err != nil {
		return c, err
	}
	c.OrderCount = count
	c.TotalSpent = spent
	return c, nil
}

func (s CustomerService) Create(ctx context.Context, in CustomerInput) (models.Customer, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	if err := s.ensurePhoneFree(ctx, c.Phone, 0); err != nil {
		return c, err
	}
	id, err := s.Customers.Create(ctx, &c)
	if err != nil {
		return c, mapRepoErr(err, "customer", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "customers", "create", fmt.Sprintf("customer_id=%d source=%s", id, c.Source))
	return s.Customers.GetByID(ctx, id)
}

func (s CustomerService) Update(ctx context.Context, id int64, in CustomerInput) (models.Customer, error) {
	if _, err := s.Customers.GetByID(ctx, id); err != nil {
		return models.Customer{}, notFound(err, "customer")
	}
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	if err := s.ensurePhoneFree(ctx, c.Phone, id); err != nil {
		return c, err
	}
	c.ID = id
	if err := s.Customers.Update(ctx, &c); err != nil {
		return c, mapRepoErr(err, "customer", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "customers", "update", fmt.Sprintf("customer_id=%d", id))
	return s.Get(ctx, id)
}

func (s CustomerService) ensurePhoneFree(ctx context.Context, phone string, selfID int64) error {
	existing, err := s.Customers.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == selfID:
		return nil
	}
	return domain.ConflictError{
		Resource: "customer",
		Msg:      "phone " + phone + " is already registered",
		Code:     domain.CodeDuplicatePhone,
		Details:  map[string]int64{"customerId": existing.ID},
	}
}

func (s CustomerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Customers.GetByID(ctx, id); err != nil {
		return notFound(err, "customer")
	}
	n, err := s.Orders.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("customer", domain.CodeCustomerHasOrders, n)
	}
	if err := s.Customers.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "customer", "", domain.CodeCustomerHasOrders)
	}
	utils.LogEvent(s.RequestID, "customers", "delete", fmt.Sprintf("customer_id=%d", id))
	return nil
}

// OrderHistory lists the customer's order history, newest first.
func (s CustomerService) OrderHistory(ctx context.Context, id int64, page, pageSize int) (domain.Page[models.Order], error) {
	if _, err := s.Customers.GetByID(ctx, id); err != nil {
		return domain.Page[models.Order]{}, notFound(err, "customer")
	}
	return s.Orders.List(ctx, models.OrderFilter{CustomerID: id, Page: page, PageSize: pageSize})
}

// FindOrCreateByPhone is used by the public funnel: an existing customer keeps its data.
func (s CustomerService) FindOrCreateByPhone(ctx context.Context, in CustomerInput) (models.Customer, bool, error) {
	c, err := in.toModel()
	if err != nil {
		return c, false, err
	}
	existing, err := s.Customers.GetByPhone(ctx, c.Phone)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return c, false, err
	}
	id, err := s.Customers.Create(ctx, &c)
	if err != nil {
		return c, false, mapRepoErr(err, "customer", domain.CodeDuplicatePhone, "")
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "customers", "create", fmt.Sprintf("customer_id=%d source=%s", id, c.Source))
	return c, true, nil
}
