package handlers

import (
	"time"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// DTOs de respuesta. Nunca exponemos PasswordHash ni GoogleID.

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *repository.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		Phone:     u.Phone,
		Address:   u.Address,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type loginResponse struct {
	Token     string  `json:"token"`
	TokenType string  `json:"token_type"`
	ExpiresIn int64   `json:"expires_in"`
	User      userDTO `json:"user"`
}

type productDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	Category      string    `json:"category,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProductDTO(p *repository.Product) productDTO {
	return productDTO{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
	}
}

type orderItemDTO struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type orderDTO struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Items           []orderItemDTO `json:"items"`
	Total           int64          `json:"total"`
	Status          string         `json:"status"`
	PaymentMode     string         `json:"payment_mode"`
	PaymentRef      string         `json:"payment_ref,omitempty"`
	ShippingName    string         `json:"shipping_name"`
	ShippingPhone   string         `json:"shipping_phone"`
	ShippingAddress string         `json:"shipping_address"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toOrderDTO(o *repository.Order) orderDTO {
	items := make([]orderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDTO{ProductID: it.ProductID, Title: it.Title, Price: it.Price, Quantity: it.Quantity}
	}
	return orderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Total:           o.Total,
		Status:          o.Status,
		PaymentMode:     o.PaymentMode,
		PaymentRef:      o.PaymentRef,
		ShippingName:    o.ShippingName,
		ShippingPhone:   o.ShippingPhone,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
	}
}

type sessionDTO struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	PatientName   string    `json:"patient_name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Condition     string    `json:"condition,omitempty"`
	PreferredDate time.Time `json:"preferred_date"`
	Slot          string    `json:"slot"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSessionDTO(b *repository.Session) sessionDTO {
	return sessionDTO{
		ID:            b.ID,
		UserID:        b.UserID,
		PatientName:   b.PatientName,
		Phone:         b.Phone,
		Address:       b.Address,
		Condition:     b.Condition,
		PreferredDate: b.PreferredDate,
		Slot:          b.Slot,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

type partnerDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	City       string    `json:"city,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPartnerDTO(p *repository.PartnerApplication) partnerDTO {
	return partnerDTO{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		City:       p.City,
		Experience: p.Experience,
		Message:    p.Message,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}

type testimonialDTO struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toTestimonialDTO(t *repository.Testimonial, includeStatus bool) testimonialDTO {
	d := testimonialDTO{
		ID:        t.ID,
		Author:    t.Author,
		Rating:    t.Rating,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
	if includeStatus {
		d.Status = t.Status
	}
	return d
}

type contactDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func toContactDTO(c *repository.ContactQuery) contactDTO {
	return contactDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
