package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/email"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/http/middlewares"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	PaymentMode     string             `json:"payment_mode"`
	PaymentRef      string             `json:"payment_ref"`
	ShippingName    string             `json:"shipping_name"`
	ShippingPhone   string             `json:"shipping_phone"`
	ShippingAddress string             `json:"shipping_address"`
}

// CreateOrder crea un pedido. Título y precio de cada renglón se toman del
// catálogo en el momento de la compra, nunca del cliente; el total se
// calcula server-side.
//
// POST /v1/orders
func (a *API) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !readJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "items no puede estar vacío")
		return
	}
	req.ShippingName = strings.TrimSpace(req.ShippingName)
	req.ShippingPhone = strings.TrimSpace(req.ShippingPhone)
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	if req.ShippingName == "" || req.ShippingPhone == "" || req.ShippingAddress == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "datos de envío incompletos")
		return
	}
	switch req.PaymentMode {
	case repository.PaymentCOD, repository.PaymentOnline:
	default:
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "payment_mode debe ser cod u online")
		return
	}

	items := make([]repository.OrderItem, 0, len(req.Items))
	var total int64
	for _, it := range req.Items {
		if it.Quantity < 1 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "quantity debe ser al menos 1")
			return
		}
		p, err := a.Store.Products().GetByID(r.Context(), it.ProductID)
		if err != nil {
			if repository.IsNotFound(err) {
				httpx.WriteError(w, http.StatusUnprocessableEntity, "unknown_product", "producto inexistente: "+it.ProductID)
				return
			}
			logger.From(r.Context()).Error("product lookup failed", logger.ProductID(it.ProductID), logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
			return
		}
		if !p.InStock {
			httpx.WriteError(w, http.StatusUnprocessableEntity, "out_of_stock", "sin stock: "+p.Title)
			return
		}
		items = append(items, repository.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		total += p.Price * int64(it.Quantity)
	}

	u := middlewares.GetUser(r.Context())
	o, err := a.Store.Orders().Create(r.Context(), repository.CreateOrderInput{
		UserID:          u.ID,
		Items:           items,
		Total:           total,
		PaymentMode:     req.PaymentMode,
		PaymentRef:      strings.TrimSpace(req.PaymentRef),
		ShippingName:    req.ShippingName,
		ShippingPhone:   req.ShippingPhone,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		logger.From(r.Context()).Error("order create failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}

	// El mail de confirmación es best-effort: la orden ya está persistida.
	subject, html, text := email.OrderConfirmation(o)
	if err := a.Mail.Send(u.Email, subject, html, text); err != nil {
		logger.From(r.Context()).Warn("order confirmation mail failed", logger.OrderID(o.ID), logger.Err(err))
	}

	logger.From(r.Context()).Info("order created", logger.OrderID(o.ID), logger.UserID(u.ID))
	httpx.WriteJSON(w, http.StatusCreated, toOrderDTO(o))
}

// ListMyOrders lista los pedidos del usuario autenticado.
//
// GET /v1/orders
func (a *API) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	u := middlewares.GetUser(r.Context())
	orders, err := a.Store.Orders().ListByUser(r.Context(), u.ID)
	if err != nil {
		logger.From(r.Context()).Error("order list failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]orderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": dtos})
}

// GetOrder retorna un pedido propio. Un admin puede ver cualquiera; para el
// resto, pedido ajeno responde 404 (no 403) para no confirmar su existencia.
//
// GET /v1/orders/{id}
func (a *API) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := a.Store.Orders().GetByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		logger.From(r.Context()).Error("order fetch failed", logger.OrderID(id), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	u := middlewares.GetUser(r.Context())
	if o.UserID != u.ID && !u.IsAdmin {
		httpx.WriteError(w, http.StatusNotFound, "order_not_found", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderDTO(o))
}

// ListAllOrders lista todos los pedidos. Solo admin.
//
// GET /v1/admin/orders
func (a *API) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.Store.Orders().List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("order list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	dtos := make([]orderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": dtos})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus cambia el estado de un pedido. Solo admin.
//
// PUT /v1/admin/orders/{id}/status
func (a *API) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	o, err := a.Store.Orders().UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			httpx.WriteError(w, http.StatusNotFound, "order_not_found", "")
		case repository.IsInvalidInput(err):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "status desconocido")
		default:
			logger.From(r.Context()).Error("order status update failed", logger.OrderID(id), logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		}
		return
	}
	logger.From(r.Context()).Info("order status updated", logger.OrderID(o.ID), logger.String("status", o.Status))
	httpx.WriteJSON(w, http.StatusOK, toOrderDTO(o))
}
