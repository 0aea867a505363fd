package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/ergiva/ergiva-server/internal/auth"
	"github.com/ergiva/ergiva-server/internal/cache"
	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/email"
	"github.com/ergiva/ergiva-server/internal/http/handlers"
	"github.com/ergiva/ergiva-server/internal/http/router"
	"github.com/ergiva/ergiva-server/internal/identity"
	jwtx "github.com/ergiva/ergiva-server/internal/jwt"
	"github.com/ergiva/ergiva-server/internal/store/memory"
)

type env struct {
	store  *memory.Store
	issuer *jwtx.Issuer
	srv    http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.New()
	issuer := jwtx.NewIssuer("handlers-secret", time.Hour)
	users := st.Users()
	svc := authsvc.NewService(users, identity.NewResolver(users), issuer, authsvc.BcryptVerifier{})

	api := &handlers.API{
		Store:    st,
		Auth:     svc,
		Cache:    cache.NewMemory("test"),
		CacheTTL: time.Minute,
		Mail:     email.NopSender{},
	}
	h := router.New(router.Options{API: api, Issuer: issuer})
	return &env{store: st, issuer: issuer, srv: h}
}

func (e *env) seedUser(t *testing.T, id string, admin bool) string {
	t.Helper()
	e.store.SeedUser(repository.User{ID: id, Email: id + "@example.com", Name: id, IsAdmin: admin})
	token, err := e.issuer.Issue(id, id+"@example.com", admin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decodificando respuesta: %v (%s)", err, rec.Body.String())
	}
}

func (e *env) seedProduct(t *testing.T, title string, price int64, inStock bool) string {
	t.Helper()
	p, err := e.store.Products().Create(context.Background(), repository.CreateProductInput{
		Title: title, Price: price, Category: "equipos", InStock: inStock,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p.ID
}

// ---- productos ----

func TestProducts_PublicList(t *testing.T) {
	e := newEnv(t)
	e.seedProduct(t, "TENS portátil", 249900, true)
	e.seedProduct(t, "Banda elástica", 39900, true)

	rec := e.do(t, http.MethodGet, "/v1/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Products []struct {
			Title string `json:"title"`
			Price int64  `json:"price"`
		} `json:"products"`
	}
	decode(t, rec, &body)
	if len(body.Products) != 2 {
		t.Fatalf("products = %d, quiero 2", len(body.Products))
	}
}

func TestProducts_AdminWriteInvalidatesCache(t *testing.T) {
	e := newEnv(t)
	e.seedProduct(t, "TENS portátil", 249900, true)
	admin := e.seedUser(t, "adm", true)

	// Primer GET llena el cache.
	if rec := e.do(t, http.MethodGet, "/v1/products", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("primer GET: %d", rec.Code)
	}

	rec := e.do(t, http.MethodPost, "/v1/admin/products", admin, map[string]any{
		"title": "Camilla plegable", "price": 899900, "category": "equipos",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d (%s)", rec.Code, rec.Body.String())
	}

	// El GET siguiente debe ver el producto nuevo, no la versión cacheada.
	rec = e.do(t, http.MethodGet, "/v1/products", "", nil)
	var body struct {
		Products []struct{ Title string } `json:"products"`
	}
	decode(t, rec, &body)
	if len(body.Products) != 2 {
		t.Fatalf("tras el alta el listado debe refrescarse: %d productos", len(body.Products))
	}
}

func TestProducts_WriteRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	user := e.seedUser(t, "u1", false)

	rec := e.do(t, http.MethodPost, "/v1/admin/products", user, map[string]any{
		"title": "X", "price": 100,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, quiero 403", rec.Code)
	}

	rec = e.do(t, http.MethodPost, "/v1/admin/products", "", map[string]any{"title": "X", "price": 100})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sin token: status = %d, quiero 401", rec.Code)
	}
}

func TestProducts_GetUnknown(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/v1/products/00000000-0000-0000-0000-000000000000", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, quiero 404", rec.Code)
	}
}

// ---- órdenes ----

func TestOrders_CreateSnapshotsCatalog(t *testing.T) {
	e := newEnv(t)
	pid := e.seedProduct(t, "TENS portátil", 249900, true)
	token := e.seedUser(t, "u1", false)

	rec := e.do(t, http.MethodPost, "/v1/orders", token, map[string]any{
		"items":            []map[string]any{{"product_id": pid, "quantity": 2}},
		"payment_mode":     "cod",
		"shipping_name":    "Ana",
		"shipping_phone":   "9999999999",
		"shipping_address": "Calle 1, Delhi",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}

	var o struct {
		ID     string `json:"id"`
		Total  int64  `json:"total"`
		Status string `json:"status"`
		Items  []struct {
			Title string `json:"title"`
			Price int64  `json:"price"`
		} `json:"items"`
	}
	decode(t, rec, &o)
	if o.Total != 499800 {
		t.Fatalf("total = %d, quiero 499800 (precio del catálogo x2)", o.Total)
	}
	if o.Status != "pending" {
		t.Fatalf("status = %q, quiero pending", o.Status)
	}
	if len(o.Items) != 1 || o.Items[0].Price != 249900 {
		t.Fatalf("items sin snapshot del catálogo: %+v", o.Items)
	}
}

func TestOrders_RejectsOutOfStock(t *testing.T) {
	e := newEnv(t)
	pid := e.seedProduct(t, "Agotado", 10000, false)
	token := e.seedUser(t, "u1", false)

	rec := e.do(t, http.MethodPost, "/v1/orders", token, map[string]any{
		"items":            []map[string]any{{"product_id": pid, "quantity": 1}},
		"payment_mode":     "cod",
		"shipping_name":    "Ana",
		"shipping_phone":   "9",
		"shipping_address": "x",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, quiero 422 (%s)", rec.Code, rec.Body.String())
	}
}

func TestOrders_OwnershipHidesForeignOrders(t *testing.T) {
	e := newEnv(t)
	pid := e.seedProduct(t, "TENS", 100, true)
	owner := e.seedUser(t, "u1", false)
	other := e.seedUser(t, "u2", false)
	admin := e.seedUser(t, "adm", true)

	rec := e.do(t, http.MethodPost, "/v1/orders", owner, map[string]any{
		"items":            []map[string]any{{"product_id": pid, "quantity": 1}},
		"payment_mode":     "cod",
		"shipping_name":    "A", "shipping_phone": "9", "shipping_address": "x",
	})
	var o struct {
		ID string `json:"id"`
	}
	decode(t, rec, &o)

	if rec := e.do(t, http.MethodGet, "/v1/orders/"+o.ID, owner, nil); rec.Code != http.StatusOK {
		t.Fatalf("dueño: status = %d", rec.Code)
	}
	// Ajena → 404, no 403: no se confirma que exista.
	if rec := e.do(t, http.MethodGet, "/v1/orders/"+o.ID, other, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("ajena: status = %d, quiero 404", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/v1/orders/"+o.ID, admin, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin: status = %d", rec.Code)
	}
}

func TestOrders_AdminStatusFlow(t *testing.T) {
	e := newEnv(t)
	pid := e.seedProduct(t, "TENS", 100, true)
	owner := e.seedUser(t, "u1", false)
	admin := e.seedUser(t, "adm", true)

	rec := e.do(t, http.MethodPost, "/v1/orders", owner, map[string]any{
		"items":            []map[string]any{{"product_id": pid, "quantity": 1}},
		"payment_mode":     "online",
		"payment_ref":      "pay_abc123",
		"shipping_name":    "A", "shipping_phone": "9", "shipping_address": "x",
	})
	var o struct {
		ID string `json:"id"`
	}
	decode(t, rec, &o)

	rec = e.do(t, http.MethodPut, "/v1/admin/orders/"+o.ID+"/status", admin, map[string]any{"status": "shipped"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: %d (%s)", rec.Code, rec.Body.String())
	}
	var updated struct {
		Status string `json:"status"`
	}
	decode(t, rec, &updated)
	if updated.Status != "shipped" {
		t.Fatalf("status = %q", updated.Status)
	}

	rec = e.do(t, http.MethodPut, "/v1/admin/orders/"+o.ID+"/status", admin, map[string]any{"status": "volando"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status inválido: %d, quiero 400", rec.Code)
	}
}

// ---- auth ----

func TestAdminLogin_Endpoint(t *testing.T) {
	e := newEnv(t)
	hash, err := authsvc.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	e.store.SeedUser(repository.User{
		ID: "adm", Email: "admin@ergiva.com", IsAdmin: true, PasswordHash: &hash,
	})

	rec := e.do(t, http.MethodPost, "/v1/auth/admin/login", "", map[string]any{
		"email": "admin@ergiva.com", "password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		User      struct {
			IsAdmin bool `json:"is_admin"`
		} `json:"user"`
	}
	decode(t, rec, &body)
	if body.Token == "" || body.TokenType != "Bearer" || !body.User.IsAdmin {
		t.Fatalf("respuesta de login: %s", rec.Body.String())
	}

	// El token emitido sirve contra un endpoint admin.
	if rec := e.do(t, http.MethodGet, "/v1/admin/orders", body.Token, nil); rec.Code != http.StatusOK {
		t.Fatalf("token emitido rechazado: %d", rec.Code)
	}

	rec = e.do(t, http.MethodPost, "/v1/auth/admin/login", "", map[string]any{
		"email": "admin@ergiva.com", "password": "mal",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("password mala: status = %d, quiero 401", rec.Code)
	}
}

func TestMe_GetAndUpdate(t *testing.T) {
	e := newEnv(t)
	token := e.seedUser(t, "u1", false)

	rec := e.do(t, http.MethodGet, "/v1/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /me: %d", rec.Code)
	}
	var me struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	decode(t, rec, &me)
	if me.Email != "u1@example.com" {
		t.Fatalf("email = %q", me.Email)
	}

	rec = e.do(t, http.MethodPut, "/v1/me", token, map[string]any{"phone": "1122334455"})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /me: %d (%s)", rec.Code, rec.Body.String())
	}
	decode(t, rec, &me)
	if me.Phone != "1122334455" {
		t.Fatalf("phone = %q", me.Phone)
	}
	// El email no es editable por esta vía.
	rec = e.do(t, http.MethodPut, "/v1/me", token, map[string]any{"email": "otro@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("campo desconocido: status = %d, quiero 400", rec.Code)
	}
}

// ---- testimonios ----

func TestTestimonials_ApprovalGate(t *testing.T) {
	e := newEnv(t)
	user := e.seedUser(t, "u1", false)
	admin := e.seedUser(t, "adm", true)

	rec := e.do(t, http.MethodPost, "/v1/testimonials", user, map[string]any{
		"rating": 5, "content": "Excelente atención a domicilio.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &created)
	if created.Status != "pending" {
		t.Fatalf("status = %q, quiero pending", created.Status)
	}

	// Pendiente: invisible en la vista pública.
	rec = e.do(t, http.MethodGet, "/v1/testimonials", "", nil)
	var pub struct {
		Testimonials []struct{ ID string } `json:"testimonials"`
	}
	decode(t, rec, &pub)
	if len(pub.Testimonials) != 0 {
		t.Fatalf("pendiente visible públicamente: %+v", pub.Testimonials)
	}

	rec = e.do(t, http.MethodPut, "/v1/admin/testimonials/"+created.ID+"/status", admin, map[string]any{"status": "approved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: %d (%s)", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/v1/testimonials", "", nil)
	decode(t, rec, &pub)
	if len(pub.Testimonials) != 1 {
		t.Fatalf("aprobado debe ser público: %+v", pub.Testimonials)
	}
}

// ---- formularios públicos ----

func TestPartnersAndContact_PublicForms(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, "adm", true)

	rec := e.do(t, http.MethodPost, "/v1/partners/apply", "", map[string]any{
		"name": "Dr. Rao", "email": "rao@clinic.com", "city": "Delhi",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("partner apply: %d (%s)", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/v1/contact", "", map[string]any{
		"name": "Ana", "message": "¿Hacen envíos a Pune?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact: %d (%s)", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/v1/admin/partners", admin, nil)
	var partners struct {
		Partners []struct{ Status string } `json:"partners"`
	}
	decode(t, rec, &partners)
	if len(partners.Partners) != 1 || partners.Partners[0].Status != "pending" {
		t.Fatalf("partners admin: %+v", partners.Partners)
	}

	rec = e.do(t, http.MethodGet, "/v1/admin/contacts", admin, nil)
	var contacts struct {
		Contacts []struct{ Name string } `json:"contacts"`
	}
	decode(t, rec, &contacts)
	if len(contacts.Contacts) != 1 {
		t.Fatalf("contacts admin: %+v", contacts.Contacts)
	}
}

// ---- sesiones ----

func TestSessions_CreateAndConfirm(t *testing.T) {
	e := newEnv(t)
	user := e.seedUser(t, "u1", false)
	admin := e.seedUser(t, "adm", true)

	date := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	rec := e.do(t, http.MethodPost, "/v1/sessions", user, map[string]any{
		"patient_name":   "Ana",
		"phone":          "9999999999",
		"address":        "Calle 1, Delhi",
		"condition":      "lumbalgia",
		"preferred_date": date,
		"slot":           "morning",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", rec.Code, rec.Body.String())
	}
	var s struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &s)
	if s.Status != "requested" {
		t.Fatalf("status = %q, quiero requested", s.Status)
	}

	rec = e.do(t, http.MethodPut, "/v1/admin/sessions/"+s.ID+"/status", admin, map[string]any{"status": "confirmed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: %d (%s)", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/v1/sessions", user, map[string]any{
		"patient_name": "Ana", "phone": "9", "address": "x",
		"preferred_date": date, "slot": "medianoche",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("slot inválido: %d, quiero 400", rec.Code)
	}
}

// ---- health ----

func TestHealthEndpoints(t *testing.T) {
	e := newEnv(t)
	if rec := e.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}
