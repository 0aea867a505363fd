package memory_test

import (
	"context"
	"testing"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/store/memory"
)

func TestUsers_UniqueEmail(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	if _, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "ana@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Mismo email con otra capitalización: mismo registro lógico.
	_, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "ANA@example.com"})
	if !repository.IsConflict(err) {
		t.Fatalf("email duplicado: err = %v, quiero ErrConflict", err)
	}
}

func TestUsers_UniqueGoogleID(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	if _, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "a@x.com", GoogleID: "g-1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "b@x.com", GoogleID: "g-1"})
	if !repository.IsConflict(err) {
		t.Fatalf("google_id duplicado: err = %v, quiero ErrConflict", err)
	}
}

// Un google_id ya vinculado a una cuenta no puede reasignarse a otra.
func TestUsers_RelinkGoogleIDConflicts(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	a, _ := st.Users().Create(ctx, repository.CreateUserInput{Email: "a@x.com", GoogleID: "g-1"})
	b, _ := st.Users().Create(ctx, repository.CreateUserInput{Email: "b@x.com"})
	if a == nil || b == nil {
		t.Fatal("seed falló")
	}

	_, err := st.Users().UpdateGoogleIDAndPicture(ctx, b.ID, "g-1", "pic")
	if !repository.IsConflict(err) {
		t.Fatalf("reasignación de google_id: err = %v, quiero ErrConflict", err)
	}
}

func TestUsers_GetByEmptyGoogleID(t *testing.T) {
	st := memory.New()
	// Cuenta sin vincular: GoogleID vacío no debe matchear búsquedas vacías.
	st.SeedUser(repository.User{ID: "u1", Email: "a@x.com"})

	if _, err := st.Users().GetByGoogleID(context.Background(), ""); !repository.IsNotFound(err) {
		t.Fatalf("google_id vacío: err = %v, quiero ErrNotFound", err)
	}
}

func TestOrders_StatusValidation(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	st.SeedUser(repository.User{ID: "u1", Email: "a@x.com"})

	o, err := st.Orders().Create(ctx, repository.CreateOrderInput{
		UserID:          "u1",
		Items:           []repository.OrderItem{{ProductID: "p1", Title: "X", Price: 100, Quantity: 1}},
		Total:           100,
		PaymentMode:     repository.PaymentCOD,
		ShippingName:    "A",
		ShippingPhone:   "9",
		ShippingAddress: "x",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Status != repository.OrderPending {
		t.Fatalf("status inicial = %q", o.Status)
	}

	if _, err := st.Orders().UpdateStatus(ctx, o.ID, "volando"); !repository.IsInvalidInput(err) {
		t.Fatalf("status desconocido: err = %v, quiero ErrInvalidInput", err)
	}
	if _, err := st.Orders().UpdateStatus(ctx, "no-existe", repository.OrderShipped); !repository.IsNotFound(err) {
		t.Fatalf("orden inexistente: err = %v, quiero ErrNotFound", err)
	}

	upd, err := st.Orders().UpdateStatus(ctx, o.ID, repository.OrderConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if upd.Status != repository.OrderConfirmed {
		t.Fatalf("status = %q", upd.Status)
	}
}

func TestProducts_ListFilterAndPaging(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	for _, in := range []repository.CreateProductInput{
		{Title: "TENS", Price: 100, Category: "equipos", InStock: true},
		{Title: "Banda", Price: 50, Category: "accesorios", InStock: true},
		{Title: "Camilla", Price: 900, Category: "equipos", InStock: true},
	} {
		if _, err := st.Products().Create(ctx, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := st.Products().List(ctx, repository.ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List = %d, quiero 3", len(all))
	}

	equipos, err := st.Products().List(ctx, repository.ProductFilter{Category: "equipos"})
	if err != nil {
		t.Fatalf("List equipos: %v", err)
	}
	if len(equipos) != 2 {
		t.Fatalf("equipos = %d, quiero 2", len(equipos))
	}

	page, err := st.Products().List(ctx, repository.ProductFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("page = %d, quiero 1", len(page))
	}
}
