package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
	"github.com/ergiva/ergiva-server/internal/identity"
	"github.com/ergiva/ergiva-server/internal/store/memory"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.New()
}

func TestResolve_CreatesNewUser(t *testing.T) {
	st := newStore(t)
	r := identity.NewResolver(st.Users())

	u, err := r.Resolve(context.Background(), identity.Profile{
		ProviderID:  "g-123",
		Email:       "Ana@Example.com",
		DisplayName: "Ana",
		PictureURL:  "https://img/ana.png",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.GoogleID != "g-123" || u.Name != "Ana" || u.Picture != "https://img/ana.png" {
		t.Fatalf("usuario creado inconsistente: %+v", u)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("email sin normalizar: %q", u.Email)
	}
	if u.IsAdmin {
		t.Fatal("el resolver jamás debe setear is_admin")
	}
}

func TestResolve_IsIdempotent(t *testing.T) {
	st := newStore(t)
	r := identity.NewResolver(st.Users())
	p := identity.Profile{ProviderID: "g-1", Email: "x@example.com", DisplayName: "X"}

	first, err := r.Resolve(context.Background(), p)
	if err != nil {
		t.Fatalf("primer Resolve: %v", err)
	}
	second, err := r.Resolve(context.Background(), p)
	if err != nil {
		t.Fatalf("segundo Resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("dos usuarios para el mismo perfil: %s vs %s", first.ID, second.ID)
	}
	if n := st.CountUsers(); n != 1 {
		t.Fatalf("usuarios en el store = %d, quiero 1", n)
	}
}

// El camino por google_id retorna el registro tal cual: un perfil con nombre
// y foto nuevos no pisa nada.
func TestResolve_ByProviderID_NoProfileRefresh(t *testing.T) {
	st := newStore(t)
	st.SeedUser(repository.User{
		ID:       "u1",
		GoogleID: "g-55",
		Email:    "viejo@example.com",
		Name:     "Nombre Viejo",
		Picture:  "https://img/vieja.png",
	})
	r := identity.NewResolver(st.Users())

	u, err := r.Resolve(context.Background(), identity.Profile{
		ProviderID:  "g-55",
		Email:       "nuevo@example.com",
		DisplayName: "Nombre Nuevo",
		PictureURL:  "https://img/nueva.png",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("resolvió a otro usuario: %s", u.ID)
	}
	if u.Name != "Nombre Viejo" || u.Picture != "https://img/vieja.png" || u.Email != "viejo@example.com" {
		t.Fatalf("el camino por google_id no debe refrescar el perfil: %+v", u)
	}
}

// El match por email vincula el google_id y pisa la foto aunque ya hubiera
// una. El resto del perfil no se toca.
func TestResolve_ByEmail_LinksAndOverwritesPicture(t *testing.T) {
	st := newStore(t)
	st.SeedUser(repository.User{
		ID:      "u2",
		Email:   "ana@example.com",
		Name:    "Ana",
		Picture: "https://img/manual.png",
	})
	r := identity.NewResolver(st.Users())

	u, err := r.Resolve(context.Background(), identity.Profile{
		ProviderID:  "g-77",
		Email:       "ana@example.com",
		DisplayName: "Ana G",
		PictureURL:  "https://img/google.png",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.ID != "u2" {
		t.Fatalf("resolvió a otro usuario: %s", u.ID)
	}
	if u.GoogleID != "g-77" {
		t.Fatalf("google_id sin vincular: %q", u.GoogleID)
	}
	if u.Picture != "https://img/google.png" {
		t.Fatalf("la foto debe pisarse incondicionalmente: %q", u.Picture)
	}
	if u.Name != "Ana" {
		t.Fatalf("el nombre no debe refrescarse en este camino: %q", u.Name)
	}
}

// Una cuenta admin pre-sembrada que entra por Google conserva su flag:
// la vinculación no toca is_admin.
func TestResolve_AdminFlagSurvivesLinking(t *testing.T) {
	st := newStore(t)
	st.SeedUser(repository.User{
		ID:      "adm",
		Email:   "admin@ergiva.com",
		Name:    "Admin",
		IsAdmin: true,
	})
	r := identity.NewResolver(st.Users())

	u, err := r.Resolve(context.Background(), identity.Profile{
		ProviderID: "g-adm",
		Email:      "admin@ergiva.com",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !u.IsAdmin {
		t.Fatal("is_admin se perdió durante la vinculación")
	}
}

// failingRepo envuelve un repo real y permite inyectar fallas por operación.
type failingRepo struct {
	repository.UserRepository

	failGetByEmail error
	createErr      error
	createCalls    int

	// onCreate corre antes del Create real (simula una carrera perdida).
	onCreate func()
}

func (f *failingRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	if f.failGetByEmail != nil {
		return nil, f.failGetByEmail
	}
	return f.UserRepository.GetByEmail(ctx, email)
}

func (f *failingRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	f.createCalls++
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.UserRepository.Create(ctx, input)
}

func TestResolve_StoreFailureWrapsResolutionError(t *testing.T) {
	st := newStore(t)
	boom := errors.New("connection reset")
	repo := &failingRepo{UserRepository: st.Users(), failGetByEmail: boom}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), identity.Profile{ProviderID: "g-9", Email: "x@example.com"})
	if err == nil {
		t.Fatal("quería error")
	}
	var resErr *identity.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("quería *ResolutionError, vino %T", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("la causa original debe ser accesible via Unwrap: %v", err)
	}
}

// Carrera de creación perdida: el primer intento recibe ErrConflict porque
// otro proceso creó el usuario entremedio; el único reintento lo encuentra.
func TestResolve_ConflictRetriesOnceAndFinds(t *testing.T) {
	st := newStore(t)
	repo := &failingRepo{UserRepository: st.Users()}
	repo.createErr = repository.ErrConflict
	repo.onCreate = func() {
		// El "ganador" aparece justo antes de que falle nuestro Create.
		st.SeedUser(repository.User{ID: "winner", GoogleID: "g-race", Email: "race@example.com"})
		repo.onCreate = nil
	}
	r := identity.NewResolver(repo)

	u, err := r.Resolve(context.Background(), identity.Profile{ProviderID: "g-race", Email: "race@example.com"})
	if err != nil {
		t.Fatalf("Resolve tras conflicto: %v", err)
	}
	if u.ID != "winner" {
		t.Fatalf("debió encontrar al ganador de la carrera, vino %s", u.ID)
	}
	if repo.createCalls != 1 {
		t.Fatalf("Create llamado %d veces, quiero 1 (el reintento encuentra por google_id)", repo.createCalls)
	}
}

// Si el reintento también falla, la falla sale envuelta y no hay tercer intento.
func TestResolve_ConflictRetryFailsWrapped(t *testing.T) {
	st := newStore(t)
	repo := &failingRepo{UserRepository: st.Users(), createErr: repository.ErrConflict}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), identity.Profile{ProviderID: "g-x", Email: "x@example.com"})
	if err == nil {
		t.Fatal("quería error")
	}
	var resErr *identity.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("quería *ResolutionError, vino %T", err)
	}
	if repo.createCalls != 2 {
		t.Fatalf("Create llamado %d veces, quiero exactamente 2 (un solo reintento)", repo.createCalls)
	}
}
