package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/elhornero/panaderia-api/internal/application/auth"
	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	copia := *user
	r.byEmail[user.Email] = &copia
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func testAuthUseCase() (*auth.UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "panaderia-api",
	})
	return uc, repo
}

func TestRegister_CreaUsuarioConPasswordHasheado(t *testing.T) {
	uc, repo := testAuthUseCase()

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "Maria@Panaderia.CO",
		Name:     "María",
		Password: "panfrances123",
		Role:     entity.RolePanadero,
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@panaderia.co", user.Email)
	assert.Equal(t, entity.RolePanadero, user.Role)

	stored := repo.byEmail["maria@panaderia.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "panfrances123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("panfrances123")))
}

func TestRegister_RolPorDefectoEsVendedor(t *testing.T) {
	uc, _ := testAuthUseCase()

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "caja@panaderia.co",
		Password: "contrasena1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := testAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "dup@panaderia.co", Password: "contrasena1"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "dup@panaderia.co", Password: "contrasena2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCortoORolInvalido(t *testing.T) {
	uc, _ := testAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.co", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.co", Password: "contrasena1", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	uc, _ := testAuthUseCase()

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "admin@panaderia.co",
		Password: "contrasena1",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@panaderia.co", Password: "contrasena1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrectoOUsuarioInexistente(t *testing.T) {
	uc, _ := testAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "admin@panaderia.co", Password: "contrasena1"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "admin@panaderia.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@panaderia.co", Password: "contrasena1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
