package app

import (
	"context"
	"errors"
	"fmt"

	"pet-walks-client/internal/adapters/backend"
	"pet-walks-client/internal/adapters/storage/credentials/sqlite"
	"pet-walks-client/internal/config"
	"pet-walks-client/internal/domain/petdraft"
	"pet-walks-client/internal/domain/session"
	"pet-walks-client/internal/platform/logger"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/ports/credentials"
	"pet-walks-client/internal/ports/petregistry"
	"pet-walks-client/internal/validation"
)

var (
	ErrNotAuthenticated = errors.New("Inicia sesión para continuar")
	ErrIncompleteDraft  = errors.New("Faltan datos de la mascota")
)

// Accounts son las operaciones de cuenta que no pasan por el session manager.
type Accounts interface {
	Register(ctx context.Context, in backend.RegisterInput) (auth.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, in backend.ResetPasswordInput) (auth.LoginResult, error)
}

// PetLister lista las mascotas del usuario.
type PetLister interface {
	ListPets(ctx context.Context, token string) ([]petregistry.Pet, error)
}

// Deps son los colaboradores que arma la raíz de composición.
type Deps struct {
	Store     credentials.Store
	Verifier  auth.TokenVerifier
	Authn     auth.Authenticator
	Registrar petregistry.Registrar
	Accounts  Accounts
	Pets      PetLister
	Logger    logger.Logger
}

// App es la raíz de composición: dueña del session manager y del draft del wizard.
// Las pantallas (comandos del CLI) reciben *App; no hay singletons globales.
type App struct {
	Session *session.Manager
	Draft   *petdraft.Aggregator

	registrar petregistry.Registrar
	accounts  Accounts
	pets      PetLister
	log       logger.Logger

	closers []func() error
}

func New(d Deps) *App {
	lg := d.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	return &App{
		Session: session.NewManager(session.Options{
			Store:         d.Store,
			Verifier:      d.Verifier,
			Authenticator: d.Authn,
			Logger:        lg,
		}),
		Draft:     petdraft.NewAggregator(),
		registrar: d.Registrar,
		accounts:  d.Accounts,
		pets:      d.Pets,
		log:       lg.With(map[string]any{"component": "app"}),
	}
}

// Open arma la App real: credential store SQLite + cliente REST del backend.
func Open(cfg *config.Config, lg logger.Logger) (*App, error) {
	if lg == nil {
		lg = logger.Nop()
	}

	store, err := sqlite.Open(cfg.CredentialsPath())
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	api, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  lg,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("backend client: %w", err)
	}

	a := New(Deps{
		Store:     store,
		Verifier:  api,
		Authn:     api,
		Registrar: api,
		Accounts:  api,
		Pets:      api,
		Logger:    lg,
	})
	a.closers = append(a.closers, store.Close)
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Login valida el formulario localmente antes de ir al backend.
func (a *App) Login(ctx context.Context, email, password string) error {
	if err := validation.Login(email, password).Err(); err != nil {
		return err
	}
	return a.Session.Login(ctx, validation.NormalizeEmail(email), password)
}

func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
}

func (a *App) Register(ctx context.Context, f validation.RegisterForm, role auth.RoleID) (auth.User, error) {
	if err := validation.Register(f).Err(); err != nil {
		return auth.User{}, err
	}
	if a.accounts == nil {
		return auth.User{}, backend.ErrNotConfigured
	}
	return a.accounts.Register(ctx, backend.RegisterInput{
		Name:     f.Name,
		Email:    validation.NormalizeEmail(f.Email),
		Phone:    validation.DigitsOnly(f.Phone),
		Password: f.Password,
		RoleID:   role,
	})
}

func (a *App) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validation.ForgotPassword(email).Err(); err != nil {
		return "", err
	}
	if a.accounts == nil {
		return "", backend.ErrNotConfigured
	}
	return a.accounts.ForgotPassword(ctx, validation.NormalizeEmail(email))
}

// ResetPassword completa la recuperación y deja la sesión autenticada con el token nuevo.
func (a *App) ResetPassword(ctx context.Context, email, code, password, confirm string) error {
	if err := validation.ResetPassword(email, code, password, confirm).Err(); err != nil {
		return err
	}
	if a.accounts == nil {
		return backend.ErrNotConfigured
	}
	res, err := a.accounts.ResetPassword(ctx, backend.ResetPasswordInput{
		Email:       validation.NormalizeEmail(email),
		Code:        code,
		NewPassword: password,
	})
	if err != nil {
		return err
	}
	return a.Session.Authenticate(ctx, res.Token, res.User)
}

func (a *App) ListPets(ctx context.Context) ([]petregistry.Pet, error) {
	token := a.Session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if a.pets == nil {
		return nil, backend.ErrNotConfigured
	}
	return a.pets.ListPets(ctx, token)
}
