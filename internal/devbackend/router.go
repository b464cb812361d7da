// Package devbackend es el backend REST local contra el que corre el cliente
// en desarrollo y en los tests end-to-end.
//
// @title Pet Walks dev backend
// @version 1.0
// @description Backend local de desarrollo: auth (JWT) y alta de mascotas.
// @BasePath /
package devbackend

import (
	"context"
	"database/sql"
	"net/http"

	"pet-walks-client/internal/devbackend/accounts"
	_ "pet-walks-client/internal/devbackend/docs"
	"pet-walks-client/internal/devbackend/middleware"
	"pet-walks-client/internal/devbackend/pets"
	mem "pet-walks-client/internal/devbackend/storage/memory"
	pg "pet-walks-client/internal/devbackend/storage/postgres"
	"pet-walks-client/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Tokens *accounts.Tokens
	Logger logger.Logger

	// Opcional: si viene, usa Postgres (ya migrado). Si no, in-memory.
	DB *sql.DB

	// Cuentas a crear al arrancar (demo / admin).
	Seed []accounts.RegisterInput

	OnResetCode func(email, code string)
}

func NewRouter(opts Options) http.Handler {
	lg := opts.Logger
	if lg == nil {
		lg = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(lg))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		userRepo accounts.Repository
		petRepo  pets.Repository
	)
	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
	}

	accountsSvc := accounts.NewService(accounts.Options{
		Repo:        userRepo,
		Tokens:      opts.Tokens,
		Logger:      lg,
		OnResetCode: opts.OnResetCode,
	})
	petsSvc := pets.NewService(petRepo)

	for _, in := range opts.Seed {
		if _, err := accountsSvc.EnsureUser(context.Background(), in); err != nil {
			lg.Warn("seed user failed", map[string]any{"email": in.Email, "error": err})
		}
	}

	accounts.RegisterRoutes(r, accountsSvc)
	pets.RegisterRoutes(r, petsSvc)

	return r
}
