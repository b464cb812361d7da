package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-walks-client/internal/platform/logger"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/ports/credentials"
)

var (
	ErrStorage         = errors.New("session storage error")
	ErrNotConfigured   = errors.New("session manager not configured")
	ErrInvalidArgument = errors.New("token and user are required")
)

// Manager es el dueño único de la sesión en memoria y del par token/user persistido.
// Ninguna pantalla escribe el credential store directamente.
type Manager struct {
	store    credentials.Store
	verifier auth.TokenVerifier
	authn    auth.Authenticator
	log      logger.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

type Options struct {
	Store         credentials.Store
	Verifier      auth.TokenVerifier
	Authenticator auth.Authenticator
	Logger        logger.Logger
}

func NewManager(opts Options) *Manager {
	lg := opts.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	return &Manager{
		store:     opts.Store,
		verifier:  opts.Verifier,
		authn:     opts.Authenticator,
		log:       lg.With(map[string]any{"component": "session"}),
		state:     Initial(),
		listeners: map[int]func(State){},
	}
}

// State devuelve una copia del estado actual.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.state)
}

// Token devuelve el bearer actual o "" si no hay sesión autenticada.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status != StatusAuthenticated {
		return ""
	}
	return m.state.Token
}

// Subscribe registra un listener que se llama después de cada transición.
// Devuelve la función para desuscribirse.
func (m *Manager) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// CheckSession reconstruye la sesión desde el storage y valida el token.
// Nunca devuelve error: cualquier falla termina en not_authenticated.
func (m *Manager) CheckSession(ctx context.Context) State {
	if m.store == nil {
		m.log.Error("check session without store", nil)
		return m.dispatch(SignOut())
	}

	token, user, ok := m.readPersisted(ctx)
	if !ok {
		return m.dispatch(SignOut())
	}

	res := auth.InvalidSession
	if m.verifier != nil {
		r, err := m.verifier.VerifyToken(ctx, token)
		if err != nil {
			m.log.Warn("token verification failed", map[string]any{"error": err})
		} else {
			res = r
		}
	} else {
		m.log.Error("check session without verifier", nil)
	}

	if !res.Success || res.Expired {
		m.log.Info("stored session rejected", map[string]any{
			"success": res.Success,
			"expired": res.Expired,
		})
		m.clearPersisted(ctx)
		return m.dispatch(SignOut())
	}

	return m.dispatch(Restore(token, user))
}

// Authenticate persiste token + user y deja la sesión autenticada.
// Se usa tras un login y tras cualquier flujo que emita un token nuevo (reset de password).
func (m *Manager) Authenticate(ctx context.Context, token string, user auth.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidArgument
	}
	if m.store == nil {
		return ErrNotConfigured
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode user: %v", ErrStorage, err)
	}

	if err := m.store.Set(ctx, credentials.KeyToken, token); err != nil {
		m.log.Error("persist token failed", map[string]any{"error": err})
		m.clearPersisted(ctx)
		m.dispatch(SignOut())
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := m.store.Set(ctx, credentials.KeyUser, string(raw)); err != nil {
		m.log.Error("persist user failed", map[string]any{"error": err})
		m.clearPersisted(ctx)
		m.dispatch(SignOut())
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	m.dispatch(SignIn(token, user))
	m.log.Info("session authenticated", map[string]any{"user_id": user.ID, "role_id": int(user.RoleID)})
	return nil
}

// Login delega en el Authenticator y, si sale bien, se comporta como Authenticate.
// El error del Authenticator se devuelve tal cual: su mensaje es para mostrar.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.authn == nil {
		return ErrNotConfigured
	}

	res, err := m.authn.Login(ctx, email, password)
	if err != nil {
		// el storage sigue a la memoria: nada que restaurar en el próximo arranque
		m.clearPersisted(ctx)
		m.dispatch(SignOut())
		return err
	}
	return m.Authenticate(ctx, res.Token, res.User)
}

// Logout limpia el storage y deja not_authenticated. Nunca falla hacia afuera.
func (m *Manager) Logout(ctx context.Context) {
	m.clearPersisted(ctx)
	m.dispatch(SignOut())
	m.log.Info("session closed", nil)
}

func (m *Manager) readPersisted(ctx context.Context) (string, auth.User, bool) {
	token, okToken, err := m.store.Get(ctx, credentials.KeyToken)
	if err != nil {
		m.log.Warn("read token failed", map[string]any{"error": err})
		return "", auth.User{}, false
	}
	rawUser, okUser, err := m.store.Get(ctx, credentials.KeyUser)
	if err != nil {
		m.log.Warn("read user failed", map[string]any{"error": err})
		return "", auth.User{}, false
	}
	if !okToken || !okUser || strings.TrimSpace(token) == "" || strings.TrimSpace(rawUser) == "" {
		return "", auth.User{}, false
	}

	var user auth.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		m.log.Warn("stored user is malformed", map[string]any{"error": err})
		m.clearPersisted(ctx)
		return "", auth.User{}, false
	}
	return strings.TrimSpace(token), user, true
}

// clearPersisted borra ambas claves; los errores solo se loguean.
func (m *Manager) clearPersisted(ctx context.Context) {
	if m.store == nil {
		return
	}
	for _, k := range []string{credentials.KeyToken, credentials.KeyUser} {
		if err := m.store.Delete(ctx, k); err != nil {
			m.log.Error("clear credential failed", map[string]any{"key": k, "error": err})
		}
	}
}

func (m *Manager) dispatch(a Action) State {
	m.mu.Lock()
	m.state = Reduce(m.state, a)
	st := snapshot(m.state)
	fns := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
	return st
}

func snapshot(s State) State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
