package accounts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-walks-client/internal/platform/logger"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("Correo o contraseña incorrectos")
	ErrDisabled           = errors.New("Tu cuenta está deshabilitada")
	ErrInvalidCode        = errors.New("El código es inválido o ya venció")
	ErrInvalidRole        = errors.New("Rol inválido")
)

const (
	defaultCodeTTL = 15 * time.Minute
	codeLen        = 8
)

type resetCode struct {
	code      string
	expiresAt time.Time
}

type Options struct {
	Repo   Repository
	Tokens *Tokens
	Logger logger.Logger

	// OnResetCode recibe cada código generado (el "envío por correo" del modo dev).
	OnResetCode func(email, code string)
	CodeTTL     time.Duration
}

type Service struct {
	repo   Repository
	tokens *Tokens
	log    logger.Logger
	notify func(email, code string)

	now        func() time.Time
	codeTTL    time.Duration
	bcryptCost int

	mu    sync.Mutex
	codes map[string]resetCode // por email normalizado
}

func NewService(opts Options) *Service {
	lg := opts.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	ttl := opts.CodeTTL
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	return &Service{
		repo:       opts.Repo,
		tokens:     opts.Tokens,
		log:        lg.With(map[string]any{"component": "accounts"}),
		notify:     opts.OnResetCode,
		now:        time.Now,
		codeTTL:    ttl,
		bcryptCost: bcrypt.DefaultCost,
		codes:      make(map[string]resetCode),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	RoleID   auth.RoleID
}

// Register crea cuentas de cliente o paseador. Los admins solo se siembran.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if in.RoleID != auth.RoleClient && in.RoleID != auth.RoleWalker {
		return User{}, ErrInvalidRole
	}
	return s.create(ctx, in)
}

// EnsureUser crea la cuenta si el email no existe. Acepta cualquier rol.
func (s *Service) EnsureUser(ctx context.Context, in RegisterInput) (User, error) {
	u, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return s.create(ctx, in)
}

func (s *Service) create(ctx context.Context, in RegisterInput) (User, error) {
	fe := validation.Register(validation.RegisterForm{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Password:        in.Password,
		ConfirmPassword: in.Password,
	})
	if !fe.OK() {
		return User{}, fe
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u, err := s.repo.Create(ctx, User{
		Name:         strings.TrimSpace(in.Name),
		Email:        validation.NormalizeEmail(in.Email),
		Phone:        validation.DigitsOnly(in.Phone),
		RoleID:       in.RoleID,
		PasswordHash: string(hash),
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, err
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID, "role": u.RoleID.String()})
	return u, nil
}

// Login devuelve token + usuario.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}
	if !u.Enabled {
		return "", User{}, ErrDisabled
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

// VerifyToken responde lo que espera el cliente: expired=true solo si venció.
func (s *Service) VerifyToken(ctx context.Context, token string) auth.VerifyResult {
	c, err := s.tokens.Parse(token)
	if err != nil {
		return auth.VerifyResult{Success: false, Expired: errors.Is(err, ErrTokenExpired)}
	}

	u, err := s.repo.GetByID(ctx, c.UserID)
	if err != nil || !u.Enabled {
		return auth.VerifyResult{Success: false, Expired: false}
	}
	return auth.VerifyResult{Success: true, Expired: false}
}

// ForgotPassword genera un código si la cuenta existe. No revela si existe.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if fe := validation.ForgotPassword(email); !fe.OK() {
		return fe
	}

	email = validation.NormalizeEmail(email)
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:codeLen])

	s.mu.Lock()
	s.codes[email] = resetCode{code: code, expiresAt: s.now().Add(s.codeTTL)}
	s.mu.Unlock()

	s.log.Info("reset code issued", map[string]any{"user_id": u.ID})
	if s.notify != nil {
		s.notify(email, code)
	}
	return nil
}

// ResetPassword consume el código y devuelve un token nuevo.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) (string, User, error) {
	if fe := validation.ResetPassword(email, code, newPassword, newPassword); !fe.OK() {
		return "", User{}, fe
	}
	email = validation.NormalizeEmail(email)

	if !s.consumeCode(email, strings.ToUpper(strings.TrimSpace(code))) {
		return "", User{}, ErrInvalidCode
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCode
		}
		return "", User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return "", User{}, err
	}
	now := s.now()
	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash), now); err != nil {
		return "", User{}, err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = now

	if !u.Enabled {
		return "", User{}, ErrDisabled
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

func (s *Service) consumeCode(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rc, ok := s.codes[email]
	if !ok || rc.code != code {
		return false
	}
	delete(s.codes, email)
	return s.now().Before(rc.expiresAt)
}
