package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

var _ ports.Access = (*AuthUseCase)(nil)

const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de sesión: registro, login, logout y control de acceso.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time

	// regMu serializa verificación de username único + alta en la colección users.
	regMu sync.Mutex
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// RegisterUser crea un usuario con la contraseña hasheada con bcrypt.
// Solo un admin en sesión puede crear otro admin.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewFieldError("username", "requerido")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewFieldError("password", "mínimo 6 caracteres")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !entity.IsEmail(email) {
		return nil, domain.NewFieldError("email", "formato inválido")
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleUser
	case entity.RoleUser:
	case entity.RoleAdmin:
		if _, err := uc.RequireAdmin(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewFieldError("role", "debe ser admin o user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Email:        email,
		Active:       true,
		CreatedAt:    uc.now(),
	}

	uc.regMu.Lock()
	defer uc.regMu.Unlock()
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", username).Str("role", role).Msg("usuario registrado")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login verifica usuario/contraseña, persiste la sesión activa y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: user.ID, Username: user.Username, Role: user.Role},
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.Set(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("userId", user.ID).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Logout limpia la sesión persistida. Con un actor en el contexto solo la limpia si
// pertenece a ese mismo usuario; la sesión de otro queda intacta.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if actor := ActorFromContext(ctx); actor != nil {
		cur, err := uc.sessionRepo.Current(ctx)
		if err != nil {
			return err
		}
		if cur == nil || cur.ID != actor.ID {
			return nil
		}
	}
	return uc.sessionRepo.Clear(ctx)
}

// CurrentUser devuelve el actor del contexto (peticiones HTTP) o, si no hay,
// el usuario de la sesión persistida. (nil, nil) si no hay ninguno.
func (uc *AuthUseCase) CurrentUser(ctx context.Context) (*entity.User, error) {
	if actorSet(ctx) {
		return ActorFromContext(ctx), nil
	}
	return uc.sessionRepo.Current(ctx)
}

// RequireAdmin exige sesión con rol admin.
func (uc *AuthUseCase) RequireAdmin(ctx context.Context) (*entity.User, error) {
	u, err := uc.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// ResolveActor carga el usuario del token para colocarlo en el contexto de la petición.
// Un usuario inexistente o inactivo no es un actor válido.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, id jwt.Identity) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}
