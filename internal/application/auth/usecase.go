package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/application/ports"
	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
	"github.com/jhoicas/ucoffee-api/pkg/jwt"
)

// maxPasswordBytes límite de entrada de bcrypt.
const maxPasswordBytes = 72

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de cuenta: registro, login y logout.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tx         AccountTxRunner
	denylist   ports.TokenDenylist
	jwtCfg     JWTConfig
	log        zerolog.Logger
	bcryptCost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx AccountTxRunner, denylist ports.TokenDenylist, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		tx:         tx,
		denylist:   denylist,
		jwtCfg:     jwtCfg,
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.bcryptCost = cost
	return uc
}

// RegisterUser crea un usuario con rol customer. Usuario y rol se escriben en la misma transacción;
// si el rol customer no existe en la tabla roles, el usuario se crea igual y se registra un warning.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Invalid("nombre, email y password son requeridos")
	}
	if entity.TooLong(name, entity.MaxNameLen) || entity.TooLong(email, entity.MaxEmailLen) {
		return nil, domain.Invalid(fmt.Sprintf("nombre (máx. %d) o email (máx. %d) demasiado largos", entity.MaxNameLen, entity.MaxEmailLen))
	}
	// bcrypt limita por bytes, no por caracteres: 37 letras cirílicas ya superan el límite.
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.Invalid(fmt.Sprintf("el password no puede superar %d bytes", maxPasswordBytes))
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.Invalid(fmt.Sprintf("el password no puede superar %d bytes", maxPasswordBytes))
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
	}

	err = uc.tx.RunAccount(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		role, err := roles.FindByName(ctx, entity.RoleCustomer)
		if err != nil {
			return err
		}
		if role == nil {
			uc.log.Warn().Int64("user_id", user.ID).Msg("rol customer no existe; usuario creado sin rol asignado")
			return nil
		}
		return roles.Assign(ctx, user.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: dto.UserResponse{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Role:  entity.RoleCustomer,
	}}, nil
}

// Login verifica email/password, resuelve el rol efectivo y emite un JWT.
// Password incorrecto siempre es ErrUnauthorized; una cuenta bloqueada con password correcto es ErrAccountBlocked.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y password son requeridos")
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.IsBlocked() {
		return nil, domain.ErrAccountBlocked
	}

	role := user.EffectiveRole()
	out := &dto.AuthResponse{User: dto.UserResponse{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Role:  role,
	}}
	if uc.jwtCfg.Secret != "" {
		token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return nil, fmt.Errorf("generar token: %w", err)
		}
		out.Token = token
	}
	return out, nil
}

// Logout revoca el token hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	ttl := claims.RemainingTTL(time.Now())
	if ttl == 0 {
		return nil
	}
	return uc.denylist.Add(ctx, token, ttl)
}

// IsRevoked indica si el token fue revocado por logout.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, token string) (bool, error) {
	return uc.denylist.Contains(ctx, token)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
