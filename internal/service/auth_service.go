package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/mailer"
)

type authUserRepository interface {
	FindByEmailWithRole(ctx context.Context, email string) (*models.UserWithRole, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	CreateStudentAccount(ctx context.Context, user *models.User, telefono string) (int64, error)
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	UpdatePasswordAndClearReset(ctx context.Context, id int64, passwordHash string) error
}

type authRoleRepository interface {
	FindIDByName(ctx context.Context, name string) (int64, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret           string
	TokenExpiry      time.Duration
	ResetTokenExpiry time.Duration
	ResetURL         string
}

// AuthService provides authentication use cases.
type AuthService struct {
	users     authUserRepository
	roles     authRoleRepository
	mail      mailer.Sender
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, roles authRoleRepository, mail mailer.Sender, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	if config.ResetTokenExpiry <= 0 {
		config.ResetTokenExpiry = time.Hour
	}
	return &AuthService{users: users, roles: roles, mail: mail, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login authenticates a user and returns a session token. Unknown emails and
// wrong passwords produce the same error so the response does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmailWithRole(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "credenciales invalidas")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if user.Estado != models.EstadoActivo {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "cuenta inactiva")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "credenciales invalidas")
	}

	rol := models.Role(strings.ToLower(user.NombreRol))
	token, err := s.generateSessionToken(user.UsuarioID, user.Nombre, user.Email, rol)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResponse{
		Token: token,
		User: models.UserInfo{
			ID:     user.UsuarioID,
			Nombre: user.Nombre,
			Email:  user.Email,
			Rol:    rol,
		},
	}, nil
}

// Register provisions a student account: a usuarios row with the estudiante
// role plus its linked alumnos row, then returns a session token so the new
// user is logged in immediately.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	if _, err := s.users.FindByEmailWithRole(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "el email ya esta registrado")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	rolID, err := s.roles.FindIDByName(ctx, string(models.RoleStudent))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		RolID:        rolID,
		PaisID:       &req.PaisID,
	}
	usuarioID, err := s.users.CreateStudentAccount(ctx, user, req.Telefono)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	token, err := s.generateSessionToken(usuarioID, req.Nombre, req.Email, models.RoleStudent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.RegisterResponse{Token: token}, nil
}

// ForgotPassword issues a short-lived reset token, stores it on the account
// and mails the reset link. Mail delivery failures are logged but do not fail
// the request once the token is persisted.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid forgot password payload")
	}

	user, err := s.users.FindByEmailWithRole(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no existe una cuenta con ese email")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	now := s.now().UTC()
	expires := now.Add(s.config.ResetTokenExpiry)
	claims := &models.ResetClaims{
		UserID: user.UsuarioID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign reset token")
	}

	if err := s.users.SetResetToken(ctx, user.UsuarioID, token, expires); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store reset token")
	}

	if s.mail != nil {
		link := fmt.Sprintf("%s?token=%s", s.config.ResetURL, token)
		msg := mailer.Message{
			To:      []string{user.Email},
			Subject: "Recuperacion de contrasena",
			Text:    fmt.Sprintf("Hola %s, usa el siguiente enlace para restablecer tu contrasena (valido por 1 hora): %s", user.Nombre, link),
			HTML:    fmt.Sprintf("<p>Hola %s,</p><p>Usa el siguiente enlace para restablecer tu contrasena (valido por 1 hora):</p><p><a href=%q>Restablecer contrasena</a></p>", user.Nombre, link),
		}
		if err := s.mail.Send(msg); err != nil {
			s.logger.Warn("failed to send reset email", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return nil
}

// ResetPassword verifies the reset token against both its signature and the
// stored copy, then replaces the password and consumes the token.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reset password payload")
	}

	token, err := jwt.ParseWithClaims(req.Token, &models.ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return appErrors.Clone(appErrors.ErrResetToken, "token invalido o expirado")
	}
	claims, ok := token.Claims.(*models.ResetClaims)
	if !ok {
		return appErrors.Clone(appErrors.ErrResetToken, "token invalido o expirado")
	}

	user, err := s.users.FindByValidResetToken(ctx, req.Token, s.now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrResetToken, "token invalido o expirado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify reset token")
	}
	if user.UsuarioID != claims.UserID {
		return appErrors.Clone(appErrors.ErrResetToken, "token invalido o expirado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.users.UpdatePasswordAndClearReset(ctx, user.UsuarioID, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	return nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateSessionToken(userID int64, nombre, email string, rol models.Role) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.JWTClaims{
		UserID: userID,
		Nombre: nombre,
		Email:  email,
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
