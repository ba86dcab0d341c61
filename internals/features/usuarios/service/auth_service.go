package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/configs"
	"gestorhoras_backend/internals/features/usuarios/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrCredenciales    = errors.New("Matrícula o contraseña incorrecta")
	ErrCuentaInactiva  = errors.New("Tu cuenta ha sido desactivada")
	ErrRefreshInvalido = errors.New("Refresh token inválido o expirado")
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type sessionClaims struct {
	Matricula string `json:"matricula"`
	Tipo      string `json:"tipo"`
	jwt.RegisteredClaims
}

func signToken(u *model.UsuarioModel, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Matricula: u.UsuarioMatricula,
		Tipo:      string(u.UsuarioTipo),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UsuarioID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// EmitirTokens firma el par access/refresh para la sesión del usuario.
func EmitirTokens(u *model.UsuarioModel) (access string, refresh string, err error) {
	access, err = signToken(u, configs.JWTSecret, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(u, configs.JWTRefreshSecret, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseRefreshToken verifica el refresh token y devuelve el usuario_id (sub).
func ParseRefreshToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inválido")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrRefreshInvalido
	}
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return "", ErrRefreshInvalido
	}
	return sub, nil
}

// SetAuthCookies deja ambos tokens en cookies HTTPOnly. El frontend puede
// además mandar el access token como Bearer.
func SetAuthCookies(c *fiber.Ctx, access, refresh string) {
	secure := strings.EqualFold(configs.GetEnv("COOKIE_SECURE", "false"), "true")
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Path:     "/",
		MaxAge:   int(AccessTokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(RefreshTokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})
}

func ClearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
}

// RevocarToken guarda el token en la blacklist hasta que expire por sí solo.
func RevocarToken(db *gorm.DB, raw string, expiraEn time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	entry := model.TokenBlacklistModel{
		TokenBlacklistToken:    raw,
		TokenBlacklistExpiraEn: expiraEn,
	}
	err := db.Create(&entry).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return nil
	}
	return err
}

// ExpiracionDeToken lee el exp sin validar firma; para calcular el TTL
// de blacklist basta con el valor declarado.
func ExpiracionDeToken(raw string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0)
		}
	}
	return time.Now().Add(2 * time.Minute)
}

// StartBlacklistCleanup borra entradas vencidas de la blacklist cada hora.
func StartBlacklistCleanup(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			db.Where("token_blacklist_expira_en < now()").
				Delete(&model.TokenBlacklistModel{})
		}
	}()
}
