package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "stasis_session"
const minSecretLen = 32

// SessionDuration é a validade da sessão.
const SessionDuration = 24 * time.Hour

// ErrInvalidToken indica token ausente, expirado ou com assinatura inválida.
var ErrInvalidToken = errors.New("invalid session token")

// Claims inclui as claims registradas mais o id da conta.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// CreateSessionToken gera um JWT HS256 assinado com o id da conta.
func CreateSessionToken(userID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

// VerifySessionToken valida o token e retorna o id da conta.
func VerifySessionToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// SessionCookieName é o nome do cookie de sessão.
func SessionCookieName() string {
	return sessionCookieName
}

// NewSessionCookie monta o cookie HttpOnly da sessão.
func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie monta um cookie que remove a sessão no navegador.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionSecretBytes deriva a chave de assinatura a partir da string de
// configuração (mínimo 32 bytes, completado com zeros se menor).
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
