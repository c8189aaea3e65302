// Package auth issues and checks the practitioner session cookie.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour

	DefaultAdminLogin = "admin"
)

type Authenv struct {
	JWTkey []byte
	Repo   repo.UserRepository
	Logger *zap.Logger
	// Insecure drops the Secure flag on the cookie for plain HTTP setups.
	Insecure bool
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) NewToken(s Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": s.UserID,
		"login":   s.Login,
		"role":    s.Role,
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(env.JWTkey)
}

// ParseToken validates an HS256 token and returns the session it carries.
func (env *Authenv) ParseToken(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	})
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return Session{}, jwt.ErrTokenInvalidClaims
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return Session{}, jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = repo.RoleUser
	}
	return Session{UserID: int(userID), Login: login, Role: role}, nil
}

func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		s, err := env.ParseToken(cookie.Value)
		if err != nil {
			env.Logger.Debug("rejected session token", zap.Error(err))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFrom(r.Context())
		if !ok || !s.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (env *Authenv) RedirectIfLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(CookieName); err == nil {
			if _, err := env.ParseToken(cookie.Value); err == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (env *Authenv) setCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   !env.Insecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req Loginrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	u, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		env.Logger.Error("login lookup failed", zap.String("login", req.Login), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}

	token, err := env.NewToken(Session{UserID: u.ID, Login: u.Login, Role: u.Role})
	if err != nil {
		env.Logger.Error("sign token failed", zap.Error(err))
		http.Error(w, "Token error", http.StatusInternalServerError)
		return
	}
	env.setCookie(w, token, time.Now().Add(sessionTTL))
	env.Logger.Info("practitioner logged in", zap.String("login", u.Login), zap.String("role", u.Role))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Login: u.Login, Role: u.Role})
}

func (env *Authenv) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	env.setCookie(w, "", time.Unix(0, 0))
	w.WriteHeader(http.StatusNoContent)
}

// Me reports the current session.
func (env *Authenv) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Login: s.Login, Role: s.Role})
}

// EnsureDefaultAdmin creates the "admin" account on an empty install.
// It returns true when the account was created.
func EnsureDefaultAdmin(ctx context.Context, users repo.UserRepository, password string) (bool, error) {
	_, err := users.GetByLogin(ctx, DefaultAdminLogin)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}
	if password == "" {
		return false, errors.New("ADMIN_PASSWORD is required to create the admin account")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := users.CreateUser(ctx, DefaultAdminLogin, hash, repo.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
