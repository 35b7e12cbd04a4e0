package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// POST /api/auth/signup {name,email,password}
func SignupHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeError(w, "Missing required fields", http.StatusBadRequest)
			return
		}
		if !emailPattern.MatchString(req.Email) {
			writeError(w, "Invalid email format", http.StatusBadRequest)
			return
		}

		var exists int
		err := db.QueryRowContext(r.Context(), `SELECT 1 FROM users WHERE email=$1`, req.Email).Scan(&exists)
		if err == nil {
			writeError(w, "Email already registered", http.StatusBadRequest)
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			writeError(w, "signup failed", http.StatusInternalServerError)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, "signup failed", http.StatusInternalServerError)
			return
		}
		if _, err := db.ExecContext(r.Context(),
			`INSERT INTO users (name,email,password_hash) VALUES ($1,$2,$3)`,
			req.Name, req.Email, string(hash)); err != nil {
			// a concurrent signup can slip past the existence check and
			// land on the users.email unique index instead
			if isUniqueViolation(err) {
				writeError(w, "Email already registered", http.StatusBadRequest)
				return
			}
			log.Printf("auth: signup insert: %v", err)
			writeError(w, "signup failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
	}
}

// POST /api/auth/signin {email,password} → session cookie
func SigninHandler(a *AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, "Missing email or password", http.StatusBadRequest)
			return
		}

		var (
			id     int64
			name   string
			hash   sql.NullString
			avatar string
		)
		err := db.QueryRowContext(r.Context(),
			`SELECT id,name,password_hash,avatar_url FROM users WHERE email=$1`, req.Email).
			Scan(&id, &name, &hash, &avatar)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(w, "signin failed", http.StatusInternalServerError)
			return
		}
		if !hash.Valid || bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(req.Password)) != nil {
			writeError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(id, name, avatar)
		if err != nil {
			writeError(w, "signin failed", http.StatusInternalServerError)
			return
		}
		SetSessionCookie(w, tok)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Logged in successfully",
			"user":    map[string]any{"id": id, "name": name, "email": req.Email},
		})
	}
}

// GET /api/auth/status
func StatusHandler(a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		c, err := r.Cookie(SessionCookie)
		if err == nil {
			if claims, perr := a.Parse(c.Value); perr == nil && claims != nil {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"isLoggedIn": true,
					"username":   claims.Name,
					"avatar":     claims.Avatar,
				})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"isLoggedIn": false})
	}
}

// POST /api/auth/logout
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ClearSessionCookie(w)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Successfully logged out"})
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// isUniqueViolation detects a unique-constraint error from either supported
// driver. database/sql exposes no shared sentinel for this, so match on the
// driver message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
