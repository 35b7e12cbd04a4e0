package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/rsduran/Athena-quiz-app-v2/internal/config"
)

const stateCookie = "athena_oauth_state"

func githubOAuthConfig(cfg config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		RedirectURL:  cfg.GitHubRedirectURI,
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     oauthgithub.Endpoint,
	}
}

// GET /api/auth/github → redirect to GitHub's consent page.
func GitHubLoginHandler(cfg config.Config) http.HandlerFunc {
	oc := githubOAuthConfig(cfg)
	return func(w http.ResponseWriter, r *http.Request) {
		state := fmt.Sprintf("s-%d", time.Now().UnixNano())
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(10 * time.Minute),
		})
		http.Redirect(w, r, oc.AuthCodeURL(state), http.StatusFound)
	}
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// GET /api/auth/github/callback → exchange code, upsert user, set session
// cookie, bounce to the dashboard.
func GitHubCallbackHandler(a *AuthService, db *sql.DB, cfg config.Config) http.HandlerFunc {
	oc := githubOAuthConfig(cfg)
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		if c, err := r.Cookie(stateCookie); err != nil || state == "" || c.Value != state {
			http.Error(w, "bad state", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		tok, err := oc.Exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "token exchange error", http.StatusBadGateway)
			return
		}

		client := oc.Client(r.Context(), tok)
		resp, err := client.Get("https://api.github.com/user")
		if err != nil {
			http.Error(w, "github user fetch error", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		var gu githubUser
		if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil || gu.ID == 0 {
			http.Error(w, "bad github user response", http.StatusBadGateway)
			return
		}

		userID, err := upsertGitHubUser(r, db, gu)
		if err != nil {
			http.Error(w, "user upsert failed", http.StatusInternalServerError)
			return
		}

		jwtTok, err := a.IssueJWT(userID, gu.Login, gu.AvatarURL)
		if err != nil {
			http.Error(w, "session issue failed", http.StatusInternalServerError)
			return
		}
		SetSessionCookie(w, jwtTok)
		http.Redirect(w, r, cfg.FrontendURL+"/Dashboard", http.StatusFound)
	}
}

func upsertGitHubUser(r *http.Request, db *sql.DB, gu githubUser) (int64, error) {
	ghID := strconv.FormatInt(gu.ID, 10)
	var id int64
	err := db.QueryRowContext(r.Context(), `SELECT id FROM users WHERE github_id=$1`, ghID).Scan(&id)
	if err == nil {
		// refresh the avatar on every login
		_, uerr := db.ExecContext(r.Context(), `UPDATE users SET avatar_url=$1 WHERE id=$2`, gu.AvatarURL, id)
		return id, uerr
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	var email any
	if gu.Email != "" {
		email = gu.Email
	}
	res, err := db.ExecContext(r.Context(),
		`INSERT INTO users (name,email,github_id,avatar_url) VALUES ($1,$2,$3,$4)`,
		gu.Login, email, ghID, gu.AvatarURL)
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err == nil && id > 0 {
		return id, nil
	}
	// postgres has no LastInsertId; read it back
	err = db.QueryRowContext(r.Context(), `SELECT id FROM users WHERE github_id=$1`, ghID).Scan(&id)
	return id, err
}
