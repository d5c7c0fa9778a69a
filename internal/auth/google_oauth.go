package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sheriffbukari/xtx-training/internal/config"
)

// GoogleLoginHandler redirects to the Google OAuth consent screen. The
// caller's current page is remembered so the callback can return there.
func GoogleLoginHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := r.URL.Query().Get("redirect")
		if next == "" && r.Referer() != "" {
			next = r.Referer()
		}
		if next == "" {
			base := strings.TrimRight(cfg.PublicURL, "/")
			if base == "" {
				base = "/"
			}
			next = base + "/"
		}
		if !sameOriginOrLocal(next, cfg.PublicURL) {
			http.Error(w, "bad redirect", http.StatusBadRequest)
			return
		}

		state := fmt.Sprintf("s-%d", time.Now().UnixNano())
		http.SetCookie(w, &http.Cookie{
			Name:     "xtx_oauth_state",
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(10 * time.Minute),
		})
		http.SetCookie(w, &http.Cookie{
			Name:     "xtx_post_auth_redirect",
			Value:    url.QueryEscape(next),
			Path:     "/",
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(10 * time.Minute),
		})

		q := url.Values{}
		q.Set("client_id", cfg.GoogleClientID)
		q.Set("redirect_uri", cfg.GoogleRedirectURI)
		q.Set("response_type", "code")
		q.Set("scope", "openid email profile")
		q.Set("state", state)
		if cfg.GoogleAllowedHD != "" {
			q.Set("hd", cfg.GoogleAllowedHD)
		}
		http.Redirect(w, r, "https://accounts.google.com/o/oauth2/v2/auth?"+q.Encode(), http.StatusFound)
	}
}

// GoogleCallbackHandler exchanges the code, verifies the id_token, upserts
// the account, and mints an internal session token.
func GoogleCallbackHandler(issuer *TokenIssuer, db *sql.DB, cfg config.Config) http.HandlerFunc {
	type tokenResp struct {
		AccessToken string `json:"access_token"`
		IdToken     string `json:"id_token"`
	}
	type tokenInfo struct {
		Iss   string `json:"iss"`
		Aud   string `json:"aud"`
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Hd    string `json:"hd"`
		Name  string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		if state == "" {
			http.Error(w, "missing state", http.StatusBadRequest)
			return
		}
		if c, err := r.Cookie("xtx_oauth_state"); err != nil || c.Value != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		form := url.Values{}
		form.Set("code", code)
		form.Set("client_id", cfg.GoogleClientID)
		form.Set("client_secret", cfg.GoogleClientSecret)
		form.Set("redirect_uri", cfg.GoogleRedirectURI)
		form.Set("grant_type", "authorization_code")

		resp, err := http.PostForm("https://oauth2.googleapis.com/token", form)
		if err != nil {
			http.Error(w, "token exchange error", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		var tr tokenResp
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.IdToken == "" {
			http.Error(w, "bad token response", http.StatusBadGateway)
			return
		}

		// Server-side verification via the tokeninfo endpoint.
		tiResp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(tr.IdToken))
		if err != nil {
			http.Error(w, "tokeninfo fetch error", http.StatusBadGateway)
			return
		}
		defer tiResp.Body.Close()
		var ti tokenInfo
		if err := json.NewDecoder(tiResp.Body).Decode(&ti); err != nil {
			http.Error(w, "tokeninfo parse error", http.StatusBadGateway)
			return
		}
		if ti.Aud != cfg.GoogleClientID {
			http.Error(w, "invalid aud", http.StatusUnauthorized)
			return
		}
		if ti.Iss != "accounts.google.com" && ti.Iss != "https://accounts.google.com" {
			http.Error(w, "invalid iss", http.StatusUnauthorized)
			return
		}
		if cfg.GoogleAllowedHD != "" && !strings.EqualFold(ti.Hd, cfg.GoogleAllowedHD) {
			http.Error(w, "unauthorized domain", http.StatusUnauthorized)
			return
		}

		user, err := upsertGoogleUser(r, db, ti.Email, ti.Name)
		if err != nil {
			http.Error(w, "account upsert failed", http.StatusInternalServerError)
			return
		}

		tok, err := issuer.Issue(user.ID, user.DisplayName, 8*time.Hour)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}

		target := ""
		if c, err := r.Cookie("xtx_post_auth_redirect"); err == nil {
			if raw, _ := url.QueryUnescape(c.Value); raw != "" {
				target = raw
			}
		}
		if target == "" || !sameOriginOrLocal(target, cfg.PublicURL) {
			target = cfg.PublicURL
			if target == "" {
				target = "/"
			}
		}

		http.SetCookie(w, &http.Cookie{Name: "xtx_oauth_state", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
		http.SetCookie(w, &http.Cookie{Name: "xtx_post_auth_redirect", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})

		u, _ := url.Parse(target)
		q := u.Query()
		q.Set("access_token", tok)
		u.RawQuery = q.Encode()
		http.Redirect(w, r, u.String(), http.StatusFound)
	}
}

func upsertGoogleUser(r *http.Request, db *sql.DB, email, name string) (User, error) {
	email = normalizeEmail(email)
	u := User{Email: email, DisplayName: name}

	err := db.QueryRowContext(r.Context(),
		`SELECT id, display_name FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.DisplayName)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		u.ID = uuid.NewString()
		u.DisplayName = name
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id, email, display_name, password_hash, created_at) VALUES ($1,$2,$3,'',$4)`,
			u.ID, u.Email, u.DisplayName, time.Now().Unix())
		return u, err
	case err != nil:
		return User{}, err
	}
	return u, nil
}

func sameOriginOrLocal(target, publicURL string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	base, err := url.Parse(publicURL)
	if err != nil || base.Host == "" {
		return true // no public URL configured (dev), accept relative targets
	}
	return u.Host == "" ||
		(u.Scheme == base.Scheme && u.Host == base.Host) ||
		strings.HasPrefix(u.Host, "localhost")
}
