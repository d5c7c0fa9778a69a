package http

import (
	"net/http"

	"github.com/sheriffbukari/xtx-training/internal/auth"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
)

type sessionResponse struct {
	User        auth.User `json:"user"`
	AccessToken string    `json:"access_token"`
}

func SignUpHandler(svc *auth.Service, events eventlog.Recorder) http.HandlerFunc {
	type req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		user, tok, err := svc.SignUp(r.Context(), in.Email, in.Password, in.DisplayName)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = events.Append(r.Context(), eventlog.Event{
			Type: eventlog.TypeUserRegistered,
			Key:  user.ID,
			DataJSON: `{"method":"password"}`,
		})
		writeJSON(w, http.StatusCreated, sessionResponse{User: user, AccessToken: tok})
	}
}

func LoginHandler(svc *auth.Service) http.HandlerFunc {
	type req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		user, tok, err := svc.SignIn(r.Context(), in.Email, in.Password, in.Remember)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{User: user, AccessToken: tok})
	}
}

// PasswordResetHandler always answers 202: whether the address exists is not
// revealed to the caller.
func PasswordResetHandler(svc *auth.Service) http.HandlerFunc {
	type req struct {
		Email string `json:"email"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		_ = svc.SendPasswordReset(r.Context(), in.Email)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "if the address exists, a reset link was sent"})
	}
}

func PasswordResetConfirmHandler(svc *auth.Service) http.HandlerFunc {
	type req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in req
		if !decodeBody(w, r, &in) {
			return
		}
		if err := svc.ConfirmPasswordReset(r.Context(), in.Token, in.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}

func MeHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.UserByID(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
