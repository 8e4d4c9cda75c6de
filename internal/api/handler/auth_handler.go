package handler

import (
	"encoding/json"
	"net/http"
	"time"

	appmiddleware "campdir/internal/api/middleware"
	"campdir/internal/app/service"
	"campdir/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService *service.AuthService, cookieMaxAge time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Post("/forgotpassword", h.forgotPassword)
	r.Put("/resetpassword/{resettoken}", h.resetPassword)

	r.Group(func(protected chi.Router) {
		protected.Use(appmiddleware.Authenticator)
		protected.Get("/me", h.me)
		protected.Put("/updatedetails", h.updateDetails)
		protected.Put("/updatepassword", h.updatePassword)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	_, token, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.sendTokenResponse(w, http.StatusOK, token)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	_, token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.sendTokenResponse(w, http.StatusOK, token)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})
	common.RespondWithData(w, http.StatusOK, struct{}{})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	user, err := h.authService.GetMe(r.Context(), identity.UserID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, user)
}

func (h *AuthHandler) updateDetails(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.UpdateDetails(r.Context(), identity.UserID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, user)
}

func (h *AuthHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := appmiddleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	var req service.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	_, token, err := h.authService.UpdatePassword(r.Context(), identity.UserID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.sendTokenResponse(w, http.StatusOK, token)
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Email sent")
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	_, token, err := h.authService.ResetPassword(r.Context(), chi.URLParam(r, "resettoken"), req.Password)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.sendTokenResponse(w, http.StatusOK, token)
}

// sendTokenResponse returns the bearer token in the body and mirrors it
// into an httpOnly cookie.
func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, code int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieMaxAge),
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})
	common.RespondWithJSON(w, code, common.TokenResponse{Success: true, Token: token})
}
