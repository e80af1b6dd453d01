package handler

import (
	"net/http"
)

const resetRequestedMessage = "if the email is registered, a reset code has been sent"

type signUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FamilyName string `json:"familyName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type verifyResetRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	user, err := h.Auth.SignUp(r.Context(), req.Email, req.Password, req.FamilyName)
	if err != nil {
		h.fail(w, r, "auth.signup", err, "email", req.Email)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: toUserResponse(*user)})
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	user, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "auth.signin", err, "email", req.Email)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: toUserResponse(*user)})
}

// ForgotPassword answers the same way whether or not the email exists.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	ticket, err := h.Auth.IssueResetToken(r.Context(), req.Email)
	if err != nil {
		h.fail(w, r, "auth.forgot_password", err)
		return
	}

	if ticket != nil && h.Mailer != nil {
		if err := h.Mailer.SendResetToken(r.Context(), ticket.Email, ticket.FamilyName, ticket.Token); err != nil {
			h.logFor(r.Context()).InternalError("auth.forgot_password: send reset email failed", err, "email", ticket.Email)
		}
	}

	writeJSON(w, http.StatusOK, messageEnvelope{Message: resetRequestedMessage})
}

func (h *Handlers) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req verifyResetRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	if err := h.Auth.VerifyResetToken(r.Context(), req.Email, req.Token); err != nil {
		h.fail(w, r, "auth.verify_reset_token", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !h.decodeOrReject(w, r, &req) {
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		h.fail(w, r, "auth.reset_password", err)
		return
	}

	writeJSON(w, http.StatusOK, messageEnvelope{Message: "password updated"})
}
