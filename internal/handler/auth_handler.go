package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/service"
	"todo-notes-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		// The original API reports a taken email with 200 and the
		// error flag set; the frontend branches on this message.
		if errors.Is(err, service.ErrDuplicateAccount) {
			response.OK(w, response.Envelope{Error: true, Message: "User already exist"})
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, domain.RegisterResponse{
		Error:       false,
		User:        user,
		AccessToken: token,
		Message:     "Registration Successful",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.BadRequest(w, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.BadRequest(w, "Invalid Email or Password")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, domain.LoginResponse{
		Error:       false,
		Message:     "Login Successful",
		Email:       req.Email,
		AccessToken: token,
	})
}
