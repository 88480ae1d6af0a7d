package handler

import (
	"net/http"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/middleware"
	"todo-notes-server/internal/service"
	"todo-notes-server/pkg/response"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// The token only carries the ID; the account may have vanished
	// since it was issued.
	user, err := h.userService.GetByID(userID)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	response.OK(w, domain.UserResponse{User: user, Message: ""})
}
