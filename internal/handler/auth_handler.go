package handlers

import (
	"encoding/json"
	"net/http"

	"monoblog/internal/models"
	"monoblog/internal/service"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	}
	if req.Name != "" {
		serviceReq.Name = &req.Name
	}

	user, err := h.UserService.CreateUser(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	token, err := h.AuthService.GenerateToken(user)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierUserCreated(user))

	WriteJSON(w, TokenResponse{Token: token}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, TokenResponse{Token: token}, http.StatusOK)
}
