package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"monoblog/internal/apperrors"
	"monoblog/internal/middleware"
	"monoblog/internal/models"
	"monoblog/internal/service"
)

type ProfileResponse struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Name           *string `json:"name"`
	Role           string  `json:"role"`
	ProfilePicture *string `json:"profilePicture"`
}

type UpdateProfileRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
	Name           *string `json:"name"`
	Role           *string `json:"role" validate:"omitempty,oneof=user admin"`
	ProfilePicture *string `json:"profilePicture"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}

func profileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		ProfilePicture: user.ProfilePicture,
	}
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), principal.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, profileResponse(user), http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdateUserRequest{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		serviceReq.Role = &role
	}

	user, err := h.UserService.UpdateUser(r.Context(), principal.ID, serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierUserUpdated(user))

	WriteJSON(w, profileResponse(user), http.StatusOK)
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), principal.ID); err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierUserDeleted(principal.ID))

	WriteJSON(w, map[string]string{"message": "Пользователь удален"}, http.StatusOK)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.GetAllUsers(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, users, http.StatusOK)
}

func (h *Handlers) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteAppError(w, apperrors.ErrNoFileUploaded)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAppError(w, apperrors.ErrNoFileUploaded)
		return
	}
	defer file.Close()

	path, err := h.Storage.SaveProfilePicture(r.Context(), principal.ID, header.Filename, file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	_, err = h.UserService.UpdateProfilePicture(r.Context(), principal.ID, path)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			WriteAppError(w, err)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Notifier.Broadcast(notifierPictureUpdated(principal.ID, path))

	WriteJSON(w, UploadResponse{Message: "Аватар обновлен", FilePath: path}, http.StatusOK)
}
