package handlers

import (
	"encoding/json"
	"net/http"

	"monoblog/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteAppError сопоставляет доменную ошибку со статусом через apperrors
func WriteAppError(w http.ResponseWriter, err error) {
	WriteError(w, err.Error(), apperrors.HTTPStatus(err))
}

// WriteJSON - функция для успешных ответов
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
