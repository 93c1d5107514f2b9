package apperrors

import (
	"errors"
	"net/http"
)

// Доменные ошибки. Обработчики сопоставляют их со статусами через errors.Is,
// без сравнения текста сообщений.
var (
	ErrUnauthenticated = errors.New("требуется аутентификация")
	ErrForbidden       = errors.New("доступ запрещен")

	ErrUserNotFound = errors.New("пользователь не найден")
	ErrPostNotFound = errors.New("пост не найден")

	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrInvalidEmail       = errors.New("неверный формат email")
	ErrEmailInUse         = errors.New("email уже используется")
	ErrInvalidRole        = errors.New("роль должна быть user или admin")
	ErrMissingTitle       = errors.New("отсутствует заголовок поста")
	ErrMissingContent     = errors.New("отсутствует содержимое поста")
	ErrNothingToUpdate    = errors.New("нужно указать заголовок или содержимое")
	ErrMissingAuthorID    = errors.New("отсутствует ID автора")
	ErrNoFileUploaded     = errors.New("файл не загружен")
	ErrFileExists         = errors.New("файл с таким именем уже существует")

	ErrWriteFailed = errors.New("ошибка записи файла")
)

// HTTPStatus сопоставляет доменную ошибку со статусом HTTP
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrEmailInUse),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMissingTitle),
		errors.Is(err, ErrMissingContent),
		errors.Is(err, ErrNothingToUpdate),
		errors.Is(err, ErrMissingAuthorID),
		errors.Is(err, ErrNoFileUploaded),
		errors.Is(err, ErrFileExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
