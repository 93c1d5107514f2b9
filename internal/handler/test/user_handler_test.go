package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"monoblog/internal/apperrors"
	"monoblog/internal/middleware"
	"monoblog/internal/models"
	"monoblog/internal/service"
)

func authenticate(req *http.Request, principal *models.Principal) *http.Request {
	ctx := middleware.ContextWithPrincipal(req.Context(), principal)
	return req.WithContext(ctx)
}

func testPrincipal(role models.Role) *models.Principal {
	return &models.Principal{ID: 7, Email: "a@x.com", Role: role}
}

func TestGetProfile_Success(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.user.On("GetUserByID", mock.Anything, int64(7)).Return(&models.User{
		ID:    7,
		Email: "a@x.com",
		Role:  models.RoleUser,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.GetProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, float64(7), response["id"])
	assert.Equal(t, "a@x.com", response["email"])
	// хеш пароля не сериализуется
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	handler, _ := createTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()

	handler.GetProfile(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "Требуется аутентификация")
}

func TestGetProfile_NotFound(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.user.On("GetUserByID", mock.Anything, int64(7)).
		Return(nil, apperrors.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.GetProfile(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfile_WithoutPassword(t *testing.T) {
	handler, mocks := createTestHandler()

	updated := &models.User{ID: 7, Email: "new@x.com", Role: models.RoleUser}

	// пароль не передан - в сервис уходит nil, хеш не трогается
	mocks.user.On("UpdateUser", mock.Anything, int64(7), mock.MatchedBy(func(req service.UpdateUserRequest) bool {
		return req.Password == nil && req.Email != nil && *req.Email == "new@x.com"
	})).Return(updated, nil)

	body, _ := json.Marshal(map[string]string{"email": "new@x.com"})
	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBuffer(body))
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"userUpdated"}, mocks.notifier.Types())
	mocks.user.AssertExpectations(t)
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	handler, mocks := createTestHandler()

	body, _ := json.Marshal(map[string]string{"email": "not-an-email"})
	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBuffer(body))
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UpdateProfile(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mocks.user.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProfile_Success(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.user.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	req = authenticate(req, testPrincipal(models.RoleAdmin))
	rr := httptest.NewRecorder()

	handler.DeleteProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"userDeleted"}, mocks.notifier.Types())
}

func TestListUsers_Success(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.user.On("GetAllUsers", mock.Anything).Return([]models.User{
		{ID: 1, Email: "a@x.com", Role: models.RoleAdmin},
		{ID: 2, Email: "b@x.com", Role: models.RoleUser},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = authenticate(req, testPrincipal(models.RoleAdmin))
	rr := httptest.NewRecorder()

	handler.ListUsers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.NotContains(t, rr.Body.String(), "password")
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadProfilePicture_Success(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.storage.On("SaveProfilePicture", mock.Anything, int64(7), "avatar.png", mock.Anything, mock.Anything).
		Return("uploads/7-avatar.png", nil)
	mocks.user.On("UpdateProfilePicture", mock.Anything, int64(7), "uploads/7-avatar.png").
		Return(&models.User{ID: 7}, nil)

	body, contentType := multipartBody(t, "file", "avatar.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UploadProfilePicture(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "uploads/7-avatar.png", response["filePath"])

	assert.Equal(t, []string{"profilePictureUpdated"}, mocks.notifier.Types())
}

func TestUploadProfilePicture_NoFile(t *testing.T) {
	handler, mocks := createTestHandler()

	body, contentType := multipartBody(t, "wrong-field", "avatar.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UploadProfilePicture(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "файл не загружен")
	mocks.storage.AssertNotCalled(t, "SaveProfilePicture",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadProfilePicture_FileExists(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.storage.On("SaveProfilePicture", mock.Anything, int64(7), "avatar.png", mock.Anything, mock.Anything).
		Return("", apperrors.ErrFileExists)

	body, contentType := multipartBody(t, "file", "avatar.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UploadProfilePicture(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "уже существует")
	mocks.user.AssertNotCalled(t, "UpdateProfilePicture", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, mocks.notifier.Events)
}

func TestUploadProfilePicture_WriteError(t *testing.T) {
	handler, mocks := createTestHandler()

	mocks.storage.On("SaveProfilePicture", mock.Anything, int64(7), "avatar.png", mock.Anything, mock.Anything).
		Return("", apperrors.ErrWriteFailed)

	body, contentType := multipartBody(t, "file", "avatar.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticate(req, testPrincipal(models.RoleUser))
	rr := httptest.NewRecorder()

	handler.UploadProfilePicture(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
