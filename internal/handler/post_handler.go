package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"monoblog/internal/middleware"
	"monoblog/internal/models"
)

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req.Title, req.Content, principal.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierNewPost(post))

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPostByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierUpdatedPost(post))

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	h.Notifier.Broadcast(notifierDeletedPost(id))

	WriteJSON(w, map[string]string{"message": "Пост удален"}, http.StatusOK)
}

// GetPostsByAuthor обслуживает GET /posts?authorId=
func (h *Handlers) GetPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	// нераспарсенный или отсутствующий authorId превращается в 0,
	// сервис вернёт ошибку отсутствующего ID
	authorID, _ := strconv.ParseInt(r.URL.Query().Get("authorId"), 10, 64)

	posts, err := h.PostService.GetAllPostsByAuthor(r.Context(), authorID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteJSON(w, posts, http.StatusOK)
}

// GetAllPosts обслуживает GET /allPosts: все посты, либо посты автора,
// если передан authorId
func (h *Handlers) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	authorID, _ := strconv.ParseInt(r.URL.Query().Get("authorId"), 10, 64)

	var posts []models.Post
	var err error

	if authorID != 0 {
		posts, err = h.PostService.GetAllPostsByAuthor(r.Context(), authorID)
	} else {
		posts, err = h.PostService.GetAllPosts(r.Context())
	}

	if err != nil {
		WriteAppError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteJSON(w, posts, http.StatusOK)
}
