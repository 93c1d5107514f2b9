package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"monoblog/cmd/app"
	"monoblog/internal/config"
	handlers "monoblog/internal/handler"
	"monoblog/internal/middleware"
	"monoblog/internal/models"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, services, store, hub := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, store, hub, cfg)

	router := mux.NewRouter()

	// public routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/stats", handler.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/posts", handler.GetPostsByAuthor).Methods(http.MethodGet)
	router.HandleFunc("/allPosts", handler.GetAllPosts).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.ServeWS)

	// authenticated routes
	authRouter := router.NewRoute().Subrouter()
	authRouter.Use(middleware.Auth(services.Auth))
	authRouter.HandleFunc("/profile", handler.GetProfile).Methods(http.MethodGet)
	authRouter.HandleFunc("/profile", handler.UpdateProfile).Methods(http.MethodPut)
	authRouter.HandleFunc("/profile/picture", handler.UploadProfilePicture).Methods(http.MethodPost)

	// admin-only routes
	adminRouter := router.NewRoute().Subrouter()
	adminRouter.Use(middleware.Auth(services.Auth), middleware.RequireRole(models.RoleAdmin))
	adminRouter.HandleFunc("/profile", handler.DeleteProfile).Methods(http.MethodDelete)
	adminRouter.HandleFunc("/users", handler.ListUsers).Methods(http.MethodGet)
	adminRouter.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	adminRouter.HandleFunc("/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	adminRouter.HandleFunc("/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.CORS,
		middleware.Logging,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
