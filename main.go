package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/onandoff/onandoff-api/ai"
	"github.com/onandoff/onandoff-api/config"
	"github.com/onandoff/onandoff-api/handlers"
	"github.com/onandoff/onandoff-api/middleware"
	"github.com/onandoff/onandoff-api/services"
	"github.com/onandoff/onandoff-api/stores"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("main: JWT_SECRET_KEY not set")
	}

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("main: failed to connect database: %v", err)
	}

	userStore := stores.NewGormUserStore(db)
	noteStore := stores.NewGormNoteStore(db)
	quizStore := stores.NewGormQuizStore(db)

	aiClient := ai.New(cfg.AIURL)

	h := &handlers.Handler{
		Users:     services.NewUserService(userStore, []byte(cfg.JWTSecret), cfg.TokenValidity),
		Notes:     services.NewNoteService(noteStore, userStore, quizStore, aiClient, cfg.UploadDir),
		Quizzes:   services.NewQuizService(quizStore, noteStore),
		UploadDir: cfg.UploadDir,
	}

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/health", h.AuthHealth)
	mux.HandleFunc("GET /api/health", h.Health)

	// Notes
	mux.HandleFunc("GET /api/notes/user/{userId}", h.GetNotesByUser)
	mux.HandleFunc("GET /api/notes/public", h.GetPublicNotes)
	mux.HandleFunc("GET /api/notes/{noteId}", h.GetNote)
	mux.HandleFunc("GET /api/notes/{noteId}/quiz", h.GetQuizzesForNote)
	mux.HandleFunc("POST /api/notes", h.CreateNote)
	mux.HandleFunc("PATCH /api/notes/{noteId}", h.UpdateNote)
	mux.HandleFunc("PATCH /api/notes/{noteId}/review", h.ReviewNote)
	mux.HandleFunc("PATCH /api/notes/{noteId}/unreview", h.UnreviewNote)
	mux.HandleFunc("POST /api/notes/{noteId}/review-history", h.AddReviewHistory)
	mux.HandleFunc("POST /api/notes/{noteId}/quiz/retry", h.RetryQuizGeneration)
	mux.HandleFunc("DELETE /api/notes/{noteId}", h.DeleteNote)

	// Uploads
	mux.HandleFunc("POST /api/notes/upload-image", h.UploadImage)
	mux.HandleFunc("POST /api/notes/upload-files", h.UploadFiles)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Quiz
	mux.HandleFunc("POST /api/quiz", h.SaveQuiz)

	authGate := middleware.AuthGate(userStore, []byte(cfg.JWTSecret))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authGate(mux))

	serverAddr := "0.0.0.0:" + cfg.Port
	log.Printf("main: listening on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatalf("main: server stopped: %v", err)
	}
}
