package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/onandoff/onandoff-api/ai"
	"github.com/onandoff/onandoff-api/models"
	"github.com/onandoff/onandoff-api/stores"
)

type testEnv struct {
	users   *stores.GormUserStore
	notes   *stores.GormNoteStore
	quizzes *stores.GormQuizStore

	userSvc *UserService
	noteSvc *NoteService
	quizSvc *QuizService

	uploadDir string
}

// newTestEnv wires the services over a throwaway sqlite database. aiURL
// points at a fake AI server, or at a closed port to simulate an outage.
func newTestEnv(t *testing.T, aiURL string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}, &models.Quiz{}))

	users := stores.NewGormUserStore(db)
	notes := stores.NewGormNoteStore(db)
	quizzes := stores.NewGormQuizStore(db)

	uploadDir := filepath.Join(dir, "uploads")
	aiClient := ai.New(aiURL)

	return &testEnv{
		users:     users,
		notes:     notes,
		quizzes:   quizzes,
		userSvc:   NewUserService(users, []byte("test-secret"), time.Hour),
		noteSvc:   NewNoteService(notes, users, quizzes, aiClient, uploadDir),
		quizSvc:   NewQuizService(quizzes, notes),
		uploadDir: uploadDir,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     models.RoleUser,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

// deadAIURL is a port nothing listens on; calls fail immediately.
const deadAIURL = "http://127.0.0.1:1"
