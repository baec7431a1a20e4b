// Package stores defines the persistence interfaces for users, notes and
// quizzes, plus their gorm implementations. Services depend on the
// interfaces so tests can swap the backing database.
package stores

import (
	"errors"

	"github.com/onandoff/onandoff-api/models"
)

// ErrNotFound is returned when a looked-up record does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	Create(user *models.User) error
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
}

type NoteStore interface {
	Create(note *models.Note) error
	Save(note *models.Note) error
	ByID(id uint) (*models.Note, error)
	ByUserID(userID uint) ([]models.Note, error)
	Public() ([]models.Note, error)
	Delete(id uint) error
}

type QuizStore interface {
	Create(quiz *models.Quiz) error
	ByNoteID(noteID uint) ([]models.Quiz, error)
	DeleteByNoteID(noteID uint) error
}
