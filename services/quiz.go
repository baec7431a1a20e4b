package services

import (
	"errors"

	"github.com/onandoff/onandoff-api/models"
	"github.com/onandoff/onandoff-api/stores"
)

type QuizService struct {
	quizzes stores.QuizStore
	notes   stores.NoteStore
}

func NewQuizService(quizzes stores.QuizStore, notes stores.NoteStore) *QuizService {
	return &QuizService{quizzes: quizzes, notes: notes}
}

type SaveQuizInput struct {
	NoteID      uint     `json:"noteId"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

func (s *QuizService) SaveQuiz(in SaveQuizInput) (*models.Quiz, error) {
	if _, err := s.notes.ByID(in.NoteID); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	quiz := &models.Quiz{
		NoteID:      in.NoteID,
		Question:    in.Question,
		Options:     in.Options,
		AnswerIndex: in.AnswerIndex,
		Explanation: in.Explanation,
	}
	if err := s.quizzes.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuizzesByNoteID(noteID uint) ([]models.Quiz, error) {
	return s.quizzes.ByNoteID(noteID)
}
