package services

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/onandoff/onandoff-api/ai"
	"github.com/onandoff/onandoff-api/models"
	"github.com/onandoff/onandoff-api/stores"
)

type NoteService struct {
	notes     stores.NoteStore
	users     stores.UserStore
	quizzes   stores.QuizStore
	ai        *ai.Client
	uploadDir string
}

func NewNoteService(notes stores.NoteStore, users stores.UserStore, quizzes stores.QuizStore, aiClient *ai.Client, uploadDir string) *NoteService {
	return &NoteService{notes: notes, users: users, quizzes: quizzes, ai: aiClient, uploadDir: uploadDir}
}

type CreateNoteInput struct {
	UserID      uint
	Title       string
	Category    string
	Keywords    []string
	Description string
	ImageURLs   []string
	PdfURL      *string
	IsPublic    bool
}

// UpdateNoteInput carries a partial update. Nil pointer fields are left
// unchanged; IsPublic is always applied, matching the existing API
// contract.
type UpdateNoteInput struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Keywords    *[]string `json:"keywords"`
	Content     *string   `json:"content"`
	IsPublic    bool      `json:"isPublic"`
}

// CreateNote persists the note first, then asks the AI gateway for a
// summary and quizzes. The AI call is best-effort: any failure is logged
// and the already-committed note is returned without content or quizzes.
func (s *NoteService) CreateNote(ctx context.Context, in CreateNoteInput) (*models.Note, error) {
	user, err := s.users.ByID(in.UserID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	note := &models.Note{
		UserID:        user.ID,
		Title:         in.Title,
		Category:      in.Category,
		IsPublic:      in.IsPublic,
		Keywords:      in.Keywords,
		Description:   in.Description,
		ImageURLs:     in.ImageURLs,
		PdfURL:        in.PdfURL,
		ReviewHistory: []time.Time{now}, // creation counts as the first review
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.notes.Create(note); err != nil {
		return nil, err
	}

	if resp, err := s.ai.Generate(ctx, ai.GenerateRequest{
		NoteID:      note.ID,
		Title:       in.Title,
		Keywords:    in.Keywords,
		Description: in.Description,
		ImageURLs:   in.ImageURLs,
		PdfURL:      in.PdfURL,
	}); err != nil {
		log.Printf("CreateNote: AI generate failed for noteID=%d: %v", note.ID, err)
	} else {
		if resp.Content != nil {
			note.Content = resp.Content
			if err := s.notes.Save(note); err != nil {
				log.Printf("CreateNote: failed to store AI content for noteID=%d: %v", note.ID, err)
			}
		}
		s.saveQuizItems(note.ID, resp.Quiz)
	}

	note.UserName = user.Username
	return note, nil
}

func (s *NoteService) GetNotesByUser(userID uint) ([]models.Note, error) {
	notes, err := s.notes.ByUserID(userID)
	if err != nil {
		return nil, err
	}
	fillUserNames(notes)
	return notes, nil
}

func (s *NoteService) GetNote(noteID uint) (*models.Note, error) {
	return s.findNote(noteID)
}

func (s *NoteService) GetPublicNotes() ([]models.Note, error) {
	notes, err := s.notes.Public()
	if err != nil {
		return nil, err
	}
	fillUserNames(notes)
	return notes, nil
}

func (s *NoteService) UpdateNote(noteID uint, in UpdateNoteInput) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Category != nil {
		note.Category = *in.Category
	}
	if in.Description != nil {
		note.Description = *in.Description
	}
	if in.Keywords != nil {
		note.Keywords = *in.Keywords
	}
	if in.Content != nil {
		note.Content = in.Content
	}
	// isPublic is applied unconditionally, even when absent from the body.
	note.IsPublic = in.IsPublic

	if err := s.notes.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

// AddReview appends a review timestamp without touching lastReviewedDate.
func (s *NoteService) AddReview(noteID uint) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	note.ReviewHistory = append(note.ReviewHistory, time.Now())
	if err := s.notes.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateReviewTimestamp resets the review history to a single "now" entry
// and stamps lastReviewedDate with today. The clearing is intentional
// reset semantics, not an append.
func (s *NoteService) UpdateReviewTimestamp(noteID uint) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	note.ReviewHistory = []time.Time{now}
	note.LastReviewedDate = &today

	if err := s.notes.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

// UnreviewNote clears lastReviewedDate only; the review history stays.
func (s *NoteService) UnreviewNote(noteID uint) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	note.LastReviewedDate = nil
	if err := s.notes.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

// RetryQuizGeneration asks the AI gateway for a fresh quiz set. Existing
// quizzes are dropped regardless of the call's outcome, so a failed call
// leaves the note with no quizzes; the error is logged, not surfaced.
func (s *NoteService) RetryQuizGeneration(ctx context.Context, noteID uint) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	noteText := note.Description
	if note.Content != nil {
		noteText = *note.Content
	}

	resp, aiErr := s.ai.GenerateQuiz(ctx, ai.QuizRequest{
		NoteText:  noteText,
		ImageURLs: note.ImageURLs,
		PdfURL:    note.PdfURL,
	})

	if err := s.quizzes.DeleteByNoteID(noteID); err != nil {
		log.Printf("RetryQuizGeneration: failed to delete quizzes for noteID=%d: %v", noteID, err)
	}

	if aiErr != nil {
		log.Printf("RetryQuizGeneration: AI quiz generation failed for noteID=%d: %v", noteID, aiErr)
		return note, nil
	}

	s.saveQuizItems(noteID, resp.Quiz)
	return note, nil
}

// DeleteNote removes uploaded files referenced by the note, then its
// quizzes, then the note row. File removal is best-effort and not
// transactional with the database deletes.
func (s *NoteService) DeleteNote(noteID uint) error {
	note, err := s.findNote(noteID)
	if err != nil {
		return err
	}

	for _, imageURL := range note.ImageURLs {
		s.removeUpload(imageURL)
	}
	if note.PdfURL != nil {
		s.removeUpload(*note.PdfURL)
	}

	// Quizzes first, to avoid dangling references to the note.
	if err := s.quizzes.DeleteByNoteID(noteID); err != nil {
		return err
	}
	return s.notes.Delete(noteID)
}

func (s *NoteService) findNote(noteID uint) (*models.Note, error) {
	note, err := s.notes.ByID(noteID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	note.UserName = note.User.Username
	return note, nil
}

func (s *NoteService) saveQuizItems(noteID uint, items []ai.QuizItem) {
	for _, item := range items {
		quiz := &models.Quiz{
			NoteID:      noteID,
			Question:    item.Question,
			Options:     item.Options,
			AnswerIndex: item.AnswerIndex,
			Explanation: item.Explanation,
		}
		if err := s.quizzes.Create(quiz); err != nil {
			log.Printf("saveQuizItems: failed to save quiz for noteID=%d: %v", noteID, err)
		}
	}
}

// removeUpload deletes a file only when its URL is rooted at the upload
// path. A missing file is not an error.
func (s *NoteService) removeUpload(fileURL string) {
	if !strings.HasPrefix(fileURL, "/uploads/") {
		return
	}
	name := strings.TrimPrefix(fileURL, "/uploads/")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	path := filepath.Join(s.uploadDir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("removeUpload: failed to delete %s: %v", path, err)
	}
}

func fillUserNames(notes []models.Note) {
	for i := range notes {
		notes[i].UserName = notes[i].User.Username
	}
}
