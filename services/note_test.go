package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onandoff/onandoff-api/ai"
)

func fakeAIServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCreateNote_WithAIResponse(t *testing.T) {
	server := fakeAIServer(t, `{
		"content": "AI summary",
		"quiz": [
			{"question":"Q1","options":["a","b","c","d","e"],"answerIndex":1,"explanation":"E1"},
			{"question":"Q2","options":["a","b","c","d","e"],"answerIndex":3,"explanation":"E2"}
		]
	}`)
	env := newTestEnv(t, server.URL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:      user.ID,
		Title:       "T",
		Category:    "C",
		Keywords:    []string{"k"},
		Description: "desc",
		IsPublic:    true,
	})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	require.NotNil(t, note.Content)
	assert.Equal(t, "AI summary", *note.Content)
	assert.Equal(t, "alice", note.UserName)

	// Creation seeds the review history.
	require.Len(t, note.ReviewHistory, 1)
	assert.WithinDuration(t, time.Now(), note.ReviewHistory[0], time.Minute)
	assert.Nil(t, note.LastReviewedDate)

	quizzes, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "Q1", quizzes[0].Question)
	assert.Equal(t, 3, quizzes[1].AnswerIndex)

	// The content write is committed, not just in memory.
	stored, err := env.noteSvc.GetNote(note.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Content)
	assert.Equal(t, "AI summary", *stored.Content)
}

func TestCreateNote_AIUnreachable(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:   user.ID,
		Title:    "T",
		Category: "C",
	})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	// The note survives the outage with no content and no quizzes.
	assert.Nil(t, note.Content)
	quizzes, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestCreateNote_UserNotFound(t *testing.T) {
	env := newTestEnv(t, deadAIURL)

	_, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:   999,
		Title:    "T",
		Category: "C",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetNote_NotFound(t *testing.T) {
	env := newTestEnv(t, deadAIURL)

	_, err := env.noteSvc.GetNote(999)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestGetPublicNotes(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	public, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "public", Category: "C", IsPublic: true,
	})
	require.NoError(t, err)
	_, err = env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "private", Category: "C",
	})
	require.NoError(t, err)

	notes, err := env.noteSvc.GetPublicNotes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, public.ID, notes[0].ID)
	assert.Equal(t, "alice", notes[0].UserName)
}

func TestUpdateNote_PartialFields(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:      user.ID,
		Title:       "old title",
		Category:    "old category",
		Description: "old description",
		Keywords:    []string{"old"},
		IsPublic:    true,
	})
	require.NoError(t, err)

	newTitle := "new title"
	updated, err := env.noteSvc.UpdateNote(note.ID, UpdateNoteInput{
		Title: &newTitle,
		// IsPublic omitted from the body decodes to false and is applied
		// unconditionally.
	})
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "old category", updated.Category)
	assert.Equal(t, "old description", updated.Description)
	assert.Equal(t, []string{"old"}, updated.Keywords)
	assert.False(t, updated.IsPublic)
}

func TestUpdateNote_NotFound(t *testing.T) {
	env := newTestEnv(t, deadAIURL)

	_, err := env.noteSvc.UpdateNote(999, UpdateNoteInput{})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateReviewTimestamp_ResetsHistory(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "T", Category: "C",
	})
	require.NoError(t, err)

	// Grow the history first so the reset is observable.
	_, err = env.noteSvc.AddReview(note.ID)
	require.NoError(t, err)
	_, err = env.noteSvc.AddReview(note.ID)
	require.NoError(t, err)

	grown, err := env.noteSvc.GetNote(note.ID)
	require.NoError(t, err)
	require.Len(t, grown.ReviewHistory, 3)

	reviewed, err := env.noteSvc.UpdateReviewTimestamp(note.ID)
	require.NoError(t, err)

	// History is exactly one entry afterwards, regardless of prior length.
	require.Len(t, reviewed.ReviewHistory, 1)
	require.NotNil(t, reviewed.LastReviewedDate)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.Equal(t, today, *reviewed.LastReviewedDate)
}

func TestUnreviewNote_KeepsHistory(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "T", Category: "C",
	})
	require.NoError(t, err)

	_, err = env.noteSvc.UpdateReviewTimestamp(note.ID)
	require.NoError(t, err)

	unreviewed, err := env.noteSvc.UnreviewNote(note.ID)
	require.NoError(t, err)

	assert.Nil(t, unreviewed.LastReviewedDate)
	assert.Len(t, unreviewed.ReviewHistory, 1)
}

func TestRetryQuizGeneration_ReplacesQuizzes(t *testing.T) {
	server := fakeAIServer(t, `{"quiz":[{"question":"fresh","options":["a","b","c","d","e"],"answerIndex":0,"explanation":"E"}]}`)
	env := newTestEnv(t, server.URL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "T", Category: "C", Description: "desc",
	})
	require.NoError(t, err)

	// The create call already stored the fake server's quiz; retry must
	// replace it, not append.
	_, err = env.noteSvc.RetryQuizGeneration(context.Background(), note.ID)
	require.NoError(t, err)

	quizzes, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "fresh", quizzes[0].Question)
}

func TestRetryQuizGeneration_AIFailureLeavesEmptySet(t *testing.T) {
	server := fakeAIServer(t, `{"quiz":[{"question":"Q","options":["a"],"answerIndex":0,"explanation":"E"}]}`)
	env := newTestEnv(t, server.URL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID: user.ID, Title: "T", Category: "C", Description: "desc",
	})
	require.NoError(t, err)

	before, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	require.Len(t, before, 1)

	// Point the service at a dead AI endpoint for the retry.
	deadSvc := NewNoteService(env.notes, env.users, env.quizzes, ai.New(deadAIURL), env.uploadDir)

	returned, err := deadSvc.RetryQuizGeneration(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, returned.ID)

	after, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestDeleteNote_CascadesAndRemovesFiles(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	require.NoError(t, os.MkdirAll(env.uploadDir, 0o755))
	imagePath := filepath.Join(env.uploadDir, "pic.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png"), 0o644))
	pdfPath := filepath.Join(env.uploadDir, "doc.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

	pdfURL := "/uploads/doc.pdf"
	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:    user.ID,
		Title:     "T",
		Category:  "C",
		ImageURLs: []string{"/uploads/pic.png", "https://cdn.example.com/external.png"},
		PdfURL:    &pdfURL,
	})
	require.NoError(t, err)

	quiz, err := env.quizSvc.SaveQuiz(SaveQuizInput{
		NoteID: note.ID, Question: "Q", Options: []string{"a", "b"}, AnswerIndex: 0,
	})
	require.NoError(t, err)
	require.NotZero(t, quiz.ID)

	require.NoError(t, env.noteSvc.DeleteNote(note.ID))

	_, err = env.noteSvc.GetNote(note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	quizzes, err := env.quizzes.ByNoteID(note.ID)
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	assert.NoFileExists(t, imagePath)
	assert.NoFileExists(t, pdfPath)
}

func TestDeleteNote_MissingFileIsNotAnError(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	user := env.createUser(t, "alice")

	note, err := env.noteSvc.CreateNote(context.Background(), CreateNoteInput{
		UserID:    user.ID,
		Title:     "T",
		Category:  "C",
		ImageURLs: []string{"/uploads/never-existed.png"},
	})
	require.NoError(t, err)

	assert.NoError(t, env.noteSvc.DeleteNote(note.ID))
}

func TestDeleteNote_NotFound(t *testing.T) {
	env := newTestEnv(t, deadAIURL)
	assert.ErrorIs(t, env.noteSvc.DeleteNote(999), ErrNoteNotFound)
}
