package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/onandoff/onandoff-api/services"
)

func (h *Handler) GetNotesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	notes, err := h.Notes.GetNotesByUser(userID)
	if err != nil {
		log.Printf("GetNotesByUser: failed for userID=%d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.Notes.GetNote(noteID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		log.Printf("GetNote: failed for noteID=%d: %v", noteID, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch note")
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) GetPublicNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Notes.GetPublicNotes()
	if err != nil {
		log.Printf("GetPublicNotes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) GetQuizzesForNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	quizzes, err := h.Quizzes.GetQuizzesByNoteID(noteID)
	if err != nil {
		log.Printf("GetQuizzesForNote: failed for noteID=%d: %v", noteID, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch quizzes")
		return
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      uint     `json:"userId"`
		Title       string   `json:"title"`
		Category    string   `json:"category"`
		Keywords    []string `json:"keywords"`
		Description string   `json:"description"`
		ImageURLs   []string `json:"imageUrls"`
		PdfURL      *string  `json:"pdfUrl"`
		IsPublic    bool     `json:"isPublic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateNote: invalid request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "title and category are required")
		return
	}

	note, err := h.Notes.CreateNote(r.Context(), services.CreateNoteInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Category:    req.Category,
		Keywords:    req.Keywords,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		PdfURL:      req.PdfURL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("CreateNote: failed for userID=%d: %v", req.UserID, err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	log.Printf("CreateNote: created noteID=%d for userID=%d", note.ID, req.UserID)
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req services.UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("UpdateNote: invalid request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.Notes.UpdateNote(noteID, req)
	if err != nil {
		h.noteError(w, "UpdateNote", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) ReviewNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.Notes.UpdateReviewTimestamp(noteID)
	if err != nil {
		h.noteError(w, "ReviewNote", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) UnreviewNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.Notes.UnreviewNote(noteID)
	if err != nil {
		h.noteError(w, "UnreviewNote", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) AddReviewHistory(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.Notes.AddReview(noteID)
	if err != nil {
		h.noteError(w, "AddReviewHistory", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) RetryQuizGeneration(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.Notes.RetryQuizGeneration(r.Context(), noteID)
	if err != nil {
		h.noteError(w, "RetryQuizGeneration", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseID(r, "noteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.Notes.DeleteNote(noteID); err != nil {
		h.noteError(w, "DeleteNote", noteID, err)
		return
	}

	log.Printf("DeleteNote: deleted noteID=%d", noteID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) noteError(w http.ResponseWriter, op string, noteID uint, err error) {
	if errors.Is(err, services.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	log.Printf("%s: failed for noteID=%d: %v", op, noteID, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
