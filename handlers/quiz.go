package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/onandoff/onandoff-api/services"
)

func (h *Handler) SaveQuiz(w http.ResponseWriter, r *http.Request) {
	var req services.SaveQuizInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("SaveQuiz: invalid request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.Quizzes.SaveQuiz(req)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		log.Printf("SaveQuiz: failed for noteID=%d: %v", req.NoteID, err)
		writeError(w, http.StatusInternalServerError, "failed to save quiz")
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}
