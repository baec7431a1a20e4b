package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/onandoff/onandoff-api/services"
)

// Handler bundles the services behind the HTTP layer.
type Handler struct {
	Users     *services.UserService
	Notes     *services.NoteService
	Quizzes   *services.QuizService
	UploadDir string
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func parseID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
