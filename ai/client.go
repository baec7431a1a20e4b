// Package ai talks to the external AI service that summarizes notes and
// generates quizzes. The service is a black box; callers decide how to
// handle failures.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateRequest is the payload sent when a note is created.
type GenerateRequest struct {
	NoteID      uint     `json:"noteId"`
	Title       string   `json:"title"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
	PdfURL      *string  `json:"pdfUrl"`
}

// QuizRequest is the payload sent when quizzes are regenerated for an
// existing note.
type QuizRequest struct {
	NoteText  string   `json:"note_text"`
	ImageURLs []string `json:"imageUrls"`
	PdfURL    *string  `json:"pdfUrl"`
}

type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

// GenerateResponse is the shape both AI endpoints answer with. Either field
// may be absent.
type GenerateResponse struct {
	Content *string    `json:"content"`
	Quiz    []QuizItem `json:"quiz"`
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.post(ctx, "/generate", req)
}

func (c *Client) GenerateQuiz(ctx context.Context, req QuizRequest) (*GenerateResponse, error) {
	return c.post(ctx, "/api/ai/quiz/generate", req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*GenerateResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ai server returned status %d", resp.StatusCode)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding ai response: %w", err)
	}

	return &out, nil
}
