package services

import (
	"errors"
	"log"
	"time"

	"github.com/onandoff/onandoff-api/auth"
	"github.com/onandoff/onandoff-api/models"
	"github.com/onandoff/onandoff-api/stores"
)

// AuthResponse is the structured result of signup and login. Failures are
// expressed with Success=false and a message, not an HTTP error code.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	UserID   uint   `json:"userId,omitempty"`
	Message  string `json:"message"`
}

type UserService struct {
	users         stores.UserStore
	secretKey     []byte
	tokenValidity time.Duration
}

func NewUserService(users stores.UserStore, secretKey []byte, tokenValidity time.Duration) *UserService {
	return &UserService{users: users, secretKey: secretKey, tokenValidity: tokenValidity}
}

func (s *UserService) Signup(username, email, password string) (*AuthResponse, error) {
	taken, err := s.users.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return &AuthResponse{Success: false, Message: "username is already taken"}, nil
	}

	taken, err = s.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return &AuthResponse{Success: false, Message: "email is already registered"}, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	token, err := auth.CreateToken(user.Username, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, err
	}

	log.Printf("Signup: created user %s (id=%d)", user.Username, user.ID)
	return &AuthResponse{
		Success:  true,
		Token:    token,
		Username: user.Username,
		UserID:   user.ID,
		Message:  "signup complete",
	}, nil
}

// Login returns the same generic failure message for an unknown username
// and a wrong password so accounts cannot be enumerated.
func (s *UserService) Login(username, password string) (*AuthResponse, error) {
	const failureMessage = "invalid username or password"

	user, err := s.users.ByUsername(username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return &AuthResponse{Success: false, Message: failureMessage}, nil
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return &AuthResponse{Success: false, Message: failureMessage}, nil
	}

	token, err := auth.CreateToken(user.Username, s.secretKey, s.tokenValidity)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success:  true,
		Token:    token,
		Username: user.Username,
		UserID:   user.ID,
		Message:  "login complete",
	}, nil
}
