package stores

import (
	"errors"

	"github.com/onandoff/onandoff-api/models"
	"gorm.io/gorm"
)

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) Create(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *GormUserStore) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormUserStore) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type GormNoteStore struct {
	DB *gorm.DB
}

func NewGormNoteStore(db *gorm.DB) *GormNoteStore {
	return &GormNoteStore{DB: db}
}

func (s *GormNoteStore) Create(note *models.Note) error {
	return s.DB.Create(note).Error
}

func (s *GormNoteStore) Save(note *models.Note) error {
	return s.DB.Omit("User").Save(note).Error
}

func (s *GormNoteStore) ByID(id uint) (*models.Note, error) {
	var note models.Note
	if err := s.DB.Preload("User").First(&note, id).Error; err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

func (s *GormNoteStore) ByUserID(userID uint) ([]models.Note, error) {
	notes := []models.Note{}
	if err := s.DB.Preload("User").Where("user_id = ?", userID).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *GormNoteStore) Public() ([]models.Note, error) {
	notes := []models.Note{}
	if err := s.DB.Preload("User").Where("is_public = ?", true).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *GormNoteStore) Delete(id uint) error {
	return s.DB.Delete(&models.Note{}, id).Error
}

type GormQuizStore struct {
	DB *gorm.DB
}

func NewGormQuizStore(db *gorm.DB) *GormQuizStore {
	return &GormQuizStore{DB: db}
}

func (s *GormQuizStore) Create(quiz *models.Quiz) error {
	return s.DB.Create(quiz).Error
}

func (s *GormQuizStore) ByNoteID(noteID uint) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	if err := s.DB.Where("note_id = ?", noteID).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *GormQuizStore) DeleteByNoteID(noteID uint) error {
	return s.DB.Where("note_id = ?", noteID).Delete(&models.Quiz{}).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
