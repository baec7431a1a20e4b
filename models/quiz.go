package models

// Quiz is a multiple-choice question attached to a note. Quizzes are
// removed in bulk when their note is deleted or regenerated.
type Quiz struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	NoteID      uint     `gorm:"not null;index" json:"noteId"`
	Note        Note     `gorm:"foreignKey:NoteID" json:"-"`
	Question    string   `gorm:"not null;type:text" json:"question"`
	Options     []string `gorm:"serializer:json" json:"options"` // intended size 5, unenforced
	AnswerIndex int      `gorm:"not null" json:"answerIndex"`    // 0-based
	Explanation string   `gorm:"type:text" json:"explanation"`
}
