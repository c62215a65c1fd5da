package model

import "time"

type Competition struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:500;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	CategoryID   string     `gorm:"size:50;index" json:"categoryId"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Status       string     `gorm:"size:50;not null;default:upcoming;index" json:"status"`
	Prize        string     `gorm:"size:500" json:"prize"`
	Participants int        `gorm:"not null;default:0" json:"participants"`
	Image        string     `gorm:"size:500" json:"image"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	CompetitionParticipants []CompetitionParticipant `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"-"`
	Questions               []CompetitionQuestion    `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Competition) TableName() string { return "competitions" }

type CompetitionCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID string    `gorm:"size:50;uniqueIndex;not null" json:"categoryId"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	IconName   string    `gorm:"size:100" json:"iconName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (CompetitionCategory) TableName() string { return "competition_categories" }

// CompetitionQuestion holds a canonical correctAnswer or, when that is empty,
// a correct option among Options. Points exists on the row but scoring uses a
// fixed 10 per correct answer.
type CompetitionQuestion struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompetitionID uint   `gorm:"not null;index" json:"competitionId"`
	QuestionText  string `gorm:"type:text;not null" json:"questionText"`
	QuestionType  string `gorm:"size:50" json:"questionType"`
	CorrectAnswer string `gorm:"size:500" json:"correctAnswer"`
	Points        int    `gorm:"not null;default:1" json:"points"`
	QuestionOrder int    `json:"questionOrder"`

	Options []CompetitionQuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CompetitionQuestion) TableName() string { return "competition_questions" }

type CompetitionQuestionOption struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	QuestionID  uint   `gorm:"not null;index" json:"questionId"`
	OptionText  string `gorm:"size:500;not null" json:"optionText"`
	OptionOrder int    `gorm:"not null;default:0" json:"optionOrder"`
	IsCorrect   bool   `gorm:"not null;default:false" json:"isCorrect"`
}

func (CompetitionQuestionOption) TableName() string { return "competition_question_options" }

// CompetitionParticipant is unique per (user, competition). Rank is rewritten
// for the whole competition after every submission.
type CompetitionParticipant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:idx_participant_user_comp" json:"userId"`
	CompetitionID uint       `gorm:"not null;uniqueIndex:idx_participant_user_comp" json:"competitionId"`
	Score         int        `gorm:"not null;default:0" json:"score"`
	Rank          *int       `json:"rank"`
	SubmittedAt   *time.Time `json:"submittedAt"`
	Status        string     `gorm:"size:50;not null;default:registered" json:"status"`
}

func (CompetitionParticipant) TableName() string { return "competition_participants" }

type CompetitionSubmission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	CompetitionID uint      `gorm:"not null;index" json:"competitionId"`
	QuestionID    uint      `gorm:"not null" json:"questionId"`
	Answer        string    `gorm:"size:500" json:"answer"`
	IsCorrect     bool      `gorm:"not null;default:false" json:"isCorrect"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

func (CompetitionSubmission) TableName() string { return "competition_submissions" }

// Participant status values.
const (
	ParticipantStatusRegistered = "registered"
	ParticipantStatusCompleted  = "completed"
)

// PointsPerCorrectAnswer is the fixed score weight; the per-question Points
// column is intentionally not consulted.
const PointsPerCorrectAnswer = 10

type CompetitionSubmissionRequest struct {
	CompetitionID uint            `json:"competitionId" validate:"required"`
	Answers       map[uint]string `json:"answers" validate:"required,min=1"`
}

type CompetitionResponse struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CategoryID     string     `json:"categoryId"`
	CategoryName   string     `json:"categoryName"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Status         string     `json:"status"`
	Prize          string     `json:"prize"`
	Participants   int        `json:"participants"`
	Image          string     `json:"image"`
	IsParticipated bool       `json:"isParticipated"`
	UserScore      *int       `json:"userScore"`
	UserRank       *int       `json:"userRank"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CompetitionQuestionOptionResponse struct {
	ID          uint   `json:"id"`
	OptionText  string `json:"optionText"`
	OptionOrder int    `json:"optionOrder"`
	IsCorrect   bool   `json:"isCorrect"`
}

type CompetitionQuestionResponse struct {
	ID            uint                                `json:"id"`
	QuestionText  string                              `json:"questionText"`
	QuestionType  string                              `json:"questionType"`
	CorrectAnswer string                              `json:"correctAnswer"`
	Points        int                                 `json:"points"`
	QuestionOrder int                                 `json:"questionOrder"`
	Options       []CompetitionQuestionOptionResponse `json:"options"`
}

type QuestionResultResponse struct {
	QuestionID    uint   `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

type CompetitionResultResponse struct {
	CompetitionID   uint                     `json:"competitionId"`
	TotalQuestions  int                      `json:"totalQuestions"`
	CorrectAnswers  int                      `json:"correctAnswers"`
	WrongAnswers    int                      `json:"wrongAnswers"`
	SkippedAnswers  int                      `json:"skippedAnswers"`
	Score           int                      `json:"score"`
	Rank            *int                     `json:"rank"`
	Accuracy        float64                  `json:"accuracy"`
	QuestionResults []QuestionResultResponse `json:"questionResults"`
}
