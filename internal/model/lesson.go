package model

import "time"

// CourseLesson and CurriculumLesson share the same shape and response DTO;
// each owns its vocabulary list plus the grammar/exercise sub-items below.

type CourseLesson struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CourseID     uint      `gorm:"not null;index" json:"courseId"`
	Title        string    `gorm:"size:500;not null" json:"title"`
	Level        string    `gorm:"size:100" json:"level"`
	Duration     string    `gorm:"size:50" json:"duration"`
	Progress     int       `gorm:"not null;default:0" json:"progress"`
	LessonNumber int       `json:"lessonNumber"`
	VideoURL     string    `gorm:"size:500" json:"videoUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Vocabularies []CourseVocabulary `gorm:"foreignKey:CourseLessonID;constraint:OnDelete:CASCADE" json:"-"`
	Grammars     []Grammar          `gorm:"foreignKey:CourseLessonID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises    []Exercise         `gorm:"foreignKey:CourseLessonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CourseLesson) TableName() string { return "course_lessons" }

type CourseVocabulary struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CourseLessonID uint      `gorm:"not null;index" json:"courseLessonId"`
	Korean         string    `gorm:"size:500;not null" json:"korean"`
	Vietnamese     string    `gorm:"size:500;not null" json:"vietnamese"`
	Pronunciation  string    `gorm:"size:500" json:"pronunciation"`
	Example        string    `gorm:"type:text" json:"example"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (CourseVocabulary) TableName() string { return "course_vocabulary" }

type CurriculumLesson struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CurriculumID uint      `gorm:"not null;index" json:"curriculumId"`
	Title        string    `gorm:"size:500;not null" json:"title"`
	Level        string    `gorm:"size:100" json:"level"`
	Duration     string    `gorm:"size:50" json:"duration"`
	Progress     int       `gorm:"not null;default:0" json:"progress"`
	LessonNumber int       `json:"lessonNumber"`
	VideoURL     string    `gorm:"size:500" json:"videoUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Vocabularies []CurriculumVocabulary `gorm:"foreignKey:CurriculumLessonID;constraint:OnDelete:CASCADE" json:"-"`
	Grammars     []Grammar              `gorm:"foreignKey:CurriculumLessonID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises    []Exercise             `gorm:"foreignKey:CurriculumLessonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CurriculumLesson) TableName() string { return "curriculum_lessons" }

type CurriculumVocabulary struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CurriculumLessonID uint      `gorm:"not null;index" json:"curriculumLessonId"`
	Korean             string    `gorm:"size:500;not null" json:"korean"`
	Vietnamese         string    `gorm:"size:500;not null" json:"vietnamese"`
	Pronunciation      string    `gorm:"size:500" json:"pronunciation"`
	Example            string    `gorm:"type:text" json:"example"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (CurriculumVocabulary) TableName() string { return "curriculum_vocabulary" }

// Grammar belongs to either a curriculum lesson or a course lesson, never
// both; the unused foreign key stays NULL.
type Grammar struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CurriculumLessonID *uint     `gorm:"index" json:"curriculumLessonId"`
	CourseLessonID     *uint     `gorm:"index" json:"courseLessonId"`
	Title              string    `gorm:"size:500;not null" json:"title"`
	Explanation        string    `gorm:"type:text" json:"explanation"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Examples []GrammarExample `gorm:"foreignKey:GrammarID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Grammar) TableName() string { return "grammar" }

type GrammarExample struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GrammarID   uint   `gorm:"not null;index" json:"grammarId"`
	ExampleText string `gorm:"type:text;not null" json:"exampleText"`
}

func (GrammarExample) TableName() string { return "grammar_examples" }

type Exercise struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CurriculumLessonID *uint     `gorm:"index" json:"curriculumLessonId"`
	CourseLessonID     *uint     `gorm:"index" json:"courseLessonId"`
	Type               string    `gorm:"size:100" json:"type"`
	Question           string    `gorm:"type:text;not null" json:"question"`
	CorrectIndex       *int      `json:"correctIndex"`
	Answer             string    `gorm:"size:500" json:"answer"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Options []ExerciseOption `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Exercise) TableName() string { return "exercises" }

type ExerciseOption struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ExerciseID  uint   `gorm:"not null;index" json:"exerciseId"`
	OptionText  string `gorm:"size:500;not null" json:"optionText"`
	OptionOrder int    `gorm:"not null;default:0" json:"optionOrder"`
}

func (ExerciseOption) TableName() string { return "exercise_options" }

type VocabularyItemResponse struct {
	Korean        string `json:"korean"`
	Vietnamese    string `json:"vietnamese"`
	Pronunciation string `json:"pronunciation"`
	Example       string `json:"example"`
}

type GrammarItemResponse struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

type ExerciseItemResponse struct {
	ID           uint     `json:"id"`
	Type         string   `json:"type"`
	Question     string   `json:"question"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex *int     `json:"correctIndex"`
	Answer       string   `json:"answer"`
}

// LessonResponse is shared by course and curriculum lessons.
type LessonResponse struct {
	ID           uint                     `json:"id"`
	Title        string                   `json:"title"`
	Level        string                   `json:"level"`
	Duration     string                   `json:"duration"`
	Progress     int                      `json:"progress"`
	LessonNumber int                      `json:"lessonNumber"`
	VideoURL     string                   `json:"videoUrl"`
	Vocabulary   []VocabularyItemResponse `json:"vocabulary"`
	Grammar      []GrammarItemResponse    `json:"grammar"`
	Exercises    []ExerciseItemResponse   `json:"exercises"`
}
