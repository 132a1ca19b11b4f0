package dto

// ==================== QUIZ DTOs ====================

type GenerateQuizRequest struct {
	Subject    string `json:"subject" validate:"required,oneof=mathematics english kiswahili biology chemistry physics history geography cre" example:"mathematics"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard" example:"easy"`
	Count      int    `json:"count,omitempty" validate:"omitempty,gte=1,lte=20" example:"5"`
	Topic      string `json:"topic,omitempty" validate:"omitempty,min=1,max=100" example:"Geometry"`
}

func (g GenerateQuizRequest) Validate() error {
	return GetValidator().Struct(g)
}

type QuizQuestion struct {
	Question   string   `json:"question" example:"Solve for x: 2x + 5 = 13"`
	Options    []string `json:"options" example:"x = 3,x = 4,x = 5,x = 6"`
	Correct    int      `json:"correct" example:"1"`
	Difficulty string   `json:"difficulty" example:"easy"`
	Topic      string   `json:"topic" example:"Linear Equations"`
}

type GenerateQuizResponse struct {
	Questions          []QuizQuestion `json:"questions"`
	Subject            string         `json:"subject" example:"mathematics"`
	Difficulty         string         `json:"difficulty,omitempty" example:"easy"`
	Topic              string         `json:"topic,omitempty" example:"Geometry"`
	Count              int            `json:"count" example:"5"`
	RemainingQuestions int            `json:"remaining_questions" example:"6"` // -1 when unlimited
}

type QuizAnswer struct {
	SelectedOption int `json:"selected_option" validate:"gte=0" example:"1"`
	CorrectOption  int `json:"correct_option" validate:"gte=0" example:"1"`
	TimeSpent      int `json:"time_spent,omitempty" validate:"omitempty,gte=0" example:"30"`
}

type SubmitQuizRequest struct {
	SessionID string       `json:"session_id" validate:"required" example:"0198a7f2-sess"`
	Answers   []QuizAnswer `json:"answers" validate:"required,min=1,dive"`
	TimeSpent int          `json:"time_spent,omitempty" validate:"omitempty,gte=0" example:"300"`
}

func (s SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(s)
}

type QuestionResult struct {
	Question       string `json:"question" example:"Solve for x: 2x + 5 = 13"`
	SelectedOption int    `json:"selected_option" example:"1"`
	CorrectOption  int    `json:"correct_option" example:"1"`
	IsCorrect      bool   `json:"is_correct" example:"true"`
	TimeSpent      int    `json:"time_spent" example:"30"`
}

type SubmitQuizResponse struct {
	Score           int              `json:"score" example:"80"`
	CorrectAnswers  int              `json:"correct_answers" example:"4"`
	TotalQuestions  int              `json:"total_questions" example:"5"`
	TimeSpent       int              `json:"time_spent" example:"300"`
	QuestionResults []QuestionResult `json:"question_results"`
	Session         SessionResponse  `json:"session"`
}

type QuizHistoryResponse struct {
	History    []SessionSummary `json:"history"`
	Pagination Pagination       `json:"pagination"`
}
