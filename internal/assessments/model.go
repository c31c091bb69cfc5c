package assessments

import "time"

// QuizSize is how many questions a generated quiz contains.
const QuizSize = 15

// optionsPerQuestion is enforced on generated quizzes so the client can
// always render four choices.
const optionsPerQuestion = 4

// CategoryTechnical is the only quiz category currently generated.
const CategoryTechnical = "Technical"

// Question is one generated multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuestionResult is one answered question as stored with the assessment.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Assessment is a scored quiz attempt.
type Assessment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	Category       string           `json:"category"`
	ImprovementTip string           `json:"improvementTip,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Score returns the percentage of correct answers. Answers are matched to
// questions by position.
func Score(questions []Question, answers []string) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}
