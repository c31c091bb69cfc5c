package ai

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/insights.txt
	insightsPrompt string
	//go:embed prompts/quiz.txt
	quizPrompt string
	//go:embed prompts/improvement.txt
	improvementPrompt string
	//go:embed prompts/cover_letter.txt
	coverLetterPrompt string
	//go:embed prompts/improve_resume.txt
	improveResumePrompt string
)

// InsightsPrompt asks for a market analysis of the given industry as strict JSON.
func InsightsPrompt(industry string) string {
	return fmt.Sprintf(insightsPrompt, industry)
}

// QuizPrompt asks for count multiple-choice interview questions for the given
// industry, optionally scoped to the user's skills.
func QuizPrompt(count int, industry string, skills []string) string {
	expertise := ""
	if len(skills) > 0 {
		expertise = " with expertise in " + strings.Join(skills, ", ")
	}
	return fmt.Sprintf(quizPrompt, count, industry, expertise)
}

// ImprovementPrompt asks for a short encouraging tip based on the questions the
// user answered incorrectly.
func ImprovementPrompt(industry, wrongQuestions string) string {
	return fmt.Sprintf(improvementPrompt, industry, wrongQuestions)
}

// CoverLetterPrompt asks for a markdown cover letter tailored to the candidate
// profile and the target role.
func CoverLetterPrompt(jobTitle, companyName, industry string, experience int, skills []string, bio, jobDescription string) string {
	return fmt.Sprintf(coverLetterPrompt, jobTitle, companyName, industry, experience, strings.Join(skills, ", "), bio, jobDescription)
}

// ImproveResumePrompt asks for a single-paragraph rewrite of one resume section.
func ImproveResumePrompt(section, industry, current string) string {
	return fmt.Sprintf(improveResumePrompt, section, industry, current)
}
