package domain

// QuestionKind distinguishes quiz question variants
type QuestionKind string

const (
	QuestionTranslation QuestionKind = "translation"
	QuestionDefinition  QuestionKind = "definition"
)

// OptionsPerQuestion is the fixed number of answer options
const OptionsPerQuestion = 4

// Question is one multiple-choice quiz item.
// Prompt is the text the user sees (a translation or a word), Correct the expected option.
type Question struct {
	Kind    QuestionKind `json:"kind"`
	Prompt  string       `json:"prompt"`
	Correct string       `json:"correct"`
	Options []string     `json:"options"`
}

// QuizState tracks progress through a question set
type QuizState struct {
	Questions    []Question `json:"questions"`
	CurrentIndex int        `json:"current_index"`
	Score        int        `json:"score"`
}

// Total returns the number of questions
func (q *QuizState) Total() int {
	return len(q.Questions)
}

// Finished reports whether every question was answered
func (q *QuizState) Finished() bool {
	return q.CurrentIndex >= len(q.Questions)
}

// Current returns the question waiting for an answer
func (q *QuizState) Current() (Question, bool) {
	if q.Finished() {
		return Question{}, false
	}
	return q.Questions[q.CurrentIndex], true
}

// Clone returns a deep copy
func (q *QuizState) Clone() *QuizState {
	if q == nil {
		return nil
	}
	questions := make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		questions[i] = question
	}
	return &QuizState{
		Questions:    questions,
		CurrentIndex: q.CurrentIndex,
		Score:        q.Score,
	}
}
