package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	maxQuizPool          = 40
	maxQuestionsPerKind  = 5
	maxQuizQuestions     = 10
	placeholderOptionFmt = "Вариант %d"
)

// AnswerResult describes how a quiz answer was scored
type AnswerResult struct {
	Correct  bool
	Expected string
	Finished bool
}

// QuizService builds and scores quizzes over a user's vocabulary
type QuizService struct {
	vocabRepo repository.VocabularyRepository
	logger    *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizService creates a quiz service seeded from the clock
func NewQuizService(vocabRepo repository.VocabularyRepository, logger *zap.Logger) *QuizService {
	return NewQuizServiceWithRand(vocabRepo, rand.New(rand.NewSource(time.Now().UnixNano())), logger)
}

// NewQuizServiceWithRand creates a quiz service with a fixed random source (for testing)
func NewQuizServiceWithRand(vocabRepo repository.VocabularyRepository, rnd *rand.Rand, logger *zap.Logger) *QuizService {
	return &QuizService{
		vocabRepo: vocabRepo,
		logger:    logger,
		rnd:       rnd,
	}
}

// Start loads the user's vocabulary and builds a quiz from it. A store failure
// is reported as domain.ErrInsufficientVocabulary.
func (s *QuizService) Start(ctx context.Context, userID int64) (*domain.QuizState, error) {
	entries, err := s.vocabRepo.List(ctx, userID, domain.DefaultTheme)
	if err != nil {
		s.logger.Warn("Failed to list vocabulary for quiz", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list vocabulary: %w", domain.ErrInsufficientVocabulary)
	}

	quiz, err := s.Build(entries)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.Int("entries", len(entries)),
		zap.Int("questions", quiz.Total()),
	)
	return quiz, nil
}

// Build creates up to ten questions from entries
func (s *QuizService) Build(entries []domain.VocabularyEntry) (*domain.QuizState, error) {
	pool := lo.Filter(entries, func(e domain.VocabularyEntry, _ int) bool {
		return canAskTranslation(e) || canAskDefinition(e)
	})
	if len(pool) == 0 {
		return nil, domain.ErrInsufficientVocabulary
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > maxQuizPool {
		pool = pool[:maxQuizPool]
	}

	words := lo.Map(pool, func(e domain.VocabularyEntry, _ int) string { return e.WordEn })
	definitions := lo.Map(pool, func(e domain.VocabularyEntry, _ int) string { return e.Definition })

	var questions []domain.Question
	var rest []domain.VocabularyEntry
	translations, defs := 0, 0

	for _, e := range pool {
		preferTranslation := translations <= defs
		switch {
		case preferTranslation && translations < maxQuestionsPerKind && canAskTranslation(e):
			questions = append(questions, s.translationQuestion(e, words))
			translations++
		case defs < maxQuestionsPerKind && canAskDefinition(e):
			questions = append(questions, s.definitionQuestion(e, definitions))
			defs++
		case translations < maxQuestionsPerKind && canAskTranslation(e):
			questions = append(questions, s.translationQuestion(e, words))
			translations++
		default:
			rest = append(rest, e)
		}
	}

	for i, e := range rest {
		if len(questions) >= maxQuizQuestions {
			break
		}
		if (i%2 == 0 || !canAskDefinition(e)) && canAskTranslation(e) {
			questions = append(questions, s.translationQuestion(e, words))
		} else {
			questions = append(questions, s.definitionQuestion(e, definitions))
		}
	}

	s.rnd.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })

	return &domain.QuizState{Questions: questions}, nil
}

// Answer scores option o of question q and advances the quiz.
// Only the current question may be answered.
func (s *QuizService) Answer(quiz *domain.QuizState, q, o int) (AnswerResult, error) {
	if quiz == nil || quiz.Finished() {
		return AnswerResult{}, fmt.Errorf("no active question: %w", domain.ErrProtocolViolation)
	}
	if q != quiz.CurrentIndex {
		return AnswerResult{}, fmt.Errorf("answer for question %d, current is %d: %w", q, quiz.CurrentIndex, domain.ErrProtocolViolation)
	}

	question := quiz.Questions[q]
	if o < 0 || o >= len(question.Options) {
		return AnswerResult{}, fmt.Errorf("option %d out of range: %w", o, domain.ErrProtocolViolation)
	}

	correct := strings.TrimSpace(question.Options[o]) == strings.TrimSpace(question.Correct)
	if correct {
		quiz.Score++
	}
	quiz.CurrentIndex++

	return AnswerResult{
		Correct:  correct,
		Expected: question.Correct,
		Finished: quiz.Finished(),
	}, nil
}

func canAskTranslation(e domain.VocabularyEntry) bool {
	return strings.TrimSpace(e.WordEn) != "" && strings.TrimSpace(e.WordRu) != ""
}

func canAskDefinition(e domain.VocabularyEntry) bool {
	return strings.TrimSpace(e.WordEn) != "" && strings.TrimSpace(e.Definition) != ""
}

func (s *QuizService) translationQuestion(e domain.VocabularyEntry, words []string) domain.Question {
	correct := strings.TrimSpace(e.WordEn)
	return domain.Question{
		Kind:    domain.QuestionTranslation,
		Prompt:  strings.TrimSpace(e.WordRu),
		Correct: correct,
		Options: s.options(correct, words),
	}
}

func (s *QuizService) definitionQuestion(e domain.VocabularyEntry, definitions []string) domain.Question {
	correct := strings.TrimSpace(e.Definition)
	return domain.Question{
		Kind:    domain.QuestionDefinition,
		Prompt:  strings.TrimSpace(e.WordEn),
		Correct: correct,
		Options: s.options(correct, definitions),
	}
}

// options returns correct plus three distractors in random order. Missing
// distractors are padded with numbered placeholders. Caller holds s.mu.
func (s *QuizService) options(correct string, values []string) []string {
	used := map[string]bool{foldKey(correct): true}

	var distractors []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := foldKey(v)
		if v == "" || used[key] {
			continue
		}
		used[key] = true
		distractors = append(distractors, v)
	}

	s.rnd.Shuffle(len(distractors), func(i, j int) { distractors[i], distractors[j] = distractors[j], distractors[i] })
	if len(distractors) > domain.OptionsPerQuestion-1 {
		distractors = distractors[:domain.OptionsPerQuestion-1]
	}

	for n := 1; len(distractors) < domain.OptionsPerQuestion-1; n++ {
		placeholder := fmt.Sprintf(placeholderOptionFmt, n)
		if used[foldKey(placeholder)] {
			continue
		}
		used[foldKey(placeholder)] = true
		distractors = append(distractors, placeholder)
	}

	opts := append([]string{correct}, distractors...)
	s.rnd.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
