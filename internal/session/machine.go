// Package session drives the per-chat conversation: word acquisition and quizzes.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"wordbot/internal/domain"
	"wordbot/internal/metrics"
	"wordbot/internal/service"

	"go.uber.org/zap"
)

// Translator resolves translation candidates for a word
type Translator interface {
	Resolve(ctx context.Context, word string, src, dest domain.Lang) []service.Translation
}

// DefinitionResolver looks up a definition for an English word
type DefinitionResolver interface {
	Resolve(ctx context.Context, englishWord string) service.Definition
}

// QuizEngine builds and scores quizzes
type QuizEngine interface {
	Start(ctx context.Context, userID int64) (*domain.QuizState, error)
	Answer(quiz *domain.QuizState, q, o int) (service.AnswerResult, error)
}

// Submitter stores finished entries
type Submitter interface {
	Submit(ctx context.Context, entry domain.VocabularyEntry) error
}

// Services groups the collaborators the machine calls into
type Services struct {
	Translations Translator
	Definitions  DefinitionResolver
	Quiz         QuizEngine
	Vocabulary   Submitter
}

// Images are optional files attached to the welcome and quiz summary messages
type Images struct {
	Welcome string
	QuizEnd string
}

// replyError rejects an event with a specific message and leaves the session untouched
type replyError struct {
	text string
}

func (e *replyError) Error() string { return e.text }

func rejectWith(format string, args ...interface{}) error {
	return &replyError{text: message(format, args...).Text}
}

func violation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrProtocolViolation)...)
}

// Machine applies events to sessions. Events for one chat are processed one at
// a time; different chats run in parallel.
type Machine struct {
	store   Store
	svc     Services
	images  Images
	metrics *metrics.Metrics
	logger  *zap.Logger

	locks   map[int64]*sync.Mutex
	locksMu sync.Mutex
}

// NewMachine creates a new session machine
func NewMachine(store Store, svc Services, images Images, m *metrics.Metrics, logger *zap.Logger) *Machine {
	return &Machine{
		store:   store,
		svc:     svc,
		images:  images,
		metrics: m,
		logger:  logger,
		locks:   make(map[int64]*sync.Mutex),
	}
}

func (m *Machine) chatLock(chatID int64) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	lock, ok := m.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[chatID] = lock
	}
	return lock
}

func (m *Machine) load(ctx context.Context, chatID int64) (*domain.Session, error) {
	s, err := m.store.Load(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = domain.NewSession(chatID)
	}
	return s, nil
}

// Handle applies ev to the chat's session and returns the replies to send.
// A rejected event leaves the stored session exactly as it was.
func (m *Machine) Handle(ctx context.Context, ev domain.Event) []domain.Reply {
	lock := m.chatLock(ev.ChatID)
	lock.Lock()
	defer lock.Unlock()

	logger := m.logger.With(
		zap.Int64("chat_id", ev.ChatID),
		zap.String("event", string(ev.Kind)),
	)

	current, err := m.load(ctx, ev.ChatID)
	if err != nil {
		logger.Error("Failed to load session", zap.Error(err))
		m.metrics.IncEvent(string(ev.Kind), metrics.OutcomeError)
		return []domain.Reply{message(textTemporaryFailure)}
	}

	next := current.Clone()
	replies, err := m.dispatch(ctx, next, ev)

	var rejected *replyError
	switch {
	case errors.As(err, &rejected):
		m.metrics.IncEvent(string(ev.Kind), metrics.OutcomeRejected)
		return []domain.Reply{{Text: rejected.text}}
	case err != nil:
		logger.Warn("Unexpected input",
			zap.String("mode", string(current.Mode)),
			zap.String("data", ev.Data),
			zap.Error(err),
		)
		m.metrics.IncEvent(string(ev.Kind), metrics.OutcomeRejected)
		return []domain.Reply{message(textNotUnderstood)}
	}

	if err := m.store.Save(ctx, next); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
		m.metrics.IncEvent(string(ev.Kind), metrics.OutcomeError)
		return append(replies, message(textTemporaryFailure))
	}

	if current.Mode != next.Mode {
		logger.Debug("Mode changed",
			zap.String("from", string(current.Mode)),
			zap.String("to", string(next.Mode)),
		)
	}
	m.metrics.IncEvent(string(ev.Kind), metrics.OutcomeOK)
	return replies
}

// Remind offers a quiz to an idle chat. Chats in any other mode are left alone
// and get no replies.
func (m *Machine) Remind(ctx context.Context, chatID int64) ([]domain.Reply, error) {
	lock := m.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	current, err := m.load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if current.Mode != domain.ModeIdle {
		return nil, nil
	}

	next := current.Clone()
	next.Mode = domain.ModeChooseMode
	reply := prompt(next, textReminder, domain.Option{Label: labelQuiz, Value: ValueQuiz})

	if err := m.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return []domain.Reply{reply}, nil
}

func (m *Machine) dispatch(ctx context.Context, s *domain.Session, ev domain.Event) ([]domain.Reply, error) {
	switch ev.Kind {
	case domain.EventStart:
		return m.start(s), nil
	case domain.EventText:
		return m.onText(ctx, s, strings.TrimSpace(ev.Text))
	case domain.EventButton:
		return m.onButton(ctx, s, ev.Data)
	}
	return nil, violation("unknown event kind %q", ev.Kind)
}

func (m *Machine) start(s *domain.Session) []domain.Reply {
	s.Reset()
	s.Mode = domain.ModeChooseMode
	return []domain.Reply{menuPrompt(s, textWelcome, m.images.Welcome)}
}

func (m *Machine) onText(ctx context.Context, s *domain.Session, text string) ([]domain.Reply, error) {
	switch s.Mode {
	case domain.ModeIdle:
		return m.start(s), nil

	case domain.ModeWaitingWords:
		words := domain.ParseWords(text)
		if len(words) == 0 {
			return nil, rejectWith(textNoWords)
		}
		s.Queue.Push(words...)
		m.logger.Info("Words queued", zap.Int64("chat_id", s.ChatID), zap.Int("count", len(words)))
		return m.resume(ctx, s), nil

	case domain.ModeAwaitCustomTranslation:
		if text == "" {
			return nil, rejectWith(textEmptyInput)
		}
		return m.chooseTranslation(ctx, s, text), nil

	case domain.ModeAwaitCustomDefinition:
		if text == "" {
			return nil, rejectWith(textEmptyInput)
		}
		return m.finishWord(ctx, s, text, domain.DefinitionCustom), nil

	case domain.ModeAwaitRewriteWords:
		words := domain.ParseWords(text)
		if len(words) == 0 {
			return nil, rejectWith(textNoWords)
		}
		m.logger.Info("Word rewritten",
			zap.Int64("chat_id", s.ChatID),
			zap.Bool("early", s.EarlyRewrite),
			zap.Int("count", len(words)),
		)
		s.Queue.ReplaceHead(words...)
		s.Draft = nil
		s.EarlyRewrite = false
		replies := []domain.Reply{message(textRewritten, s.Queue.Len())}
		return append(replies, m.resume(ctx, s)...), nil
	}

	return nil, violation("text in mode %s", s.Mode)
}

func (m *Machine) onButton(ctx context.Context, s *domain.Session, value string) ([]domain.Reply, error) {
	if !s.IsLive(value) {
		return nil, violation("stale selection %q", value)
	}

	switch s.Mode {
	case domain.ModeChooseMode, domain.ModePostActions:
		switch value {
		case ValueAdd:
			s.ClearWordFlow()
			s.Mode = domain.ModeChooseLanguage
			return []domain.Reply{languagePrompt(s)}, nil
		case ValueQuiz:
			return m.startQuiz(ctx, s)
		case ValueFinish:
			if s.Mode != domain.ModePostActions {
				break
			}
			s.Reset()
			return []domain.Reply{message(textFinished)}, nil
		}

	case domain.ModeChooseLanguage:
		switch value {
		case ValueLangRussian:
			return m.chooseLanguage(s, domain.LangRussian), nil
		case ValueLangEnglish:
			return m.chooseLanguage(s, domain.LangEnglish), nil
		}

	case domain.ModeSelectingTranslation:
		switch value {
		case ValueCustomTransl:
			s.Mode = domain.ModeAwaitCustomTranslation
			return []domain.Reply{ask(s, fmt.Sprintf(textCustomTransl, s.Draft.Word))}, nil
		case ValueRewriteEarly:
			return m.askRewrite(s, true), nil
		case ValueSkip:
			return m.skip(ctx, s), nil
		}
		if i, ok := parseTranslationValue(value); ok && s.Draft != nil && i < len(s.Draft.Candidates) {
			return m.chooseTranslation(ctx, s, s.Draft.Candidates[i]), nil
		}

	case domain.ModeChoosingDefinition:
		switch value {
		case ValueDefOriginal:
			if s.Draft.DefinitionEn != "" {
				return m.finishWord(ctx, s, s.Draft.DefinitionEn, domain.DefinitionEnglish), nil
			}
		case ValueDefTrans:
			if s.Draft.DefinitionRu != "" {
				return m.finishWord(ctx, s, s.Draft.DefinitionRu, domain.DefinitionRussian), nil
			}
		case ValueDefCustom:
			s.Mode = domain.ModeAwaitCustomDefinition
			return []domain.Reply{ask(s, fmt.Sprintf(textCustomDef, s.Draft.WordEn))}, nil
		case ValueRewrite:
			return m.askRewrite(s, false), nil
		case ValueSkip:
			return m.skip(ctx, s), nil
		}

	case domain.ModeQuizActive:
		if q, o, ok := parseQuizValue(value); ok {
			return m.answer(s, q, o)
		}
	}

	return nil, violation("selection %q in mode %s", value, s.Mode)
}

func (m *Machine) chooseLanguage(s *domain.Session, source domain.Lang) []domain.Reply {
	s.Source = source
	s.Dest = source.Other()
	s.Mode = domain.ModeWaitingWords

	text := textSendWordsEn
	if source == domain.LangRussian {
		text = textSendWordsRu
	}
	return []domain.Reply{ask(s, text)}
}

func (m *Machine) askRewrite(s *domain.Session, early bool) []domain.Reply {
	s.EarlyRewrite = early
	s.Mode = domain.ModeAwaitRewriteWords
	return []domain.Reply{ask(s, textRewrite)}
}

func (m *Machine) skip(ctx context.Context, s *domain.Session) []domain.Reply {
	word, _ := s.Queue.Pop()
	s.Draft = nil
	replies := []domain.Reply{message(textSkipped, word)}
	return append(replies, m.resume(ctx, s)...)
}

// chooseTranslation fixes the word pair and asks for a definition
func (m *Machine) chooseTranslation(ctx context.Context, s *domain.Session, translation string) []domain.Reply {
	d := s.Draft
	d.Translation = translation
	d.WordEn, d.WordRu = domain.ResolvePair(s.Source, d.Word, translation)

	def := m.svc.Definitions.Resolve(ctx, d.WordEn)
	d.DefinitionEn = def.Original
	d.DefinitionRu = def.Translated

	s.Mode = domain.ModeChoosingDefinition
	return []domain.Reply{definitionPrompt(s)}
}

// finishWord submits the entry and moves on to the next queued word.
// A store failure only adds a warning.
func (m *Machine) finishWord(ctx context.Context, s *domain.Session, definition string, lang domain.DefinitionLang) []domain.Reply {
	d := s.Draft
	entry := domain.NewVocabularyEntry(s.ChatID, d.WordEn, d.WordRu, definition, lang)

	var replies []domain.Reply
	if err := m.svc.Vocabulary.Submit(ctx, entry); err != nil {
		replies = append(replies, message(textNotSubmitted, entry.WordEn))
	} else {
		replies = append(replies, message(textSaved, entry.WordEn, entry.WordRu))
	}

	s.Queue.Pop()
	s.Draft = nil
	return append(replies, m.resume(ctx, s)...)
}

// resume processes the queue head. Words nobody can translate are reported
// and dropped; every iteration either prompts or shrinks the queue.
func (m *Machine) resume(ctx context.Context, s *domain.Session) []domain.Reply {
	var replies []domain.Reply
	for {
		word, ok := s.Queue.Peek()
		if !ok {
			s.Mode = domain.ModePostActions
			s.Draft = nil
			return append(replies, postActionsPrompt(s))
		}

		translations := service.Distinct(m.svc.Translations.Resolve(ctx, word, s.Source, s.Dest))
		if len(translations) == 0 {
			m.logger.Info("Word skipped, no translations", zap.Int64("chat_id", s.ChatID), zap.String("word", word))
			replies = append(replies, message(textCannotTranslate, word))
			s.Queue.Pop()
			continue
		}

		candidates := make([]string, 0, len(translations))
		for _, t := range translations {
			candidates = append(candidates, t.Text)
		}
		s.Draft = &domain.WordDraft{Word: word, Candidates: candidates}
		s.Mode = domain.ModeSelectingTranslation
		return append(replies, translationPrompt(s))
	}
}

func (m *Machine) startQuiz(ctx context.Context, s *domain.Session) ([]domain.Reply, error) {
	quiz, err := m.svc.Quiz.Start(ctx, s.ChatID)
	if err != nil {
		m.logger.Info("Quiz not started", zap.Int64("chat_id", s.ChatID), zap.Error(err))
		return nil, rejectWith(textInsufficient)
	}

	s.ClearWordFlow()
	s.Quiz = quiz
	s.Mode = domain.ModeQuizActive
	return []domain.Reply{
		message(textQuizIntro, quiz.Total()),
		questionPrompt(s),
	}, nil
}

func (m *Machine) answer(s *domain.Session, q, o int) ([]domain.Reply, error) {
	res, err := m.svc.Quiz.Answer(s.Quiz, q, o)
	if err != nil {
		return nil, err
	}

	feedback := message(textCorrect)
	if !res.Correct {
		feedback = message(textIncorrect, res.Expected)
	}

	if !res.Finished {
		return []domain.Reply{feedback, questionPrompt(s)}, nil
	}

	score, total := s.Quiz.Score, s.Quiz.Total()
	m.logger.Info("Quiz finished", zap.Int64("chat_id", s.ChatID), zap.Int("score", score), zap.Int("total", total))
	m.metrics.IncQuizCompleted()
	s.Reset()

	summary := message(textQuizDone, score, total)
	summary.Image = m.images.QuizEnd
	return []domain.Reply{feedback, summary}, nil
}
