package domain

// Mode is the session's position in the conversation
type Mode string

const (
	ModeIdle                   Mode = "idle"
	ModeChooseMode             Mode = "choose_mode"
	ModeChooseLanguage         Mode = "choose_language"
	ModeWaitingWords           Mode = "waiting_words"
	ModeSelectingTranslation   Mode = "selecting_translation"
	ModeAwaitCustomTranslation Mode = "await_custom_translation"
	ModeChoosingDefinition     Mode = "choosing_definition"
	ModeAwaitCustomDefinition  Mode = "await_custom_definition"
	ModeAwaitRewriteWords      Mode = "await_rewrite_words"
	ModePostActions            Mode = "post_actions"
	ModeQuizActive             Mode = "quiz_active"
)

// WordDraft holds the scratch data for the word at the head of the queue
type WordDraft struct {
	Word         string   `json:"word"`
	Candidates   []string `json:"candidates,omitempty"`
	Translation  string   `json:"translation,omitempty"`
	WordEn       string   `json:"word_en,omitempty"`
	WordRu       string   `json:"word_ru,omitempty"`
	DefinitionEn string   `json:"definition_en,omitempty"`
	DefinitionRu string   `json:"definition_ru,omitempty"`
}

// Session is the per-chat conversation state
type Session struct {
	ChatID       int64      `json:"chat_id"`
	Mode         Mode       `json:"mode"`
	Source       Lang       `json:"source,omitempty"`
	Dest         Lang       `json:"dest,omitempty"`
	Queue        WordQueue  `json:"queue"`
	Draft        *WordDraft `json:"draft,omitempty"`
	EarlyRewrite bool       `json:"early_rewrite,omitempty"`
	Quiz         *QuizState `json:"quiz,omitempty"`

	// Live holds the encoded values of the buttons offered by the last prompt
	Live []string `json:"live,omitempty"`
}

// NewSession returns an idle session for chatID
func NewSession(chatID int64) *Session {
	return &Session{ChatID: chatID, Mode: ModeIdle}
}

// Reset drops everything but the chat id
func (s *Session) Reset() {
	*s = Session{ChatID: s.ChatID, Mode: ModeIdle}
}

// ClearWordFlow forgets the queue and any half-resolved word
func (s *Session) ClearWordFlow() {
	s.Queue = WordQueue{}
	s.Draft = nil
	s.EarlyRewrite = false
	s.Source = ""
	s.Dest = ""
}

// IsLive reports whether value belongs to the active prompt
func (s *Session) IsLive(value string) bool {
	for _, v := range s.Live {
		if v == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so a transition can be discarded on failure
func (s *Session) Clone() *Session {
	c := *s
	c.Queue = s.Queue.Clone()
	c.Live = append([]string(nil), s.Live...)
	c.Quiz = s.Quiz.Clone()
	if s.Draft != nil {
		draft := *s.Draft
		draft.Candidates = append([]string(nil), s.Draft.Candidates...)
		c.Draft = &draft
	}
	return &c
}
