package session

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"wordbot/internal/domain"
)

// Encoded button values
const (
	ValueAdd          = "menu::add"
	ValueQuiz         = "menu::quiz"
	ValueFinish       = "menu::finish"
	ValueLangRussian  = "lang::ru"
	ValueLangEnglish  = "lang::en"
	ValueCustomTransl = "tr::custom"
	ValueDefOriginal  = "def::orig"
	ValueDefTrans     = "def::trans"
	ValueDefCustom    = "def::custom"
	ValueRewriteEarly = "action::rewrite_early"
	ValueRewrite      = "action::rewrite"
	ValueSkip         = "action::skip"

	translationPrefix = "tr::"
	quizPrefix        = "quiz::"
)

const (
	definitionLabelLimit = 40
	quizLabelLimit       = 100
)

// User-facing texts
const (
	textWelcome = "👋 Привет! Я помогу собрать личный англо-русский словарь.\n\n" +
		"Присылайте слова, выбирайте перевод и определение, а потом проверяйте себя в тесте."
	textChooseLanguage   = "На каком языке вы будете присылать слова?"
	textSendWordsRu      = "Отправьте слова на русском через запятую или с новой строки."
	textSendWordsEn      = "Send English words separated by commas or new lines."
	textNoWords          = "Не нашёл ни одного слова. Отправьте слова через запятую или с новой строки."
	textCustomTransl     = "Введите свой перевод для «%s»:"
	textCustomDef        = "Введите своё определение для «%s»:"
	textRewrite          = "Отправьте исправленное слово (можно несколько через запятую):"
	textEmptyInput       = "Пустой ответ. Попробуйте ещё раз."
	textCannotTranslate  = "Не удалось перевести слово: %s. Пропускаем."
	textSkipped          = "⏭ Слово «%s» пропущено."
	textRewritten        = "✏️ Слова обновлены, в очереди: %d."
	textSaved            = "✅ Сохранено: %s - %s"
	textNotSubmitted     = "⚠️ Слово «%s» сохранено локально, но не отправлено на сервер."
	textPostActions      = "Что дальше?"
	textFinished         = "🏁 Сессия завершена. Чтобы начать снова, отправьте /start."
	textInsufficient     = "📭 Недостаточно слов для теста. Сначала добавьте несколько слов."
	textQuizIntro        = "🧠 Начинаем тест! Вопросов: %d."
	textCorrect          = "✅ Верно!"
	textIncorrect        = "❌ Неверно. Правильный ответ: %s"
	textQuizDone         = "🎉 Тест завершён! Результат: %d/%d.\nЧтобы продолжить, отправьте /start."
	textReminder         = "⏰ Пора повторить слова! Пройдите короткий тест."
	textNotUnderstood    = "Я не понимаю эту команду. Воспользуйтесь кнопками или отправьте /start."
	textTemporaryFailure = "⚠️ Сервис временно недоступен, попробуйте позже."
	textNoDefinition     = "⚠️ Определение не найдено. Введите своё или пропустите слово."
)

// Button labels
const (
	labelAdd          = "➕ Добавить слова"
	labelAddMore      = "➕ Добавить ещё"
	labelQuiz         = "🧠 Пройти тест"
	labelFinish       = "🏁 Завершить"
	labelRussian      = "🇷🇺 Русский"
	labelEnglish      = "🇬🇧 English"
	labelCustomTransl = "✏️ Свой перевод"
	labelCustomDef    = "✏️ Своё определение"
	labelRewrite      = "🔁 Переписать слово"
	labelSkip         = "⏭ Пропустить"
)

// Truncate shortens s to limit runes and appends ellipsis if anything was cut
func Truncate(s string, limit int, ellipsis string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + ellipsis
}

func translationValue(i int) string {
	return translationPrefix + strconv.Itoa(i)
}

func quizValue(q, o int) string {
	return fmt.Sprintf("%s%d:%d", quizPrefix, q, o)
}

// parseTranslationValue extracts the candidate index from tr::<i>
func parseTranslationValue(value string) (int, bool) {
	rest, ok := strings.CutPrefix(value, translationPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// parseQuizValue extracts question and option indexes from quiz::<q>:<o>
func parseQuizValue(value string) (int, int, bool) {
	rest, ok := strings.CutPrefix(value, quizPrefix)
	if !ok {
		return 0, 0, false
	}
	qs, os, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, 0, false
	}
	q, err := strconv.Atoi(qs)
	if err != nil {
		return 0, 0, false
	}
	o, err := strconv.Atoi(os)
	if err != nil {
		return 0, 0, false
	}
	return q, o, true
}

// prompt builds a reply with buttons and makes those buttons the only live ones
func prompt(s *domain.Session, text string, options ...domain.Option) domain.Reply {
	s.Live = make([]string, 0, len(options))
	for _, opt := range options {
		s.Live = append(s.Live, opt.Value)
	}
	return domain.Reply{Text: text, Options: options}
}

// ask builds a plain question awaiting free text; no button stays live
func ask(s *domain.Session, text string) domain.Reply {
	s.Live = nil
	return domain.Reply{Text: text}
}

func message(format string, args ...interface{}) domain.Reply {
	if len(args) == 0 {
		return domain.Reply{Text: format}
	}
	return domain.Reply{Text: fmt.Sprintf(format, args...)}
}

func menuPrompt(s *domain.Session, text, image string) domain.Reply {
	r := prompt(s, text,
		domain.Option{Label: labelAdd, Value: ValueAdd},
		domain.Option{Label: labelQuiz, Value: ValueQuiz},
	)
	r.Image = image
	return r
}

func languagePrompt(s *domain.Session) domain.Reply {
	return prompt(s, textChooseLanguage,
		domain.Option{Label: labelRussian, Value: ValueLangRussian},
		domain.Option{Label: labelEnglish, Value: ValueLangEnglish},
	)
}

func postActionsPrompt(s *domain.Session) domain.Reply {
	return prompt(s, textPostActions,
		domain.Option{Label: labelAddMore, Value: ValueAdd},
		domain.Option{Label: labelQuiz, Value: ValueQuiz},
		domain.Option{Label: labelFinish, Value: ValueFinish},
	)
}

func translationPrompt(s *domain.Session) domain.Reply {
	d := s.Draft
	text := fmt.Sprintf("Слово: «%s» (в очереди: %d)\nВыберите перевод:", d.Word, s.Queue.Len())

	options := make([]domain.Option, 0, len(d.Candidates)+3)
	for i, candidate := range d.Candidates {
		options = append(options, domain.Option{Label: Truncate(candidate, definitionLabelLimit, "…"), Value: translationValue(i)})
	}
	options = append(options,
		domain.Option{Label: labelCustomTransl, Value: ValueCustomTransl},
		domain.Option{Label: labelRewrite, Value: ValueRewriteEarly},
		domain.Option{Label: labelSkip, Value: ValueSkip},
	)
	return prompt(s, text, options...)
}

func definitionPrompt(s *domain.Session) domain.Reply {
	d := s.Draft

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s\nВыберите определение:", d.WordEn, d.WordRu)

	var options []domain.Option
	if d.DefinitionEn != "" {
		fmt.Fprintf(&sb, "\n\n🇬🇧 %s", d.DefinitionEn)
		options = append(options, domain.Option{Label: "🇬🇧 " + Truncate(d.DefinitionEn, definitionLabelLimit, "…"), Value: ValueDefOriginal})
	}
	if d.DefinitionEn != "" && d.DefinitionRu != "" {
		fmt.Fprintf(&sb, "\n🇷🇺 %s", d.DefinitionRu)
		options = append(options, domain.Option{Label: "🇷🇺 " + Truncate(d.DefinitionRu, definitionLabelLimit, "…"), Value: ValueDefTrans})
	}
	if d.DefinitionEn == "" {
		sb.WriteString("\n\n" + textNoDefinition)
	}

	options = append(options,
		domain.Option{Label: labelCustomDef, Value: ValueDefCustom},
		domain.Option{Label: labelRewrite, Value: ValueRewrite},
		domain.Option{Label: labelSkip, Value: ValueSkip},
	)
	return prompt(s, sb.String(), options...)
}

func questionPrompt(s *domain.Session) domain.Reply {
	quiz := s.Quiz
	q, _ := quiz.Current()

	var text string
	switch q.Kind {
	case domain.QuestionDefinition:
		text = fmt.Sprintf("Вопрос %d/%d\nВыберите определение для «%s»:", quiz.CurrentIndex+1, quiz.Total(), q.Prompt)
	default:
		text = fmt.Sprintf("Вопрос %d/%d\nКак по-английски «%s»?", quiz.CurrentIndex+1, quiz.Total(), q.Prompt)
	}

	options := make([]domain.Option, 0, len(q.Options))
	for o, opt := range q.Options {
		options = append(options, domain.Option{Label: Truncate(opt, quizLabelLimit, "..."), Value: quizValue(quiz.CurrentIndex, o)})
	}
	return prompt(s, text, options...)
}
