package chatbot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

const defaultTypingDelay = time.Second

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// Engine конечный автомат диалога. Хранит только неизменяемую конфигурацию,
// поэтому один Engine безопасно обслуживает любое число сессий.
type Engine struct {
	script      *Script
	clock       TimeProvider
	typingDelay time.Duration
}

type Option func(*Engine)

func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) { e.clock = tp }
}

// WithTypingDelay задержка индикатора набора; 0 отключает эффект Typing
func WithTypingDelay(d time.Duration) Option {
	return func(e *Engine) { e.typingDelay = d }
}

func NewEngine(script *Script, opts ...Option) *Engine {
	e := &Engine{
		script:      script,
		clock:       realTime{},
		typingDelay: defaultTypingDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start открывает новую сессию с приветствием
func (e *Engine) Start() (Session, []Effect) {
	s := Session{Step: StepGreeting}
	var effects []Effect
	e.say(&s, &effects, e.script.Greeting, KindOptions, e.script.topicLabels())
	return s, effects
}

// Handle применяет событие к сессии. При ошибке возвращается исходная сессия без эффектов.
func (e *Engine) Handle(s Session, ev Event) (Session, []Effect, error) {
	next := s.clone()
	var (
		effects []Effect
		err     error
	)

	switch ev := ev.(type) {
	case Pick:
		err = e.pick(&next, &effects, ev.Option)
	case Text:
		err = e.text(&next, &effects, ev.Body)
	case SubmitForm:
		err = e.submit(&next, &effects, ev)
	case SubmissionSucceeded:
		err = e.succeeded(&next, &effects, ev.LeadID)
	case SubmissionFailed:
		err = e.failed(&next, &effects)
	case Reset:
		next, effects = e.Start()
	default:
		err = fmt.Errorf("%w: %T", ErrUnexpectedEvent, ev)
	}

	if err != nil {
		return s, nil, err
	}
	return next, effects, nil
}

func (e *Engine) pick(s *Session, effects *[]Effect, option string) error {
	if !s.Offers(option) {
		return fmt.Errorf("%w: %q at step %s", ErrUnknownOption, option, s.Step)
	}

	switch {
	case s.Step == StepGreeting:
		topic, _ := e.script.topicByLabel(option)
		e.hear(s, option)
		s.Step = topic.Step
		e.say(s, effects, topic.Prompt, KindOptions, topic.Options)

	case s.Step == StepPostSubmission:
		f, _ := e.script.followUp(option)
		e.hear(s, option)
		options := e.script.followUpLabels()
		if f.End {
			options = nil
			s.Ended = true
		}
		e.say(s, effects, f.Reply, KindOptions, options)
		if f.OpenBooking {
			*effects = append(*effects, OpenBooking{})
		}

	default:
		// шаг темы: вариант второго уровня становится интересом лида
		if _, ok := e.script.topicByStep(s.Step); !ok {
			return fmt.Errorf("%w: %q at step %s", ErrUnknownOption, option, s.Step)
		}
		e.hear(s, option)
		s.Draft.Interest = option
		e.toLeadCapture(s, effects, e.script.LeadPrompt)
	}
	return nil
}

func (e *Engine) text(s *Session, effects *[]Effect, body string) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	e.hear(s, body)
	switch s.Step {
	case StepLeadCapture:
		reminder := e.script.FormReminder
		if reminder == "" {
			reminder = e.script.FreeTextPrompt
		}
		e.say(s, effects, reminder, KindLeadForm, nil)
		*effects = append(*effects, ShowLeadForm{})
	case StepPostSubmission:
		e.say(s, effects, e.script.FollowUpTextReply, KindOptions, s.Options)
	default:
		e.toLeadCapture(s, effects, e.script.FreeTextPrompt)
	}
	return nil
}

func (e *Engine) submit(s *Session, effects *[]Effect, form SubmitForm) error {
	if s.Step != StepLeadCapture {
		return fmt.Errorf("%w: form submitted at step %s", ErrUnexpectedEvent, s.Step)
	}
	if s.Submitting {
		return ErrSubmissionInFlight
	}

	s.Draft.Name = form.Name
	s.Draft.Email = form.Email
	s.Draft.Phone = form.Phone

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" || email == "" {
		*effects = append(*effects, ValidationError{Text: e.script.Notices.Validation})
		return nil
	}

	interest := s.Draft.Interest
	if interest == "" {
		interest = domain.DefaultInterest
	}

	s.Submitting = true
	*effects = append(*effects, SubmitLead{Payload: domain.LeadInput{
		Name:                name,
		Email:               email,
		Phone:               strings.TrimSpace(form.Phone),
		Interest:            interest,
		ConversationHistory: s.History(),
	}})
	return nil
}

func (e *Engine) succeeded(s *Session, effects *[]Effect, leadID string) error {
	if !s.Submitting {
		return fmt.Errorf("%w: no submission in flight", ErrUnexpectedEvent)
	}

	s.Submitting = false
	s.LeadID = leadID
	s.Step = StepPostSubmission
	*effects = append(*effects, Notify{Level: NotifySuccess, Text: e.script.Notices.Submitted})
	e.say(s, effects,
		e.script.thankYou(strings.TrimSpace(s.Draft.Name), s.Draft.Interest),
		KindOptions, e.script.followUpLabels())
	return nil
}

func (e *Engine) failed(s *Session, effects *[]Effect) error {
	if !s.Submitting {
		return fmt.Errorf("%w: no submission in flight", ErrUnexpectedEvent)
	}

	// черновик и история остаются, посетитель может отправить форму ещё раз
	s.Submitting = false
	*effects = append(*effects, Notify{Level: NotifyError, Text: e.script.Notices.SubmitFailed})
	return nil
}

func (e *Engine) toLeadCapture(s *Session, effects *[]Effect, prompt string) {
	s.Step = StepLeadCapture
	e.say(s, effects, prompt, KindLeadForm, nil)
	*effects = append(*effects, ShowLeadForm{})
}

// hear добавляет реплику посетителя
func (e *Engine) hear(s *Session, text string) {
	s.Log = append(s.Log, Message{
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: e.clock.Now().UTC(),
		Kind:      KindText,
	})
}

// say добавляет реплику бота и выставляет доступные варианты
func (e *Engine) say(s *Session, effects *[]Effect, text string, kind MessageKind, options []string) {
	if e.typingDelay > 0 {
		*effects = append(*effects, Typing{Delay: e.typingDelay})
	}
	msg := Message{
		Text:      text,
		Sender:    domain.SenderBot,
		Timestamp: e.clock.Now().UTC(),
		Kind:      kind,
		Options:   cloneStrings(options),
	}
	s.Log = append(s.Log, msg)
	s.Options = cloneStrings(options)
	*effects = append(*effects, BotMessage{Message: msg})
}
