package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/realty-intake-service/internal/chatbot"
	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/scheduling"
)

const botName = "Sarah"

// intakeClient операции API, которые нужны чату
type intakeClient interface {
	scheduling.BookingClient
	CreateLead(ctx context.Context, in domain.LeadInput) (string, error)
}

type chat struct {
	engine *chatbot.Engine
	client intakeClient
	in     *bufio.Scanner
	out    io.Writer
	clock  func() time.Time

	session  chatbot.Session
	showForm bool
	quit     bool
}

func newChat(engine *chatbot.Engine, client intakeClient, in io.Reader, out io.Writer) *chat {
	return &chat{
		engine: engine,
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
		clock:  time.Now,
	}
}

// Run ведёт диалог до /quit, конца ввода или отмены контекста
func (c *chat) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, headerStyle.Render(botName+" - Real Estate Assistant"))
	fmt.Fprintln(c.out, hintStyle.Render(helpText()))

	session, effects := c.engine.Start()
	c.session = session
	if err := c.apply(ctx, effects); err != nil {
		return err
	}

	for !c.quit && ctx.Err() == nil {
		if c.showForm {
			c.showForm = false
			if err := c.fillLeadForm(ctx); err != nil {
				return ignoreEOF(err)
			}
			continue
		}

		line, err := c.prompt("> ")
		if err != nil {
			return ignoreEOF(err)
		}
		if err := c.input(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// input разбирает строку: команда, номер варианта, текст варианта или свободный текст
func (c *chat) input(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if strings.HasPrefix(line, "/") {
		return c.command(ctx, line)
	}

	if option, ok := c.matchOption(line); ok {
		return c.handle(ctx, chatbot.Pick{Option: option})
	}
	return c.handle(ctx, chatbot.Text{Body: line})
}

func (c *chat) command(ctx context.Context, line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		c.quit = true
	case "/reset":
		return c.handle(ctx, chatbot.Reset{})
	case "/help":
		fmt.Fprintln(c.out, hintStyle.Render(helpText()))
	case "/quick":
		label, ok := quickActionLabel(arg)
		if !ok {
			fmt.Fprintln(c.out, errorStyle.Render("Unknown quick action: "+arg))
			return nil
		}
		next, effects, err := c.engine.Quick(c.session, label)
		if err != nil {
			fmt.Fprintln(c.out, errorStyle.Render("Not available right now"))
			return nil
		}
		c.session = next
		return c.apply(ctx, effects)
	default:
		fmt.Fprintln(c.out, errorStyle.Render("Unknown command "+name))
	}
	return nil
}

// handle передаёт событие движку и выполняет эффекты.
// Отклонённое событие сессию не меняет, поэтому достаточно сообщить об этом.
func (c *chat) handle(ctx context.Context, ev chatbot.Event) error {
	next, effects, err := c.engine.Handle(c.session, ev)
	if err != nil {
		if errors.Is(err, chatbot.ErrUnknownOption) || errors.Is(err, chatbot.ErrUnexpectedEvent) {
			fmt.Fprintln(c.out, errorStyle.Render("Please choose one of the options"))
			return nil
		}
		if errors.Is(err, chatbot.ErrSubmissionInFlight) {
			return nil
		}
		return err
	}
	c.session = next
	return c.apply(ctx, effects)
}

func (c *chat) apply(ctx context.Context, effects []chatbot.Effect) error {
	for _, effect := range effects {
		switch e := effect.(type) {
		case chatbot.Typing:
			fmt.Fprintln(c.out, hintStyle.Render(botName+" is typing..."))
			if err := sleep(ctx, e.Delay); err != nil {
				return err
			}
		case chatbot.BotMessage:
			fmt.Fprintln(c.out, renderMessage(e.Message))
		case chatbot.ShowLeadForm:
			c.showForm = true
		case chatbot.ValidationError:
			fmt.Fprintln(c.out, errorStyle.Render(e.Text))
			c.showForm = true
		case chatbot.Notify:
			fmt.Fprintln(c.out, renderNotice(e))
		case chatbot.SubmitLead:
			if err := c.submitLead(ctx, e.Payload); err != nil {
				return err
			}
		case chatbot.OpenBooking:
			if err := c.bookConsultation(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// submitLead отправляет лид и возвращает результат движку
func (c *chat) submitLead(ctx context.Context, payload domain.LeadInput) error {
	id, err := c.client.CreateLead(ctx, payload)
	if err != nil {
		if err := c.handle(ctx, chatbot.SubmissionFailed{Err: err}); err != nil {
			return err
		}
		// черновик сохранён, форму можно отправить ещё раз
		c.showForm = true
		return nil
	}
	return c.handle(ctx, chatbot.SubmissionSucceeded{LeadID: id})
}

func (c *chat) fillLeadForm(ctx context.Context) error {
	draft := c.session.Draft
	fmt.Fprintln(c.out, formStyle.Render("Contact details (name and email are required)"))

	name, err := c.promptDefault("Name", draft.Name)
	if err != nil {
		return err
	}
	email, err := c.promptDefault("Email", draft.Email)
	if err != nil {
		return err
	}
	phone, err := c.promptDefault("Phone (optional)", draft.Phone)
	if err != nil {
		return err
	}

	return c.handle(ctx, chatbot.SubmitForm{Name: name, Email: email, Phone: phone})
}

// bookConsultation короткая версия страницы записи прямо в терминале
func (c *chat) bookConsultation(ctx context.Context) error {
	fmt.Fprintln(c.out, formStyle.Render("Book a Consultation"))
	answer, err := c.prompt("Open the booking form now? [y/N] ")
	if err != nil {
		return ignoreEOF(err)
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil
	}

	draft := c.session.Draft
	form := scheduling.Form{FirstName: draft.Name, Email: draft.Email, Phone: draft.Phone}

	if form.SelectedDate, err = c.prompt("Date (YYYY-MM-DD): "); err != nil {
		return ignoreEOF(err)
	}
	form.SelectedDate = strings.TrimSpace(form.SelectedDate)
	date, err := time.ParseInLocation(domain.DateFormat, form.SelectedDate, time.Local)
	if err != nil || !scheduling.IsBookableDate(date, c.clock()) {
		fmt.Fprintln(c.out, errorStyle.Render("Please pick a future date other than Sunday"))
		return nil
	}

	if form.SelectedTime, err = c.choose("Time", scheduling.TimeSlots); err != nil {
		return ignoreEOF(err)
	}

	labels := make([]string, len(scheduling.ServiceTypes))
	for i, st := range scheduling.ServiceTypes {
		labels[i] = st.Label
	}
	service, err := c.choose("Service", labels)
	if err != nil {
		return ignoreEOF(err)
	}
	for _, st := range scheduling.ServiceTypes {
		if st.Label == service {
			form.ServiceType = st.Value
		}
	}

	if form.FirstName, err = c.promptDefault("First name", form.FirstName); err != nil {
		return ignoreEOF(err)
	}
	if form.Email, err = c.promptDefault("Email", form.Email); err != nil {
		return ignoreEOF(err)
	}

	confirmation, err := form.Submit(ctx, c.client)
	switch {
	case errors.Is(err, scheduling.ErrValidation):
		fmt.Fprintln(c.out, errorStyle.Render("Please fill in all required fields"))
	case err != nil:
		fmt.Fprintln(c.out, errorStyle.Render("Failed to book consultation. Please try again."))
	default:
		fmt.Fprintln(c.out, successStyle.Render("Booking Confirmed! "+confirmation.Summary()))
	}
	return nil
}

// choose печатает нумерованный список и возвращает выбранный элемент; пустая строка при неверном вводе
func (c *chat) choose(title string, items []string) (string, error) {
	for i, item := range items {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, item)
	}
	line, err := c.prompt(title + ": ")
	if err != nil {
		return "", err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < 1 || n > len(items) {
		return "", nil
	}
	return items[n-1], nil
}

func (c *chat) matchOption(line string) (string, bool) {
	options := c.session.Options
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if strings.EqualFold(o, line) {
			return o, true
		}
	}
	return "", false
}

func (c *chat) prompt(label string) (string, error) {
	fmt.Fprint(c.out, promptStyle.Render(label))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// promptDefault пустой ввод оставляет значение из черновика
func (c *chat) promptDefault(label, current string) (string, error) {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	line, err := c.prompt(label + ": ")
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return current, nil
	}
	return line, nil
}

func quickActionLabel(arg string) (string, bool) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(chatbot.QuickActions) {
		return chatbot.QuickActions[n-1].Label, true
	}
	for _, a := range chatbot.QuickActions {
		if strings.EqualFold(a.Label, arg) {
			return a.Label, true
		}
	}
	return "", false
}

func helpText() string {
	labels := make([]string, len(chatbot.QuickActions))
	for i, a := range chatbot.QuickActions {
		labels[i] = fmt.Sprintf("%d=%s", i+1, a.Label)
	}
	return "Type an option number or a message. Commands: /quick <n> (" +
		strings.Join(labels, ", ") + "), /reset, /quit"
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
