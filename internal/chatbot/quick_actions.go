package chatbot

import "fmt"

// QuickAction кнопка быстрого действия под окном чата
type QuickAction struct {
	Label       string
	Topic       string // тема первого уровня; пусто для OpenBooking
	OpenBooking bool
}

var QuickActions = []QuickAction{
	{Label: "View Properties", Topic: "Market Information"},
	{Label: "Get Home Value", Topic: "Selling a Property"},
	{Label: "Book Consultation", OpenBooking: true},
}

// Quick выполняет быстрое действие. Переход в тему работает только как выбор на приветствии,
// запись на консультацию доступна всегда и сессию не меняет.
func (e *Engine) Quick(s Session, label string) (Session, []Effect, error) {
	var action *QuickAction
	for i := range QuickActions {
		if QuickActions[i].Label == label {
			action = &QuickActions[i]
			break
		}
	}
	if action == nil {
		return s, nil, fmt.Errorf("%w: quick action %q", ErrUnknownOption, label)
	}

	if action.OpenBooking {
		return s, []Effect{OpenBooking{}}, nil
	}

	if s.Step != StepGreeting {
		return s, nil, fmt.Errorf("%w: quick action %q at step %s", ErrUnexpectedEvent, label, s.Step)
	}

	topic, ok := e.script.topicByLabel(action.Topic)
	if !ok {
		return s, nil, fmt.Errorf("%w: topic %q is not in the script", ErrUnknownOption, action.Topic)
	}

	next := s.clone()
	var effects []Effect
	e.hear(&next, topic.Label)
	next.Step = topic.Step
	e.say(&next, &effects, topic.Prompt, KindOptions, topic.Options)
	return next, effects, nil
}
