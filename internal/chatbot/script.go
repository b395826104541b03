package chatbot

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var defaultScript []byte

// Topic тема первого уровня и варианты второго уровня
type Topic struct {
	Label   string   `yaml:"label"`
	Step    Step     `yaml:"step"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
}

// FollowUp вариант после успешной отправки лида
type FollowUp struct {
	Label       string `yaml:"label"`
	Reply       string `yaml:"reply"`
	OpenBooking bool   `yaml:"open_booking"`
	End         bool   `yaml:"end"`
}

type Notices struct {
	Submitted    string `yaml:"submitted"`
	SubmitFailed string `yaml:"submit_failed"`
	Validation   string `yaml:"validation"`
}

// Script тексты и варианты ответов диалога
type Script struct {
	Greeting          string     `yaml:"greeting"`
	Topics            []Topic    `yaml:"topics"`
	LeadPrompt        string     `yaml:"lead_prompt"`
	FreeTextPrompt    string     `yaml:"free_text_prompt"`
	FormReminder      string     `yaml:"form_reminder"`
	ThankYou          string     `yaml:"thank_you"`
	InterestFallback  string     `yaml:"interest_fallback"`
	FollowUps         []FollowUp `yaml:"follow_ups"`
	FollowUpTextReply string     `yaml:"follow_up_text_reply"`
	Notices           Notices    `yaml:"notices"`
}

// DefaultScript встроенный сценарий
func DefaultScript() (*Script, error) {
	return ParseScript(defaultScript)
}

// LoadScript читает сценарий из файла; пустой путь - встроенный сценарий
func LoadScript(path string) (*Script, error) {
	if path == "" {
		return DefaultScript()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidScript, path, err)
	}
	return ParseScript(data)
}

// ParseScript разбирает и проверяет YAML-сценарий
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate проверяет, что по сценарию можно пройти от приветствия до лида
func (s *Script) Validate() error {
	var problems []string
	required := []struct{ key, value string }{
		{"greeting", s.Greeting},
		{"lead_prompt", s.LeadPrompt},
		{"free_text_prompt", s.FreeTextPrompt},
		{"thank_you", s.ThankYou},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.key+" is empty")
		}
	}

	if len(s.Topics) == 0 {
		problems = append(problems, "no topics")
	}
	labels := make(map[string]bool)
	steps := make(map[Step]bool)
	for i, t := range s.Topics {
		if t.Label == "" || t.Step == "" {
			problems = append(problems, fmt.Sprintf("topic #%d: label and step are required", i+1))
			continue
		}
		if labels[t.Label] {
			problems = append(problems, fmt.Sprintf("topic %q: duplicate label", t.Label))
		}
		if steps[t.Step] || t.Step.reserved() {
			problems = append(problems, fmt.Sprintf("topic %q: step %q is already used", t.Label, t.Step))
		}
		if len(t.Options) == 0 {
			problems = append(problems, fmt.Sprintf("topic %q: no options", t.Label))
		}
		labels[t.Label] = true
		steps[t.Step] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Script) topicLabels() []string {
	out := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		out[i] = t.Label
	}
	return out
}

func (s *Script) topicByLabel(label string) (Topic, bool) {
	for _, t := range s.Topics {
		if t.Label == label {
			return t, true
		}
	}
	return Topic{}, false
}

func (s *Script) topicByStep(step Step) (Topic, bool) {
	for _, t := range s.Topics {
		if t.Step == step {
			return t, true
		}
	}
	return Topic{}, false
}

func (s *Script) followUpLabels() []string {
	out := make([]string, len(s.FollowUps))
	for i, f := range s.FollowUps {
		out[i] = f.Label
	}
	return out
}

func (s *Script) followUp(label string) (FollowUp, bool) {
	for _, f := range s.FollowUps {
		if f.Label == label {
			return f, true
		}
	}
	return FollowUp{}, false
}

func (s *Script) thankYou(name, interest string) string {
	if interest == "" {
		interest = s.InterestFallback
	}
	return strings.NewReplacer("{name}", name, "{interest}", interest).Replace(s.ThankYou)
}
