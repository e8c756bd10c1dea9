// Package wizard is the two step form behind creating a project: a topic, then one option for each section
// of the script (hook, retention, call to action).
package wizard

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/hookline/internal/domain"
)

// ErrRequired is the message shown for a missing field
const ErrRequired = "This field is required."

type Step int

const (
	StepTopic Step = iota + 1
	StepConfiguration
)

const (
	SectionHook = iota
	SectionRetention
	SectionCallToAction
	sectionCount
)

// Section is one of the script sections an option is chosen for
type Section struct {
	Title       string
	Description string
	Options     []domain.ConfigOption
}

type Wizard struct {
	step       Step
	topic      string
	topicError string

	sections [sectionCount]Section
	choices  [sectionCount]string
	selected int
	canView  int
}

// New creates a wizard on the topic step.  configs may be nil until the options have loaded.
func New(configs *domain.Configurations) *Wizard {
	w := &Wizard{
		step: StepTopic,
		sections: [sectionCount]Section{
			SectionHook: {
				Title:       "Hook",
				Description: "Start strong. How will you grab attention?",
			},
			SectionRetention: {
				Title:       "Retention",
				Description: "The main part of your script. What emotion or atmosphere do you want to create?",
			},
			SectionCallToAction: {
				Title:       "Call to Action",
				Description: "End with impact. How will you prompt action?",
			},
		},
	}
	w.SetConfigurations(configs)
	return w
}

// SetConfigurations fills in the options offered for each section
func (w *Wizard) SetConfigurations(configs *domain.Configurations) {
	if configs == nil {
		return
	}
	w.sections[SectionHook].Options = configs.Hooks
	w.sections[SectionRetention].Options = configs.Retentions
	w.sections[SectionCallToAction].Options = configs.CallToActions
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Topic() string {
	return w.topic
}

// SetTopic updates the topic and clears any error shown for it
func (w *Wizard) SetTopic(topic string) {
	w.topic = topic
	w.topicError = ""
}

func (w *Wizard) TopicError() string {
	return w.topicError
}

// SubmitTopic moves on to the configuration step.  A blank topic sets the field error and stays put.
func (w *Wizard) SubmitTopic() bool {
	if w.step != StepTopic {
		return false
	}
	if strings.TrimSpace(w.topic) == "" {
		w.topicError = ErrRequired
		return false
	}
	w.topicError = ""
	w.step = StepConfiguration
	return true
}

// Back on the configuration step resets the whole form and returns to the topic.  It reports false on the topic
// step, where there is nothing to go back to.
func (w *Wizard) Back() bool {
	if w.step != StepConfiguration {
		return false
	}
	w.topic = ""
	w.topicError = ""
	w.choices = [sectionCount]string{}
	w.selected = 0
	w.canView = 0
	w.step = StepTopic
	return true
}

func (w *Wizard) Sections() []Section {
	return w.sections[:]
}

// Selected is the section that currently has focus
func (w *Wizard) Selected() int {
	return w.selected
}

// CanView is the furthest section reached.  It equals the number of sections once every choice is made.
func (w *Wizard) CanView() int {
	return w.canView
}

// Focus moves to section k if it has been reached
func (w *Wizard) Focus(k int) bool {
	if k < 0 || k >= sectionCount || k > w.canView {
		return false
	}
	w.selected = k
	return true
}

// Choice is the option id chosen for section k, or ""
func (w *Wizard) Choice(k int) string {
	if k < 0 || k >= sectionCount {
		return ""
	}
	return w.choices[k]
}

// Choose records optionID for section k.  Choosing in the furthest section reached unlocks the next one.
func (w *Wizard) Choose(k int, optionID string) error {
	if w.step != StepConfiguration {
		return fmt.Errorf("not on the configuration step")
	}
	if k < 0 || k >= sectionCount || k > w.canView {
		return fmt.Errorf("section %d is not available", k)
	}
	if !hasOption(w.sections[k].Options, optionID) {
		return fmt.Errorf("unknown option %q for %s", optionID, w.sections[k].Title)
	}

	w.choices[k] = optionID
	if k == w.canView {
		w.canView++
		if w.canView < sectionCount {
			w.selected = w.canView
		}
	}
	return nil
}

// Complete reports whether everything needed to create the project has been filled in
func (w *Wizard) Complete() bool {
	if strings.TrimSpace(w.topic) == "" {
		return false
	}
	for _, c := range w.choices {
		if c == "" {
			return false
		}
	}
	return true
}

// Params builds the create request
func (w *Wizard) Params() (domain.CreateProjectParams, error) {
	if !w.Complete() {
		return domain.CreateProjectParams{}, fmt.Errorf("%s", ErrRequired)
	}
	return domain.CreateProjectParams{
		Topic:        strings.TrimSpace(w.topic),
		Hook:         w.choices[SectionHook],
		Retention:    w.choices[SectionRetention],
		CallToAction: w.choices[SectionCallToAction],
	}, nil
}

func hasOption(options []domain.ConfigOption, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
