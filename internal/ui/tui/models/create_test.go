package models

import (
	"testing"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/service"
	"github.com/PizzaHomicide/hookline/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigurations() *domain.Configurations {
	return &domain.Configurations{
		Hooks:         []domain.ConfigOption{{ID: "h1", Value: "Question"}, {ID: "h2", Value: "Bold claim"}},
		Retentions:    []domain.ConfigOption{{ID: "r1", Value: "Story"}},
		CallToActions: []domain.ConfigOption{{ID: "c1", Value: "Follow"}},
	}
}

func typeText(m Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestCreateWizardFlow(t *testing.T) {
	repo := &fakeProjectRepo{}
	m := NewCreateModel(service.NewProjectService(repo))
	m.Resize(100, 40)
	m.Init()
	m.Update(ConfigurationsLoadedMsg{Configurations: testConfigurations()})

	// A blank topic is refused
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, wizard.StepTopic, m.wizard.Step())
	assert.NotEmpty(t, m.wizard.TopicError())

	typeText(m, "coffee")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, wizard.StepConfiguration, m.wizard.Step())

	// Creating before every section has a choice only shows an error
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.status.isError)
	assert.Nil(t, repo.created)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // hook: Bold claim
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // retention
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // call to action
	require.True(t, m.wizard.Complete())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.creating)

	var created *ProjectCreatedMsg
	for _, msg := range runCmd(cmd) {
		if c, ok := msg.(ProjectCreatedMsg); ok {
			created = &c
		}
	}
	require.NotNil(t, created)
	require.NoError(t, created.Error)
	assert.Equal(t, domain.CreateProjectParams{Topic: "coffee", Hook: "h2", Retention: "r1", CallToAction: "c1"}, *repo.created)
}

func TestCreateBackStartsOver(t *testing.T) {
	m := NewCreateModel(service.NewProjectService(&fakeProjectRepo{}))
	m.Init()
	m.Update(ConfigurationsLoadedMsg{Configurations: testConfigurations()})
	typeText(m, "coffee")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "h1", m.wizard.Choice(wizard.SectionHook))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, wizard.StepTopic, m.wizard.Step())
	assert.Empty(t, m.topic.Value())
	assert.Empty(t, m.wizard.Choice(wizard.SectionHook))
}

func TestCreateEscOnTopicLeaves(t *testing.T) {
	m := NewCreateModel(service.NewProjectService(&fakeProjectRepo{}))
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackToProjectsMsg{}, cmd())
}
