package models

import (
	"context"
	"errors"
	"testing"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/repository/gql"
	"github.com/PizzaHomicide/hookline/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedProjectsModel(t *testing.T) *ProjectsModel {
	t.Helper()
	repo := &fakeProjectRepo{projects: []*domain.Project{
		{ID: "p1", Name: "Coffee rituals", Timestamp: 300},
		{ID: "p2", Name: "Running shoes", Script: "Find the right fit", Timestamp: 200},
		{ID: "p3", Name: "Tea", Timestamp: 100},
	}}
	projectService := service.NewProjectService(repo)
	require.NoError(t, projectService.LoadProjects(context.Background()))

	m := NewProjectsModel(projectService)
	m.Resize(100, 40)
	m.Update(ProjectsLoadedMsg{})
	return m
}

func TestProjectsSearch(t *testing.T) {
	m := loadedProjectsModel(t)
	require.Len(t, m.filtered, 3)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.searchMode)
	typeText(m, "cofe")

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "p1", m.Selected().ID)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searchMode)
	assert.Len(t, m.filtered, 3, "leaving search clears the filter")
}

func TestProjectsSearchMatchesScript(t *testing.T) {
	m := loadedProjectsModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	typeText(m, "right fit")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.searchMode)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "p2", m.filtered[0].ID)
}

func TestProjectsOpenSelected(t *testing.T) {
	m := loadedProjectsModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenProjectMsg{ID: "p2"}, cmd())
}

func TestProjectsCursorStaysInRange(t *testing.T) {
	m := loadedProjectsModel(t)
	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, m.cursor)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)
}

func TestProjectsLoadErrorIsShown(t *testing.T) {
	m := NewProjectsModel(service.NewProjectService(&fakeProjectRepo{}))
	m.Resize(100, 40)
	m.Update(ProjectsLoadedMsg{Error: gql.NetworkError{Err: errors.New("dial tcp: connection refused")}})

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Unable to reach the server")
}

func TestProjectsAccountLine(t *testing.T) {
	m := loadedProjectsModel(t)
	assert.NotContains(t, m.View(), "tokens")

	m.SetUser(&domain.User{ID: "u1", Type: domain.UserTypeUser, Username: "ada@example.com", Tokens: 300})
	view := m.View()
	assert.Contains(t, view, "ada@example.com")
	assert.Contains(t, view, "300/1500 tokens")
	assert.NotContains(t, view, "hookline complete")
	assert.Equal(t, 40-12-1, m.visibleRows())

	m.SetUser(&domain.User{ID: "u2", Type: domain.UserTypeGuest, Username: "guest", Tokens: 0})
	assert.Contains(t, m.View(), "hookline complete")
	assert.Equal(t, 40-12-2, m.visibleRows())
}
