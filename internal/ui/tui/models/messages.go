package models

import (
	"github.com/PizzaHomicide/hookline/internal/auth"
	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/media"
	"github.com/PizzaHomicide/hookline/internal/playback"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginResultMsg is sent when a login attempt finishes, successfully or not
type LoginResultMsg struct {
	Result auth.Result
}

// SessionResumedMsg is sent at startup once a stored token has been checked
type SessionResumedMsg struct {
	Result auth.Result
}

// AccountLoadedMsg carries a fresh copy of the signed-in account, for its token balance
type AccountLoadedMsg struct {
	User  *domain.User
	Error error
}

// ProjectsLoadedMsg is sent when the project list has been fetched into the service cache
type ProjectsLoadedMsg struct {
	Error error
}

// OpenProjectMsg asks the app to fetch a project and show it
type OpenProjectMsg struct {
	ID string
}

// ProjectLoadedMsg carries a fetched project and the voices it can be voiced with
type ProjectLoadedMsg struct {
	Project *domain.Project
	Voices  []domain.Voice
	Error   error
}

// ProjectUpdatedMsg is sent after a rename, script edit or speech generation
type ProjectUpdatedMsg struct {
	Project *domain.Project
	Message string
	Error   error
}

type ProjectRemovedMsg struct {
	ID    string
	Error error
}

type ProjectCreatedMsg struct {
	Project *domain.Project
	Error   error
}

// NewProjectMsg opens the create wizard
type NewProjectMsg struct{}

type ConfigurationsLoadedMsg struct {
	Configurations *domain.Configurations
	Error          error
}

// BackToProjectsMsg closes the current view and returns to the project list
type BackToProjectsMsg struct{}

// OpenVoiceSelectMsg opens the voice modal for generating a speech
type OpenVoiceSelectMsg struct {
	ProjectID string
	Voices    []domain.Voice
}

// VoiceChosenMsg is sent when a voice was picked in the voice modal
type VoiceChosenMsg struct {
	ProjectID string
	VoiceID   string
}

// CloseModalMsg closes whichever modal is open
type CloseModalMsg struct{}

// ConfirmRequestMsg opens a confirmation dialog.  OnConfirm runs only if the user accepts.
type ConfirmRequestMsg struct {
	Title     string
	Message   string
	OnConfirm tea.Cmd
}

type DownloadCompletedMsg struct {
	Result media.Result
	Error  error
}

// StatusMsg shows a short line of feedback in the active view
type StatusMsg struct {
	Text    string
	IsError bool
}

// EngineEventMsg forwards an event from a playback engine into the update loop.  Session identifies who it is for,
// so events from an engine that has since been replaced can be dropped.
type EngineEventMsg struct {
	Session *playback.Session
	Event   playback.Event
}

// EngineClosedMsg is sent once an engine's event channel has been closed
type EngineClosedMsg struct {
	Session *playback.Session
}
