package models

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewLogin    View = "login"
	ViewProjects View = "projects"
	ViewProject  View = "project"
	ViewCreate   View = "create"
	ViewLoading  View = "loading"
	ViewConfirm  View = "confirm"
	ViewHelp     View = "help"
	ViewVoices   View = "voice_select"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone        Modal = "none"
	ModalHelp        Modal = "help"
	ModalVoiceSelect Modal = "voice_select"
	ModalConfirm     Modal = "confirm"
)
