package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionLogout     Action = "logout"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Login view actions
	ActionLogin     Action = "login"
	ActionNextField Action = "next_field"

	// Project list actions
	ActionOpenProject     Action = "open_project"
	ActionNewProject      Action = "new_project"
	ActionRefreshProjects Action = "refresh_projects"

	// Project view actions
	ActionTogglePlay     Action = "toggle_play"
	ActionSeekBackward   Action = "seek_backward"
	ActionSeekForward    Action = "seek_forward"
	ActionEditScript     Action = "edit_script"
	ActionRenameProject  Action = "rename_project"
	ActionCopyScript     Action = "copy_script"
	ActionGenerateSpeech Action = "generate_speech"
	ActionDownload       Action = "download"
	ActionDeleteProject  Action = "delete_project"

	// Voice selection actions
	ActionPreviewVoice Action = "preview_voice"
	ActionChooseVoice  Action = "choose_voice"

	// Create wizard actions
	ActionSubmit      Action = "submit"
	ActionPrevSection Action = "prev_section"
	ActionNextSection Action = "next_section"
	ActionCreate      Action = "create"

	// Editing actions
	ActionSave Action = "save"

	// Confirmation actions
	ActionConfirm Action = "confirm"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal      ContextName = "global"
	ContextLogin       ContextName = "login"
	ContextProjects    ContextName = "projects"
	ContextProject     ContextName = "project"
	ContextEditing     ContextName = "editing"
	ContextVoiceSelect ContextName = "voice_select"
	ContextCreate      ContextName = "create"
	ContextConfirm     ContextName = "confirm"
	ContextSearchMode  ContextName = "search_mode"
	ContextHelp        ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:      globalBindings,
	ContextLogin:       loginBindings,
	ContextProjects:    projectsBindings,
	ContextProject:     projectBindings,
	ContextEditing:     editingBindings,
	ContextVoiceSelect: voiceSelectBindings,
	ContextCreate:      createBindings,
	ContextConfirm:     confirmBindings,
	ContextSearchMode:  searchModeBindings,
	ContextHelp:        helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionLogout,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Logout (clear token)",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// loginBindings apply while the email and password inputs have focus, so they avoid printable keys
var loginBindings = []Binding{
	{
		Action: ActionLogin,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Sign in",
		},
	},
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary:   "tab",
			Secondary: "shift+tab",
			Help:      "Switch between email and password",
		},
	},
}

var helpBindings = withNavigation([]Binding{})

var projectsBindings = withNavigation([]Binding{
	{
		Action: ActionOpenProject,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open project",
		},
	},
	{
		Action: ActionNewProject,
		KeyMap: KeyMap{
			Primary: "n",
			Help:    "New project",
		},
	},
	{
		Action: ActionRefreshProjects,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh project list",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search projects",
		},
	},
})

var projectBindings = withNavigation([]Binding{
	{
		Action: ActionTogglePlay,
		KeyMap: KeyMap{
			Primary: " ",
			Help:    "Play/pause the voiceover",
		},
	},
	{
		Action: ActionSeekBackward,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Seek back 5%",
		},
	},
	{
		Action: ActionSeekForward,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Seek forward 5%",
		},
	},
	{
		Action: ActionEditScript,
		KeyMap: KeyMap{
			Primary: "e",
			Help:    "Edit script",
		},
	},
	{
		Action: ActionRenameProject,
		KeyMap: KeyMap{
			Primary: "N",
			Help:    "Rename project",
		},
	},
	{
		Action: ActionCopyScript,
		KeyMap: KeyMap{
			Primary: "c",
			Help:    "Copy script to clipboard",
		},
	},
	{
		Action: ActionGenerateSpeech,
		KeyMap: KeyMap{
			Primary: "g",
			Help:    "Generate voiceover",
		},
	},
	{
		Action: ActionDownload,
		KeyMap: KeyMap{
			Primary: "d",
			Help:    "Download voiceover",
		},
	},
	{
		Action: ActionDeleteProject,
		KeyMap: KeyMap{
			Primary: "x",
			Help:    "Delete project",
		},
	},
})

// editingBindings apply while a text input has focus
var editingBindings = []Binding{
	{
		Action: ActionSave,
		KeyMap: KeyMap{
			Primary: "ctrl+s",
			Help:    "Save changes (enter also saves a name)",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Discard changes",
		},
	},
}

var voiceSelectBindings = withNavigation([]Binding{
	{
		Action: ActionPreviewVoice,
		KeyMap: KeyMap{
			Primary:   "p",
			Secondary: " ",
			Help:      "Play/pause voice sample",
		},
	},
	{
		Action: ActionChooseVoice,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Generate with this voice",
		},
	},
})

var createBindings = withNavigation([]Binding{
	{
		Action: ActionSubmit,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Continue/choose option",
		},
	},
	{
		Action: ActionPrevSection,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "shift+tab",
			Help:      "Previous section",
		},
	},
	{
		Action: ActionNextSection,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "tab",
			Help:      "Next section (once reached)",
		},
	},
	{
		Action: ActionCreate,
		KeyMap: KeyMap{
			Primary: "ctrl+s",
			Help:    "Create the project once every section has a choice",
		},
	},
})

var confirmBindings = []Binding{
	{
		Action: ActionConfirm,
		KeyMap: KeyMap{
			Primary:   "y",
			Secondary: "enter",
			Help:      "Confirm",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "n",
			Secondary: "esc",
			Help:      "Cancel",
		},
	},
}

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search filter and return control to the original view",
		},
	},
}

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		key := keyMsg.String()
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// DisplayKey makes whitespace keys readable in help text
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	keys := DisplayKey(binding.KeyMap.Primary)
	if binding.KeyMap.Secondary != "" {
		keys += "/" + DisplayKey(binding.KeyMap.Secondary)
	}
	return keys + ": " + binding.KeyMap.Help
}

// GetHelpText generates formatted help text for a set of bindings
func GetHelpText(title string, bindings []Binding) string {
	helpText := "## " + title + "\n\n"
	for _, binding := range bindings {
		helpText += "* " + FormatKeyHelp(binding) + "\n"
	}
	return helpText
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
