package domain

import "context"

// AccountRepository defines access to the signed-in account
type AccountRepository interface {
	// Login exchanges credentials for a session token.  Password may be empty for passwordless guest accounts.
	Login(ctx context.Context, username, password string) (string, error)

	// Me fetches the signed-in user
	Me(ctx context.Context) (*User, error)

	// RefreshToken exchanges the current token for a fresh one
	RefreshToken(ctx context.Context) (string, error)

	// Complete turns a guest account into a full account
	Complete(ctx context.Context, params CompleteParams) error
}

// ProjectRepository defines access to projects, voices and the script configuration options
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]*Project, error)

	// GetProject returns the project together with the voices a speech can be generated with
	GetProject(ctx context.Context, id string) (*Project, []Voice, error)

	CreateProject(ctx context.Context, params CreateProjectParams) (*Project, error)
	UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (*Project, error)
	RemoveProject(ctx context.Context, id string) error

	// GenerateSpeech creates a voiceover of the project script and returns the updated project
	GenerateSpeech(ctx context.Context, projectID, voiceID string) (*Project, error)

	GetConfigurations(ctx context.Context) (*Configurations, error)
}
