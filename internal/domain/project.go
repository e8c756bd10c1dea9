package domain

import "time"

// ConfigOption is one selectable alternative for a section of the script framework
type ConfigOption struct {
	ID          string
	Value       string
	Description string
}

// ScriptConfig holds the options a project was generated with
type ScriptConfig struct {
	Hook         ConfigOption
	Retention    ConfigOption
	CallToAction ConfigOption
}

// Configurations lists the alternatives offered for each section of a new project
type Configurations struct {
	Hooks         []ConfigOption
	Retentions    []ConfigOption
	CallToActions []ConfigOption
}

// Voice is a text-to-speech voice that speeches can be generated with
type Voice struct {
	ID          string
	Name        string
	Description string
	// Gradient is a CSS gradient in the web client.  Only kept so it round trips.
	Gradient       string
	SampleDuration float64
}

// Speech is a generated voiceover for a project's script
type Speech struct {
	ID      string
	Voice   Voice
	Created int64
	Expires int64
}

// ExpiresAt returns the expiry as a time.Time
func (s *Speech) ExpiresAt() time.Time {
	return time.Unix(s.Expires, 0)
}

// Expired reports whether the speech can no longer be played or downloaded
func (s *Speech) Expired(now time.Time) bool {
	return s.Expires > 0 && !now.Before(s.ExpiresAt())
}

// Project is a saved script
type Project struct {
	ID        string
	Name      string
	Topic     string
	Script    string
	Result    string
	Config    ScriptConfig
	Speech    *Speech
	Timestamp int64
}

// HasSpeech reports whether a voiceover has been generated for the project
func (p *Project) HasSpeech() bool {
	return p != nil && p.Speech != nil && p.Speech.ID != ""
}

// CreateProjectParams are the inputs to creating a project
type CreateProjectParams struct {
	Topic        string `json:"-"`
	Hook         string `json:"hook"`
	Retention    string `json:"retention"`
	CallToAction string `json:"callToAction"`
}

// UpdateProjectParams updates the name and/or script of a project.  Nil fields are left untouched.
type UpdateProjectParams struct {
	Name   *string `json:"name,omitempty"`
	Script *string `json:"script,omitempty"`
}
