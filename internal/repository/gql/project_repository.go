package gql

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/log"
)

const projectFields = `
    fragment ProjectFields on Project {
        id
        topic
        config {
            hook { id value }
            retention { id value }
            callToAction { id value }
        }
        result
        name
        script
        speech {
            id
            voice { id name description gradient }
            created
            expires
        }
        timestamp
    }
`

type ProjectRepository struct {
	client *Client
}

func NewProjectRepository(client *Client) domain.ProjectRepository {
	return &ProjectRepository{
		client: client,
	}
}

type optionResponse struct {
	ID          string
	Value       string
	Description string
}

func (o optionResponse) toDomain() domain.ConfigOption {
	return domain.ConfigOption{ID: o.ID, Value: o.Value, Description: o.Description}
}

type voiceResponse struct {
	ID          string
	Name        string
	Description string
	Gradient    string
	Sample      *struct {
		Duration float64
	}
}

func (v voiceResponse) toDomain() domain.Voice {
	voice := domain.Voice{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Gradient:    v.Gradient,
	}
	if v.Sample != nil {
		voice.SampleDuration = v.Sample.Duration
	}
	return voice
}

type projectResponse struct {
	ID     string
	Topic  string
	Config *struct {
		Hook         optionResponse
		Retention    optionResponse
		CallToAction optionResponse `json:"callToAction"`
	}
	Result string
	Name   string
	Script string
	Speech *struct {
		ID      string
		Voice   voiceResponse
		Created int64
		Expires int64
	}
	Timestamp int64
}

func (p *projectResponse) toDomain() *domain.Project {
	project := &domain.Project{
		ID:        p.ID,
		Name:      p.Name,
		Topic:     p.Topic,
		Script:    p.Script,
		Result:    p.Result,
		Timestamp: p.Timestamp,
	}
	if p.Config != nil {
		project.Config = domain.ScriptConfig{
			Hook:         p.Config.Hook.toDomain(),
			Retention:    p.Config.Retention.toDomain(),
			CallToAction: p.Config.CallToAction.toDomain(),
		}
	}
	if p.Speech != nil {
		project.Speech = &domain.Speech{
			ID:      p.Speech.ID,
			Voice:   p.Speech.Voice.toDomain(),
			Created: p.Speech.Created,
			Expires: p.Speech.Expires,
		}
	}
	// Older projects only have the raw result
	if project.Script == "" {
		project.Script = project.Result
	}
	return project
}

func (r *ProjectRepository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	query := `
        query ListProjects {
            projects {
                id
                name
                script
                timestamp
            }
        }
    `

	var response struct {
		Projects []projectResponse
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(response.Projects))
	for i := range response.Projects {
		projects = append(projects, response.Projects[i].toDomain())
	}

	log.Info("Fetched projects", "count", len(projects))
	return projects, nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id string) (*domain.Project, []domain.Voice, error) {
	query := `
        query GetProject($projectId: String) {
            voices {
                id
                name
                description
                gradient
                sample { duration }
            }
            project(id: $projectId) {
                ...ProjectFields
            }
        }
    ` + projectFields

	variables := map[string]interface{}{
		"projectId": id,
	}

	var response struct {
		Voices  []voiceResponse
		Project *projectResponse
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}

	if response.Project == nil {
		return nil, nil, &Error{Code: CodeBadRequest, Message: fmt.Sprintf("project %s not found", id)}
	}

	voices := make([]domain.Voice, 0, len(response.Voices))
	for _, v := range response.Voices {
		voices = append(voices, v.toDomain())
	}

	return response.Project.toDomain(), voices, nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, params domain.CreateProjectParams) (*domain.Project, error) {
	query := `
        mutation CreateProject($topic: String!, $config: CreateConfigParams!) {
            createProject(topic: $topic, config: $config) {
                id
                topic
                result
            }
        }
    `

	variables := map[string]interface{}{
		"topic":  params.Topic,
		"config": params,
	}

	var response struct {
		CreateProject projectResponse `json:"createProject"`
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Info("Created project", "id", response.CreateProject.ID)
	return response.CreateProject.toDomain(), nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, id string, params domain.UpdateProjectParams) (*domain.Project, error) {
	query := `
        mutation UpdateProject($projectId: String, $params: UpdateParams!) {
            updateProject(id: $projectId, params: $params) {
                ...ProjectFields
            }
        }
    ` + projectFields

	variables := map[string]interface{}{
		"projectId": id,
		"params":    params,
	}

	var response struct {
		UpdateProject projectResponse `json:"updateProject"`
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}

	return response.UpdateProject.toDomain(), nil
}

func (r *ProjectRepository) RemoveProject(ctx context.Context, id string) error {
	query := `
        mutation RemoveProject($projectId: String) {
            removeProject(id: $projectId)
        }
    `

	variables := map[string]interface{}{
		"projectId": id,
	}

	var response struct {
		RemoveProject bool `json:"removeProject"`
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return fmt.Errorf("failed to remove project %s: %w", id, err)
	}

	log.Info("Removed project", "id", id)
	return nil
}

func (r *ProjectRepository) GenerateSpeech(ctx context.Context, projectID, voiceID string) (*domain.Project, error) {
	query := `
        mutation GenerateSpeech($projectId: String, $voiceId: String!) {
            generateSpeech(projectId: $projectId, voiceId: $voiceId) {
                ...ProjectFields
            }
        }
    ` + projectFields

	variables := map[string]interface{}{
		"projectId": projectID,
		"voiceId":   voiceID,
	}

	var response struct {
		GenerateSpeech projectResponse `json:"generateSpeech"`
	}

	if err := r.client.Query(ctx, query, variables, &response); err != nil {
		return nil, fmt.Errorf("failed to generate speech: %w", err)
	}

	log.Info("Generated speech", "project", projectID, "voice", voiceID)
	return response.GenerateSpeech.toDomain(), nil
}

func (r *ProjectRepository) GetConfigurations(ctx context.Context) (*domain.Configurations, error) {
	query := `
        query GetConfigurations {
            configurations {
                hooks { id value description }
                retentions { id value description }
                callToActions { id value description }
            }
        }
    `

	var response struct {
		Configurations struct {
			Hooks         []optionResponse
			Retentions    []optionResponse
			CallToActions []optionResponse `json:"callToActions"`
		}
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get configurations: %w", err)
	}

	convert := func(in []optionResponse) []domain.ConfigOption {
		out := make([]domain.ConfigOption, 0, len(in))
		for _, o := range in {
			out = append(out, o.toDomain())
		}
		return out
	}

	return &domain.Configurations{
		Hooks:         convert(response.Configurations.Hooks),
		Retentions:    convert(response.Configurations.Retentions),
		CallToActions: convert(response.Configurations.CallToActions),
	}, nil
}
