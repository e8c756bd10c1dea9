package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type ProjectService struct {
	repo     domain.ProjectRepository
	projects []*domain.Project // Local copy of the project list, refreshed on user request
	mu       sync.Mutex
}

func NewProjectService(repo domain.ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// Projects returns a copy of the cached project list
func (s *ProjectService) Projects() []*domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Project(nil), s.projects...)
}

// LoadProjects fetches the project list from the repository, newest first
func (s *ProjectService) LoadProjects(ctx context.Context) error {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return err
	}

	SortByNewest(projects)

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// GetProject fetches the full project and the voices available for it.  The cached entry is refreshed.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, []domain.Voice, error) {
	project, voices, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s.upsert(project)
	return project, voices, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, params domain.CreateProjectParams) (*domain.Project, error) {
	if strings.TrimSpace(params.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}

	project, err := s.repo.CreateProject(ctx, params)
	if err != nil {
		return nil, err
	}
	if project.Topic == "" {
		project.Topic = params.Topic
	}

	s.upsert(project)
	return project, nil
}

// RenameProject sets a new name for the project
func (s *ProjectService) RenameProject(ctx context.Context, id, name string) (*domain.Project, error) {
	return s.update(ctx, id, domain.UpdateProjectParams{Name: &name})
}

// SaveScript replaces the script text of the project
func (s *ProjectService) SaveScript(ctx context.Context, id, script string) (*domain.Project, error) {
	return s.update(ctx, id, domain.UpdateProjectParams{Script: &script})
}

func (s *ProjectService) update(ctx context.Context, id string, params domain.UpdateProjectParams) (*domain.Project, error) {
	project, err := s.repo.UpdateProject(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	s.upsert(project)
	log.Info("Updated project", "id", id, "name", params.Name != nil, "script", params.Script != nil)
	return project, nil
}

func (s *ProjectService) RemoveProject(ctx context.Context, id string) error {
	if err := s.repo.RemoveProject(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	return nil
}

// GenerateSpeech asks the API for a voiceover of the project script using the given voice
func (s *ProjectService) GenerateSpeech(ctx context.Context, projectID, voiceID string) (*domain.Project, error) {
	project, err := s.repo.GenerateSpeech(ctx, projectID, voiceID)
	if err != nil {
		return nil, err
	}
	s.upsert(project)
	return project, nil
}

func (s *ProjectService) GetConfigurations(ctx context.Context) (*domain.Configurations, error) {
	return s.repo.GetConfigurations(ctx)
}

// Filter returns the cached projects whose name or script fuzzily matches query.  An empty query matches all.
func (s *ProjectService) Filter(query string) []*domain.Project {
	projects := s.Projects()
	return FilterProjects(projects, query)
}

// FilterProjects keeps the projects whose name or script fuzzily matches query, preserving order
func FilterProjects(projects []*domain.Project, query string) []*domain.Project {
	query = strings.TrimSpace(query)
	if query == "" {
		return projects
	}

	var result []*domain.Project
	for _, p := range projects {
		if fuzzy.MatchFold(query, p.Name) || fuzzy.MatchFold(query, p.Script) {
			result = append(result, p)
		}
	}
	return result
}

// SortByNewest orders projects by timestamp, most recent first
func SortByNewest(projects []*domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Timestamp > projects[j].Timestamp
	})
}

// upsert replaces the cached project with the same ID, or prepends it when it is new.
// Partial results (create only returns a few fields) are merged so the list keeps its name and timestamp.
func (s *ProjectService) upsert(project *domain.Project) {
	if project == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == project.ID {
			merged := *project
			if merged.Name == "" {
				merged.Name = p.Name
			}
			if merged.Timestamp == 0 {
				merged.Timestamp = p.Timestamp
			}
			s.projects[i] = &merged
			return
		}
	}

	s.projects = append([]*domain.Project{project}, s.projects...)
}
