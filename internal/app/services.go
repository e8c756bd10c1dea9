package app

import (
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/auth"
	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/media"
	"github.com/PizzaHomicide/hookline/internal/repository/gql"
	"github.com/PizzaHomicide/hookline/internal/service"
)

// Services holds everything the front ends share: the API client, authentication and the project cache
type Services struct {
	Client     *gql.Client
	Auth       *auth.Auth
	Projects   *service.ProjectService
	URLs       *media.URLs
	Downloader *media.Downloader
}

// New wires the services from cfg.  The stored token, if any, is used until it is refreshed or replaced by a login.
func New(cfg *config.Config) (*Services, error) {
	urls, err := media.NewURLs(cfg.API.MediaEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid media endpoint: %w", err)
	}

	client := gql.NewClient(cfg.API.GraphQLEndpoint, cfg.Auth.Token, cfg.API.Timeout)

	return &Services{
		Client:     client,
		Auth:       auth.NewAuth(gql.NewAccountRepository(client), config.NewTokenStore(cfg)),
		Projects:   service.NewProjectService(gql.NewProjectRepository(client)),
		URLs:       urls,
		Downloader: media.NewDownloader(urls, client, cfg.API.Timeout),
	}, nil
}

// SignedIn reports whether a token is available, stored or from a login this run
func (s *Services) SignedIn() bool {
	return s.Client.Token() != ""
}

// SignOut forgets the token in memory and on disk
func (s *Services) SignOut() error {
	s.Client.SetToken("")
	return s.Auth.Logout()
}
