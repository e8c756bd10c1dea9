package gql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
	Auth      string
}

// newTestServer answers every request with body and status, recording what was sent
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var requests []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var req capturedRequest
		assert.NoError(t, json.Unmarshal(raw, &req))
		req.Auth = r.Header.Get("Authorization")
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestQuerySendsBearerToken(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"data":{"me":{"id":"u1","type":"USER","name":"Ana","username":"ana@example.com","tokens":12}}}`)

	client := NewClient(server.URL, "secret", 5*time.Second)
	user, err := NewAccountRepository(client).Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.UserTypeUser, user.Type)
	assert.Equal(t, 12, user.Tokens)
	require.Len(t, *requests, 1)
	assert.Equal(t, "Bearer secret", (*requests)[0].Auth)
}

func TestQueryWithoutTokenOmitsHeader(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"data":{"login":{"token":"fresh"}}}`)

	client := NewClient(server.URL, "", 5*time.Second)
	token, err := NewAccountRepository(client).Login(context.Background(), "ana@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, "fresh", token)
	assert.Equal(t, "fresh", client.Token())
	require.Len(t, *requests, 1)
	assert.Empty(t, (*requests)[0].Auth)
	assert.Equal(t, "ana@example.com", (*requests)[0].Variables["username"])
	assert.NotContains(t, (*requests)[0].Variables, "password")
}

func TestErrorCodeFromExtensions(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"errors":[{"message":"You must be signed in","extensions":{"code":"UNAUTHENTICATED"}}],"data":null}`)

	client := NewClient(server.URL, "expired", 5*time.Second)
	_, err := NewProjectRepository(client).ListProjects(context.Background())
	require.Error(t, err)

	assert.Equal(t, CodeUnauthenticated, CodeOf(err))
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestErrorCodeFromStatus(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, `oops`)

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := NewProjectRepository(client).ListProjects(context.Background())
	require.Error(t, err)

	assert.Equal(t, CodeServer, CodeOf(err))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestErrorCodeFromHTMLStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html><body>Bad Gateway</body></html>")
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := NewProjectRepository(client).ListProjects(context.Background())
	require.Error(t, err)

	assert.Equal(t, CodeServer, CodeOf(err))
}

func TestUnauthorizedStatusWithPlainJSONBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusUnauthorized, `{"message":"jwt expired"}`)

	client := NewClient(server.URL, "expired", 5*time.Second)
	projects, err := NewProjectRepository(client).ListProjects(context.Background())
	require.Error(t, err)

	assert.Empty(t, projects)
	assert.Equal(t, CodeUnauthenticated, CodeOf(err))
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestForbiddenStatusWithPlainJSONBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusForbidden, `{}`)

	client := NewClient(server.URL, "secret", 5*time.Second)
	_, err := NewAccountRepository(client).Me(context.Background())
	require.Error(t, err)

	assert.Equal(t, CodeForbidden, CodeOf(err))
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "", time.Second)
	_, err := NewProjectRepository(client).ListProjects(context.Background())
	require.Error(t, err)

	var netErr NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestGetProjectMapsSpeechAndVoices(t *testing.T) {
	body := `{"data":{
        "voices":[{"id":"v1","name":"Nova","description":"Warm","gradient":"x","sample":{"duration":7.5}}],
        "project":{"id":"p1","topic":"coffee","name":"Coffee","script":"Hello","result":"Hello",
            "config":{"hook":{"id":"h1","value":"Question"},"retention":{"id":"r1","value":"Story"},"callToAction":{"id":"c1","value":"Follow"}},
            "speech":{"id":"s1","voice":{"id":"v1","name":"Nova"},"created":1700000000,"expires":1700086400},
            "timestamp":1700000000}}}`
	server, requests := newTestServer(t, http.StatusOK, body)

	client := NewClient(server.URL, "secret", 5*time.Second)
	project, voices, err := NewProjectRepository(client).GetProject(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", (*requests)[0].Variables["projectId"])
	assert.Equal(t, "Coffee", project.Name)
	assert.Equal(t, "Follow", project.Config.CallToAction.Value)
	require.True(t, project.HasSpeech())
	assert.Equal(t, "s1", project.Speech.ID)
	assert.Equal(t, int64(1700086400), project.Speech.Expires)
	require.Len(t, voices, 1)
	assert.Equal(t, 7.5, voices[0].SampleDuration)
}

func TestGetProjectNotFound(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"data":{"voices":[],"project":null}}`)

	client := NewClient(server.URL, "secret", 5*time.Second)
	_, _, err := NewProjectRepository(client).GetProject(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, CodeBadRequest, CodeOf(err))
}

func TestCreateProjectVariables(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"data":{"createProject":{"id":"p9","topic":"tea","result":"Script"}}}`)

	client := NewClient(server.URL, "secret", 5*time.Second)
	project, err := NewProjectRepository(client).CreateProject(context.Background(), domain.CreateProjectParams{
		Topic:        "tea",
		Hook:         "h1",
		Retention:    "r1",
		CallToAction: "c1",
	})
	require.NoError(t, err)

	assert.Equal(t, "p9", project.ID)
	assert.Equal(t, "Script", project.Script)

	vars := (*requests)[0].Variables
	assert.Equal(t, "tea", vars["topic"])
	assert.Equal(t, map[string]interface{}{"hook": "h1", "retention": "r1", "callToAction": "c1"}, vars["config"])
}

func TestUpdateProjectOmitsUnsetFields(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"data":{"updateProject":{"id":"p1","name":"New"}}}`)

	name := "New"
	client := NewClient(server.URL, "secret", 5*time.Second)
	project, err := NewProjectRepository(client).UpdateProject(context.Background(), "p1", domain.UpdateProjectParams{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "New", project.Name)
	assert.Equal(t, map[string]interface{}{"name": "New"}, (*requests)[0].Variables["params"])
}

func TestGetConfigurations(t *testing.T) {
	body := `{"data":{"configurations":{
        "hooks":[{"id":"h1","value":"Question","description":"Ask"}],
        "retentions":[{"id":"r1","value":"Story"},{"id":"r2","value":"List"}],
        "callToActions":[{"id":"c1","value":"Follow"}]}}}`
	server, _ := newTestServer(t, http.StatusOK, body)

	client := NewClient(server.URL, "secret", 5*time.Second)
	configs, err := NewProjectRepository(client).GetConfigurations(context.Background())
	require.NoError(t, err)

	assert.Len(t, configs.Hooks, 1)
	assert.Equal(t, "Ask", configs.Hooks[0].Description)
	assert.Len(t, configs.Retentions, 2)
	assert.Len(t, configs.CallToActions, 1)
}
