package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
)

// HubPublisher pushes datasets to a Hugging Face compatible hub over its
// HTTP API.
type HubPublisher struct {
	endpoint   string
	token      string
	private    bool
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHubPublisher(endpoint, token string, private bool, logger *zap.Logger) *HubPublisher {
	return &HubPublisher{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		token:      token,
		private:    private,
		httpClient: &http.Client{Timeout: 10 * time.Minute},
		logger:     logger,
	}
}

type whoami struct {
	Name string `json:"name"`
}

type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Private      bool   `json:"private"`
}

type commitLine struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

type commitHeader struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type commitFile struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

// Publish authenticates, makes sure the repository exists and uploads all
// artifacts as a single commit.
func (p *HubPublisher) Publish(ctx context.Context, repo model.RemoteDatasetRepo, artifacts []Artifact) error {
	user, err := p.whoami(ctx)
	if err != nil {
		return err
	}
	p.logger.Info("authenticated with dataset hub", zap.String("user", user), zap.String("endpoint", p.endpoint))

	if err := p.createRepo(ctx, repo, user); err != nil {
		return err
	}

	body, err := commitBody(fmt.Sprintf("Upload %d files", len(artifacts)), artifacts)
	if err != nil {
		return errors.Publish(err, "failed to encode commit for %s", repo)
	}

	url := fmt.Sprintf("%s/api/datasets/%s/%s/commit/main", p.endpoint, repo.Owner, repo.Name)
	resp, err := p.do(ctx, http.MethodPost, url, "application/x-ndjson", body)
	if err != nil {
		return errors.Publish(err, "upload to %s failed", repo)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.Publish(statusError(resp), "upload to %s rejected", repo)
	}

	p.logger.Info("dataset pushed", zap.String("repo", repo.String()), zap.Int("files", len(artifacts)))
	return nil
}

func (p *HubPublisher) whoami(ctx context.Context) (string, error) {
	resp, err := p.do(ctx, http.MethodGet, p.endpoint+"/api/whoami-v2", "", nil)
	if err != nil {
		return "", errors.Publish(err, "cannot reach %s", p.endpoint)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errors.Publish(statusError(resp), "authentication rejected")
	case resp.StatusCode/100 != 2:
		return "", errors.Publish(statusError(resp), "authentication check failed")
	}

	var who whoami
	if err := json.NewDecoder(resp.Body).Decode(&who); err != nil {
		return "", errors.Publish(err, "unreadable authentication response")
	}
	return who.Name, nil
}

func (p *HubPublisher) createRepo(ctx context.Context, repo model.RemoteDatasetRepo, user string) error {
	req := createRepoRequest{Type: "dataset", Name: repo.Name, Private: p.private}
	if repo.Owner != user {
		req.Organization = repo.Owner
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Publish(err, "failed to encode repository request")
	}

	resp, err := p.do(ctx, http.MethodPost, p.endpoint+"/api/repos/create", "application/json", payload)
	if err != nil {
		return errors.Publish(err, "cannot create %s", repo)
	}
	defer resp.Body.Close()

	// 409 means the repository already exists.
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode/100 != 2 {
		return errors.Publish(statusError(resp), "cannot create %s", repo)
	}
	p.logger.Info("created dataset repository", zap.String("repo", repo.String()))
	return nil
}

func (p *HubPublisher) do(ctx context.Context, method, url, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return p.httpClient.Do(req)
}

// commitBody encodes a header line followed by one line per file.
func commitBody(summary string, artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(commitLine{Key: "header", Value: commitHeader{Summary: summary}}); err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		line := commitLine{Key: "file", Value: commitFile{
			Content:  base64.StdEncoding.EncodeToString(a.Content),
			Path:     a.Path,
			Encoding: "base64",
		}}
		if err := enc.Encode(line); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
}
