package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fitness-planner/internal/plan"
)

const DefaultGitHubAPI = "https://api.github.com"

// GitHubStore keeps the plan as <Key>.json in a repository the user owns,
// through the GitHub contents API.
type GitHubStore struct {
	apiURL     string
	repo       string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGitHubStore(apiURL, repo, token string, logger *zap.Logger) (*GitHubStore, error) {
	if token == "" {
		return nil, errors.New("store: github token is required")
	}
	if strings.Count(repo, "/") != 1 {
		return nil, fmt.Errorf("store: github repo must be owner/name, got %q", repo)
	}
	if apiURL == "" {
		apiURL = DefaultGitHubAPI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHubStore{
		apiURL:     strings.TrimRight(apiURL, "/"),
		repo:       repo,
		token:      token,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

type contentsFile struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (s *GitHubStore) path() string { return Key + ".json" }

func (s *GitHubStore) url() string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", s.apiURL, s.repo, s.path())
}

func (s *GitHubStore) do(ctx context.Context, method string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.url(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.logger.Debug("github api request", zap.String("method", method), zap.String("url", req.URL.String()))
	return s.httpClient.Do(req)
}

// fetch returns the stored file, or nil when it does not exist.
func (s *GitHubStore) fetch(ctx context.Context) (*contentsFile, error) {
	resp, err := s.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("store: github get: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("store: github get: status %d", resp.StatusCode)
	}

	var f contentsFile
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("store: github get: decode: %w", err)
	}
	return &f, nil
}

func (s *GitHubStore) Get(ctx context.Context) (*plan.FitnessPlan, error) {
	f, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNoPlan
	}
	if f.Encoding != "" && f.Encoding != "base64" {
		return nil, fmt.Errorf("store: github get: unsupported encoding %q", f.Encoding)
	}
	// The API wraps base64 content at 60 columns.
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(f.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("store: github get: %w", err)
	}
	return decode(data)
}

func (s *GitHubStore) Set(ctx context.Context, p *plan.FitnessPlan) error {
	data, err := encode(p)
	if err != nil {
		return fmt.Errorf("store: set: %w", err)
	}
	existing, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Update %s", s.path()),
		"content": base64.StdEncoding.EncodeToString(data),
	}
	if existing != nil {
		payload["sha"] = existing.SHA
	}

	resp, err := s.do(ctx, http.MethodPut, payload)
	if err != nil {
		return fmt.Errorf("store: github put: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("store: github put: status %d", resp.StatusCode)
	}
	s.logger.Info("updated github plan", zap.String("repo", s.repo), zap.String("path", s.path()))
	return nil
}

func (s *GitHubStore) Clear(ctx context.Context) error {
	existing, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	resp, err := s.do(ctx, http.MethodDelete, map[string]any{
		"message": fmt.Sprintf("Remove %s", s.path()),
		"sha":     existing.SHA,
	})
	if err != nil {
		return fmt.Errorf("store: github delete: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store: github delete: status %d", resp.StatusCode)
	}
	s.logger.Info("removed github plan", zap.String("repo", s.repo), zap.String("path", s.path()))
	return nil
}
