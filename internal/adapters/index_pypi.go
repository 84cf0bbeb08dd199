package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtool/internal/ports"
	"reqtool/internal/shared"
	"reqtool/internal/types"
)

// PyPIIndexAdapter queries the JSON API of a PyPI-compatible index
// (GET {base}/pypi/{name}/json) for available versions.
type PyPIIndexAdapter struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	client     *http.Client
}

const defaultPyPIBaseURL = "https://pypi.org"
const defaultPyPITimeout = 30 * time.Second
const defaultPyPIRetries = 3
const defaultPyPIRetryDelay = 200 * time.Millisecond
const maxPyPIRetryDelay = 2 * time.Second

func NewPyPIIndexAdapter(baseURL string, timeoutSec int, retries int, retryDelayMs int) *PyPIIndexAdapter {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultPyPIBaseURL
	}
	timeout := defaultPyPITimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	if retries <= 0 {
		retries = defaultPyPIRetries
	}
	retryDelay := defaultPyPIRetryDelay
	if retryDelayMs > 0 {
		retryDelay = time.Duration(retryDelayMs) * time.Millisecond
	}
	return &PyPIIndexAdapter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		Retries:    retries,
		RetryDelay: retryDelay,
		client:     &http.Client{Timeout: timeout},
	}
}

type pypiProjectResponse struct {
	Releases map[string][]json.RawMessage `json:"releases"`
}

func (a *PyPIIndexAdapter) AvailableVersions(ctx context.Context, depType types.DependencyType, name string) ([]string, error) {
	if depType != types.DependencyTypePip {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pypi index only serves pip dependencies")
	}
	normalized := shared.NormalizePipName(name)
	endpoint := fmt.Sprintf("%s/pypi/%s/json", a.BaseURL, url.PathEscape(normalized))

	var lastErr error
	delay := a.RetryDelay
	for attempt := 0; attempt <= a.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxPyPIRetryDelay {
				delay = maxPyPIRetryDelay
			}
		}
		versions, retryable, err := a.fetch(ctx, endpoint, normalized)
		if err == nil {
			return versions, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

// fetch performs one request. The second return value reports whether
// the failure is worth retrying (network errors and 5xx responses).
func (a *PyPIIndexAdapter) fetch(ctx context.Context, endpoint string, name string) ([]string, bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build pypi request").
			WithCause(err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := a.client.Do(request)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("pypi request failed for %s", name)).
			WithCause(err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", name)).
			WithCause(shared.HTTPStatusError(response.StatusCode, endpoint))
	case response.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("pypi index error for %s", name)).
			WithCause(shared.HTTPStatusErrorWithBody(response.StatusCode, endpoint, string(body)))
	case response.StatusCode != http.StatusOK:
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unexpected pypi response for %s", name)).
			WithCause(shared.HTTPStatusError(response.StatusCode, endpoint))
	}

	var project pypiProjectResponse
	if err := json.NewDecoder(response.Body).Decode(&project); err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("invalid pypi response for %s", name)).
			WithCause(err)
	}
	versions := make([]string, 0, len(project.Releases))
	for version, files := range project.Releases {
		// Versions with no release files were yanked or never uploaded.
		if len(files) == 0 {
			continue
		}
		versions = append(versions, version)
	}
	return versions, false, nil
}

var _ ports.VersionSourcePort = (*PyPIIndexAdapter)(nil)
