package cdm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"k8s.io/klog/v2"
)

const (
	// DefaultTimeout bounds read requests and snapshot calls.
	DefaultTimeout = 15 * time.Second

	// CreateTimeout bounds the managed volume create request.
	CreateTimeout = 60 * time.Second

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 4096

	userAgent = "mvctl"
)

// Options configures a Client.
type Options struct {
	// Host is the cluster node address (IP or hostname). Required.
	Host string

	// Auth is the credential mode. Required.
	Auth Auth

	// VerifySSL enables TLS certificate verification. Clusters usually
	// present a self-signed certificate, so it is off unless requested.
	VerifySSL bool

	// BaseURL overrides "https://<Host>". Used by tests.
	BaseURL string

	// HTTPClient overrides the pooled default client.
	HTTPClient *http.Client
}

// Client talks to the CDM REST API of one cluster.
type Client struct {
	host       string
	baseURL    string
	auth       Auth
	httpClient *http.Client
}

// NewClient builds a Client. It does not contact the cluster; use
// ClusterInfo to verify connectivity.
func NewClient(opts Options) (*Client, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("cluster host is required")
	}
	if opts.Auth == nil {
		return nil, fmt.Errorf("cluster credentials are required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://" + opts.Host
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport := cleanhttp.DefaultPooledTransport()
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: !opts.VerifySSL, //nolint:gosec // self-signed cluster certificates
		}
		httpClient = &http.Client{Transport: transport}
	}

	return &Client{
		host:       opts.Host,
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       opts.Auth,
		httpClient: httpClient,
	}, nil
}

// Host returns the cluster address the client was built with.
func (c *Client) Host() string {
	return c.host
}

// Auth returns the credential mode the client was built with.
func (c *Client) Auth() Auth {
	return c.auth
}

// CreateManagedVolume submits a create request. The returned descriptor is
// the server's immediate answer and is usually not exported yet.
func (c *Client) CreateManagedVolume(ctx context.Context, req CreateManagedVolumeRequest) (*ManagedVolume, error) {
	var vol ManagedVolume
	if err := c.do(ctx, http.MethodPost, "internal", "/managed_volume", req, CreateTimeout, &vol); err != nil {
		return nil, err
	}
	return &vol, nil
}

// ListManagedVolumes lists managed volumes. A non-empty name is passed to
// the server as a filter; the server matches on substrings.
func (c *Client) ListManagedVolumes(ctx context.Context, name string) ([]ManagedVolume, error) {
	path := "/managed_volume"
	if name != "" {
		path += "?" + url.Values{"name": {name}}.Encode()
	}

	var list managedVolumeList
	if err := c.do(ctx, http.MethodGet, "internal", path, nil, DefaultTimeout, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// ManagedVolumeID resolves a managed volume name to its id. Only an exact
// name match counts.
func (c *Client) ManagedVolumeID(ctx context.Context, name string) (string, error) {
	vols, err := c.ListManagedVolumes(ctx, name)
	if err != nil {
		return "", err
	}

	var ids []string
	for _, v := range vols {
		if v.Name == name {
			ids = append(ids, v.ID)
		}
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d volumes", ErrAmbiguousName, name, len(ids))
	}
}

// GetManagedVolume fetches and validates the descriptor for id.
func (c *Client) GetManagedVolume(ctx context.Context, id string) (*ManagedVolume, error) {
	var vol ManagedVolume
	if err := c.do(ctx, http.MethodGet, "internal", "/managed_volume/"+url.PathEscape(id), nil, DefaultTimeout, &vol); err != nil {
		return nil, err
	}
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	return &vol, nil
}

// BeginSnapshot opens a snapshot window on the managed volume.
func (c *Client) BeginSnapshot(ctx context.Context, id string) (*SnapshotBegin, error) {
	var out SnapshotBegin
	if err := c.do(ctx, http.MethodPost, "internal", SnapshotPath(id, "begin"), nil, DefaultTimeout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EndSnapshot closes the snapshot window and returns the resulting snapshot.
func (c *Client) EndSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	var out Snapshot
	if err := c.do(ctx, http.MethodPost, "internal", SnapshotPath(id, "end"), nil, DefaultTimeout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClusterInfo returns the identity of the cluster. It is the cheapest
// authenticated call and doubles as a connectivity check.
func (c *Client) ClusterInfo(ctx context.Context) (*ClusterInfo, error) {
	var info ClusterInfo
	if err := c.do(ctx, http.MethodGet, "v1", "/cluster/me", nil, DefaultTimeout, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SnapshotPath returns the internal API path of the begin or end snapshot
// endpoint for a managed volume.
func SnapshotPath(id, action string) string {
	return fmt.Sprintf("/managed_volume/%s/%s_snapshot", url.PathEscape(id), action)
}

// do performs one request against /api/<version><path>. A nil body sends no
// payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, version, path string, body any, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/api/" + version + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", AuthorizationHeader(c.auth))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	klog.V(4).Infof("%s %s (request id %s)", method, endpoint, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	klog.V(4).Infof("%s %s -> %d (request id %s)", method, endpoint, resp.StatusCode, requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, "/api/"+version+path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	return nil
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	return apiErr
}
