// Package registrar implements dns.Syncer against a registrar whois HTTP API.
package registrar

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/Waynenet/whois-sync/internal/dns"
	"github.com/Waynenet/whois-sync/internal/whois"
)

func init() {
	dns.Register("registrar", func(log logr.Logger, settings map[string]string) (dns.Syncer, error) {
		return New(log, settings)
	})
}

// Client implements dns.Syncer for a registrar whois API.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
	log       logr.Logger
}

// New creates a registrar client from the given settings map.
// Required settings: base_url, api_key, api_secret.
// Optional settings: timeout_seconds (default 30), skip_tls_verify (default false).
func New(log logr.Logger, settings map[string]string) (*Client, error) {
	baseURL := settings["base_url"]
	if baseURL == "" {
		return nil, fmt.Errorf("registrar: missing required setting 'base_url'")
	}
	apiKey := settings["api_key"]
	if apiKey == "" {
		return nil, fmt.Errorf("registrar: missing required setting 'api_key'")
	}
	apiSecret := settings["api_secret"]
	if apiSecret == "" {
		return nil, fmt.Errorf("registrar: missing required setting 'api_secret'")
	}

	timeout := 30 * time.Second
	if v := settings["timeout_seconds"]; v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("registrar: invalid timeout_seconds %q: %w", v, err)
		}
		timeout = time.Duration(parsed) * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if v := settings["skip_tls_verify"]; v == "true" {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Transport: transport, Timeout: timeout},
		log:       log,
	}, nil
}

// endpointFor maps a provider-vocabulary operation to its API path. The
// "auto" sentinel (and anything unrecognized) goes to the generic sync
// endpoint, where the registrar decides between registration and update.
func endpointFor(operation string) string {
	switch operation {
	case dns.OperationRegistration:
		return "whois/registration"
	case dns.OperationUpdate:
		return "whois/update"
	case dns.OperationRemove, dns.OperationDelete:
		return "whois/remove"
	default:
		return "whois/sync"
	}
}

// descriptorPayload forwards the original descriptor file content when it
// is available, so fields this tool does not model still reach the API.
func descriptorPayload(d *whois.Descriptor) any {
	if d == nil {
		return nil
	}
	if len(d.Raw) > 0 {
		return json.RawMessage(d.Raw)
	}
	return d
}

// HandleManualSync dispatches a manual sync request to the registrar.
func (c *Client) HandleManualSync(ctx context.Context, req dns.ManualRequest) (dns.Outcome, error) {
	endpoint := endpointFor(req.Options.Operation)
	c.log.Info("dispatching manual sync", "endpoint", endpoint,
		"operation", req.Options.Operation, "triggeredBy", req.Options.TriggeredBy)

	payload := map[string]any{
		"title": req.Title,
		"whois": descriptorPayload(req.Descriptor),
		"options": map[string]any{
			"operation":    req.Options.Operation,
			"force_sync":   req.Options.ForceSync,
			"triggered_by": req.Options.TriggeredBy,
		},
	}
	return c.post(ctx, endpoint, payload)
}

// HandlePRMerge dispatches a PR-merge sync request to the registrar.
func (c *Client) HandlePRMerge(ctx context.Context, req dns.MergeRequest) (dns.Outcome, error) {
	if req.Operation == dns.OperationDelete {
		c.log.Info("dispatching whois removal", "domain", req.Reference.Domain, "sld", req.Reference.SLD)
		payload := map[string]any{
			"title":     req.Title,
			"operation": dns.OperationRemove,
			"domain":    req.Reference.Domain,
			"sld":       req.Reference.SLD,
		}
		if req.OriginalData != nil {
			payload["original_data"] = descriptorPayload(req.OriginalData)
		}
		return c.post(ctx, "whois/remove", payload)
	}

	c.log.Info("dispatching whois sync", "domain", req.Descriptor.Domain, "sld", req.Descriptor.SLD)
	endpoint := endpointFor(req.Descriptor.Operation)
	payload := map[string]any{
		"title": req.Title,
		"whois": descriptorPayload(req.Descriptor),
	}
	return c.post(ctx, endpoint, payload)
}

// syncResponse is the shape returned by the registrar whois endpoints.
type syncResponse struct {
	Result   string `json:"result"`
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, body any) (dns.Outcome, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registrar: %s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	var result syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("registrar: decode %s response: %w", path, err)
	}
	if result.Result != "ok" {
		return nil, fmt.Errorf("registrar: %s unexpected result %q: %s", path, result.Result, result.Message)
	}

	c.log.V(1).Info("registrar call completed", "path", path, "recordID", result.RecordID)
	outcome := dns.Outcome{"record_id": result.RecordID}
	if result.Message != "" {
		outcome["message"] = result.Message
	}
	return outcome, nil
}

// doRequest builds and executes an HTTP request against the registrar API.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("registrar: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("registrar: build request: %w", err)
	}

	req.SetBasicAuth(c.apiKey, c.apiSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registrar: %s %s: %w", method, path, err)
	}
	return resp, nil
}
