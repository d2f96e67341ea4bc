package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/zenskecarape/storefront-api/pkg/config"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

// Client reads catalog documents from the hosted content platform over its
// GROQ query endpoint.
type Client struct {
	baseURL string
	token   string
	project string
	dataset string
	httpc   *http.Client
	logg    *logger.Logger
}

// New builds a CMS client from configuration.
func New(cfg config.CMSConfig, logg *logger.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("cms project id is required")
	}
	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	base := fmt.Sprintf("https://%s.%s/v%s/data/query/%s", cfg.ProjectID, host, cfg.APIVersion, cfg.Dataset)
	return &Client{
		baseURL: base,
		token:   cfg.Token,
		project: cfg.ProjectID,
		dataset: cfg.Dataset,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
	}, nil
}

// query runs a GROQ query and decodes the result payload into dest.
func (c *Client) query(ctx context.Context, groq string, params map[string]string, dest any) error {
	values := url.Values{}
	values.Set("query", groq)
	for k, v := range params {
		// GROQ parameters arrive as JSON-encoded query values ($slug etc).
		encoded, err := json.Marshal(v)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding query param")
		}
		values.Set("$"+k, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building cms request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "querying content platform")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return pkgerrors.New(pkgerrors.CodeDependency, "content platform query failed").
			WithDetails(map[string]any{"status": resp.StatusCode, "body": string(body)})
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding cms response")
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding cms documents")
	}
	return nil
}

// Ping verifies the content platform answers queries. Used by the
// readiness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var count int
	err := c.query(ctx, `count(*[_type == "product"])`, nil, &count)
	if err != nil {
		if ae := pkgerrors.As(err); ae != nil && ae.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}
	return nil
}

// imageBaseURL is where the platform serves image assets from.
func (c *Client) imageBaseURL() string {
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s", c.project, c.dataset)
}
