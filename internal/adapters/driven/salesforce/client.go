package salesforce

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"

	"github.com/forcearc/forcearc/internal/core/domain"
	"github.com/forcearc/forcearc/internal/core/ports/driven"
)

// apiVersion is the Salesforce REST API version the client speaks.
const apiVersion = "v60.0"

// Ensure Client implements the port.
var _ driven.SalesforceClient = (*Client)(nil)

// Config holds everything needed to reach one Salesforce org.
type Config struct {
	// InstanceURL is the org's API endpoint, e.g.
	// https://mycompany.my.salesforce.com.
	InstanceURL string

	// LoginURL is the token endpoint host, normally
	// https://login.salesforce.com. Also the JWT audience.
	LoginURL string

	// Username is the integration user to impersonate.
	Username string

	// ConsumerKey is the connected app's consumer key (JWT issuer).
	ConsumerKey string

	// PrivateKey is the PEM-encoded RSA key registered with the
	// connected app.
	PrivateKey []byte

	// Timeout bounds every request. Zero selects five minutes,
	// generous enough for large binary bodies.
	Timeout time.Duration
}

// Client is a Salesforce REST API client.
type Client struct {
	http        *resty.Client
	instanceURL string
	tokens      oauth2.TokenSource
}

// NewClient creates a client using the JWT bearer flow for auth.
func NewClient(cfg Config) (*Client, error) {
	if cfg.InstanceURL == "" || cfg.Username == "" || cfg.ConsumerKey == "" || len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("%w: incomplete salesforce auth config", domain.ErrInvalidConfig)
	}
	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = "https://login.salesforce.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	grant := &jwt.Config{
		Email:      cfg.ConsumerKey,
		Subject:    cfg.Username,
		PrivateKey: cfg.PrivateKey,
		Audience:   loginURL,
		TokenURL:   strings.TrimRight(loginURL, "/") + "/services/oauth2/token",
		Expires:    3 * time.Minute,
	}
	tokens := oauth2.ReuseTokenSource(nil, grant.TokenSource(context.Background()))

	client := &Client{
		instanceURL: strings.TrimRight(cfg.InstanceURL, "/"),
		tokens:      tokens,
	}
	client.http = resty.New().
		SetBaseURL(client.instanceURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			return r.StatusCode() == 429 || (r.StatusCode() >= 500 && r.StatusCode() <= 504)
		}).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			token, err := tokens.Token()
			if err != nil {
				return fmt.Errorf("acquire access token: %w", err)
			}
			req.SetAuthToken(token.AccessToken)
			return nil
		})

	return client, nil
}

// queryResponse is one page of SOQL query results.
type queryResponse struct {
	TotalSize      int              `json:"totalSize"`
	Done           bool             `json:"done"`
	NextRecordsURL string           `json:"nextRecordsUrl"`
	Records        []map[string]any `json:"records"`
}

// query runs a SOQL query and returns all records across pages.
func (c *Client) query(ctx context.Context, soql string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("/services/data/%s/query?q=%s", apiVersion, url.QueryEscape(soql))
	var records []map[string]any
	for endpoint != "" {
		var page queryResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&page).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("query failed: %s: %s", resp.Status(), resp.String())
		}
		records = append(records, page.Records...)
		if page.Done {
			break
		}
		endpoint = page.NextRecordsURL
	}
	return records, nil
}

// QueryLinks implements driven.SalesforceClient.
func (c *Client) QueryLinks(ctx context.Context, obj domain.ArchiveObject) ([]domain.DocumentLink, error) {
	records, err := c.query(ctx, linkQuery(obj))
	if err != nil {
		return nil, err
	}
	links := make([]domain.DocumentLink, 0, len(records))
	for _, rec := range records {
		link := domain.DocumentLink{
			LinkedEntityID:    stringField(rec, "LinkedEntityId"),
			ContentDocumentID: stringField(rec, "ContentDocumentId"),
		}
		if obj.DirNameField != "" {
			link.DirName = stringField(rec, obj.DirNameField)
		}
		links = append(links, link)
	}
	return links, nil
}

// QueryVersions implements driven.SalesforceClient.
func (c *Client) QueryVersions(ctx context.Context, documentIDs []string) ([]domain.ContentVersion, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	records, err := c.query(ctx, versionQuery(documentIDs))
	if err != nil {
		return nil, err
	}
	versions := make([]domain.ContentVersion, 0, len(records))
	for _, rec := range records {
		versions = append(versions, domain.ContentVersion{
			VersionID:       stringField(rec, "Id"),
			DocumentID:      stringField(rec, "ContentDocumentId"),
			VersionChecksum: stringField(rec, "Checksum"),
			Title:           stringField(rec, "Title"),
			Extension:       stringField(rec, "FileExtension"),
			VersionNumber:   intField(rec, "VersionNumber"),
			ContentSize:     int64Field(rec, "ContentSize"),
		})
	}
	return versions, nil
}

// QueryAttachments implements driven.SalesforceClient.
func (c *Client) QueryAttachments(ctx context.Context, obj domain.ArchiveObject) ([]domain.Attachment, error) {
	records, err := c.query(ctx, attachmentQuery(obj))
	if err != nil {
		return nil, err
	}
	attachments := make([]domain.Attachment, 0, len(records))
	for _, rec := range records {
		attachments = append(attachments, domain.Attachment{
			AttachmentID: stringField(rec, "Id"),
			ParentID:     stringField(rec, "ParentId"),
			Name:         stringField(rec, "Name"),
			ContentSize:  int64Field(rec, "BodyLength"),
		})
	}
	return attachments, nil
}

// FetchFile implements driven.SalesforceClient. The response body is
// streamed, not buffered; the caller must close it.
func (c *Client) FetchFile(ctx context.Context, artifact domain.Artifact) (io.ReadCloser, error) {
	var endpoint string
	switch artifact.Kind() {
	case domain.KindAttachment:
		endpoint = fmt.Sprintf("/services/data/%s/sobjects/Attachment/%s/Body", apiVersion, artifact.ID())
	default:
		endpoint = fmt.Sprintf("/services/data/%s/sobjects/ContentVersion/%s/VersionData", apiVersion, artifact.ID())
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(endpoint)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	if !resp.IsSuccess() {
		body.Close()
		return nil, fmt.Errorf("fetch failed: %s", resp.Status())
	}
	return body, nil
}

// limitsResponse is the slice of the limits endpoint we care about.
type limitsResponse struct {
	DailyAPIRequests struct {
		Max       int `json:"Max"`
		Remaining int `json:"Remaining"`
	} `json:"DailyApiRequests"`
}

// APIUsage implements driven.SalesforceClient and services.UsageSource.
func (c *Client) APIUsage(ctx context.Context) (domain.APIUsage, error) {
	var limits limitsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&limits).
		Get(fmt.Sprintf("/services/data/%s/limits", apiVersion))
	if err != nil {
		return domain.APIUsage{}, err
	}
	if !resp.IsSuccess() {
		return domain.APIUsage{}, fmt.Errorf("limits failed: %s", resp.Status())
	}
	return domain.APIUsage{
		Used:  limits.DailyAPIRequests.Max - limits.DailyAPIRequests.Remaining,
		Total: limits.DailyAPIRequests.Max,
	}, nil
}
