package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"passphrasex/internal/authtoken"
	"passphrasex/internal/domain"
)

// Client talks to a passd server on behalf of one identity.
type Client struct {
	Base   string
	HTTP   *http.Client
	signer domain.Signer
	now    func() time.Time
}

// New returns a Client for base that signs requests with signer.
func New(base string, httpClient *http.Client, signer domain.Signer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Base:   strings.TrimRight(base, "/"),
		HTTP:   httpClient,
		signer: signer,
		now:    time.Now,
	}
}

// Factory returns a domain.TransportFactory producing Clients for base.
func Factory(base string, httpClient *http.Client) domain.TransportFactory {
	return func(s domain.Signer) domain.Transport { return New(base, httpClient, s) }
}

type createUserRequest struct {
	ID domain.Identity `json:"id"`
}

type updateRequest struct {
	Password string `json:"password"`
}

// errorBody is the JSON shape of non-2xx responses.
type errorBody struct {
	Error string `json:"error"`
}

// CreateUser registers id with the remote store.
func (c *Client) CreateUser(ctx context.Context, id domain.Identity) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/users",
		in:       createUserRequest{ID: id},
		conflict: domain.ErrUserAlreadyExists,
	})
}

// CreateCredential uploads an encrypted credential.
func (c *Client) CreateCredential(ctx context.Context, owner domain.Identity, cred domain.Credential) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     credentialsPath(owner),
		in:       cred,
		auth:     true,
		notFound: domain.ErrUserNotFound,
		conflict: domain.ErrCredentialAlreadyExists,
	})
}

// ListCredentials fetches every credential stored for owner.
func (c *Client) ListCredentials(ctx context.Context, owner domain.Identity) ([]domain.Credential, error) {
	var out []domain.Credential
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     credentialsPath(owner),
		out:      &out,
		auth:     true,
		notFound: domain.ErrUserNotFound,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCredential replaces the encrypted password of credential id.
func (c *Client) UpdateCredential(ctx context.Context, owner domain.Identity, id domain.CredentialID, password string) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     credentialsPath(owner) + "/" + url.PathEscape(id.String()),
		in:       updateRequest{Password: password},
		auth:     true,
		notFound: domain.ErrCredentialNotFound,
	})
}

// DeleteCredential removes credential id.
func (c *Client) DeleteCredential(ctx context.Context, owner domain.Identity, id domain.CredentialID) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     credentialsPath(owner) + "/" + url.PathEscape(id.String()),
		auth:     true,
		notFound: domain.ErrCredentialNotFound,
	})
}

func credentialsPath(owner domain.Identity) string {
	return "/users/" + url.PathEscape(owner.String()) + "/credentials"
}

// call describes one request and how its failure statuses map onto domain
// errors.
type call struct {
	method string
	path   string
	in     any
	out    any
	auth   bool

	notFound error
	conflict error
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(cl.in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.Base+cl.path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth {
		token, err := authtoken.Mint(c.signer, c.now())
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", authtoken.Header(token))
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return c.statusError(cl, resp)
	}
	if cl.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
			return fmt.Errorf("%w: decode %s %s: %w", domain.ErrTransport, cl.method, cl.path, err)
		}
	}
	return nil
}

func (c *Client) statusError(cl call, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
	detail := resp.Status
	if eb.Error != "" {
		detail += ": " + eb.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && cl.notFound != nil:
		return cl.notFound
	case resp.StatusCode == http.StatusConflict && cl.conflict != nil:
		return cl.conflict
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w: %s %s", domain.ErrTransport, domain.ErrInvalidCredentials, cl.method, cl.path)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s %s: %s", domain.ErrInvalidInput, cl.method, cl.path, detail)
	default:
		return fmt.Errorf("%w: %s %s: %s", domain.ErrTransport, cl.method, cl.path, detail)
	}
}

var _ domain.Transport = (*Client)(nil)
