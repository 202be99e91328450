// Package httpclient implements the marketplace client over the HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rentloop/rentloop/internal/model"
	"github.com/rentloop/rentloop/internal/session"
)

// UserAgent is sent with every request.
const UserAgent = "rentloop-client/1.0"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Client talks to a marketplace API server.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// New creates a Client for baseURL. A nil httpClient uses NewHTTPClient.
func New(baseURL string, httpClient *http.Client, sessions *session.Store) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     httpClient,
		sessions: sessions,
	}
}

// errorBody is the JSON error shape returned by the API.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.sessions.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into a *model.TransportError.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	return model.NewTransportError(resp.StatusCode, eb.Code, eb.Message)
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, model.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, &resp); err != nil {
		return nil, err
	}
	return resp.Session(), nil
}

// Logout clears the persisted session. The server keeps no session state.
func (c *Client) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}

// CurrentUserID reports the logged-in user, if any.
func (c *Client) CurrentUserID(ctx context.Context) (int64, bool, error) {
	return c.sessions.CurrentUserID(ctx)
}

// ListItems implements client.Client.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAvailableItems implements client.Client.
func (c *Client) ListAvailableItems(ctx context.Context) ([]model.ItemWithOwner, error) {
	var out []model.ItemWithOwner
	if err := c.do(ctx, http.MethodGet, "/api/items/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchQuery encodes params as query string values.
func SearchQuery(params model.SearchParams) url.Values {
	q := url.Values{}
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if params.CategoryID != nil {
		q.Set("category_id", strconv.FormatInt(*params.CategoryID, 10))
	}
	if params.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*params.MinPrice, 'f', -1, 64))
	}
	if params.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*params.MaxPrice, 'f', -1, 64))
	}
	if params.Available != nil {
		q.Set("available", strconv.FormatBool(*params.Available))
	}
	return q
}

// SearchItems implements client.Client.
func (c *Client) SearchItems(ctx context.Context, params model.SearchParams) ([]model.ItemWithOwner, error) {
	var out []model.ItemWithOwner
	if err := c.do(ctx, http.MethodGet, "/api/items/search", SearchQuery(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem implements client.Client.
func (c *Client) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var out model.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyItems implements client.Client.
func (c *Client) ListMyItems(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	if err := c.do(ctx, http.MethodGet, "/api/items/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateItem implements client.Client.
func (c *Client) CreateItem(ctx context.Context, input model.ItemInput) (*model.Item, error) {
	var out model.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem implements client.Client.
func (c *Client) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	var out model.Item
	if err := c.do(ctx, http.MethodPut, itemPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem implements client.Client.
func (c *Client) DeleteItem(ctx context.Context, id int64) (*model.MessageResponse, error) {
	var out model.MessageResponse
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRentalRequest implements client.Client.
func (c *Client) CreateRentalRequest(ctx context.Context, input model.RentalInput) (*model.RentalRequest, error) {
	var out model.RentalRequest
	if err := c.do(ctx, http.MethodPost, "/api/rentals", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyRentals implements client.Client.
func (c *Client) ListMyRentals(ctx context.Context) ([]model.RentalWithDetails, error) {
	var out []model.RentalWithDetails
	if err := c.do(ctx, http.MethodGet, "/api/rentals/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories implements client.Client.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers implements client.Client.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser implements client.Client.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/api/user/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func itemPath(id int64) string {
	return "/api/items/" + strconv.FormatInt(id, 10)
}
