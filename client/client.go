// Package client is a typed Go client for the pet-adoption API. It
// keeps the session token obtained at register/login and attaches it as
// a bearer header to every subsequent call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	OwnerID     string    `json:"owner_id"`
	Owner       *User     `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PetForm carries the multipart fields for create/update. Empty fields
// are left out of the form, which the server reads as "keep the stored
// value" on update. Image is optional; ImageName names the uploaded
// file so the server can keep its extension.
type PetForm struct {
	Name        string
	Type        string
	Breed       string
	Age         *int
	Location    string
	Description string
	Image       io.Reader
	ImageName   string
}

type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string { return c.token }

// SetToken resumes an existing session.
func (c *Client) SetToken(token string) { c.token = token }

// Logout drops the session token.
func (c *Client) Logout() { c.token = "" }

// Register creates an account and starts a session with the returned
// token.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	var res AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", body, &res); err != nil {
		return AuthResponse{}, err
	}
	c.token = res.Token
	return res, nil
}

// Login authenticates and starts a session with the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var res AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return AuthResponse{}, err
	}
	c.token = res.Token
	return res, nil
}

// Me returns the authenticated user's public profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var res User
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &res)
	return res, err
}

// AllPets returns every listing, owners included.
func (c *Client) AllPets(ctx context.Context) ([]Pet, error) {
	var res []Pet
	err := c.doJSON(ctx, http.MethodGet, "/api/pets", nil, &res)
	return res, err
}

// MyPets returns the session user's listings.
func (c *Client) MyPets(ctx context.Context) ([]Pet, error) {
	var res []Pet
	err := c.doJSON(ctx, http.MethodGet, "/api/pets/my", nil, &res)
	return res, err
}

// Pet returns a single listing by id.
func (c *Client) Pet(ctx context.Context, id string) (Pet, error) {
	var res Pet
	err := c.doJSON(ctx, http.MethodGet, "/api/pets/"+id, nil, &res)
	return res, err
}

// CreatePet submits a new listing as a multipart form.
func (c *Client) CreatePet(ctx context.Context, form PetForm) (Pet, error) {
	var res Pet
	err := c.doMultipart(ctx, http.MethodPost, "/api/pets", form, &res)
	return res, err
}

// UpdatePet submits a partial update; only non-empty form fields change
// the stored listing.
func (c *Client) UpdatePet(ctx context.Context, id string, form PetForm) (Pet, error) {
	var res Pet
	err := c.doMultipart(ctx, http.MethodPut, "/api/pets/"+id, form, &res)
	return res, err
}

// DeletePet removes a listing the session user owns.
func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/pets/"+id, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, form PetForm, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"type":        form.Type,
		"breed":       form.Breed,
		"location":    form.Location,
		"description": form.Description,
	}
	if form.Age != nil {
		fields["age"] = strconv.Itoa(*form.Age)
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}

	if form.Image != nil {
		name := form.ImageName
		if name == "" {
			name = "image"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
