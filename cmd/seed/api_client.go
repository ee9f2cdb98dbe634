package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

type TaskSummary struct {
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Priority int    `json:"priority"`
}

func (c *APIClient) Register(username, email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}

	var resp AuthResponse
	if err := c.post("/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) Login(usernameOrEmail, password string) (*AuthResponse, error) {
	body := map[string]string{
		"usernameOrEmail": usernameOrEmail,
		"password":        password,
	}

	var resp AuthResponse
	if err := c.post("/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) CreateTask(token, title, description string, dueDate *time.Time, status, priority int) (*TaskSummary, error) {
	body := map[string]any{
		"title":       title,
		"description": description,
		"status":      status,
		"priority":    priority,
	}
	if dueDate != nil {
		body["dueDate"] = dueDate.Format(time.RFC3339)
	}

	var resp TaskSummary
	if err := c.post("/tasks/", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) post(path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %s: %s", path, resp.Status, bytes.TrimSpace(msg))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
