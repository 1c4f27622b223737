package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cityair/pollution-proxy/pkg/auth"
)

// LoginResponse is the credential pair returned by the auth endpoints.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Meta carries upstream pagination info.
type Meta struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// RawCity is a single unvalidated upstream entry. Names may be corrupted
// (placeholder or sensor names, embedded digits).
type RawCity struct {
	Name      string  `json:"name"`
	Pollution float64 `json:"pollution"`
}

// PollutionPage is one raw page of the pollution listing.
type PollutionPage struct {
	Meta    Meta      `json:"meta"`
	Results []RawCity `json:"results"`
}

// Login exchanges the configured username/password for a credential pair.
func (c *Client) Login(ctx context.Context) (auth.Credentials, error) {
	var resp LoginResponse
	err := c.PostJSON(ctx, c.config.BaseURL+"/auth/login", map[string]string{
		"username": c.config.Username,
		"password": c.config.Password,
	}, &resp)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("login: %w", err)
	}

	return auth.Credentials{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new credential pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Credentials, error) {
	var resp LoginResponse
	err := c.PostJSON(ctx, c.config.BaseURL+"/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &resp)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("refresh: %w", err)
	}

	return auth.Credentials{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// FetchPollution retrieves one page of the pollution listing with bearer
// authentication.
func (c *Client) FetchPollution(ctx context.Context, accessToken, country string, page, limit int) (*PollutionPage, error) {
	params := url.Values{
		"country": []string{country},
		"page":    []string{strconv.Itoa(page)},
		"limit":   []string{strconv.Itoa(limit)},
	}

	var result PollutionPage
	if err := c.GetJSON(ctx, c.config.BaseURL+"/pollution?"+params.Encode(), accessToken, &result); err != nil {
		return nil, fmt.Errorf("fetch pollution page: %w", err)
	}

	return &result, nil
}
