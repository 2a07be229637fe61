// Package pokeapi is a thin read-only client for the PokeAPI REST service.
// It fetches and flattens just the fields the battle engine needs and
// reports missing resources as ErrNotFound so callers can turn them into
// 404s of their own.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrNotFound marks a resource PokeAPI itself reported as missing, as
// opposed to a transport or decoding failure.
var ErrNotFound = errors.New("pokeapi: resource not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "pokeapi").Logger(),
	}
}

// NormalizeName maps user input onto PokeAPI's resource naming: lowercase
// with hyphens, so "Thunder Wave" and "thunder-wave" hit the same endpoint.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// fetchResource performs one GET and decodes the body into T.
func fetchResource[T any](ctx context.Context, c *Client, url string) (T, error) {
	var decoded T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decoded, err
	}

	start := time.Now()
	response, err := c.httpClient.Do(req)
	if err != nil {
		return decoded, fmt.Errorf("pokeapi request failed: %w", err)
	}
	defer response.Body.Close()

	c.logger.Debug().
		Str("url", url).
		Int("status", response.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("pokeapi request")

	if response.StatusCode == http.StatusNotFound {
		return decoded, ErrNotFound
	}
	if response.StatusCode != http.StatusOK {
		return decoded, fmt.Errorf("pokeapi returned status %d for %s", response.StatusCode, url)
	}

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return decoded, err
	}

	if err := json.Unmarshal(bytes, &decoded); err != nil {
		return decoded, fmt.Errorf("pokeapi response did not decode: %w", err)
	}

	return decoded, nil
}

// GetPokemon fetches one species by name or numeric id.
func (c *Client) GetPokemon(ctx context.Context, name string) (Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, NormalizeName(name))

	response, err := fetchResource[pokemonResponse](ctx, c, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pokemon{}, fmt.Errorf("pokemon %q: %w", name, ErrNotFound)
		}
		return Pokemon{}, err
	}

	return response.flatten(), nil
}

// GetMove fetches one move by name or numeric id.
func (c *Client) GetMove(ctx context.Context, name string) (MoveData, error) {
	url := fmt.Sprintf("%s/move/%s", c.baseURL, NormalizeName(name))

	response, err := fetchResource[moveResponse](ctx, c, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return MoveData{}, fmt.Errorf("move %q: %w", name, ErrNotFound)
		}
		return MoveData{}, err
	}

	return response.flatten(), nil
}

// ListPokemon pages through the species index. PokeAPI caps page sizes
// server-side, so limit passes through untouched.
func (c *Client) ListPokemon(ctx context.Context, limit int, offset int) ([]string, error) {
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)

	response, err := fetchResource[listResponse](ctx, c, url)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(response.Results))
	for _, result := range response.Results {
		names = append(names, result.Name)
	}

	return names, nil
}
