package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/playscore/playscore-backend/internal/config"
)

// CatalogService talks to the third-party game-catalog API that backs
// the browse/import features.
type CatalogService struct {
	config *config.Config
	client *http.Client
}

type CatalogGame struct {
	ExternalID  string `json:"external_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Developer   string `json:"developer"`
	ReleaseDate string `json:"release_date"`
	CoverURL    string `json:"cover_url"`
}

type catalogSearchResponse struct {
	Results []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Released string `json:"released"`
		Image    string `json:"background_image"`
		Genres   []struct {
			Name string `json:"name"`
		} `json:"genres"`
	} `json:"results"`
}

type catalogGameResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description_raw"`
	Released    string `json:"released"`
	Image       string `json:"background_image"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Developers []struct {
		Name string `json:"name"`
	} `json:"developers"`
}

func NewCatalogService(config *config.Config) *CatalogService {
	return &CatalogService{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *CatalogService) SearchGames(query string, page int) ([]CatalogGame, error) {
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/games?key=%s&search=%s&page=%d",
		s.config.CatalogAPIURL, s.config.CatalogAPIKey, url.QueryEscape(query), page)

	resp, err := s.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var searchResp catalogSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %v", err)
	}

	games := make([]CatalogGame, 0, len(searchResp.Results))
	for _, result := range searchResp.Results {
		game := CatalogGame{
			ExternalID:  strconv.Itoa(result.ID),
			Title:       result.Name,
			ReleaseDate: result.Released,
			CoverURL:    result.Image,
		}
		if len(result.Genres) > 0 {
			game.Genre = result.Genres[0].Name
		}
		games = append(games, game)
	}

	return games, nil
}

func (s *CatalogService) GetGame(externalID string) (*CatalogGame, error) {
	endpoint := fmt.Sprintf("%s/games/%s?key=%s",
		s.config.CatalogAPIURL, url.PathEscape(externalID), s.config.CatalogAPIKey)

	resp, err := s.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("game %s not found in catalog", externalID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var gameResp catalogGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&gameResp); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %v", err)
	}

	game := &CatalogGame{
		ExternalID:  strconv.Itoa(gameResp.ID),
		Title:       gameResp.Name,
		Description: gameResp.Description,
		ReleaseDate: gameResp.Released,
		CoverURL:    gameResp.Image,
	}
	if len(gameResp.Genres) > 0 {
		game.Genre = gameResp.Genres[0].Name
	}
	if len(gameResp.Developers) > 0 {
		game.Developer = gameResp.Developers[0].Name
	}

	return game, nil
}
