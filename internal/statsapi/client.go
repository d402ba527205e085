// Package statsapi provides a client for the public MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radgator13/mlb-nrfi-predictor/internal/metrics"
	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
)

// DefaultBaseURL is the public MLB Stats API root
const DefaultBaseURL = "https://statsapi.mlb.com"

// placeholderName is substituted when a probable pitcher has no name
const placeholderName = "N/A"

// Logical endpoint names used for cache keys, error codes and metrics labels
const (
	endpointSchedule = "schedule"
	endpointLiveFeed = "live_feed"
	endpointStats    = "stats"
	endpointRoster   = "roster"
)

// Client fetches schedule, probable pitcher, career stats and roster data.
// Schedule, stats and roster responses are memoized through the response
// cache; the live feed is fetched fresh on every call since probable pitchers
// can change up to game time.
type Client struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	cache      *ResponseCache
	logger     *logrus.Logger
}

// NewClient creates a new stats API client
func NewClient(httpClient *RateLimitedHTTPClient, baseURL string, cache *ResponseCache, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cache:      cache,
		logger:     logger,
	}
}

// scheduleResponse mirrors the schedule endpoint payload
type scheduleResponse struct {
	Dates []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePk int `json:"gamePk"`
	Teams  struct {
		Away scheduleTeamSide `json:"away"`
		Home scheduleTeamSide `json:"home"`
	} `json:"teams"`
}

type scheduleTeamSide struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// liveFeedResponse mirrors the slice of the live feed payload we consume
type liveFeedResponse struct {
	GameData struct {
		ProbablePitchers struct {
			Home *probablePitcher `json:"home"`
			Away *probablePitcher `json:"away"`
		} `json:"probablePitchers"`
	} `json:"gameData"`
}

type probablePitcher struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// statsResponse mirrors the career stats payload
type statsResponse struct {
	Stats []struct {
		Splits []struct {
			Stat models.StatSnapshot `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// rosterResponse mirrors the team roster payload
type rosterResponse struct {
	Roster []struct {
		Person struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"person"`
	} `json:"roster"`
}

// FetchSchedule retrieves all games scheduled on the given date. A game entry
// missing its identifier or either team is skipped with a logged warning
// rather than failing the whole resolution.
func (c *Client) FetchSchedule(ctx context.Context, date time.Time) ([]models.Game, error) {
	day := date.Format("2006-01-02")

	key := CacheKey{Endpoint: endpointSchedule, Args: day}
	if cached := c.cache.Get(key); cached != nil {
		if games, ok := cached.([]models.Game); ok {
			return games, nil
		}
	}

	url := fmt.Sprintf("%s/api/v1/schedule?sportId=1&date=%s", c.baseURL, day)

	var resp scheduleResponse
	if err := c.getJSON(ctx, endpointSchedule, url, &resp); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0)
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			if g.GamePk == 0 || g.Teams.Home.Team.ID == 0 || g.Teams.Away.Team.ID == 0 ||
				g.Teams.Home.Team.Name == "" || g.Teams.Away.Team.Name == "" {
				c.logger.WithFields(logrus.Fields{
					"date":    day,
					"game_pk": g.GamePk,
				}).Warn("Skipping malformed schedule entry")
				continue
			}
			games = append(games, models.Game{
				GameID: g.GamePk,
				Away:   g.Teams.Away.Team.Name,
				Home:   g.Teams.Home.Team.Name,
				HomeID: g.Teams.Home.Team.ID,
				AwayID: g.Teams.Away.Team.ID,
			})
		}
	}

	c.cache.Set(key, games)
	return games, nil
}

// ProbablePitchers retrieves the probable starting pitchers for a game from
// the live feed. Never cached: assignments can change until first pitch.
// Absent sides leave the ID nil and the name as the placeholder.
func (c *Client) ProbablePitchers(ctx context.Context, gameID int) (models.PitcherAssignment, error) {
	assignment := models.PitcherAssignment{
		HomeName: placeholderName,
		AwayName: placeholderName,
	}

	url := fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", c.baseURL, gameID)

	var resp liveFeedResponse
	if err := c.getJSON(ctx, endpointLiveFeed, url, &resp); err != nil {
		return assignment, err
	}

	if home := resp.GameData.ProbablePitchers.Home; home != nil && home.ID != 0 {
		id := home.ID
		assignment.HomeID = &id
		if home.FullName != "" {
			assignment.HomeName = home.FullName
		}
	}
	if away := resp.GameData.ProbablePitchers.Away; away != nil && away.ID != 0 {
		id := away.ID
		assignment.AwayID = &id
		if away.FullName != "" {
			assignment.AwayName = away.FullName
		}
	}

	return assignment, nil
}

// CareerStats retrieves a player's career aggregate stats for one group
// ("pitching" or "hitting"). Returns the first split's stat mapping, or an
// empty snapshot when the player has no stats in that group.
func (c *Client) CareerStats(ctx context.Context, playerID int, group string) (models.StatSnapshot, error) {
	key := CacheKey{Endpoint: endpointStats, Args: strconv.Itoa(playerID) + ":" + group}
	if cached := c.cache.Get(key); cached != nil {
		if snapshot, ok := cached.(models.StatSnapshot); ok {
			return snapshot, nil
		}
	}

	url := fmt.Sprintf("%s/api/v1/people/%d/stats?stats=career&group=%s", c.baseURL, playerID, group)

	var resp statsResponse
	if err := c.getJSON(ctx, endpointStats, url, &resp); err != nil {
		return models.StatSnapshot{}, err
	}

	snapshot := models.StatSnapshot{}
	if len(resp.Stats) > 0 && len(resp.Stats[0].Splits) > 0 && resp.Stats[0].Splits[0].Stat != nil {
		snapshot = resp.Stats[0].Splits[0].Stat
	}

	c.cache.Set(key, snapshot)
	return snapshot, nil
}

// Roster retrieves the active roster player IDs for a team
func (c *Client) Roster(ctx context.Context, teamID int) ([]int, error) {
	key := CacheKey{Endpoint: endpointRoster, Args: strconv.Itoa(teamID)}
	if cached := c.cache.Get(key); cached != nil {
		if ids, ok := cached.([]int); ok {
			return ids, nil
		}
	}

	url := fmt.Sprintf("%s/api/v1/teams/%d/roster", c.baseURL, teamID)

	var resp rosterResponse
	if err := c.getJSON(ctx, endpointRoster, url, &resp); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(resp.Roster))
	for _, entry := range resp.Roster {
		if entry.Person.ID == 0 {
			continue
		}
		ids = append(ids, entry.Person.ID)
	}

	c.cache.Set(key, ids)
	return ids, nil
}

// Ping checks upstream reachability for readiness probes
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.httpClient.Get(ctx, c.baseURL+"/api/v1/sports/1")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}
	return nil
}

// CacheStats returns response cache statistics
func (c *Client) CacheStats() (hits, misses uint64, ratio float64) {
	return c.cache.Stats()
}

// Close releases client resources
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// getJSON executes a GET against one logical endpoint, decoding the JSON body
// into out. Failures are mapped to typed APIErrors so callers can tell
// "upstream unreachable" apart from "field absent" in logs.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, ErrCodeNetworkError)
		return NewAPIError(endpoint, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.RecordAPIRequest(endpoint, ErrCodeNotFound)
		return NewAPIError(endpoint, ErrCodeNotFound, "resource not found", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		metrics.RecordAPIRequest(endpoint, ErrCodeServerError)
		return NewAPIError(endpoint, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordAPIRequest(endpoint, ErrCodeInvalidData)
		return NewAPIError(endpoint, ErrCodeInvalidData, "failed to parse response", err)
	}

	metrics.RecordAPIRequest(endpoint, "success")
	return nil
}
