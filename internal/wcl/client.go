package wcl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"wcl_attendance/internal/app"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the Warcraft Logs v2 GraphQL API. Token acquisition uses
// the OAuth2 client-credentials grant; the oauth2 transport refreshes the
// token transparently, so the core never sees authentication state.
type Client struct {
	apiURL       string
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

// NewClient creates a new Warcraft Logs client with the provided credentials
func NewClient(ctx context.Context, cfg *app.Config) *Client {
	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.AuthURL,
	}

	httpClient := creds.Client(ctx)
	httpClient.Timeout = 60 * time.Second

	return &Client{
		apiURL: cfg.APIURL,
		client: httpClient,
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// executeQuery posts a GraphQL query and returns the raw data payload
func (c *Client) executeQuery(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := c.apiURL + "/client"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", url).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	c.IncrementAPICall()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to decode GraphQL response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL query failed: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}

const attendanceQuery = `
query($guildID: Int!, $page: Int!) {
  guildData {
    guild(id: $guildID) {
      name
      server {
        name
        region {
          name
        }
      }
      attendance(page: $page) {
        data {
          zone {
            id
            name
          }
          code
          startTime
          players {
            name
            type
          }
        }
        has_more_pages
        current_page
        total
      }
    }
  }
}`

type attendanceEnvelope struct {
	GuildData struct {
		Guild *struct {
			Name   string `json:"name"`
			Server struct {
				Name   string `json:"name"`
				Region struct {
					Name string `json:"name"`
				} `json:"region"`
			} `json:"server"`
			Attendance app.AttendancePage `json:"attendance"`
		} `json:"guild"`
	} `json:"guildData"`
}

// GetGuildAttendance fetches one page of guild attendance data
func (c *Client) GetGuildAttendance(ctx context.Context, guildID, page int) (*app.AttendancePage, error) {
	log.Debug().
		Int("guild_id", guildID).
		Int("page", page).
		Msg("Fetching guild attendance page")

	data, err := c.executeQuery(ctx, attendanceQuery, map[string]interface{}{
		"guildID": guildID,
		"page":    page,
	})
	if err != nil {
		return nil, err
	}

	var envelope attendanceEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode attendance response: %w", err)
	}

	guild := envelope.GuildData.Guild
	if guild == nil {
		return nil, fmt.Errorf("guild %d not found", guildID)
	}

	log.Debug().
		Str("guild", guild.Name).
		Str("server", guild.Server.Name).
		Str("region", guild.Server.Region.Name).
		Int("raids_on_page", len(guild.Attendance.Data)).
		Int("total_raids", guild.Attendance.Total).
		Bool("has_more_pages", guild.Attendance.HasMorePages).
		Msg("Successfully fetched guild attendance")

	return &guild.Attendance, nil
}

// GetAttendanceSince fetches all attendance raids newer than the cutoff
// instant, walking pages until the cutoff or the last page is reached.
// The attendance endpoint returns raids newest first, so the walk stops at
// the first raid older than the cutoff.
func (c *Client) GetAttendanceSince(ctx context.Context, guildID int, cutoff time.Time) ([]app.AttendanceRaid, error) {
	var allRaids []app.AttendanceRaid

	log.Info().
		Int("guild_id", guildID).
		Str("cutoff", cutoff.Format("2006-01-02")).
		Msg("Fetching guild attendance history")

	for page := 1; ; page++ {
		attendancePage, err := c.GetGuildAttendance(ctx, guildID, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attendance page %d: %w", page, err)
		}

		reachedCutoff := false
		for _, raid := range attendancePage.Data {
			if raid.StartTime > 0 {
				started := time.UnixMilli(raid.StartTime)
				if started.Before(cutoff) {
					log.Debug().
						Str("raid_start", started.Format("2006-01-02")).
						Msg("Reached raids older than cutoff, stopping pagination")
					reachedCutoff = true
					break
				}
			}
			allRaids = append(allRaids, raid)
		}

		if reachedCutoff || !attendancePage.HasMorePages {
			break
		}

		log.Debug().
			Int("next_page", page+1).
			Int("raids_so_far", len(allRaids)).
			Msg("Preparing next attendance page request")
	}

	log.Info().
		Int("total_raids", len(allRaids)).
		Int("guild_id", guildID).
		Msg("Completed fetching guild attendance")

	return allRaids, nil
}

const rosterQuery = `
query($guildID: Int!) {
  guildData {
    guild(id: $guildID) {
      name
      members {
        data {
          name
          level
          classID
        }
      }
    }
  }
}`

type rosterEnvelope struct {
	GuildData struct {
		Guild *struct {
			Name    string `json:"name"`
			Members struct {
				Data []app.GuildMember `json:"data"`
			} `json:"members"`
		} `json:"guild"`
	} `json:"guildData"`
}

// GetGuildRoster fetches the current guild member names. Used to exclude
// non-member participants from attendance tallies.
func (c *Client) GetGuildRoster(ctx context.Context, guildID int) (map[string]struct{}, error) {
	log.Debug().
		Int("guild_id", guildID).
		Msg("Fetching guild roster")

	data, err := c.executeQuery(ctx, rosterQuery, map[string]interface{}{
		"guildID": guildID,
	})
	if err != nil {
		return nil, err
	}

	var envelope rosterEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}

	guild := envelope.GuildData.Guild
	if guild == nil {
		return nil, fmt.Errorf("guild %d not found", guildID)
	}

	roster := make(map[string]struct{}, len(guild.Members.Data))
	for _, member := range guild.Members.Data {
		if member.Name != "" {
			roster[member.Name] = struct{}{}
		}
	}

	log.Info().
		Str("guild", guild.Name).
		Int("members", len(roster)).
		Msg("Successfully fetched guild roster")

	return roster, nil
}
