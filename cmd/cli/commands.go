package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	allMatches   bool
	scorersLimit int
)

func init() {
	matchesCmd.Flags().BoolVar(&allMatches, "all", false, "List every match of the season")
	scorersCmd.Flags().IntVar(&scorersLimit, "limit", 10, "Number of players to list")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(scorersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the season clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/simulation/state", nil)
	},
}

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one simulation cycle now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/simulation/tick", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the league table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/league/standings", nil)
	},
}

var roundCmd = &cobra.Command{
	Use:   "round <number>",
	Short: "Show the results of a round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid round %q: %w", args[0], err)
		}
		return performRequest(http.MethodGet, "/api/league/results/"+args[0], nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches of the current round",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/matches"
		if allMatches {
			endpoint += "?all=true"
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <id>",
	Short: "Show a single match with its events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/matches/"+url.PathEscape(args[0]), nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank users by prediction points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/leaderboard", nil)
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <userID> <matchID> <home> <away>",
	Short: "Submit a score prediction",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid argument %q: %w", a, err)
			}
			nums[i] = n
		}
		body, err := json.Marshal(map[string]int{
			"userId":    nums[0],
			"matchId":   nums[1],
			"homeScore": nums[2],
			"awayScore": nums[3],
		})
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/api/bets", body)
	},
}

var scorersCmd = &cobra.Command{
	Use:   "scorers",
	Short: "List the top scorers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players/top-scorers?limit="+strconv.Itoa(scorersLimit), nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func performRequest(method, endpoint string, payload []byte) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
