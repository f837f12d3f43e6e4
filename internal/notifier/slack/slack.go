package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/notifier"
	"github.com/slack-go/slack"
)

// standingsRows is how many table rows a round summary shows.
const standingsRows = 5

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts the league feed to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Debug("Sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(match *league.Match, dryRun bool) error {
	_, _, err := s.sendMessage(formatMatchResult(match), dryRun)
	return err
}

func (s *Notifier) SendRoundSummary(round int, standings []league.Team, dryRun bool) error {
	_, _, err := s.sendMessage(formatRoundSummary(round, standings), dryRun)
	return err
}

// formatMatchResult creates the full-time message using Block Kit.
func formatMatchResult(match *league.Match) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ Full time! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreline := fmt.Sprintf("*%s %d - %d %s*", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", scoreline, false, false), nil, nil))

	if len(match.Events) > 0 {
		lines := make([]string, 0, len(match.Events))
		for _, e := range match.Events {
			lines = append(lines, fmt.Sprintf("• %d' %s (%s) %s", e.Minute, e.Player, e.Team, e.Score))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Goals:\n"+strings.Join(lines, "\n"), true, false), nil, nil))
	}

	contextText := fmt.Sprintf("Round %d", match.Round)
	if match.League != "" {
		contextText = fmt.Sprintf("%s · %s", match.League, contextText)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatRoundSummary announces a new round together with the top of the table.
func formatRoundSummary(round int, standings []league.Team) slack.Message {
	blocks := make([]slack.Block, 0, 2)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📅 Round %d is underway", round), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		return slack.NewBlockMessage(blocks...)
	}

	rows := standings
	if len(rows) > standingsRows {
		rows = rows[:standingsRows]
	}
	lines := make([]string, 0, len(rows))
	for i, t := range rows {
		lines = append(lines, fmt.Sprintf("%d. %s  %d pts (GD %+d)", i+1, t.Name, t.Points, t.GoalDifference()))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Table:\n"+strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
