package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

// blockText collects the text of header, section and context blocks.
func blockText(msg slackapi.Message) string {
	var out string
	for _, b := range msg.Blocks.BlockSet {
		switch block := b.(type) {
		case *slackapi.HeaderBlock:
			out += block.Text.Text + "\n"
		case *slackapi.SectionBlock:
			out += block.Text.Text + "\n"
		case *slackapi.ContextBlock:
			for _, el := range block.ContextElements.Elements {
				if txt, ok := el.(*slackapi.TextBlockObject); ok {
					out += txt.Text + "\n"
				}
			}
		}
	}
	return out
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	err := notifier.SendMatchResult(&league.Match{HomeTeam: "A", AwayTeam: "B"}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRoundSummary(4, nil, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendMatchResult(&league.Match{HomeTeam: "A", AwayTeam: "B"}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatMatchResult(t *testing.T) {
	match := &league.Match{
		Round:     3,
		HomeTeam:  "Real Madrid",
		AwayTeam:  "FC Barcelona",
		HomeScore: 2,
		AwayScore: 1,
		League:    "La Liga",
		Events: []league.MatchEvent{
			{Type: league.EventGoal, Team: "Real Madrid", Player: "Kylian Mbappé", Minute: 12, Score: "1-0"},
			{Type: league.EventGoal, Team: "FC Barcelona", Player: "Lamine Yamal", Minute: 40, Score: "1-1"},
			{Type: league.EventGoal, Team: "Real Madrid", Player: "Jude Bellingham", Minute: 88, Score: "2-1"},
		},
	}

	text := blockText(formatMatchResult(match))

	assert.Contains(t, text, "*Real Madrid 2 - 1 FC Barcelona*")
	assert.Contains(t, text, "• 12' Kylian Mbappé (Real Madrid) 1-0")
	assert.Contains(t, text, "• 88' Jude Bellingham (Real Madrid) 2-1")
	assert.Contains(t, text, "La Liga · Round 3")
}

func TestFormatRoundSummary(t *testing.T) {
	standings := []league.Team{
		{Name: "Girona FC", Points: 9, GoalsFor: 7, GoalsAgainst: 2},
		{Name: "Real Madrid", Points: 7, GoalsFor: 5, GoalsAgainst: 3},
		{Name: "Sevilla FC", Points: 6},
		{Name: "Osasuna", Points: 4},
		{Name: "Getafe CF", Points: 3},
		{Name: "UD Almería", Points: 0, GoalsFor: 1, GoalsAgainst: 9},
	}

	text := blockText(formatRoundSummary(4, standings))

	assert.Contains(t, text, "Round 4 is underway")
	assert.Contains(t, text, "1. Girona FC  9 pts (GD +5)")
	assert.Contains(t, text, "5. Getafe CF  3 pts (GD +0)")
	assert.NotContains(t, text, "UD Almería", "only the top of the table is shown")
}
