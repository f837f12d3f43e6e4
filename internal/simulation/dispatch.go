package simulation

import (
	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
)

func (e *Engine) drainAnnouncements() []announcement {
	out := e.announcements
	e.announcements = nil
	return out
}

// dispatch publishes announcements off the tick path. Delivery is best effort.
func (e *Engine) dispatch(out []announcement) {
	if len(out) == 0 {
		return
	}
	e.async(func() {
		for _, a := range out {
			switch {
			case a.match != nil:
				if err := e.notifier.SendMatchResult(a.match, e.cfg.DryRun); err != nil {
					log.Error("Failed to send match result", "error", err, "matchID", a.match.ID)
				}
				e.publish(pubsub.EventMatchFinished, pubsub.MatchFinishedMessage{Match: *a.match})
			case a.notification != nil:
				e.publish(pubsub.EventPredictionSettled, pubsub.PredictionSettledMessage{
					Notification: *a.notification,
					MatchID:      a.matchID,
					Points:       a.points,
				})
			case a.round > 0:
				if err := e.notifier.SendRoundSummary(a.round, a.standings, e.cfg.DryRun); err != nil {
					log.Error("Failed to send round summary", "error", err, "round", a.round)
				}
				e.publish(pubsub.EventRoundAdvanced, pubsub.RoundAdvancedMessage{Round: a.round, AdvancedAt: a.at})
			}
		}
	})
}

func (e *Engine) publish(topic pubsub.EventType, msg any) {
	if e.cfg.DryRun {
		log.Debug("Dry run, not publishing", "topic", topic)
		return
	}
	if err := e.pubsub.SendMessage(topic, msg); err != nil {
		log.Error("Failed to publish event", "error", err, "topic", topic)
	}
}
