package worker

import (
	"context"
	"log/slog"
	"strings"

	"fantasy-critic-bot/internal/adapters/metrics"
)

const (
	// runawayCeiling suppresses dispatch entirely when one tick would
	// flood the channel; the baseline still advances so the burst is
	// absorbed rather than replayed.
	runawayCeiling = 40

	// chunkSize lines per Discord message.
	chunkSize = 6

	newsBanner = "*News!*"
)

// dispatch runs the outbound pipeline for one tick: in-tick dedupe,
// dedup-window filter, runaway guard, then chunked delivery to every
// followed channel. Returns the number of lines actually sent.
func (w *Worker) dispatch(ctx context.Context, updates []string) int {
	if len(updates) == 0 {
		return 0
	}
	metrics.UpdatesGenerated.Add(float64(len(updates)))

	updates = dedupeInOrder(updates)

	fresh := updates[:0:0]
	for _, line := range updates {
		if _, seen := w.dedup.Get(ctx, w.dedupKey(line)); seen {
			metrics.UpdatesDeduped.Inc()
			continue
		}
		fresh = append(fresh, line)
	}

	// every line of this tick enters the window, sent or not, so a
	// suppressed burst can't replay on the next tick either
	for _, line := range updates {
		w.dedup.Set(ctx, w.dedupKey(line), []byte{1}, w.cfg.DedupeWindow)
	}

	if len(fresh) == 0 {
		return 0
	}

	if len(fresh) > runawayCeiling {
		slog.Warn("Suppressing runaway update burst",
			"guild_id", w.guildID, "lines", len(fresh), "ceiling", runawayCeiling)
		metrics.RunawayTicksSuppressed.Inc()
		return 0
	}

	channels := w.Channels()
	if len(channels) == 0 {
		slog.Info("Updates found but no channels followed", "guild_id", w.guildID, "lines", len(fresh))
		return 0
	}

	for i := 0; i < len(fresh); i += chunkSize {
		end := min(i+chunkSize, len(fresh))
		message := strings.Join(fresh[i:end], "\n")
		if i == 0 {
			message = newsBanner + "\n" + message
		}
		for _, channel := range channels {
			if err := w.notifier.SendText(w.guildID, channel, message); err != nil {
				slog.Error("Failed to deliver update chunk",
					"guild_id", w.guildID, "channel", channel, "error", err)
			}
		}
	}

	slog.Info("Updates dispatched", "guild_id", w.guildID, "lines", len(fresh), "channels", len(channels))
	return len(fresh)
}

func (w *Worker) dedupKey(line string) string {
	return "sent/" + w.guildID + "/" + line
}

// dedupeInOrder drops exact repeats within one tick, keeping first
// occurrence order.
func dedupeInOrder(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := lines[:0:0]
	for _, line := range lines {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
