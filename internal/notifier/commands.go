package notifier

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"FishingDay/internal/recorder"
)

// SessionCommands answers /summary with the journal totals of sessionID.
func SessionCommands(sessionID string, rec recorder.Recorder, log *zap.Logger) CommandHandler {
	return func(command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ""
		}
		// Group chats append the bot name: /summary@fishing_bot.
		cmd, _, _ := strings.Cut(fields[0], "@")
		switch cmd {
		case "/summary":
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s, err := rec.Summary(ctx, sessionID)
			if err != nil {
				log.Error("summary command", zap.Error(err))
				return "Summary unavailable."
			}
			return FormatSummary(sessionID, s)
		case "/start", "/help":
			return "Commands:\n/summary - wins, losses and ties of the running session"
		default:
			return ""
		}
	}
}
