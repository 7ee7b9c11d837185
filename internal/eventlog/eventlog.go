// Package eventlog writes the append-only, newline-delimited JSON trace of
// a session: one record per significant event, flushed immediately so a
// crash loses at most the in-flight record.
//
// Open returns a handle whose Close (typically deferred) guarantees the
// file is flushed and closed on every exit path, including an error return
// partway through a session.
package eventlog

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"daifugo/internal/cards"

	"github.com/google/uuid"
)

// Logger is the scoped event-log handle. A nil *Logger is a valid no-op
// logger (used when the event log is disabled), so callers never need a
// parallel "if enabled" branch at every call site.
type Logger struct {
	f         *os.File
	sessionID uuid.UUID
}

// Open creates (or appends to) the JSONL file at path and tags every record
// written through the returned Logger with a fresh session id.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f, sessionID: uuid.New()}, nil
}

// Close flushes and closes the underlying file. Safe to call on a nil
// Logger.
func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}

func (l *Logger) write(kind string, fields map[string]any) {
	if l == nil || l.f == nil {
		return
	}
	record := map[string]any{
		"kind":       kind,
		"session_id": l.sessionID.String(),
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		record[k] = v
	}
	line, err := json.Marshal(record)
	if err != nil {
		return
	}
	l.f.Write(line)
	l.f.Write([]byte("\n"))
	l.f.Sync()
}

// Notation renders cards as the wire's compact card notation: comma-joined
// "S3"/"Jo" tokens; an empty slice (a pass) renders as the empty string.
func Notation(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func (l *Logger) SessionStart(players []string) {
	l.write("session_start", map[string]any{"players": players})
}

func (l *Logger) GameStart(gameNumber int, ranks map[int]string, hands map[int]string, firstPlayer int) {
	l.write("game_start", map[string]any{
		"game":         gameNumber,
		"ranks":        ranks,
		"hands":        hands,
		"first_player": firstPlayer,
	})
}

func (l *Logger) Exchange(from, to int, cardsMoved []cards.Card, handsAfter map[int]string) {
	l.write("exchange", map[string]any{
		"from":        from,
		"to":          to,
		"cards":       Notation(cardsMoved),
		"hands_after": handsAfter,
	})
}

// Turn records one player's action. action is "play" or "pass".
func (l *Logger) Turn(player int, action string, cardsPlayed []cards.Card, cardType string, field string, hands map[int]string, flags map[string]any) {
	fields := map[string]any{
		"player":     player,
		"action":     action,
		"cards":      Notation(cardsPlayed),
		"card_type":  cardType,
		"field":      field,
		"hands":      hands,
	}
	for k, v := range flags {
		fields[k] = v
	}
	l.write("turn", fields)
}

// Special records a named side-effect trigger: one of eight_stop,
// revolution, eleven_back, lock, field_clear, player_finish.
func (l *Logger) Special(event string, details map[string]any) {
	fields := map[string]any{"event": event}
	for k, v := range details {
		fields[k] = v
	}
	l.write("special", fields)
}

func (l *Logger) GameEnd(finishOrder []int, newRanks map[int]string) {
	l.write("game_end", map[string]any{
		"finish_order": finishOrder,
		"new_ranks":    newRanks,
	})
}

func (l *Logger) SessionEnd(totalGames int, totals map[int]int, finalRanking []int) {
	l.write("session_end", map[string]any{
		"total_games":   totalGames,
		"totals":        totals,
		"final_ranking": finalRanking,
	})
}
