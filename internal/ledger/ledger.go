// Package ledger persists the set of alert identities that have already
// been delivered, so repeated scan invocations never re-announce an event.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Ledger is an in-memory set of alert identities backed by a newline-
// delimited flat file. It grows monotonically; identities are never
// expired. Single-writer, single-process: concurrent invocations against
// the same file race on save and are not supported.
type Ledger struct {
	path   string
	seen   map[string]struct{}
	logger zerolog.Logger
}

// New constructs an empty ledger bound to the given store path.
func New(path string, logger zerolog.Logger) *Ledger {
	return &Ledger{
		path:   path,
		seen:   make(map[string]struct{}),
		logger: logger.With().Str("component", "ledger").Logger(),
	}
}

// Load populates the set from the store. A missing or unreadable store is
// treated as empty prior state, never as a fatal error: the conservative
// failure mode is to alert everything again.
func (l *Ledger) Load() {
	file, err := os.Open(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn().Err(err).Str("path", l.path).Msg("could not read ledger, starting empty")
		}
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key != "" {
			l.seen[key] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn().Err(err).Str("path", l.path).Msg("ledger read interrupted, continuing with partial state")
	}

	l.logger.Info().Int("count", len(l.seen)).Str("path", l.path).Msg("loaded previously sent alerts")
}

// Has reports whether an identity has already been announced.
func (l *Ledger) Has(identity string) bool {
	_, ok := l.seen[identity]
	return ok
}

// Mark records an identity as announced. Idempotent.
func (l *Ledger) Mark(identity string) {
	l.seen[identity] = struct{}{}
}

// Len returns the number of recorded identities.
func (l *Ledger) Len() int { return len(l.seen) }

// Save rewrites the store with the full set, sorted. The previous contents
// are fully replaced; last write wins.
func (l *Ledger) Save() error {
	keys := make([]string, 0, len(l.seen))
	for key := range l.seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(l.path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	l.logger.Info().Int("count", len(keys)).Str("path", l.path).Msg("saved alert ledger")
	return nil
}
