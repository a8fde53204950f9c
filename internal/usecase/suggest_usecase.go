package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

const maxSuggestions = 8

// ErrSuggestionSuperseded marks a suggestion reply that lost the race
// against a newer keystroke and must be dropped, not rendered.
var ErrSuggestionSuperseded = errors.NewAppError("SUPERSEDED", "Suggestion request superseded", http.StatusConflict, nil)

// replyGuard hands out increasing sequence numbers per user. A reply is
// only valid if no newer request was issued while it was in flight, so
// slow responses can never overwrite fresher ones.
type replyGuard struct {
	latest map[string]uint64
	mu     sync.Mutex
}

func newReplyGuard() *replyGuard {
	return &replyGuard{latest: make(map[string]uint64)}
}

func (g *replyGuard) issue(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return g.latest[key]
}

func (g *replyGuard) isCurrent(key string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[key] == seq
}

type SuggestUseCase struct {
	listingRepo repository.ListingRepository
	guard       *replyGuard
}

func NewSuggestUseCase(listingRepo repository.ListingRepository) *SuggestUseCase {
	return &SuggestUseCase{
		listingRepo: listingRepo,
		guard:       newReplyGuard(),
	}
}

// Suggest returns up to maxSuggestions listing titles starting with or
// containing the prefix. clientID keys the reply guard; anonymous
// callers pass their connection or session id.
func (uc *SuggestUseCase) Suggest(ctx context.Context, clientID, prefix string) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []string{}, nil
	}

	seq := uc.guard.issue(clientID)

	listings, err := uc.listingRepo.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}

	if !uc.guard.isCurrent(clientID, seq) {
		return nil, ErrSuggestionSuperseded
	}

	seen := make(map[string]bool)
	var prefixed, contained []string
	for _, l := range listings {
		title := strings.TrimSpace(l.Title)
		lower := strings.ToLower(title)
		if seen[lower] {
			continue
		}
		switch {
		case strings.HasPrefix(lower, prefix):
			seen[lower] = true
			prefixed = append(prefixed, title)
		case strings.Contains(lower, prefix):
			seen[lower] = true
			contained = append(contained, title)
		}
	}

	sort.Strings(prefixed)
	sort.Strings(contained)

	suggestions := append(prefixed, contained...)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
