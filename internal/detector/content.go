package detector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/moderalabs/modera/internal/api/classify"
	"github.com/moderalabs/modera/internal/domain"
)

// ContentClassifier scores message text against the harmful-content
// categories. A classifier outage must never itself trigger punitive action,
// so any failure resolves to the fail-open default {safe: 1.0}.
type ContentClassifier struct {
	client  *classify.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewContentClassifier creates a content classifier.
func NewContentClassifier(client *classify.Client, timeout time.Duration, logger *slog.Logger) *ContentClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentClassifier{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Classify returns the score table and primary category for text.
// It never returns an error.
func (c *ContentClassifier) Classify(ctx context.Context, text string) *domain.ContentResult {
	result, _ := Failover(ctx, c.logger, "content",
		func(ctx context.Context) (*domain.ContentResult, error) {
			return c.classifyRemote(ctx, text)
		},
		func(ctx context.Context) (*domain.ContentResult, error) {
			return safeDefault(), nil
		},
	)
	return result
}

func (c *ContentClassifier) classifyRemote(ctx context.Context, text string) (*domain.ContentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Classify(ctx, &classify.ClassifyRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("classification: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("classification: empty result set")
	}

	// Preserve the returned set verbatim; absent labels score zero downstream.
	scores := make(map[domain.ContentCategory]float64, len(resp.Results))
	for _, r := range resp.Results {
		scores[domain.ContentCategory(r.Label)] = r.Score
	}

	return &domain.ContentResult{
		PrimaryCategory: primaryCategory(scores),
		Categories:      scores,
	}, nil
}

// primaryCategory picks the label with the maximum score among those the
// classifier actually returned. Exact ties resolve by enumeration order, safe
// first, to bias toward no action. Labels outside the known enumeration rank
// after every known one.
func primaryCategory(scores map[domain.ContentCategory]float64) domain.ContentCategory {
	rank := func(cat domain.ContentCategory) int {
		for i, known := range domain.ContentCategories {
			if cat == known {
				return i
			}
		}
		return len(domain.ContentCategories)
	}

	best := domain.ContentSafe
	bestScore := -1.0
	bestRank := rank(best)
	for _, cat := range sortedCategories(scores) {
		score := scores[cat]
		r := rank(cat)
		if score > bestScore || (score == bestScore && r < bestRank) {
			best, bestScore, bestRank = cat, score, r
		}
	}
	return best
}

// sortedCategories returns the map keys in a deterministic order so tie
// resolution does not depend on map iteration.
func sortedCategories(scores map[domain.ContentCategory]float64) []domain.ContentCategory {
	cats := make([]domain.ContentCategory, 0, len(scores))
	for _, known := range domain.ContentCategories {
		if _, ok := scores[known]; ok {
			cats = append(cats, known)
		}
	}
	var unknown []string
	for cat := range scores {
		known := false
		for _, k := range domain.ContentCategories {
			if cat == k {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, string(cat))
		}
	}
	sort.Strings(unknown)
	for _, cat := range unknown {
		cats = append(cats, domain.ContentCategory(cat))
	}
	return cats
}

func safeDefault() *domain.ContentResult {
	return &domain.ContentResult{
		PrimaryCategory: domain.ContentSafe,
		Categories:      map[domain.ContentCategory]float64{domain.ContentSafe: 1.0},
	}
}
