package catalog

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/store"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// DefaultRatio weights the recency boost given to page history items.
const DefaultRatio = 10.0

// minSimilarity is the Levenshtein similarity a title needs to be offered
// as a typo match when nothing matches fuzzily.
const minSimilarity = 0.6

// HistorySource provides recently visited pages.
type HistorySource interface {
	RecentPages(limit int) ([]store.PageVisit, error)
}

// Catalog holds the searchable items of the command center.
type Catalog struct {
	mu           sync.RWMutex
	items        []center.Item
	path         string
	history      HistorySource
	historyLimit int
	features     Features
	logger       *zap.Logger
	now          func() time.Time
}

// New creates a catalog of the built-in items merged with the user catalog
// at path. Built-in pages of disabled features are left out. history may be nil.
func New(path string, features Features, history HistorySource, historyLimit int, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{
		path:         path,
		history:      history,
		historyLimit: historyLimit,
		features:     features,
		logger:       logger,
		now:          time.Now,
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the user catalog. On error the current items are kept.
func (c *Catalog) Reload() error {
	user, err := LoadFile(c.path)
	if err != nil {
		return err
	}
	items := Merge(BuiltinsFor(c.features), user)
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.logger.Info("catalog loaded", zap.Int("items", len(items)), zap.Int("user_items", len(user)))
	return nil
}

// Items returns a copy of the catalog items.
func (c *Catalog) Items() []center.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]center.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds an item by UUID.
func (c *Catalog) Lookup(uuid string) (center.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.UUID == uuid {
			return it, true
		}
	}
	return center.Item{}, false
}

// Search returns the items matching query, best first. History items come
// before catalog items and carry a recency boost. An empty query matches all.
func (c *Catalog) Search(query string) []center.Item {
	candidates, boosts := c.candidates()
	query = strings.TrimSpace(query)

	var results []center.Item
	if query == "" {
		results = make([]center.Item, len(candidates))
		for i, it := range candidates {
			it.Score = boosts[i]
			results[i] = it
		}
	} else {
		results = fuzzyMatch(query, candidates, boosts)
		if len(results) == 0 {
			results = typoMatch(query, candidates, boosts)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (c *Catalog) candidates() ([]center.Item, []float64) {
	items := c.Items()
	var history []center.Item
	var boosts []float64

	if c.history != nil {
		visits, err := c.history.RecentPages(c.historyLimit)
		if err != nil {
			c.logger.Warn("failed to read page history", zap.Error(err))
		}
		now := c.now()
		for _, v := range visits {
			history = append(history, c.historyItem(v))
			boosts = append(boosts, recencyBoost(now, v.VisitedAt))
		}
	}

	all := append(history, items...)
	for range items {
		boosts = append(boosts, 0)
	}
	return all, boosts
}

func (c *Catalog) historyItem(v store.PageVisit) center.Item {
	title := v.Title
	if title == "" {
		title = v.Path
	}
	item := navigationItem(title, v.Path, center.IconApplication, center.ColorGray)
	if base, ok := c.Lookup(v.ItemUUID); ok {
		item.DisplaySettings = base.DisplaySettings
		item.ObjectType = base.ObjectType
		item.Applications = base.Applications
	}
	item.UUID = "history:" + v.Path
	item.ItemType = center.ItemOpen
	item.Description = strings.Trim(v.Path, "/")
	return item
}

// recencyBoost ranks recently visited pages higher: now/timestamp is close
// to 1 and shrinks towards it as visits age.
func recencyBoost(now time.Time, visitedAtMillis int64) float64 {
	if visitedAtMillis <= 0 {
		return 0
	}
	ts := float64(visitedAtMillis) / 1000
	return DefaultRatio * (float64(now.Unix()) / ts)
}

type itemTexts struct {
	items []center.Item
	field func(center.Item) string
}

func (s itemTexts) String(i int) string { return s.field(s.items[i]) }
func (s itemTexts) Len() int            { return len(s.items) }

func fuzzyMatch(query string, items []center.Item, boosts []float64) []center.Item {
	best := make(map[int]int)
	for _, field := range []func(center.Item) string{
		func(it center.Item) string { return it.Title },
		func(it center.Item) string { return it.Description },
	} {
		for _, m := range fuzzy.FindFrom(query, itemTexts{items: items, field: field}) {
			if cur, ok := best[m.Index]; !ok || m.Score > cur {
				best[m.Index] = m.Score
			}
		}
	}

	var out []center.Item
	for i, it := range items {
		score, ok := best[i]
		if !ok {
			continue
		}
		it.Score = float64(score) + boosts[i]
		out = append(out, it)
	}
	return out
}

func typoMatch(query string, items []center.Item, boosts []float64) []center.Item {
	q := strings.ToLower(query)
	var out []center.Item
	for i, it := range items {
		sim := similarity(q, strings.ToLower(it.Title))
		if sim < minSimilarity {
			continue
		}
		it.Score = sim + boosts[i]
		out = append(out, it)
	}
	return out
}

func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
