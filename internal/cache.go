package internal

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultPlanCacheSize = 128

// PlanCache memoizes fully prepared engines keyed by the raw query
// text, so the REPL and watch mode skip lexing, parsing, and pattern
// compilation when a query is re-evaluated.
type PlanCache struct {
	plans *lru.Cache[string, *Engine]
}

// NewPlanCache creates a cache with the given capacity; non-positive
// sizes fall back to the default.
func NewPlanCache(size int) (*PlanCache, error) {
	if size <= 0 {
		size = defaultPlanCacheSize
	}
	plans, err := lru.New[string, *Engine](size)
	if err != nil {
		return nil, err
	}
	return &PlanCache{plans: plans}, nil
}

func (c *PlanCache) Get(queryText string) (*Engine, bool) {
	return c.plans.Get(queryText)
}

func (c *PlanCache) Add(queryText string, engine *Engine) {
	c.plans.Add(queryText, engine)
}

func (c *PlanCache) Len() int {
	return c.plans.Len()
}
