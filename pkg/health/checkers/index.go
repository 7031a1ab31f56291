package checkers

import (
	"context"
	"time"

	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

// IndexChecker пингует векторный индекс запросом количества записей.
type IndexChecker struct {
	store vectorstore.Store
}

func NewIndexChecker(store vectorstore.Store) *IndexChecker {
	return &IndexChecker{store: store}
}

func (c *IndexChecker) Name() string { return "vector-index" }

func (c *IndexChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.store.Count(ctx)
	return err
}
