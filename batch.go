package vecsnap

import (
	"golang.org/x/sync/errgroup"
)

// SaveAll persists multiple indexes concurrently, one destination each.
// Calls against different destinations are independent units of work with
// no shared mutable state, so they need no coordination. The first error
// is returned; remaining saves still run to completion.
func SaveAll(destinations map[string]IndexAdapter, optFns ...Option) error {
	var g errgroup.Group
	for filename, adapter := range destinations {
		filename, adapter := filename, adapter
		g.Go(func() error {
			return Save(adapter, filename, optFns...)
		})
	}
	return g.Wait()
}

// LoadAll reconstructs multiple indexes concurrently, one source each.
func LoadAll(sources map[string]IndexAdapter, optFns ...Option) error {
	var g errgroup.Group
	for filename, adapter := range sources {
		filename, adapter := filename, adapter
		g.Go(func() error {
			_, err := Load(adapter, filename, optFns...)
			return err
		})
	}
	return g.Wait()
}
