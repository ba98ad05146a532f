package search

import (
	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/types"
)

// CollectionAdapter adapts a Collection to work as a TaskProvider
type CollectionAdapter struct {
	coll *nanotodo.Collection
}

// NewCollectionAdapter creates a new adapter for a Collection
func NewCollectionAdapter(coll *nanotodo.Collection) *CollectionAdapter {
	return &CollectionAdapter{coll: coll}
}

// Tasks implements TaskProvider using the collection's view
func (a *CollectionAdapter) Tasks(view types.ViewOptions) ([]types.Task, error) {
	return a.coll.View(view).Tasks, nil
}

// SearchCollection is a convenience function to search a Collection directly
func SearchCollection(coll *nanotodo.Collection, options Options, view types.ViewOptions) ([]Result, error) {
	return NewEngine(NewCollectionAdapter(coll)).Search(options, view)
}
