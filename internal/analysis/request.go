package analysis

import (
	"fmt"

	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/engine"
)

// Request describes one analysis run. Zero values fall back to the service
// defaults.
type Request struct {
	// FileName is the name of the uploaded file, for logs and reports only.
	FileName string
	// Layout is a layout name accepted by engine.ParseLayoutKind.
	Layout string
	// Sort is a sort order name accepted by engine.ParseSortOrder.
	Sort   string
	Filter engine.Filter

	FoldCase      *bool
	CollapseSpace *bool

	// Caller identifies who asked for the run, usually the User-Agent.
	Caller string
}

// options resolves the request against the defaults into engine options.
func options(defaults config.AnalysisConfig, req Request) (engine.Options, error) {
	opts := engine.DefaultOptions()

	layoutName := req.Layout
	if layoutName == "" {
		layoutName = defaults.DefaultLayout
	}
	layout, err := engine.ParseLayoutKind(layoutName)
	if err != nil {
		return engine.Options{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	opts.Layout = layout

	sortName := req.Sort
	if sortName == "" {
		sortName = defaults.DefaultSort
	}
	sort, err := engine.ParseSortOrder(sortName)
	if err != nil {
		return engine.Options{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	opts.Sort = sort

	opts.Normalizer.FoldCase = defaults.FoldCase
	if req.FoldCase != nil {
		opts.Normalizer.FoldCase = *req.FoldCase
	}
	opts.Normalizer.CollapseSpace = defaults.CollapseSpace
	if req.CollapseSpace != nil {
		opts.Normalizer.CollapseSpace = *req.CollapseSpace
	}

	if len(defaults.AnchorMarkers) > 0 {
		opts.Vocabulary.AnchorMarkers = defaults.AnchorMarkers
	}
	if defaults.ScanRows > 0 {
		opts.ScanRows = defaults.ScanRows
	}
	if defaults.FixedOffset > 0 {
		opts.FixedOffset = defaults.FixedOffset
	}

	opts.Filter = req.Filter

	return opts, nil
}
