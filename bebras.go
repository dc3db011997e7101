// Package bebras is a dashboard for contest results.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/bebras/engine"
//	    "github.com/spektr-org/bebras/helpers"
//	)
//
//	ds, err := helpers.Load(ctx, "dashboard_bebras.csv", helpers.LoadOptions{})
//	dash := engine.NewDashboard(ds, engine.WithTopScorers(10))
//	report := dash.Report(engine.Selection{Regions: []string{"Jawa Barat"}})
//
// The engine takes a loaded dataset and a filter selection, and returns
// plain result structs plus render-ready chart and table configs. The
// render package draws them as terminal tables or PNG images, the server
// package serves them over HTTP, and cmd/bebras is the command line.
//
// All computation is local; the dataset is read once and never modified.
package bebras
