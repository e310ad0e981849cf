// Package report folds per-frame encoding results into run statistics and
// prints them.
//
// Summary is a plain value built with Add, so a pipeline threads it through
// its loop instead of mutating shared totals. Console writes the progress
// lines and summary tables to stdout; diagnostics go through the logging
// package instead.
package report
