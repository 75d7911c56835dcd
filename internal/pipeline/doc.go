// Package pipeline orchestrates the per-subject evidence scan.
//
// Each subject runs through an ordered sequence of steps: concurrent
// evidence collection (web search branch plus username-enumeration branch)
// followed by ranking and truncation. A BatchProcessor runs multiple
// subject pipelines concurrently with a bounded limit.
//
// Every sub-step failure degrades to "no evidence from this branch" rather
// than aborting the subject; a subject-level wall-clock budget caps total
// time, and on expiry the pipeline ranks whatever was collected.
package pipeline
