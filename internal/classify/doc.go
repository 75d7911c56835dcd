// Package classify maps URLs to (source kind, trust level) pairs using
// static domain allow-lists.
//
// Classification is pure: it derives entirely from the URL hostname and the
// injected allow-lists, with no I/O. Results are memoized per hostname since
// one subject's candidate URLs cluster on few hosts.
package classify
