// Package enumerate discovers profile URLs for username candidates.
//
// The real implementation shells out to the sherlock tool. Its stdout
// format is an unstable external protocol, so all parsing lives in this
// one adapter; the rest of the code sees only the Enumerator interface
// and an in-process fake in tests.
package enumerate
