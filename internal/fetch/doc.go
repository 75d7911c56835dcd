// Package fetch retrieves candidate pages discovered by search.
//
// Fetching is best-effort by design: a page that cannot be retrieved is
// simply absent from the evidence pool, it never aborts a subject's scan.
// Each URL gets exactly one attempt with a firm timeout; there is no retry
// or backoff because a slow or blocking host must not starve the rest of
// the candidate set.
package fetch
