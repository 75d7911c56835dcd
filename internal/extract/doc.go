// Package extract scans page text for contact evidence.
//
// Extraction is deliberately narrow. Emails are limited to one well-known
// free-mail provider to cut noise from mailto: boilerplate, and phone
// patterns target Bolivian numbering only. The patterns are pure functions
// over text; the subject-binding keep-filters live here too so the
// orchestrator applies policy, not pattern knowledge.
package extract
