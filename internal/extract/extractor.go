package extract

import (
	"regexp"
	"strings"

	"github.com/osintbo/rastro/internal/model"
)

var (
	// emailPattern matches gmail addresses only. Restricting the provider
	// keeps contact evidence bound to personal accounts instead of the
	// institutional mailto: links most pages carry.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@gmail\.com`)

	// intlPhonePattern matches the international Bolivian format with an
	// optional separator between country code and subscriber number.
	intlPhonePattern = regexp.MustCompile(`\+591[-\s]?\d{8}`)

	// digitRunPattern finds maximal digit runs. Bare subscriber numbers are
	// the runs of exactly 8 digits; matching maximal runs and checking the
	// length afterwards keeps 8-digit windows inside longer numeric strings
	// (dates, document IDs) from matching.
	digitRunPattern = regexp.MustCompile(`\d+`)
)

// Contacts is the deduplicated contact evidence found in one page's text.
type Contacts struct {
	Emails []string
	Phones []string
}

// Extract scans text for email and phone candidates. Both lists are
// deduplicated keeping first-occurrence order. The keep-filters are not
// applied here.
func Extract(text string) Contacts {
	var c Contacts

	seen := make(map[string]bool)
	for _, email := range emailPattern.FindAllString(text, -1) {
		if !seen[email] {
			seen[email] = true
			c.Emails = append(c.Emails, email)
		}
	}

	seen = make(map[string]bool)
	for _, phone := range intlPhonePattern.FindAllString(text, -1) {
		if !seen[phone] {
			seen[phone] = true
			c.Phones = append(c.Phones, phone)
		}
	}
	for _, run := range digitRunPattern.FindAllString(text, -1) {
		if len(run) != 8 || seen[run] {
			continue
		}
		seen[run] = true
		c.Phones = append(c.Phones, run)
	}

	return c
}

// KeepEmail reports whether an extracted email should be attributed to the
// subject: the subject's first name token must appear in the local part.
// This binds the contact to the subject rather than to some other person
// mentioned on the same page.
func KeepEmail(subject model.Subject, email string) bool {
	first := strings.ToLower(subject.FirstName())
	if first == "" {
		return false
	}
	local, _, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	return strings.Contains(strings.ToLower(local), first)
}

// KeepPhone reports whether an extracted phone belongs to the Bolivian
// mobile ranges: after stripping the literal +591 prefix and any separator,
// the subscriber number must start with 6 or 7.
func KeepPhone(phone string) bool {
	number := strings.TrimPrefix(phone, "+591")
	number = strings.TrimLeft(number, "- ")
	if number == "" {
		return false
	}
	return number[0] == '6' || number[0] == '7'
}
