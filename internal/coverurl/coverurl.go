// Package coverurl holds the accepted shape of a book cover image URL.
//
// The same source expression is embedded in the add-book page script and
// checked again by the service before a record is stored.
package coverurl

import "regexp"

// Source is the pattern without flags, in a syntax shared by RE2 and
// browser regular expressions. It must be matched case-insensitively.
const Source = `^https://m\.media-amazon\.com/images/(?:I|G/\d+/pv_starlight)/.*\.(jpg|jpeg|png)(?:\?.*)?$`

// Hint is shown next to the form field and returned with validation errors.
const Hint = "Please enter a valid Amazon media image URL (e.g., https://m.media-amazon.com/images/I/... or https://m.media-amazon.com/images/G/...)"

var pattern = regexp.MustCompile("(?i)" + Source)

// Valid reports whether url is an accepted cover image URL.
func Valid(url string) bool {
	return pattern.MatchString(url)
}
