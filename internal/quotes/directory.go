package quotes

import (
	"sort"
	"strings"
)

// Directory maps company names to ticker symbols.
type Directory map[string]string

// DefaultDirectory lists the companies the console offers.
var DefaultDirectory = Directory{
	"Apple":     "AAPL",
	"Microsoft": "MSFT",
	"Amazon":    "AMZN",
	"Tesla":     "TSLA",
	"Alphabet":  "GOOGL",
	"Meta":      "META",
}

// Lookup resolves name to its ticker. An exact match wins; otherwise the
// first case-insensitive match in name order is used. The returned name is
// the directory's spelling.
func (d Directory) Lookup(name string) (company, ticker string, ok bool) {
	name = strings.TrimSpace(name)
	if t, ok := d[name]; ok {
		return name, t, true
	}
	for _, n := range d.Names() {
		if strings.EqualFold(n, name) {
			return n, d[n], true
		}
	}
	return "", "", false
}

// Names returns the company names sorted alphabetically.
func (d Directory) Names() []string {
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
