package cache

import (
	"strconv"
	"strings"

	"github.com/ayush-verma1708/backend-crm/storage"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// ListKey derives a deterministic cache key from every parameter of a list
// query, in a fixed segment order. Two requests share an entry exactly when
// their filters and pagination are identical.
func ListKey(q storage.ListQuery) string {
	parts := []string{
		"records",
		strconv.Itoa(q.Page),
		strconv.Itoa(q.Limit),
		q.Search,
		q.Magazine,
		bound(q.MinPrice),
		bound(q.MaxPrice),
	}
	return strings.Join(parts, KeySeparator)
}

func bound(v *float64) string {
	if v == nil {
		return "nil"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
