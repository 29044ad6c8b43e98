package cli

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// parseDateArg parses --since/--until values: natural language first
// ("yesterday", "last week"), then common date layouts.
func parseDateArg(raw string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if result, err := w.Parse(raw, time.Now()); err == nil && result != nil {
		return result.Time, nil
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", raw)
}
