package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparseableTime = errors.New("could not parse time from input")

// Layouts accepted before falling back to natural language. The zone-less
// forms are what Python's datetime.isoformat() produces and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type TimeParser struct {
	parser *when.Parser
}

func NewTimeParser() *TimeParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &TimeParser{
		parser: w,
	}
}

// ParseTimestamp reads a client supplied interaction timestamp.
// Natural-language input like "yesterday at 3pm" is resolved against referenceTime.
func (tp *TimeParser) ParseTimestamp(input string, referenceTime time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnparseableTime
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, input); err == nil {
			return parsed.UTC(), nil
		}
	}

	result, err := tp.parser.Parse(input, referenceTime.UTC())
	if err != nil || result == nil {
		return time.Time{}, ErrUnparseableTime
	}
	// Reject inputs where the time expression is only a fragment of the text.
	if strings.TrimSpace(strings.Replace(input, result.Text, "", 1)) != "" {
		return time.Time{}, ErrUnparseableTime
	}

	return result.Time.UTC(), nil
}
