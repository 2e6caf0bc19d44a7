package types

import "regexp"

type (
	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		Types   []EntryType
		Names   []*regexp.Regexp
		Exclude []string
	}
)
