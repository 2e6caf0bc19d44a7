package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/taigrr/findr/internal/types"
)

var _ pflag.Value = (*TypeSet)(nil)

// TypeSet is a repeatable --type flag. Tokens other than f, d and l are
// rejected while flags are parsed.
type TypeSet []types.EntryType

func (s *TypeSet) String() string {
	tokens := make([]string, len(*s))
	for i, t := range *s {
		tokens[i] = t.String()
	}
	return strings.Join(tokens, ",")
}

func (s *TypeSet) Set(token string) error {
	t, err := types.ParseEntryType(token)
	if err != nil {
		return err
	}
	*s = append(*s, t)
	return nil
}

func (s *TypeSet) Type() string {
	return "f|d|l"
}
