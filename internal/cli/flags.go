package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumFlag is a pflag.Value restricted to a fixed set of spellings. Bad
// values fail at flag-parse time instead of deep inside a service call.
type enumFlag struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(allowed ...string) *enumFlag {
	return &enumFlag{allowed: allowed}
}

func (e *enumFlag) String() string {
	return e.value
}

func (e *enumFlag) Set(v string) error {
	for _, a := range e.allowed {
		if v == a {
			e.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}

func (e *enumFlag) Type() string {
	return "string"
}
