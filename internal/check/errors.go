package check

import (
	"github.com/you-not-fish/bsl/internal/syntax"
)

// errorf reports an error at span. Only the first error of each
// top-level form is kept.
func (c *Checker) errorf(span syntax.Span, msg string) {
	if c.failed[c.form] {
		return
	}
	c.failed[c.form] = true

	err := syntax.NewError(span, msg)
	c.errors = append(c.errors, err)
	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}
