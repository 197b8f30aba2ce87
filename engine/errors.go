package engine

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/gconf"
)

// ErrRecursionDepth is returned by Parse if rule matching nests too deep, usually
// because of a left-recursive grammar rule.
var ErrRecursionDepth = errors.New("maximum recursion depth exceeded")

// UnknownRuleError is returned by Parse if the grammar refers to a rule which is
// not defined.
type UnknownRuleError struct {
	Rule string // name of the missing rule
	From string // name of the referring rule
}

func (e *UnknownRuleError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("unknown rule %q", e.Rule)
	}
	return fmt.Sprintf("unknown rule %q, referenced from %q", e.Rule, e.From)
}

func unknownRule(err *UnknownRuleError) error {
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-unknown-rule") {
		panic(`Grammar refers to an unknown rule.

Configuration flag panic-on-unknown-rule is set to true. It is aimed at helping
to debug a grammar and do a post-mortem of how the rule reference came about.
However, if this is a production environment and you did not expect this to panic,
please unset panic-on-unknown-rule to its default (false).

` + err.Error())
	}
	return err
}
