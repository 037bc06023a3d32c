package resolve

import "github.com/grailbio/base/log"

// panicInternal reports a DP invariant violation, a bug in the resolver
// itself rather than anything a caller did. These are never returned as
// errors: there is no sensible way for a caller to recover from the
// scan's own bookkeeping being wrong.
func panicInternal(msg string) {
	log.Panicf("%s", msg)
}
