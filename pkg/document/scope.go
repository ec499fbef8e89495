package document

import (
	"github.com/walteh/djtmpls/pkg/completion"
)

// scopedContext adds loop variables to a host context while keeping whatever optional
// knowledge (filters, members) the host context has
type scopedContext struct {
	parent completion.Context
	vars   map[string]any
}

var (
	_ completion.FilterContext = (*scopedContext)(nil)
	_ completion.MemberContext = (*scopedContext)(nil)
)

func newScopedContext(parent completion.Context, loopVars []string) completion.Context {
	if len(loopVars) == 0 {
		return parent
	}

	vars := map[string]any{}
	if parent != nil {
		for name, v := range parent.Variables() {
			vars[name] = v
		}
	}
	for _, name := range loopVars {
		if _, ok := vars[name]; !ok {
			vars[name] = nil
		}
	}

	return &scopedContext{parent: parent, vars: vars}
}

func (me *scopedContext) Variables() map[string]any {
	return me.vars
}

func (me *scopedContext) Filters() map[string]any {
	if fctx, ok := me.parent.(completion.FilterContext); ok {
		return fctx.Filters()
	}
	return nil
}

func (me *scopedContext) Members(name string) []string {
	if mctx, ok := me.parent.(completion.MemberContext); ok {
		return mctx.Members(name)
	}
	return nil
}
