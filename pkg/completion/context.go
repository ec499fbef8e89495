package completion

// Context is what the host knows about the template being edited. Variables may return
// nil when nothing is known.
type Context interface {
	Variables() map[string]any
}

// FilterContext is implemented by contexts that know the available filters
type FilterContext interface {
	Context
	Filters() map[string]any
}

// MemberContext is implemented by contexts that know the attributes of variables
type MemberContext interface {
	Context
	Members(name string) []string
}

// StaticContext is a fixed, in-memory completion context
type StaticContext struct {
	Vars       map[string]any
	FilterSet  map[string]any
	Attributes map[string][]string
}

var (
	_ FilterContext = (*StaticContext)(nil)
	_ MemberContext = (*StaticContext)(nil)
)

// NewStaticContext creates a context that knows the given variable names
func NewStaticContext(variables ...string) *StaticContext {
	ctx := &StaticContext{
		Vars:       make(map[string]any, len(variables)),
		FilterSet:  make(map[string]any),
		Attributes: make(map[string][]string),
	}
	for _, name := range variables {
		ctx.Vars[name] = nil
	}
	return ctx
}

// WithFilters adds filter names and returns the context for chaining
func (me *StaticContext) WithFilters(filters ...string) *StaticContext {
	if me.FilterSet == nil {
		me.FilterSet = make(map[string]any, len(filters))
	}
	for _, name := range filters {
		me.FilterSet[name] = nil
	}
	return me
}

// WithMembers records the attributes of a variable, adding the variable if needed
func (me *StaticContext) WithMembers(variable string, members ...string) *StaticContext {
	if me.Vars == nil {
		me.Vars = make(map[string]any)
	}
	if me.Attributes == nil {
		me.Attributes = make(map[string][]string)
	}
	if _, ok := me.Vars[variable]; !ok {
		me.Vars[variable] = nil
	}
	me.Attributes[variable] = append(me.Attributes[variable], members...)
	return me
}

func (me *StaticContext) Variables() map[string]any {
	if me == nil {
		return nil
	}
	return me.Vars
}

func (me *StaticContext) Filters() map[string]any {
	if me == nil {
		return nil
	}
	return me.FilterSet
}

func (me *StaticContext) Members(name string) []string {
	if me == nil {
		return nil
	}
	return me.Attributes[name]
}
