package csstheme

import (
	"go.uber.org/zap"
)

// HoistThreshold is the number of uses of one reference with the same default
// value that promotes the default into a :root variable.
const HoistThreshold = 3

// DefaultValueEntry tracks how often a literal default value is referenced.
type DefaultValueEntry struct {
	Value     string         // the default value itself
	Count     int            // sum of RefCounts
	RefCounts map[string]int // reference name -> uses with this default
	Optimized bool           // already hoisted into :root
	refs      []string       // reference names in first-seen order
}

// Refs returns the reference names in first-seen order.
func (e *DefaultValueEntry) Refs() []string {
	out := make([]string, len(e.refs))
	copy(out, e.refs)
	return out
}

// Optimizer counts default values used in var() references and hoists the
// frequent ones into root variables.
//
// Hoisting is a separate phase: Track and Scan only count, Hoist decides
// once every usage of a compile is known, and Rewrite then shortens the
// references that became redundant.
type Optimizer struct {
	store   *Store
	entries map[string]*DefaultValueEntry
	order   []string
	log     *zap.Logger
}

// NewOptimizer creates an optimizer writing hoisted values into store.
func NewOptimizer(store *Store, log *zap.Logger) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{
		store:   store,
		entries: make(map[string]*DefaultValueEntry),
		log:     log.Named("optimizer"),
	}
}

// Track records one use of ref with defaultValue.
func (o *Optimizer) Track(ref, defaultValue string) {
	entry, ok := o.entries[defaultValue]
	if !ok {
		entry = &DefaultValueEntry{Value: defaultValue, RefCounts: make(map[string]int)}
		o.entries[defaultValue] = entry
		o.order = append(o.order, defaultValue)
	}
	if _, seen := entry.RefCounts[ref]; !seen {
		entry.refs = append(entry.refs, ref)
	}
	entry.RefCounts[ref]++
	entry.Count++
}

// Entry returns the tracking entry for defaultValue.
func (o *Optimizer) Entry(defaultValue string) (*DefaultValueEntry, bool) {
	e, ok := o.entries[defaultValue]
	return e, ok
}

// Resolve returns the reference text for ref. The bare form var(--ref) is used
// when partition p (or Root) already holds exactly defaultValue, the inline
// form var(--ref, defaultValue) otherwise.
func (o *Optimizer) Resolve(ref, defaultValue string, p Partition) string {
	name := "--" + ref
	if v, ok := o.store.Get(p, name); ok && v == defaultValue {
		return "var(" + name + ")"
	}
	if v, ok := o.store.Get(Root, name); ok && v == defaultValue {
		return "var(" + name + ")"
	}
	return "var(" + name + ", " + defaultValue + ")"
}

// Scan tracks every var(--name, default) reference found in css.
func (o *Optimizer) Scan(css string) int {
	refs := FindVarReferences(css)
	for _, ref := range refs {
		o.Track(ref.Name, ref.Fallback)
	}
	return len(refs)
}

// Hoist promotes frequently used defaults into root variables and returns the
// newly written variables.
//
// Buckets are visited in first-seen order. Within a bucket the first
// reference, in first-seen order, whose count reaches HoistThreshold wins;
// ties are never broken by the highest count. A reference whose name is
// already bound to another value is passed over.
func (o *Optimizer) Hoist() []Var {
	var hoisted []Var
	for _, key := range o.order {
		entry := o.entries[key]
		if entry.Optimized {
			continue
		}
		for _, ref := range entry.refs {
			if entry.RefCounts[ref] < HoistThreshold {
				continue
			}
			name := "--" + ref
			if o.conflicts(name, entry.Value) {
				o.log.Debug("skip hoisting, name already bound",
					zap.String("name", name), zap.String("value", entry.Value))
				continue
			}
			o.store.Set(Root, name, entry.Value)
			entry.Optimized = true
			hoisted = append(hoisted, Var{Name: name, Value: entry.Value})
			o.log.Debug("hoisted default value",
				zap.String("name", name),
				zap.String("value", entry.Value),
				zap.Int("uses", entry.RefCounts[ref]))
			break
		}
	}
	return hoisted
}

// conflicts reports whether name is defined with a value other than value
// in a partition that shares the :root block. A dark-only binding still
// overrides the hoisted value inside its media block, so it does not count.
func (o *Optimizer) conflicts(name, value string) bool {
	for _, p := range []Partition{Root, Light} {
		if v, ok := o.store.Get(p, name); ok && v != value {
			return true
		}
	}
	return false
}

// Rewrite replaces var(--name, default) with var(--name) wherever the root
// partition holds exactly that default.
func (o *Optimizer) Rewrite(css string) string {
	return replaceVarReferences(css, func(ref VarReference) (string, bool) {
		name := "--" + ref.Name
		if v, ok := o.store.Get(Root, name); ok && v == ref.Fallback {
			return "var(" + name + ")", true
		}
		return "", false
	})
}

// Reset forgets all tracked defaults.
func (o *Optimizer) Reset() {
	o.entries = make(map[string]*DefaultValueEntry)
	o.order = nil
}
