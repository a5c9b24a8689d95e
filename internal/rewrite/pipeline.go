package rewrite

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicatePass is returned when two passes share a name.
	ErrDuplicatePass = errors.New("duplicate pass name")
	// ErrUnknownDependency is returned when a pass depends on a pass that is not registered.
	ErrUnknownDependency = errors.New("unknown pass dependency")
	// ErrCircularDependency is returned when the declared order has a cycle.
	ErrCircularDependency = errors.New("circular pass dependency")
)

// Rewriter runs passes in dependency order.
type Rewriter struct {
	passes []Pass
}

// New builds a Rewriter with the default passes configured from cfg.
func New(cfg Config) (*Rewriter, error) {
	passes, err := DefaultPasses(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithPasses(passes...)
}

// NewWithPasses orders passes by their declared dependencies.
func NewWithPasses(passes ...Pass) (*Rewriter, error) {
	ordered, err := orderPasses(passes)
	if err != nil {
		return nil, err
	}
	return &Rewriter{passes: ordered}, nil
}

// Rewrite runs every pass over text.
func (r *Rewriter) Rewrite(text string, env Env) Result {
	res := Result{Text: text}
	for _, p := range r.passes {
		res = p.Apply(res, env)
	}
	return res
}

// PassNames returns the pass names in run order.
func (r *Rewriter) PassNames() []string {
	names := make([]string, len(r.passes))
	for i, p := range r.passes {
		names[i] = p.Name()
	}
	return names
}

// orderPasses sorts passes with Kahn's algorithm; ties break by name.
func orderPasses(passes []Pass) ([]Pass, error) {
	byName := make(map[string]Pass, len(passes))
	for _, p := range passes {
		if _, exists := byName[p.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePass, p.Name())
		}
		byName[p.Name()] = p
	}

	graph := make(map[string][]string, len(passes))
	inDegree := make(map[string]int, len(passes))
	for _, p := range passes {
		if _, ok := inDegree[p.Name()]; !ok {
			inDegree[p.Name()] = 0
		}
		deps := p.Dependencies()
		for _, dep := range deps.MustRunAfter {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("%w: %q must run after %q", ErrUnknownDependency, p.Name(), dep)
			}
			graph[dep] = append(graph[dep], p.Name())
			inDegree[p.Name()]++
		}
		for _, next := range deps.MustRunBefore {
			if _, ok := byName[next]; !ok {
				return nil, fmt.Errorf("%w: %q must run before %q", ErrUnknownDependency, p.Name(), next)
			}
			graph[p.Name()] = append(graph[p.Name()], next)
			inDegree[next]++
		}
	}

	var queue []string
	for name, d := range inDegree {
		if d == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	result := make([]Pass, 0, len(passes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, byName[current])
		for _, next := range graph[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(passes) {
		var stuck []string
		for name, d := range inDegree {
			if d > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: %v", ErrCircularDependency, stuck)
	}
	return result, nil
}
