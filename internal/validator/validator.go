package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Error lists every problem found in a graph.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// ValidateGraph checks for broken links, unreachable questions and
// inconsistent choice definitions. It returns nil or an *Error.
func ValidateGraph(g *domain.Graph) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !g.Has(g.StartID()) {
		report("start question '%s' not found", g.StartID())
	}

	for _, q := range g.Questions() {
		if !q.Kind.Valid() {
			report("question '%s' has unknown kind '%s'", q.ID, q.Kind)
			continue
		}
		for _, ref := range q.References() {
			if !g.Has(ref) {
				report("question '%s' references missing question '%s'", q.ID, ref)
			}
		}
		checkChoices(q, report)
	}

	for _, id := range unreachable(g) {
		report("question '%s' is unreachable from '%s'", id, g.StartID())
	}

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}

func checkChoices(q domain.Question, report func(string, ...any)) {
	if q.Kind == domain.KindYesNo && q.Yes() == q.No() {
		report("question '%s' uses the same key '%s' for yes and no", q.ID, q.Yes())
	}
	if !q.Kind.HasOptions() {
		return
	}
	if len(q.Options) == 0 {
		report("question '%s' has no options", q.ID)
	}

	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		switch {
		case domain.IsBlank(opt.Key):
			report("question '%s' has an option with a blank key", q.ID)
		case strings.Contains(opt.Key, domain.SelectionSeparator) && q.Kind == domain.KindMultiQueue:
			report("question '%s' option key '%s' contains '%s'", q.ID, opt.Key, domain.SelectionSeparator)
		case seen[opt.Key]:
			report("question '%s' has duplicate option key '%s'", q.ID, opt.Key)
		}
		seen[opt.Key] = true
	}

	notAnOption := func(what, key string) {
		if !q.HasOption(key) {
			report("question '%s' %s key '%s' is not an option", q.ID, what, key)
		}
	}
	switch q.Kind {
	case domain.KindSingleBranch:
		for _, key := range q.BranchKeys() {
			notAnOption("branch", key)
		}
	case domain.KindMultiQueue:
		for _, key := range q.SubflowKeys() {
			notAnOption("sub-flow", key)
		}
		for _, key := range q.Priority {
			notAnOption("priority", key)
		}
	}
}

// unreachable crawls the graph from the start and returns the ids never
// reached, in definition order.
func unreachable(g *domain.Graph) []string {
	if !g.Has(g.StartID()) {
		return nil
	}
	visited := map[string]bool{}
	queue := []string{g.StartID()}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]
		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		q, ok := g.Lookup(currentID)
		if !ok {
			continue
		}
		for _, ref := range q.References() {
			if !visited[ref] {
				queue = append(queue, ref)
			}
		}
	}

	var out []string
	for _, id := range g.IDs() {
		if !visited[id] {
			out = append(out, id)
		}
	}
	return slices.Clip(out)
}
