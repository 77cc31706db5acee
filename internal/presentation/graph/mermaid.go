package graph

import (
	"fmt"
	"strings"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// GraphOverlay contains session state to highlight on the graph.
type GraphOverlay struct {
	VisitedQuestions []string
	CurrentQuestion  string
}

// GenerateMermaid produces a Mermaid flowchart for a survey graph.
// Shapes follow the question kind:
// - Start: ((Circle))
// - Yes/No and single branch: {Diamond}
// - Multi-select with sub-flows: {{Hexagon}}
// - Voice, video, camera: [[Subroutine]]
// - Free text and single choice: [/Parallelogram/]
//
// Branch edges carry the answer key, sub-flow edges are dotted.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, q := range g.Questions() {
		safeID := sanitizeMermaidID(q.ID)

		opener, closer := "[/", "/]"
		switch {
		case q.ID == g.StartID():
			opener, closer = "((", "))"
		case q.Kind == domain.KindYesNo || q.Kind == domain.KindSingleBranch:
			opener, closer = "{", "}"
		case q.Kind == domain.KindMultiQueue:
			opener, closer = "{{", "}}"
		case q.Kind.IsMedia():
			opener, closer = "[[", "]]"
		}

		label := q.ID
		if !q.Required {
			label += " <br/> (optional)"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, e := range edges(q) {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, e.arrow, sanitizeMermaidID(e.to)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedQuestions {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentQuestion != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentQuestion)))
		}
	}

	return sb.String()
}

type edge struct {
	arrow string
	to    string
}

func labelled(key string) string {
	return fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(key, "\"", "'"))
}

func edges(q domain.Question) []edge {
	var out []edge
	switch q.Kind {
	case domain.KindYesNo:
		if q.NextIDIfYes != "" {
			out = append(out, edge{labelled(q.Yes()), q.NextIDIfYes})
		}
		if q.NextIDIfNo != "" {
			out = append(out, edge{labelled(q.No()), q.NextIDIfNo})
		}
	case domain.KindSingleBranch:
		for _, key := range q.BranchKeys() {
			if to := q.NextIDByKey[key]; to != "" {
				out = append(out, edge{labelled(key), to})
			}
		}
	case domain.KindMultiQueue:
		for _, key := range q.SubflowKeys() {
			if to := q.SubflowStartIDByKey[key]; to != "" {
				out = append(out, edge{fmt.Sprintf("-. \"%s\" .->", strings.ReplaceAll(key, "\"", "'")), to})
			}
		}
		if q.FallbackNextID != "" {
			out = append(out, edge{labelled("none"), q.FallbackNextID})
		}
	}
	if q.NextID != "" {
		out = append(out, edge{"-->", q.NextID})
	}
	return out
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
