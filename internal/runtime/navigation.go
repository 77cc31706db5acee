package runtime

import (
	"fmt"

	"github.com/surveyflow/surveyflow/pkg/domain"
)

// InvalidAnswerError reports an answer rejected by its question.
// It matches domain.ErrInvalidAnswer with errors.Is.
type InvalidAnswerError struct {
	QuestionID string
	Kind       domain.Kind
	Answer     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("question '%s' (%s) does not accept answer %q", e.QuestionID, e.Kind, e.Answer)
}

func (e *InvalidAnswerError) Unwrap() error {
	return domain.ErrInvalidAnswer
}

// Start marks the graph start as visited and returns it.
func (e *Engine) Start(state *domain.FlowState) string {
	start := e.graph.StartID()
	state.MarkVisited(start)
	return start
}

// Navigate performs one turn: it validates answer against qid, records it,
// and moves to the next question. done is true when the flow has ended.
// A rejected answer leaves state untouched.
func (e *Engine) Navigate(state *domain.FlowState, qid, answer string) (next string, done bool, err error) {
	q, ok := e.graph.Lookup(qid)
	if !ok {
		return "", false, fmt.Errorf("%w: %s", domain.ErrUnknownQuestion, qid)
	}
	if !q.IsValid(answer) {
		return "", false, &InvalidAnswerError{QuestionID: qid, Kind: q.Kind, Answer: answer}
	}

	state.SetAnswer(qid, answer)
	state.MarkVisited(qid)

	next, ok = e.DecideNext(state, qid)
	if !ok {
		e.logger.Debug("flow complete", "question", qid)
		return "", true, nil
	}
	state.MarkVisited(next)
	return next, false, nil
}

// Resume returns the question a returning respondent should continue from.
func (e *Engine) Resume(state *domain.FlowState) string {
	return state.FirstUnanswered(e.graph)
}

// Previous returns the question shown before qid, for back navigation.
// The visited log and the queue are left as they are; answers given on the
// way forward stay recorded and are replayed when the respondent moves on.
func (e *Engine) Previous(state *domain.FlowState, qid string) (string, bool) {
	return state.Previous(qid)
}

// SummaryItem is one answered (or skipped) question of a summary.
type SummaryItem struct {
	Question domain.Question `json:"question"`
	Answer   string          `json:"answer"`
	Answered bool            `json:"answered"`
	Valid    bool            `json:"valid"`
}

// Summary lists the distinct visited questions in first-seen order.
// Ids missing from the graph are skipped.
func (e *Engine) Summary(state *domain.FlowState) []SummaryItem {
	var items []SummaryItem
	for _, id := range state.DistinctVisited() {
		q, ok := e.graph.Lookup(id)
		if !ok {
			continue
		}
		ans, answered := state.Answer(id)
		items = append(items, SummaryItem{
			Question: q,
			Answer:   ans,
			Answered: answered && !domain.IsBlank(ans),
			Valid:    q.IsValid(ans),
		})
	}
	return items
}

// Complete reports whether every visited question holds a valid answer.
func (e *Engine) Complete(state *domain.FlowState) bool {
	return state.AllVisitedSatisfied(e.graph)
}
