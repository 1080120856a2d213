package core

// actions.go is the per-file action pipeline.
//
// Apply is a pure function over a table: it never touches session state.
// The returned Event says how many points the action is worth and what to
// show the user; the caller decides whether to commit it.

import "fmt"

// Action names a user action on a single file.
type Action string

const (
	ActionRemoveDuplicates Action = "remove_duplicates"
	ActionFillMissing      Action = "fill_missing"
	ActionInsight          Action = "insight"
	ActionSelectColumns    Action = "select_columns"
	ActionVisualize        Action = "visualize"
	ActionConvert          Action = "convert"
)

// actionAliases maps URL-friendly names to actions.
var actionAliases = map[string]Action{
	"dedupe":            ActionRemoveDuplicates,
	"remove-duplicates": ActionRemoveDuplicates,
	"fill-missing":      ActionFillMissing,
	"insight":           ActionInsight,
	"columns":           ActionSelectColumns,
	"visualize":         ActionVisualize,
	"convert":           ActionConvert,
}

// ParseAction resolves an action name or URL alias.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionRemoveDuplicates, ActionFillMissing, ActionInsight,
		ActionSelectColumns, ActionVisualize, ActionConvert:
		return a, nil
	}
	if a, ok := actionAliases[s]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Params carries action-specific input.
type Params struct {
	FileName string   // Original upload name, used in messages and output naming
	Columns  []string // ActionSelectColumns
	Format   Format   // ActionConvert

	// Deliver, when set, receives the event after the action succeeds and
	// before its points are committed. An error aborts the action.
	Deliver func(Event) error
}

// Event is the outcome of one action.
type Event struct {
	Action   Action
	Points   int
	Messages []string
	Insight  string
	Chart    *Chart
	Export   *ExportResult
}

// Apply runs action on t. t is never modified; the returned table is the
// new state for cleaning and projection actions and t itself otherwise.
func Apply(t *Table, action Action, p Params, choose Chooser) (*Table, Event, error) {
	ev := Event{Action: action}

	switch action {
	case ActionRemoveDuplicates:
		out := RemoveDuplicates(t)
		ev.Points = PointsRemoveDuplicates
		ev.Messages = []string{fmt.Sprintf("✅ Removed Duplicates from %s", p.FileName)}
		return out, ev, nil

	case ActionFillMissing:
		out := FillMissingNumeric(t)
		ev.Points = PointsFillMissing
		ev.Messages = []string{"✅ Filled Missing Values"}
		return out, ev, nil

	case ActionInsight:
		ev.Insight = choose.pick(Insights)
		ev.Points = PointsInsight
		ev.Messages = []string{"🤖 AI Suggestion: " + ev.Insight}
		return t, ev, nil

	case ActionSelectColumns:
		out, err := SelectColumns(t, p.Columns)
		if err != nil {
			return nil, Event{}, err
		}
		return out, ev, nil

	case ActionVisualize:
		chart := BuildChart(t)
		ev.Chart = &chart
		ev.Points = PointsVisualize
		ev.Messages = []string{choose.pick(Encouragements)}
		return t, ev, nil

	case ActionConvert:
		res, err := Export(t, p.Format, p.FileName)
		if err != nil {
			return nil, Event{}, err
		}
		ev.Export = res
		ev.Points = PointsConvert
		ev.Messages = []string{choose.pick(Encouragements)}
		return t, ev, nil
	}

	return nil, Event{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
