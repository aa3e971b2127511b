package exchange

// Action is the single step a viewer may take next.
type Action string

const (
	ActionNone     Action = ""
	ActionConfirm1 Action = "confirm_1"
	ActionConfirm2 Action = "confirm_2"
)

// Transition maps the action to its PATCH status.
func (a Action) Transition() (Transition, bool) {
	switch a {
	case ActionConfirm1:
		return TransitionConfirm1, true
	case ActionConfirm2:
		return TransitionConfirm2, true
	}
	return "", false
}

// Decision is the lifecycle verdict for one viewer.
type Decision struct {
	Action    Action `json:"action,omitempty"`
	Enabled   bool   `json:"enabled"`
	CanCancel bool   `json:"can_cancel"`
	Terminal  bool   `json:"terminal"`
	Waiting   bool   `json:"waiting"`
}

// Available reports whether the action can be submitted now.
func (d Decision) Available() bool {
	return d.Action != ActionNone && d.Enabled
}

type lifecycleRule struct {
	name     string
	matches  func(my, other ParticipantStatus, overall Status) bool
	decision Decision
}

// lifecycleRules is evaluated top to bottom; the first match wins.
var lifecycleRules = []lifecycleRule{
	{
		name: "terminal",
		matches: func(_, _ ParticipantStatus, overall Status) bool {
			return overall.IsTerminal()
		},
		decision: Decision{Terminal: true},
	},
	{
		name: "propose contact",
		matches: func(my, _ ParticipantStatus, _ Status) bool {
			return my == ParticipantCreated
		},
		decision: Decision{Action: ActionConfirm1, Enabled: true, CanCancel: true},
	},
	{
		name: "committed, waiting",
		matches: func(my, _ ParticipantStatus, _ Status) bool {
			return my == ParticipantConfirm2
		},
		decision: Decision{Waiting: true},
	},
	{
		name: "confirm exchange",
		matches: func(my, other ParticipantStatus, _ Status) bool {
			return my == ParticipantConfirm1 && (other == ParticipantConfirm1 || other == ParticipantConfirm2)
		},
		decision: Decision{Action: ActionConfirm2, Enabled: true, CanCancel: true},
	},
	{
		name: "waiting for counterpart",
		matches: func(my, other ParticipantStatus, _ Status) bool {
			return my == ParticipantConfirm1 && other == ParticipantCreated
		},
		decision: Decision{Action: ActionConfirm2, Waiting: true, CanCancel: true},
	},
}

// Decide returns the legal next step for the viewer whose status is my.
// Combinations outside the table are reported as *StateConsistencyError.
func Decide(my, other ParticipantStatus, overall Status) (Decision, error) {
	for _, rule := range lifecycleRules {
		if rule.matches(my, other, overall) {
			return rule.decision, nil
		}
	}
	return Decision{}, inconsistent("no lifecycle rule for my=%s other=%s overall=%s", my, other, overall)
}

// CancelTransition is the PATCH status used to cancel an exchange.
func CancelTransition() Transition {
	return TransitionFail
}
