package exchange

// ParticipantView is a participant as seen by the viewer.
type ParticipantView struct {
	ParticipantDetail
	UserName    string `json:"user_name"`
	StatusLabel string `json:"status_label"`
}

// View is an exchange projected onto one viewer.
type View struct {
	ExchangeID  string          `json:"exchange_id"`
	Status      Status          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Mine        ParticipantView `json:"mine"`
	Counterpart ParticipantView `json:"counterpart"`
	Decision    Decision        `json:"decision"`
	ActionLabel string          `json:"action_label,omitempty"`
	Message     string          `json:"message,omitempty"`
	Exchange    *Exchange       `json:"-"`
}

var overallLabels = map[Status]string{
	StatusCreated: "Awaiting action",
	StatusConfirm: "Both sides are ready",
	StatusSuccess: "Exchange completed",
	StatusFailed:  "Cancelled",
}

var mineLabels = map[ParticipantStatus]string{
	ParticipantCreated:  "Awaiting your action",
	ParticipantConfirm1: "You are ready to get in touch",
	ParticipantConfirm2: "You confirmed the exchange",
	ParticipantSuccess:  "Exchange completed",
	ParticipantFailed:   "Cancelled",
}

var counterpartLabels = map[ParticipantStatus]string{
	ParticipantCreated:  "Awaiting action",
	ParticipantConfirm1: "Ready to get in touch",
	ParticipantConfirm2: "Confirmed the exchange",
	ParticipantSuccess:  "Exchange completed",
	ParticipantFailed:   "Cancelled",
}

// StatusLabel returns the human-readable overall status.
func StatusLabel(s Status) string {
	return overallLabels[s]
}

// Project splits ex into the viewer's side and the counterpart's side and
// attaches the lifecycle decision. The viewer must own exactly one side.
func Project(ex *Exchange, viewerID string) (*View, error) {
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	if viewerID == "" {
		return nil, inconsistent("viewer id is empty")
	}

	var mine, other *ParticipantDetail
	matches := 0
	for i := range ex.Details {
		if ex.Details[i].OwnerID() == viewerID {
			mine = &ex.Details[i]
			matches++
		} else {
			other = &ex.Details[i]
		}
	}
	if matches != 1 || other == nil {
		return nil, inconsistent("exchange %s has %d participants owned by viewer %s", ex.ExchangeID, matches, viewerID)
	}

	decision, err := Decide(mine.Status, other.Status, ex.Status)
	if err != nil {
		return nil, err
	}

	v := &View{
		ExchangeID:  ex.ExchangeID,
		Status:      ex.Status,
		StatusLabel: overallLabels[ex.Status],
		Mine: ParticipantView{
			ParticipantDetail: *mine,
			UserName:          mine.User.Display(),
			StatusLabel:       mineLabels[mine.Status],
		},
		Counterpart: ParticipantView{
			ParticipantDetail: *other,
			UserName:          other.User.Display(),
			StatusLabel:       counterpartLabels[other.Status],
		},
		Decision: decision,
		Exchange: ex,
	}
	v.ActionLabel, v.Message = labels(ex.Status, decision)
	return v, nil
}

func labels(overall Status, d Decision) (action, message string) {
	switch {
	case overall == StatusSuccess:
		return "", "Exchange completed successfully"
	case overall == StatusFailed:
		return "", "Exchange cancelled"
	case d.Action == ActionConfirm1:
		return "Get in touch", ""
	case d.Action == ActionConfirm2 && d.Enabled:
		return "Confirm exchange", ""
	case d.Action == ActionConfirm2:
		return "Waiting for the other user", ""
	case d.Waiting:
		return "", "Waiting for the other user to confirm the exchange"
	}
	return "", ""
}
