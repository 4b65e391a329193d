package nav

import "time"

// Actions are the only inputs to the reducer. Timestamps and entry ids enter
// through the payloads, so apply stays deterministic and clock-free.

type action interface{}

type navigateAction struct {
	view         ViewID
	params       Params
	addToHistory bool
	at           time.Time
	entryID      string
}

type replaceAction struct {
	view    ViewID
	params  Params
	at      time.Time
	entryID string
}

type backAction struct{}

type forwardAction struct{}

type saveStateAction struct {
	view  ViewID
	patch ViewState
	at    time.Time
}

type clearStateAction struct {
	view ViewID
}

type clearAllStateAction struct{}

type setTransitioningAction struct {
	on bool
}

type setDeepLinkAction struct {
	params Params
}

type clearDeepLinkAction struct{}

type markPreloadedAction struct {
	view ViewID
}

type clearHistoryAction struct {
	at      time.Time
	entryID string
}

type resetAction struct {
	view    ViewID
	at      time.Time
	entryID string
}
