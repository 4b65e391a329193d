package nav

import "maps"

// ---------------------------------------------------------------------------
// Navigation state machine: pure transition function over State
// ---------------------------------------------------------------------------
//
// apply never performs I/O, never reads a clock, and never blocks. All
// asynchrony (guard chains, the transition-clear timer) lives in the
// Controller, which only dispatches an action once the awaiting is done.
// Invariants maintained across every dispatch:
//   - len(History) <= maxHistory, oldest entries evicted first
//   - 0 <= Index < len(History)
//   - History[Index].View == Active after every history-recorded commit

func apply(s State, a action) State {
	switch a := a.(type) {
	case navigateAction:
		return applyNavigate(s, a)
	case replaceAction:
		return applyReplace(s, a)
	case backAction:
		return applyBack(s)
	case forwardAction:
		return applyForward(s)
	case saveStateAction:
		return applySaveState(s, a)
	case clearStateAction:
		return applyClearState(s, a)
	case clearAllStateAction:
		return applyClearAllState(s)
	case setTransitioningAction:
		s.Transitioning = a.on
		return s
	case setDeepLinkAction:
		s.DeepLink = cloneParams(a.params)
		return s
	case clearDeepLinkAction:
		s.DeepLink = nil
		return s
	case markPreloadedAction:
		return applyMarkPreloaded(s, a)
	case clearHistoryAction:
		return applyClearHistory(s, a)
	case resetAction:
		return NewState(a.view, a.at, a.entryID)
	}
	return s
}

func applyNavigate(s State, a navigateAction) State {
	if a.view == s.Active && a.params == nil {
		return s
	}
	entry := s.entryFor(a.view, a.params, a.at, a.entryID)
	if a.addToHistory {
		// Truncating to [0..Index] drops the redo tail: navigating forward
		// clears anything previously reachable via forward().
		hist := make([]HistoryEntry, s.Index+1, s.Index+2)
		copy(hist, s.History[:s.Index+1])
		hist = append(hist, entry)
		idx := len(hist) - 1
		if over := len(hist) - maxHistory; over > 0 {
			hist = hist[over:]
			idx -= over
		}
		s.History = hist
		s.Index = idx
	}
	s.Previous = s.Active
	s.Active = a.view
	s.DeepLink = cloneParams(a.params)
	s.Transitioning = true
	return s
}

func applyReplace(s State, a replaceAction) State {
	hist := make([]HistoryEntry, len(s.History))
	copy(hist, s.History)
	hist[s.Index] = s.entryFor(a.view, a.params, a.at, a.entryID)
	s.History = hist
	s.Previous = s.Active
	s.Active = a.view
	s.DeepLink = cloneParams(a.params)
	return s
}

func applyBack(s State) State {
	if s.Index == 0 {
		return s
	}
	s.Index--
	return applyHistoryMove(s)
}

func applyForward(s State) State {
	if s.Index >= len(s.History)-1 {
		return s
	}
	s.Index++
	return applyHistoryMove(s)
}

func applyHistoryMove(s State) State {
	entry := s.History[s.Index]
	s.Previous = s.Active
	s.Active = entry.View
	s.DeepLink = cloneParams(entry.Params)
	return s
}

func applySaveState(s State, a saveStateAction) State {
	states := maps.Clone(s.ViewState)
	if states == nil {
		states = map[ViewID]ViewState{}
	}
	states[a.view] = merge(states[a.view], a.patch, a.at)
	s.ViewState = states
	return s
}

func applyClearState(s State, a clearStateAction) State {
	if _, ok := s.ViewState[a.view]; !ok {
		return s
	}
	states := maps.Clone(s.ViewState)
	delete(states, a.view)
	s.ViewState = states
	return s
}

func applyClearAllState(s State) State {
	s.ViewState = map[ViewID]ViewState{}
	return s
}

func applyMarkPreloaded(s State, a markPreloadedAction) State {
	if _, ok := s.Preloaded[a.view]; ok {
		return s
	}
	pre := maps.Clone(s.Preloaded)
	if pre == nil {
		pre = map[ViewID]struct{}{}
	}
	pre[a.view] = struct{}{}
	s.Preloaded = pre
	return s
}

// applyClearHistory collapses history to a single fresh entry for the active
// view, keeping the current deep-link params. Used after a hard reset such as
// sign-out.
func applyClearHistory(s State, a clearHistoryAction) State {
	s.History = []HistoryEntry{{
		ID:     a.entryID,
		View:   s.Active,
		Time:   a.at,
		Params: cloneParams(s.DeepLink),
	}}
	s.Index = 0
	return s
}
