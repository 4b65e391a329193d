package nav

import (
	"fmt"
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(i int) time.Time { return epoch.Add(time.Duration(i) * time.Second) }

func eid(i int) string { return fmt.Sprintf("e%d", i) }

func checkInvariants(t *testing.T, s State) {
	t.Helper()
	if len(s.History) > maxHistory {
		t.Fatalf("history grew to %d entries", len(s.History))
	}
	if s.Index < 0 || s.Index >= len(s.History) {
		t.Fatalf("index %d out of range for %d entries", s.Index, len(s.History))
	}
	if got := s.History[s.Index].View; got != s.Active {
		t.Fatalf("history[%d] holds %q but active view is %q", s.Index, got, s.Active)
	}
}

func TestNavigateAppendsEntryAndMovesActive(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(1), entryID: eid(1)})

	if s.Active != "profile" {
		t.Fatalf("active = %q, want profile", s.Active)
	}
	if s.Previous != "lobby" {
		t.Fatalf("previous = %q, want lobby", s.Previous)
	}
	if len(s.History) != 2 || s.Index != 1 {
		t.Fatalf("history len=%d index=%d, want 2/1", len(s.History), s.Index)
	}
	if !s.Transitioning {
		t.Fatalf("navigate should set the transitioning flag")
	}
	checkInvariants(t, s)
}

func TestNavigateToActiveViewWithoutParamsIsNoop(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	next := apply(s, navigateAction{view: "lobby", addToHistory: true, at: at(1), entryID: eid(1)})

	if len(next.History) != 1 || next.Transitioning {
		t.Fatalf("same-view navigate without params must not change state")
	}
}

func TestNavigateToActiveViewWithParamsCommits(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "lobby", params: Params{"tab": "live"}, addToHistory: true, at: at(1), entryID: eid(1)})

	if len(s.History) != 2 {
		t.Fatalf("history len = %d, want 2", len(s.History))
	}
	if s.DeepLink["tab"] != "live" {
		t.Fatalf("deep link params not applied: %v", s.DeepLink)
	}
	checkInvariants(t, s)
}

func TestNavigateClearsDeepLinkWhenParamsAbsent(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "draft", params: Params{"round": "3"}, addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(2), entryID: eid(2)})

	if s.DeepLink != nil {
		t.Fatalf("deep link should clear on a plain navigate, got %v", s.DeepLink)
	}
}

func TestNavigateWithoutHistoryLeavesStackAlone(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", addToHistory: false, at: at(1), entryID: eid(1)})

	if s.Active != "profile" || s.Previous != "lobby" {
		t.Fatalf("active/previous = %q/%q", s.Active, s.Previous)
	}
	if len(s.History) != 1 || s.Index != 0 {
		t.Fatalf("history len=%d index=%d, want untouched 1/0", len(s.History), s.Index)
	}
	if !s.Transitioning {
		t.Fatalf("navigate should set the transitioning flag even when skipping history")
	}
}

func TestNavigateCarriesDepartingScroll(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, saveStateAction{view: "lobby", patch: ViewState{Scroll: &Point{Y: 42}}, at: at(1)})
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(2), entryID: eid(1)})

	got := s.History[1].Scroll
	if got == nil || got.Y != 42 {
		t.Fatalf("entry should snapshot the departing view's scroll, got %+v", got)
	}
}

func TestNavigateCapsHistoryAtFifty(t *testing.T) {
	s := NewState("v00", at(0), eid(0))
	for i := 1; i <= 60; i++ {
		s = apply(s, navigateAction{
			view:         ViewID(fmt.Sprintf("v%02d", i)),
			addToHistory: true,
			at:           at(i),
			entryID:      eid(i),
		})
		checkInvariants(t, s)
	}

	if len(s.History) != maxHistory {
		t.Fatalf("history len = %d, want %d", len(s.History), maxHistory)
	}
	if got := s.History[49].View; got != "v60" {
		t.Fatalf("newest entry = %q, want v60", got)
	}
	if s.Index != 49 {
		t.Fatalf("index = %d, want 49", s.Index)
	}
}

func TestForwardNavigationTruncatesRedoTail(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "a", addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, navigateAction{view: "b", addToHistory: true, at: at(2), entryID: eid(2)})
	s = apply(s, backAction{})
	s = apply(s, navigateAction{view: "c", addToHistory: true, at: at(3), entryID: eid(3)})

	for _, e := range s.History {
		if e.View == "b" {
			t.Fatalf("entry for b should be gone after redo truncation")
		}
	}
	next := apply(s, forwardAction{})
	if next.Active != "c" || next.Index != s.Index {
		t.Fatalf("forward from the newest entry must be a no-op")
	}
	checkInvariants(t, s)
}

func TestReplaceOverwritesSlotWithoutGrowing(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, replaceAction{view: "settings", params: Params{"section": "alerts"}, at: at(2), entryID: eid(2)})

	if len(s.History) != 2 {
		t.Fatalf("replace changed history length to %d", len(s.History))
	}
	e := s.History[1]
	if e.View != "settings" || e.ID != eid(2) || !e.Time.Equal(at(2)) {
		t.Fatalf("slot not overwritten with a fresh entry: %+v", e)
	}
	if s.Active != "settings" || s.Previous != "profile" {
		t.Fatalf("active/previous = %q/%q", s.Active, s.Previous)
	}
	if s.DeepLink["section"] != "alerts" {
		t.Fatalf("deep link params not applied: %v", s.DeepLink)
	}
	checkInvariants(t, s)
}

func TestBackAndForwardRestoreEntryParams(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", params: Params{"tab": "stats"}, addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, navigateAction{view: "settings", addToHistory: true, at: at(2), entryID: eid(2)})

	s = apply(s, backAction{})
	if s.Active != "profile" || s.DeepLink["tab"] != "stats" {
		t.Fatalf("back should restore the entry's view and params, got %q %v", s.Active, s.DeepLink)
	}
	checkInvariants(t, s)

	s = apply(s, backAction{})
	if s.Active != "lobby" || s.DeepLink != nil {
		t.Fatalf("back to the initial entry should clear params, got %q %v", s.Active, s.DeepLink)
	}

	bottom := apply(s, backAction{})
	if bottom.Index != 0 || bottom.Active != "lobby" {
		t.Fatalf("back at the oldest entry must be a no-op")
	}

	s = apply(s, forwardAction{})
	s = apply(s, forwardAction{})
	if s.Active != "settings" || s.DeepLink != nil {
		t.Fatalf("forward should land on settings, got %q %v", s.Active, s.DeepLink)
	}
	checkInvariants(t, s)
}

func TestSaveStateMergesFields(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, saveStateAction{view: "lobby", patch: ViewState{Scroll: &Point{Y: 10}}, at: at(1)})
	s = apply(s, saveStateAction{view: "lobby", patch: ViewState{Selected: []string{"a"}}, at: at(2)})

	vs := s.ViewState["lobby"]
	if vs.Scroll == nil || vs.Scroll.Y != 10 {
		t.Fatalf("scroll lost by a later partial save: %+v", vs.Scroll)
	}
	if len(vs.Selected) != 1 || vs.Selected[0] != "a" {
		t.Fatalf("selected items not saved: %v", vs.Selected)
	}
	if !vs.LastVisited.Equal(at(2)) {
		t.Fatalf("lastVisited = %v, want %v", vs.LastVisited, at(2))
	}
}

func TestSaveStateReplacesSetFieldsWholesale(t *testing.T) {
	s := NewState("draft", at(0), eid(0))
	s = apply(s, saveStateAction{view: "draft", patch: ViewState{Form: map[string]string{"qb": "JH", "rb": "CM"}}, at: at(1)})
	s = apply(s, saveStateAction{view: "draft", patch: ViewState{Form: map[string]string{"wr": "JJ"}}, at: at(2)})

	form := s.ViewState["draft"].Form
	if len(form) != 1 || form["wr"] != "JJ" {
		t.Fatalf("a set field replaces the stored one wholesale, got %v", form)
	}
}

func TestClearStateRemovesRecord(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, saveStateAction{view: "lobby", patch: ViewState{Expanded: []string{"contests"}}, at: at(1)})
	s = apply(s, clearStateAction{view: "lobby"})

	if _, ok := s.ViewState["lobby"]; ok {
		t.Fatalf("record should be gone after clear")
	}
	s = apply(s, clearStateAction{view: "lobby"})
	if len(s.ViewState) != 0 {
		t.Fatalf("clearing an absent record must be a no-op")
	}
}

func TestClearAllStateEmptiesStore(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, saveStateAction{view: "lobby", patch: ViewState{Scroll: &Point{Y: 3}}, at: at(1)})
	s = apply(s, saveStateAction{view: "draft", patch: ViewState{Scroll: &Point{Y: 7}}, at: at(2)})
	s = apply(s, clearAllStateAction{})

	if len(s.ViewState) != 0 {
		t.Fatalf("expected empty store, got %d records", len(s.ViewState))
	}
}

func TestMarkPreloadedIsIdempotent(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, markPreloadedAction{view: "draft"})
	s = apply(s, markPreloadedAction{view: "draft"})

	if len(s.Preloaded) != 1 {
		t.Fatalf("preloaded set = %v", s.Preloaded)
	}
	if _, ok := s.Preloaded["draft"]; !ok {
		t.Fatalf("draft should be marked preloaded")
	}
}

func TestClearHistoryCollapsesToActiveView(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, navigateAction{view: "draft", params: Params{"round": "2"}, addToHistory: true, at: at(2), entryID: eid(2)})
	s = apply(s, clearHistoryAction{at: at(3), entryID: eid(3)})

	if len(s.History) != 1 || s.Index != 0 {
		t.Fatalf("history len=%d index=%d, want 1/0", len(s.History), s.Index)
	}
	e := s.History[0]
	if e.View != "draft" || e.Params["round"] != "2" {
		t.Fatalf("collapsed entry should describe the active view: %+v", e)
	}
	checkInvariants(t, s)
}

func TestResetReturnsToInitialState(t *testing.T) {
	s := NewState("lobby", at(0), eid(0))
	s = apply(s, navigateAction{view: "profile", addToHistory: true, at: at(1), entryID: eid(1)})
	s = apply(s, saveStateAction{view: "profile", patch: ViewState{Scroll: &Point{Y: 9}}, at: at(2)})
	s = apply(s, resetAction{view: "lobby", at: at(3), entryID: eid(3)})

	if s.Active != "lobby" || len(s.History) != 1 || s.Index != 0 {
		t.Fatalf("reset state = %q len=%d index=%d", s.Active, len(s.History), s.Index)
	}
	if len(s.ViewState) != 0 || len(s.Preloaded) != 0 || s.Transitioning {
		t.Fatalf("reset should drop saved state, preloads, and the transition flag")
	}
	checkInvariants(t, s)
}

func TestDispatchesDoNotMutatePriorStates(t *testing.T) {
	s0 := NewState("lobby", at(0), eid(0))
	s1 := apply(s0, navigateAction{view: "profile", addToHistory: true, at: at(1), entryID: eid(1)})
	s2 := apply(s1, saveStateAction{view: "profile", patch: ViewState{Scroll: &Point{Y: 5}}, at: at(2)})
	_ = apply(s2, backAction{})

	if len(s0.History) != 1 || s0.Active != "lobby" {
		t.Fatalf("initial state mutated by a later dispatch")
	}
	if _, ok := s1.ViewState["profile"]; ok {
		t.Fatalf("earlier state sees a later save")
	}
	if s2.Index != 1 || s2.Active != "profile" {
		t.Fatalf("state mutated by a later back dispatch")
	}
}
