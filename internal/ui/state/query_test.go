package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
)

func TestTypeIssuesLookupPerKeystroke(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	first := c.Type("a")
	second := c.Type("b")
	if first.Lookup == nil || second.Lookup == nil {
		t.Fatalf("expected a lookup per keystroke")
	}
	if second.Lookup.Seq <= first.Lookup.Seq {
		t.Fatalf("expected increasing sequence, got %d then %d", first.Lookup.Seq, second.Lookup.Seq)
	}
	if second.Lookup.Query != "ab" {
		t.Fatalf("expected query ab, got %q", second.Lookup.Query)
	}
	if !c.Pending() {
		t.Fatalf("expected pending lookup")
	}
}

func TestStaleResultsDiscarded(t *testing.T) {
	c, view := newTestCombobox(Options{})
	a := c.Type("a").Lookup
	ab := c.Type("b").Lookup

	if !c.ApplyResults(ab.Seq, suggest.Labels("ab1", "ab2"), nil) {
		t.Fatalf("expected newest results applied")
	}
	if c.ApplyResults(a.Seq, suggest.Labels("a1", "a2", "a3"), nil) {
		t.Fatalf("expected stale results discarded")
	}

	got := []string{}
	for _, opt := range view.last().Options {
		got = append(got, opt.Item.Label)
	}
	if diff := cmp.Diff([]string{"ab1", "ab2"}, got); diff != "" {
		t.Fatalf("rendered options mismatch (-want +got):\n%s", diff)
	}
}

func TestOutOfOrderResultsBeforeNewest(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	a := c.Type("a").Lookup
	ab := c.Type("b").Lookup
	if c.ApplyResults(a.Seq, suggest.Labels("a1"), nil) {
		t.Fatalf("expected older results discarded while newer lookup pending")
	}
	if !c.Pending() {
		t.Fatalf("expected newest lookup still pending")
	}
	if !c.ApplyResults(ab.Seq, suggest.Labels("ab1"), nil) {
		t.Fatalf("expected newest results applied")
	}
}

func TestQueryBelowMinLength(t *testing.T) {
	c, _ := newTestCombobox(Options{MinLength: 3})
	ch := c.Type("it")
	if ch.Lookup != nil {
		t.Fatalf("expected no lookup for short query")
	}
	if got := c.StatusText(); got != "Type in 3 or more characters for results" {
		t.Fatalf("unexpected status %q", got)
	}
	ch = c.Type("a")
	if ch.Lookup == nil {
		t.Fatalf("expected lookup once query is long enough")
	}
	c.ApplyResults(ch.Lookup.Seq, suggest.Labels("Italy"), nil)
	if !c.Open {
		t.Fatalf("expected menu open")
	}
	c.Backspace()
	if c.Open || c.Items != nil {
		t.Fatalf("expected menu closed and items cleared below min length")
	}
}

func TestClearCancelsPendingLookup(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	lookup := c.Type("ab").Lookup
	c.Clear()
	if c.Pending() {
		t.Fatalf("expected no pending lookup after clear")
	}
	if c.ApplyResults(lookup.Seq, suggest.Labels("ab"), nil) {
		t.Fatalf("expected results for cleared query discarded")
	}
	if c.Expanded() {
		t.Fatalf("expected menu closed")
	}
}

func TestFailedLookupIsEmptyList(t *testing.T) {
	c, _ := newTestCombobox(Options{ShowNoOptionsFound: true})
	lookup := c.Type("zz").Lookup
	if !c.ApplyResults(lookup.Seq, suggest.Labels("stale"), errors.New("boom")) {
		t.Fatalf("expected failed lookup applied")
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty list, got %v", c.Items)
	}
	if c.Phase() != PhaseClosed {
		t.Fatalf("expected closed phase, got %s", c.Phase())
	}
	if !c.NoOptionsFound() || !c.Expanded() {
		t.Fatalf("expected no results notice")
	}
	if got := c.StatusText(); got != "No search results" {
		t.Fatalf("unexpected status %q", got)
	}
	c.Escape()
	if c.NoOptionsFound() {
		t.Fatalf("expected notice dismissed by escape")
	}
}

func TestNoResultsNoticeDisabledByDefault(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	lookup := c.Type("zz").Lookup
	c.ApplyResults(lookup.Seq, nil, nil)
	if c.Expanded() {
		t.Fatalf("expected nothing expanded without the notice")
	}
}

func TestTypeOnOptionRedirectsToInput(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy", "Iceland")
	c.ArrowDown()
	ch := c.Type("l")
	if !ch.Redirected {
		t.Fatalf("expected keypress redirected")
	}
	if c.Query != "ital" {
		t.Fatalf("expected query ital, got %q", c.Query)
	}
	if c.Focus != FocusInput {
		t.Fatalf("expected input focus, got %s", c.Focus)
	}
	if c.Highlight != -1 {
		t.Fatalf("expected highlight reset, got %d", c.Highlight)
	}
	if ch.Lookup == nil || ch.Lookup.Query != "ital" {
		t.Fatalf("expected lookup for ital, got %+v", ch.Lookup)
	}
}

func TestRedirectAppendsAtEnd(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy")
	c.MoveCursorStart()
	c.ArrowDown()
	c.Type("l")
	if c.Query != "ital" {
		t.Fatalf("expected redirected text appended, got %q", c.Query)
	}
}

func TestBackspaceOnOptionRefocusesInput(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy")
	c.ArrowDown()
	ch := c.Backspace()
	if !ch.Redirected {
		t.Fatalf("expected backspace redirected")
	}
	if c.Query != "it" || c.Focus != FocusInput {
		t.Fatalf("unexpected state %q/%s", c.Query, c.Focus)
	}
}

func TestInsertAndDeleteQueryText(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	c.Type("ab")
	if c.Query != "ab" || c.QueryCursorPos() != 2 {
		t.Fatalf("unexpected query state %q/%d", c.Query, c.QueryCursorPos())
	}
	c.MoveCursorLeft()
	c.Type("z")
	if c.Query != "azb" {
		t.Fatalf("expected insert into middle, got %q", c.Query)
	}
	if c.QueryCursorPos() != 2 {
		t.Fatalf("expected cursor 2 after insert, got %d", c.QueryCursorPos())
	}
	c.Backspace()
	if c.Query != "ab" || c.QueryCursorPos() != 1 {
		t.Fatalf("unexpected state after backspace %q/%d", c.Query, c.QueryCursorPos())
	}
	c.MoveCursorStart()
	if ch := c.Backspace(); ch.Handled {
		t.Fatalf("expected backspace at start to do nothing")
	}
}

func TestDeleteWord(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	c.Type("united king")
	c.DeleteWord()
	if c.Query != "united " {
		t.Fatalf("expected last word deleted, got %q", c.Query)
	}
	c.DeleteWord()
	if c.Query != "" {
		t.Fatalf("expected query emptied, got %q", c.Query)
	}
}

func TestCursorWordMotion(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	c.Type("new south wales")
	if !c.MoveCursorWordBackward() || c.QueryCursorPos() != 10 {
		t.Fatalf("expected cursor at 10, got %d", c.QueryCursorPos())
	}
	c.MoveCursorWordBackward()
	if c.QueryCursorPos() != 4 {
		t.Fatalf("expected cursor at 4, got %d", c.QueryCursorPos())
	}
	if !c.MoveCursorWordForward() || c.QueryCursorPos() != 10 {
		t.Fatalf("expected cursor at 10, got %d", c.QueryCursorPos())
	}
	c.MoveCursorEnd()
	if c.MoveCursorRight() {
		t.Fatalf("expected no move past end")
	}
	if c.MoveCursorWordForward() {
		t.Fatalf("expected no word move past end")
	}
}

func TestCursorMotionIgnoredOnOption(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy")
	c.ArrowDown()
	if c.MoveCursorLeft() || c.MoveCursorStart() {
		t.Fatalf("expected cursor motion ignored while an option holds focus")
	}
}

func TestSetQuery(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	ch := c.SetQuery("fra")
	if ch.Lookup == nil || ch.Lookup.Query != "fra" {
		t.Fatalf("expected lookup for fra, got %+v", ch.Lookup)
	}
	if c.QueryCursorPos() != 3 {
		t.Fatalf("expected cursor at end, got %d", c.QueryCursorPos())
	}
	if ch := c.SetQuery("fra"); ch.Handled {
		t.Fatalf("expected unchanged query to be a no-op")
	}
}

func TestBlurClosesAndSilences(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy", "Iceland")
	c.ArrowDown()
	ch := c.Blur()
	if ch.Confirmed != nil {
		t.Fatalf("expected no confirmation without confirm-on-blur")
	}
	if c.Expanded() || c.Focus != FocusNone {
		t.Fatalf("expected closed and unfocused")
	}
	if c.StatusText() != "" {
		t.Fatalf("expected silenced status, got %q", c.StatusText())
	}

	c.FocusInput()
	if !c.Open {
		t.Fatalf("expected menu reopened on refocus")
	}
	if c.Highlight != -1 {
		t.Fatalf("expected no highlight on refocus, got %d", c.Highlight)
	}
}

func TestConfirmOnBlur(t *testing.T) {
	c, _ := newTestCombobox(Options{ConfirmOnBlur: true})
	openWith(t, c, "ita", "Italy", "Iceland")
	c.ArrowDown()
	c.ArrowDown()
	ch := c.Blur()
	if ch.Confirmed == nil || ch.Confirmed.Label != "Iceland" {
		t.Fatalf("expected Iceland confirmed on blur, got %+v", ch.Confirmed)
	}
	if c.Query != "Iceland" {
		t.Fatalf("expected query Iceland, got %q", c.Query)
	}
	if !c.ValidChoiceMade {
		t.Fatalf("expected valid choice recorded")
	}
	c.FocusInput()
	if c.Open {
		t.Fatalf("expected menu to stay closed after a valid choice")
	}
}

func TestConfirmOnBlurIgnoresHover(t *testing.T) {
	c, _ := newTestCombobox(Options{ConfirmOnBlur: true})
	openWith(t, c, "ita", "Italy", "Iceland")
	c.Hover(1)
	if ch := c.Blur(); ch.Confirmed != nil {
		t.Fatalf("expected hovered option not confirmed, got %+v", ch.Confirmed)
	}
	if c.Query != "ita" {
		t.Fatalf("expected query kept, got %q", c.Query)
	}
}

func TestResultsArrivingAfterBlur(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	lookup := c.Type("ita").Lookup
	c.Blur()
	if c.ApplyResults(lookup.Seq, suggest.Labels("Italy"), nil) {
		t.Fatalf("expected results discarded after blur")
	}
	if c.Open {
		t.Fatalf("expected menu closed")
	}
}

func TestRefocusAfterDroppedLookupLooksUpAgain(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "i", "Italy", "Iceland", "India")
	dropped := c.Type("c").Lookup
	c.Blur()
	if c.ApplyResults(dropped.Seq, suggest.Labels("Iceland"), nil) {
		t.Fatalf("expected results discarded after blur")
	}
	if len(c.Items) != 0 || c.ValidChoiceMade {
		t.Fatalf("expected previous query's items dropped, got %v", c.Items)
	}

	ch := c.FocusInput()
	if ch.Lookup == nil || ch.Lookup.Query != "ic" {
		t.Fatalf("expected lookup for ic on refocus, got %+v", ch.Lookup)
	}
	if c.Open || c.Expanded() {
		t.Fatalf("expected menu closed until fresh results arrive")
	}
	if got := c.StatusText(); got != "" {
		t.Fatalf("expected silent status while looking up again, got %q", got)
	}

	if !c.ApplyResults(ch.Lookup.Seq, suggest.Labels("Iceland"), nil) {
		t.Fatalf("expected fresh results applied")
	}
	if !c.Open || len(c.Items) != 1 || c.Items[0].Label != "Iceland" {
		t.Fatalf("expected menu with Iceland, got open=%v items=%v", c.Open, c.Items)
	}
	if got := c.StatusText(); got != "1 result is available." {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestRefresh(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	if ch := c.Refresh(); ch.Lookup != nil {
		t.Fatalf("expected no refresh for empty query")
	}
	openWith(t, c, "ita", "Italy")
	ch := c.Refresh()
	if ch.Lookup == nil || ch.Lookup.Query != "ita" {
		t.Fatalf("expected refresh lookup, got %+v", ch.Lookup)
	}
	c.ApplyResults(ch.Lookup.Seq, suggest.Labels("Italy", "Mauritania"), nil)
	if len(c.Items) != 2 {
		t.Fatalf("expected refreshed items, got %v", c.Items)
	}
}

func TestStatusText(t *testing.T) {
	c, _ := newTestCombobox(Options{})
	openWith(t, c, "ita", "Italy", "Iceland")
	if got := c.StatusText(); got != "2 results are available." {
		t.Fatalf("unexpected status %q", got)
	}
	c.ArrowDown()
	if got := c.StatusText(); got != "2 results are available. Italy 1 of 2 is highlighted" {
		t.Fatalf("unexpected status %q", got)
	}
}
