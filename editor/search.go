package editor

import (
	"outliner/outline"
	"outliner/ui"
)

// searchChunk is how many nodes one SearchStepEvent visits. Small
// enough to keep the loop responsive on huge documents, large enough
// that typical notes finish in one step.
const searchChunk = 256

func (e *Editor) openFindDialog() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	d := ui.NewFindDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnChange = func(query string) {
		e.startSearch(query)
	}
	d.OnNavigate = func(id outline.NodeID) {
		e.jumpToNode(id)
	}
	d.OnCancel = func() {
		e.dialog = nil
		e.search = nil
		e.searchDoc = nil
	}
	e.dialog = d
}

func (e *Editor) startSearch(query string) {
	doc := e.activeDoc()
	if doc == nil || e.dialog == nil {
		return
	}
	e.search = doc.Eng.Tree().NewSearch(query, 0)
	e.searchDoc = doc
	e.dialog.Matches = nil
	e.dialog.MatchIndex = 0
	e.dialog.Searching = !e.search.Done()
	if e.dialog.Searching {
		e.postSearchStep()
	}
}

func (e *Editor) postSearchStep() {
	ev := &SearchStepEvent{}
	ev.SetEventNow()
	e.screen.PostEvent(ev)
}

// stepSearch advances the running search by one chunk. A mutation
// since the last step invalidates the cursor; the search restarts
// over the new tree with the same query.
func (e *Editor) stepSearch() {
	if e.search == nil || e.dialog == nil || e.dialog.Type != ui.DialogFind {
		e.search = nil
		e.searchDoc = nil
		return
	}
	if e.searchDoc != e.activeDoc() {
		e.search = nil
		e.searchDoc = nil
		e.dialog.Searching = false
		return
	}
	if !e.search.Valid() {
		e.startSearch(e.dialog.Input)
		return
	}

	done := e.search.Step(searchChunk)
	e.dialog.Matches = e.search.Matches()
	if done {
		e.dialog.Searching = false
		e.search = nil
		e.searchDoc = nil
	} else {
		e.postSearchStep()
	}
}
