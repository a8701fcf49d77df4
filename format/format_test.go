package format

import (
	"strings"
	"testing"

	"outliner/outline"
)

func TestFromTextPrefixes(t *testing.T) {
	cases := []struct {
		line string
		kind outline.Kind
		todo outline.TodoState
		text string
	}{
		{"- plain item", outline.KindItem, outline.TodoNone, "plain item"},
		{"[] open task", outline.KindTodo, outline.TodoPending, "open task"},
		{"[ ] spaced box", outline.KindTodo, outline.TodoPending, "spaced box"},
		{"[-] started", outline.KindTodo, outline.TodoInProgress, "started"},
		{"[x] finished", outline.KindTodo, outline.TodoComplete, "finished"},
		{"[X] finished loud", outline.KindTodo, outline.TodoComplete, "finished loud"},
		{"[?] unclear", outline.KindTodo, outline.TodoUnknown, "unclear"},
		{"no marker at all", outline.KindItem, outline.TodoNone, "no marker at all"},
		{"- ", outline.KindItem, outline.TodoNone, ""},
		{"[]", outline.KindTodo, outline.TodoPending, ""},
	}
	for _, c := range cases {
		tr := FromText(c.line)
		if tr.Len() != 1 {
			t.Fatalf("%q: parsed %d nodes, want 1", c.line, tr.Len())
		}
		n := tr.Root().Children()[0]
		if n.Kind != c.kind || n.Todo != c.todo || n.Text != c.text {
			t.Errorf("%q: got kind=%d todo=%d text=%q, want kind=%d todo=%d text=%q",
				c.line, n.Kind, n.Todo, n.Text, c.kind, c.todo, c.text)
		}
	}
}

func TestFromTextNesting(t *testing.T) {
	src := strings.Join([]string{
		"- top",
		"    - child",
		"        [] grandchild",
		"    - second child",
		"- next top",
	}, "\n")
	tr := FromText(src)
	tops := tr.Root().Children()
	if len(tops) != 2 {
		t.Fatalf("got %d top nodes, want 2", len(tops))
	}
	top := tops[0]
	if len(top.Children()) != 2 {
		t.Fatalf("top has %d children, want 2", len(top.Children()))
	}
	gc := top.Children()[0].Children()
	if len(gc) != 1 || gc[0].Text != "grandchild" {
		t.Fatalf("grandchild missing: %v", gc)
	}
	if gc[0].Todo != outline.TodoPending {
		t.Error("grandchild lost todo state")
	}
}

func TestMalformedIndentRoundsDown(t *testing.T) {
	// 6 spaces floors to level 1 below the top node, never an error.
	src := "- top\n      - ragged"
	tr := FromText(src)
	tops := tr.Root().Children()
	if len(tops) != 1 {
		t.Fatalf("got %d top nodes, want 1", len(tops))
	}
	kids := tops[0].Children()
	if len(kids) != 1 || kids[0].Text != "ragged" {
		t.Fatalf("ragged line not attached as child: %v", kids)
	}
}

func TestTabsCountAsFourSpaces(t *testing.T) {
	tr := FromText("- top\n\t- tabbed")
	kids := tr.Root().Children()[0].Children()
	if len(kids) != 1 || kids[0].Text != "tabbed" {
		t.Fatal("tab indentation not treated as one level")
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	tr := FromText("- one\n\n   \n- two\n")
	if tr.Len() != 2 {
		t.Errorf("parsed %d nodes, want 2", tr.Len())
	}
}

func TestOverIndentedFirstLine(t *testing.T) {
	// A document starting deeper than level 0 still parses; the
	// orphan becomes a top-level node.
	tr := FromText("        - floating")
	if tr.Len() != 1 {
		t.Fatalf("parsed %d nodes, want 1", tr.Len())
	}
	if got := tr.Root().Children()[0].Text; got != "floating" {
		t.Errorf("text = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"- projects",
		"    [] write the parser",
		"        [-] tokenizer",
		"        [x] grammar notes",
		"    [?] maybe a linter",
		"- groceries",
		"    - milk",
		"",
	}, "\n")
	tr := FromText(src)
	if got := ToText(tr); got != src {
		t.Errorf("round trip changed the document:\n got: %q\nwant: %q", got, src)
	}
}

func TestToTextIgnoresFoldState(t *testing.T) {
	tr := FromText("- top\n    - hidden\n")
	top := tr.Root().Children()[0]
	tr.SetFolded(top.ID, true, false)
	if !strings.Contains(ToText(tr), "hidden") {
		t.Error("folded content dropped on save")
	}
}

func TestMarshalSubtreesRebasesIndent(t *testing.T) {
	tr := FromText("- top\n    - inner\n        - deep\n")
	inner := tr.Root().Children()[0].Children()[0]
	got := MarshalSubtrees(tr, []outline.NodeID{inner.ID})
	want := "- inner\n    - deep\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
