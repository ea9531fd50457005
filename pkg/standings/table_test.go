package standings

import (
	"reflect"
	"strings"
	"testing"

	"f1statsboard/pkg/model"
)

func rowsOfColumn(t *Table, column int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[column]
	}
	return out
}

func TestSortNumericColumnAscendingFirst(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"a", "10"},
		{"b", "2"},
		{"c", "9"},
	}}

	dir := tbl.Sort(1)
	if dir != Ascending {
		t.Fatalf("first sort direction = %q, want %q", dir, Ascending)
	}
	got := rowsOfColumn(tbl, 1)
	// "10" after "2" and "9" proves numeric comparison, not lexicographic
	want := []string{"2", "9", "10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted column = %v, want %v", got, want)
	}
}

func TestSortTwiceReverses(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"a", "3"},
		{"b", "1"},
		{"c", "2"},
	}}

	tbl.Sort(1)
	first := rowsOfColumn(tbl, 0)

	dir := tbl.Sort(1)
	if dir != Descending {
		t.Fatalf("second sort direction = %q, want %q", dir, Descending)
	}
	second := rowsOfColumn(tbl, 0)
	for i := range first {
		if first[i] != second[len(second)-1-i] {
			t.Fatalf("second sort is not the reverse of the first: %v vs %v", first, second)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"first", "5"},
		{"second", "5"},
		{"third", "1"},
		{"fourth", "5"},
	}}

	tbl.Sort(1)
	got := rowsOfColumn(tbl, 0)
	want := []string{"third", "first", "second", "fourth"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tied rows changed relative order: %v, want %v", got, want)
	}

	// repeated sorts on the same tied values must not shuffle them
	tbl.Sort(1)
	tbl.Sort(1)
	got = rowsOfColumn(tbl, 0)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tied rows shuffled after re-sorting: %v, want %v", got, want)
	}
}

func TestSortLexicographicColumn(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"Charlie"},
		{"alice"},
		{"Bob"},
	}}

	tbl.Sort(0)
	got := rowsOfColumn(tbl, 0)
	want := []string{"alice", "Bob", "Charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("name column = %v, want %v", got, want)
	}
}

func TestSortEmptyTableStillToggles(t *testing.T) {
	tbl := &Table{}

	if dir := tbl.Sort(0); dir != Ascending {
		t.Fatalf("first sort on empty table = %q, want %q", dir, Ascending)
	}
	if dir := tbl.Sort(0); dir != Descending {
		t.Fatalf("second sort on empty table = %q, want %q", dir, Descending)
	}
}

func TestSortClearsOtherColumns(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"a", "1"},
		{"b", "2"},
	}}

	tbl.Sort(0)
	tbl.Sort(1)
	if got := tbl.State(0); got != None {
		t.Fatalf("column 0 state = %q, want cleared", got)
	}
	if got := tbl.State(1); got != Ascending {
		t.Fatalf("column 1 state = %q, want %q", got, Ascending)
	}
}

func TestSortMixedColumnDoesNotPanic(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"10"},
		{"banana"},
		{"2"},
	}}

	// per-comparison fallback: just ensure every row survives the sort
	tbl.Sort(0)
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows lost during mixed-column sort: %d", len(tbl.Rows))
	}
}

func TestNewTableRowOrderMatchesColumns(t *testing.T) {
	tbl := NewTable([]model.DriverRecord{
		{Name: "Alice", StartPos: 3, Points: 25, Laps: 57, Diff: 2},
	})

	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}
	row := tbl.Rows[0]
	if len(row) != len(Columns) {
		t.Fatalf("row width = %d, want %d", len(row), len(Columns))
	}
	if row[0] != "Alice" {
		t.Errorf("name cell = %q", row[0])
	}
	if row[1] != "3" {
		t.Errorf("start cell = %q", row[1])
	}
	if row[3] != "+2" {
		t.Errorf("diff cell = %q", row[3])
	}
	if row[len(row)-1] != "25" {
		t.Errorf("points cell = %q", row[len(row)-1])
	}
}

func TestRenderContainsHeaderAndRows(t *testing.T) {
	tbl := NewTable([]model.DriverRecord{
		{Name: "Alice", Points: 25},
		{Name: "Bob", Points: 18},
	})

	text := tbl.Render()
	for _, want := range []string{"Driver", "Points", "Alice", "Bob"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered table missing %q:\n%s", want, text)
		}
	}
}
