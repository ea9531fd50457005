package standings

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"f1statsboard/pkg/helper"
	"f1statsboard/pkg/model"
)

// Direction is the sort state of a single column. Only the column the user
// sorted last carries a non-None direction.
type Direction string

const (
	None       Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Columns is the header row, in the same order as the DriverRecord fields.
var Columns = []string{
	"Driver", "Start", "Finish", "Diff", "Races", "Sprints", "Laps",
	"Wins", "SprWins", "Podiums", "Pole", "SprPole", "FastLaps",
	"SprFastLaps", "Outs", "DSQ", "SprOuts", "Points",
}

// Table is the sortable standings table. Rows hold display strings; the
// comparator re-parses them per comparison, the same way a rendered table
// sorts on its visible cell text.
type Table struct {
	Rows [][]string

	state map[int]Direction
}

var collator = collate.New(language.English, collate.Loose)

func NewTable(drivers []model.DriverRecord) *Table {
	rows := make([][]string, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, []string{
			d.Name,
			formatNum(d.StartPos),
			formatNum(d.FinishPos),
			helper.PointsDiff(d.Diff),
			formatNum(d.Races),
			formatNum(d.Sprints),
			formatNum(d.Laps),
			formatNum(d.Wins),
			formatNum(d.SprintWins),
			formatNum(d.Podiums),
			formatNum(d.Pole),
			formatNum(d.SprintPole),
			formatNum(d.FastLaps),
			formatNum(d.SprintFastLaps),
			formatNum(d.Outs),
			formatNum(d.Dsq),
			formatNum(d.SprintOuts),
			formatNum(d.Points),
		})
	}
	return &Table{
		Rows:  rows,
		state: map[int]Direction{},
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sort reorders the rows by the given column and returns the new direction.
// A column whose previous state was not ascending sorts ascending, so the
// first sort on any column is ascending and repeated sorts toggle. The sort
// is stable: rows with equal keys keep their relative order. After sorting,
// only the invoked column carries a direction; all other columns are cleared.
// An empty table still toggles the direction.
func (t *Table) Sort(column int) Direction {
	dir := Ascending
	if t.state[column] == Ascending {
		dir = Descending
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		c := compareCells(cell(t.Rows[i], column), cell(t.Rows[j], column))
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
	t.state = map[int]Direction{column: dir}
	return dir
}

// State returns the direction recorded for the column, None if the column
// was not the last one sorted.
func (t *Table) State(column int) Direction {
	return t.state[column]
}

func cell(row []string, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return row[column]
}

// compareCells compares two cell texts numerically when both parse as
// numbers and as locale-aware strings otherwise. The numeric-or-not choice
// is made per comparison, not per column, so a column mixing numbers and
// text can order inconsistently. That matches the rendered-table behavior
// this sorter replaces.
func compareCells(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return collator.CompareString(a, b)
}

// Render writes the table as text for the /standings.txt view and log dumps.
func (t *Table) Render() string {
	var b bytes.Buffer
	w := table.NewWriter()
	w.SetOutputMirror(&b)
	w.SetStyle(table.StyleRounded)
	w.AppendSeparator()
	header := make(table.Row, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	w.AppendHeader(header)
	for _, row := range t.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		w.AppendRow(r)
	}
	w.Render()
	return b.String()
}
