package report

import (
	"io"

	"github.com/ezrec/simplecpu/emulator"
	iox "github.com/ezrec/simplecpu/io"
	"github.com/ezrec/simplecpu/translate"
)

var f = translate.From

// Reporter writes snapshots as register and memory tables.
type Reporter struct {
	Output io.Writer // Destination of the tables.
	Style  Style     // Table style; STYLE_AUTO checks for a terminal.
}

// RegisterTable builds the register table, R0 through R7.
func RegisterTable(registers []int) (tbl *Table) {
	tbl = &Table{Headers: []string{f("Register"), f("Value")}}
	for n, value := range registers {
		tbl.AddRow(n, value)
	}
	return
}

// MemoryTable builds a table of memory cells.
func MemoryTable(cells []iox.Datum) (tbl *Table) {
	tbl = &Table{Headers: []string{f("Address"), f("Value")}}
	for _, cell := range cells {
		tbl.AddRow(cell.Address, cell.Value)
	}
	return
}

// style resolves the reporter's style.
func (rep *Reporter) style() Style {
	if rep.Style == STYLE_AUTO {
		return StyleFor(rep.Output)
	}
	return rep.Style
}

// Report writes the registers and non-zero memory of snap.
func (rep *Reporter) Report(snap emulator.Snapshot) (err error) {
	style := rep.style()

	sections := []struct {
		title string
		table *Table
	}{
		{f("Registers:"), RegisterTable(snap.Registers[:])},
		{f("Memory:"), MemoryTable(snap.Memory)},
	}

	for _, section := range sections {
		_, err = io.WriteString(rep.Output, section.title+"\n"+section.table.Render(style))
		if err != nil {
			return
		}
	}

	return
}
