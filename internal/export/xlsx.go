// Package export renders a day plan into the fixed one-sheet xlsx layout
// the facilities print and file.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hokago/nichian/internal/services"
)

const (
	SheetName   = "日案"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerColor = "D9E1F2"
	lastRow     = 36
)

// ChildCells are the child name slots, filled row by row.
var ChildCells = []string{
	"B6", "C6", "D6", "E6", "F6",
	"B7", "C7", "D7", "E7", "F7",
	"B8", "C8", "D8", "E8", "F8",
}

var merges = [][2]string{
	{"B1", "F1"}, {"A2", "A5"}, {"A6", "A8"},
	{"B9", "F9"}, {"B10", "F10"},
	{"B11", "C11"}, {"D11", "E11"},
	{"A12", "A32"}, {"B12", "C32"}, {"D12", "E32"}, {"F12", "F32"},
	{"B33", "F36"},
}

// Filename is the attachment name for a plan dated date. Anything that is
// not a date becomes "plan" so the header never carries client text.
func Filename(date string) string {
	name := "plan"
	if d, ok := services.ParseDate(date); ok {
		name = d.Format("2006-01-02")
	}
	return fmt.Sprintf("nichian_%s.xlsx", name)
}

// Write renders p and streams the workbook to w.
func Write(w io.Writer, p services.PlanInput) error {
	f, err := Build(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Build lays out p on a new workbook.
func Build(p services.PlanInput) (*excelize.File, error) {
	f := excelize.NewFile()
	sh := SheetName
	if err := f.SetSheetName("Sheet1", sh); err != nil {
		return nil, err
	}
	l := &layout{f: f, sheet: sh}

	l.colWidth("A", "A", 15.5)
	l.colWidth("B", "F", 11.3)
	for _, m := range merges {
		l.merge(m[0], m[1])
	}
	l.rowHeight(1, 18.5)
	l.rowHeight(3, 25)
	l.rowHeight(10, 35.5)

	// staff
	members := p.StaffConfig.Members
	member := func(i int) string {
		if i < len(members) {
			return members[i]
		}
		return ""
	}
	l.set("B1", "スタッフ")
	l.set("A2", dateLabel(p.Date))
	l.set("B2", "メイン")
	l.set("C2", "サブ")
	l.set("D2", "メンバー")
	l.set("E2", "メンバー")
	l.set("F2", "メンバー")
	l.set("B3", p.StaffConfig.Main)
	l.set("C3", p.StaffConfig.Sub)
	l.set("D3", member(0))
	l.set("E3", member(1))
	l.set("F3", member(2))
	l.set("B4", "メンバー")
	l.set("C4", "メンバー")
	l.set("B5", member(3))
	l.set("C5", member(4))

	// children, extra names beyond the grid are dropped
	l.set("A6", "児童名")
	for i, name := range p.ChildrenNames {
		if i >= len(ChildCells) {
			break
		}
		l.set(ChildCells[i], name)
	}

	l.set("A9", "活動")
	l.set("B9", p.ActivityName)
	l.set("A10", "目的・狙い")
	l.set("B10", p.Purpose)

	l.set("A11", "時間")
	l.set("B11", "流れ")
	l.set("D11", "スタッフの動き")
	l.set("F11", "準備物")
	l.set("B12", p.Flow)
	l.set("D12", p.StaffActions)
	l.set("F12", p.Preparations)

	l.set("A33", "連絡事項")
	l.set("B33", p.Notes)

	// borders everywhere first, then the specific cell styles on top
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	wrapTop := &excelize.Alignment{WrapText: true, Vertical: "top"}

	l.styleRange(&excelize.Style{Border: border}, "A1", fmt.Sprintf("F%d", lastRow))
	l.style(&excelize.Style{Border: border, Fill: fill, Font: &excelize.Font{Bold: true, Size: 12}, Alignment: &excelize.Alignment{Horizontal: "center"}}, "B1")
	l.style(&excelize.Style{Border: border, Font: &excelize.Font{Bold: true}, Alignment: center}, "A2")
	l.style(&excelize.Style{Border: border, Font: &excelize.Font{Bold: true}}, "B2", "C2", "D2", "E2", "F2", "B4", "C4")
	l.style(&excelize.Style{Border: border, Fill: fill, Font: &excelize.Font{Bold: true}, Alignment: center}, "A6")
	l.style(&excelize.Style{Border: border, Fill: fill, Font: &excelize.Font{Bold: true}}, "A9", "A10", "A11", "B11", "D11", "F11", "A33")
	l.style(&excelize.Style{Border: border, Alignment: wrapTop}, "B10", "B12", "D12", "F12", "B33")

	if l.err != nil {
		f.Close()
		return nil, l.err
	}
	return f, nil
}

// layout records the first excelize error so the layout reads top to bottom.
type layout struct {
	f     *excelize.File
	sheet string
	err   error
}

func (l *layout) set(cell, value string) {
	if l.err == nil {
		l.err = l.f.SetCellStr(l.sheet, cell, value)
	}
}

func (l *layout) merge(from, to string) {
	if l.err == nil {
		l.err = l.f.MergeCell(l.sheet, from, to)
	}
}

func (l *layout) colWidth(from, to string, w float64) {
	if l.err == nil {
		l.err = l.f.SetColWidth(l.sheet, from, to, w)
	}
}

func (l *layout) rowHeight(row int, h float64) {
	if l.err == nil {
		l.err = l.f.SetRowHeight(l.sheet, row, h)
	}
}

func (l *layout) newStyle(s *excelize.Style) int {
	if l.err != nil {
		return 0
	}
	id, err := l.f.NewStyle(s)
	l.err = err
	return id
}

func (l *layout) styleRange(s *excelize.Style, from, to string) {
	id := l.newStyle(s)
	if l.err == nil {
		l.err = l.f.SetCellStyle(l.sheet, from, to, id)
	}
}

func (l *layout) style(s *excelize.Style, cells ...string) {
	id := l.newStyle(s)
	for _, c := range cells {
		if l.err != nil {
			return
		}
		l.err = l.f.SetCellStyle(l.sheet, c, c, id)
	}
}
