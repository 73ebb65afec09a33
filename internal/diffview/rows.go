// Package diffview turns unified diff text into rows suitable for a
// two-column preview pane.
package diffview

import (
	"bufio"
	"strings"
)

// RowKind is the semantic type of a preview row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
)

// Row is one visual row. Left holds the old side, Right the new side;
// hunk rows carry the header text instead.
type Row struct {
	Left   string
	Right  string
	Header string
	Kind   RowKind
}

// Rows parses unified diff text. Within a hunk, each run of deletions is
// paired in order with the additions that follow it, so a changed line
// renders as one replace row; leftovers stay one-sided. File metadata
// lines are dropped.
func Rows(unified string) []Row {
	s := bufio.NewScanner(strings.NewReader(unified))
	s.Buffer(make([]byte, 0, 64*1024), 10*1024*1024) // allow large lines

	rows := make([]Row, 0, 256)
	var pendingDel []string
	flush := func() {
		for _, l := range pendingDel {
			rows = append(rows, Row{Left: l, Kind: RowDel})
		}
		pendingDel = pendingDel[:0]
	}

	inHunk := false
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "@@") {
			flush()
			rows = append(rows, Row{Header: line, Kind: RowHunk})
			inHunk = true
			continue
		}
		if !inHunk || strings.HasPrefix(line, "\\") {
			// File headers before the first hunk and "\ No newline"
			// markers carry no line content.
			continue
		}
		if line == "" {
			flush()
			rows = append(rows, Row{Kind: RowContext})
			continue
		}
		body := line[1:]
		switch line[0] {
		case ' ':
			flush()
			rows = append(rows, Row{Left: body, Right: body, Kind: RowContext})
		case '-':
			pendingDel = append(pendingDel, body)
		case '+':
			if len(pendingDel) > 0 {
				rows = append(rows, Row{Left: pendingDel[0], Right: body, Kind: RowReplace})
				pendingDel = pendingDel[1:]
			} else {
				rows = append(rows, Row{Right: body, Kind: RowAdd})
			}
		}
	}
	flush()
	return rows
}
