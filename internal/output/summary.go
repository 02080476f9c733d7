package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders a table of matching lines and occurrences per file.
func WriteSummary(w io.Writer, rep Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Lines", "Occurrences"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	files, lines, occurrences := 0, 0, 0
	for _, path := range rep.Files() {
		records := rep.Records(path)
		n := 0
		for _, r := range records {
			n += len(r.Offsets)
		}
		table.Append([]string{path, strconv.Itoa(len(records)), strconv.Itoa(n)})
		files++
		lines += len(records)
		occurrences += n
	}

	table.SetFooter([]string{
		"Total files " + strconv.Itoa(files),
		strconv.Itoa(lines),
		strconv.Itoa(occurrences),
	})
	table.Render()
}
