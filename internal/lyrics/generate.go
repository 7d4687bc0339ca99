package lyrics

import (
	"bufio"
	"io"
	"strings"
)

// Generate serializes lines back to LRC text. Blank lines are dropped,
// untimed lines are written without a timestamp and negative times are
// written as [00:00.00].
func Generate(lines []Line) string {
	out := lines
	copied := false
	for i, line := range lines {
		if !line.Timed || line.Time >= 0 {
			continue
		}
		if !copied {
			out = cloneLines(lines)
			copied = true
		}
		out[i].Time = 0
	}

	var sb strings.Builder
	// Only an invalid time makes WriteLRC fail.
	_ = WriteLRC(&sb, out)
	return sb.String()
}

// WriteLRC writes the generated LRC text for lines to w.
func WriteLRC(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	first := true
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		if !first {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		first = false

		if line.Timed {
			ts, err := FormatTimestamp(line.Time)
			if err != nil {
				return err
			}
			if _, err := bw.WriteString(ts + " "); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(text); err != nil {
			return err
		}
	}
	return bw.Flush()
}
