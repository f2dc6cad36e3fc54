package suite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
)

// FormatReport writes a per-case line and a summary. With details, the
// output of failing cases is included.
func FormatReport(w io.Writer, rep *Report, details bool) {
	for _, res := range rep.Results {
		name := fmt.Sprintf("%s/%s", res.Suite, res.Name)
		if res.Passed() {
			fmt.Fprintf(w, "%s %s %s\n", color.Green.Sprint("PASS"), name, color.Gray.Sprintf("(%s, %s)", res.Version, res.Duration.Round(time.Microsecond)))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", color.Red.Sprint("FAIL"), color.Bold.Sprint(name), color.Gray.Sprintf("(%s)", res.Version))
		for _, f := range res.Failures {
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(f, "\n", "\n    "))
		}
		if details {
			fmt.Fprintln(w, color.Cyan.Sprint("    Output:"))
			if len(res.Output) == 0 {
				fmt.Fprintln(w, "      (none)")
			}
			for _, line := range res.Output {
				fmt.Fprintf(w, "      %s\n", line)
			}
			if res.Err != nil {
				fmt.Fprintf(w, "    %s %s\n", color.Cyan.Sprint("Error:"), res.Err)
			}
		}
	}

	fmt.Fprintln(w, color.Gray.Sprint(strings.Repeat("-", 60)))
	summary := fmt.Sprintf("%d passed, %d failed, %d total in %s", rep.Passed(), rep.Failed(), len(rep.Results), rep.Duration.Round(time.Microsecond))
	if rep.OK() {
		fmt.Fprintln(w, color.Green.Sprint(summary))
	} else {
		fmt.Fprintln(w, color.Red.Sprint(summary))
	}
}
