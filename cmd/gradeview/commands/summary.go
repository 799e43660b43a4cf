package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/gradeview/internal/gradebook"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show what was loaded from the data directory",
	Long: `Show record counts and the assignment table for the loaded gradebook.

Useful for checking data files before running queries. Lines that could not
be parsed are not counted; run with --verbose to see per-file skip counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}

		gb, err := a.openGradebook()
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), a.syllabus.Course.Name, gb)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSummary(w io.Writer, course string, gb *gradebook.Gradebook) {
	s := gb.Summary()

	title := "Gradebook Summary"
	if course != "" {
		title = course + " - " + title
	}
	PrintHeader(w, title)

	const keyWidth = 17
	PrintKeyValue(w, "Students", strconv.Itoa(s.Students), keyWidth)
	PrintKeyValue(w, "Assignments", strconv.Itoa(s.Assignments), keyWidth)
	PrintKeyValue(w, "Submissions", strconv.Itoa(s.Submissions), keyWidth)
	PrintKeyValue(w, "Assignment points", formatPoints(s.AssignmentPoints), keyWidth)
	PrintKeyValue(w, "Course total", formatPoints(s.TotalPoints), keyWidth)
	PrintKeyValue(w, "Fingerprint", gb.Fingerprint(), keyWidth)
	PrintSeparator(w)

	if !s.SubmissionsFound {
		PrintWarning(w, "no submissions data found")
	}

	widths := []int{8, 28, 8, 7}
	PrintTableHeader(w, []string{"ID", "Assignment", "Points", "Scores"}, widths)
	for _, asg := range gb.Assignments.All() {
		PrintTableRow(w, []string{
			asg.ID,
			asg.Name,
			formatPoints(asg.Points),
			strconv.Itoa(len(gb.Submissions.ForAssignment(asg.ID))),
		}, widths)
	}
	fmt.Fprintln(w)
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
