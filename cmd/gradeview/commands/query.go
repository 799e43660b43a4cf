package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gradeview/internal/gradebook"
	"github.com/wonny/gradeview/internal/histogram"
)

const (
	msgStudentNotFound    = "Student not found"
	msgAssignmentNotFound = "Assignment not found"
)

// graphWidth is the bar chart width for --no-tui output
const graphWidth = 60

var noTUI bool

var gradeCmd = &cobra.Command{
	Use:   "grade [student name]",
	Short: "Print a student's final grade",
	Long: `Print a student's final grade as a whole percent of the course total.

The name may be given unquoted; all arguments are joined with a space.
Without arguments the name is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, promptStudent, func(q *querier, name string) error {
			return q.grade(name)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [assignment name]",
	Short: "Print min, average and max score of an assignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, promptAssignment, func(q *querier, name string) error {
			return q.stats(name)
		})
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [assignment name]",
	Short: "Show a histogram of an assignment's scores",
	Long: `Show a histogram of an assignment's percent scores.

Opens a full-screen viewer (press any key to close). Use --no-tui to print
the chart to stdout instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, promptAssignment, func(q *querier, name string) error {
			return q.graph(cmd.Context(), name)
		})
	},
}

func init() {
	graphCmd.Flags().BoolVar(&noTUI, "no-tui", false, "print the histogram instead of opening the viewer")

	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
}

// displayFunc shows an assignment's scores; the interactive viewer by default
type displayFunc func(ctx context.Context, name string, scores []float64) error

// querier answers the three gradebook queries and writes user-facing output
type querier struct {
	gb      *gradebook.Gradebook
	out     io.Writer
	edges   []float64
	display displayFunc
}

func newQuerier(gb *gradebook.Gradebook, out io.Writer, edges []float64) *querier {
	q := &querier{gb: gb, out: out, edges: edges}
	q.display = func(ctx context.Context, name string, scores []float64) error {
		return histogram.Display(ctx, name, scores, q.edges)
	}
	return q
}

// plainDisplay writes the chart to out without a TUI
func (q *querier) plainDisplay(_ context.Context, name string, scores []float64) error {
	h, err := histogram.Bucket(scores, q.edges)
	if err != nil {
		return err
	}
	fmt.Fprint(q.out, histogram.Render(name+" Distribution", h, graphWidth, histogram.DefaultStyles()))
	return nil
}

func (q *querier) grade(name string) error {
	pct, err := q.gb.StudentGrade(name)
	if err != nil {
		return q.notFound(err)
	}
	fmt.Fprintf(q.out, "%d%%\n", pct)
	return nil
}

func (q *querier) stats(name string) error {
	st, err := q.gb.AssignmentStatistics(name)
	if err != nil {
		return q.notFound(err)
	}
	fmt.Fprintf(q.out, "Min: %d%%\n", st.Min)
	fmt.Fprintf(q.out, "Avg: %d%%\n", st.Avg)
	fmt.Fprintf(q.out, "Max: %d%%\n", st.Max)
	return nil
}

func (q *querier) graph(ctx context.Context, name string) error {
	asg, scores, err := q.gb.AssignmentScores(name)
	if err != nil {
		return q.notFound(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return q.display(ctx, asg.Name, scores)
}

// notFound prints the user-facing message for lookup misses; other errors
// pass through
func (q *querier) notFound(err error) error {
	switch {
	case errors.Is(err, gradebook.ErrStudentNotFound):
		fmt.Fprintln(q.out, msgStudentNotFound)
		return nil
	case errors.Is(err, gradebook.ErrAssignmentNotFound):
		fmt.Fprintln(q.out, msgAssignmentNotFound)
		return nil
	default:
		return err
	}
}

// runQuery loads the gradebook and answers one query. The name comes from
// args, or from stdin after prompt when args are empty.
func runQuery(cmd *cobra.Command, args []string, prompt string, fn func(q *querier, name string) error) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	gb, err := a.openGradebook()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		name = readLine(newLineReader(cmd.InOrStdin()), out, prompt)
	}

	q := newQuerier(gb, out, a.syllabus.Histogram.Edges)
	if noTUI {
		q.display = q.plainDisplay
	}

	return fn(q, name)
}
