package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const (
	promptSelection  = "\nEnter your selection: "
	promptStudent    = "What is the student's name: "
	promptAssignment = "What is the assignment name: "
)

// Menu choices
const (
	choiceGrade = "1"
	choiceStats = "2"
	choiceGraph = "3"
)

// runSession is the root command: menu, one selection, one query
func runSession(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	// Data files are read before the menu is shown
	gb, err := a.openGradebook()
	if err != nil {
		return err
	}

	q := newQuerier(gb, cmd.OutOrStdout(), a.syllabus.Histogram.Edges)
	return newSession(q, cmd.InOrStdin()).run(cmd.Context())
}

// session runs exactly one interactive query
type session struct {
	q  *querier
	in *bufio.Reader
}

func newSession(q *querier, in io.Reader) *session {
	return &session{q: q, in: newLineReader(in)}
}

func (s *session) run(ctx context.Context) error {
	out := s.q.out
	fmt.Fprintln(out, "1. Student grade")
	fmt.Fprintln(out, "2. Assignment statistics")
	fmt.Fprintln(out, "3. Assignment graph")

	switch readLine(s.in, out, promptSelection) {
	case choiceGrade:
		return s.q.grade(readLine(s.in, out, promptStudent))
	case choiceStats:
		return s.q.stats(readLine(s.in, out, promptAssignment))
	case choiceGraph:
		return s.q.graph(ctx, readLine(s.in, out, promptAssignment))
	default:
		fmt.Fprintln(out, "Invalid selection")
		return nil
	}
}

func newLineReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine prints prompt and returns the next input line, trimmed.
// EOF reads as whatever was typed before it, possibly "".
func readLine(in *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
