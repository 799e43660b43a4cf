package gradebook

import (
	"fmt"
	"math"
	"sort"
)

// Statistics summarizes the score distribution of one assignment.
// All percentages are truncated toward zero.
type Statistics struct {
	AssignmentID string `json:"assignment_id"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
	Min          int    `json:"min"`
	Avg          int    `json:"avg"`
	Max          int    `json:"max"`
}

// Summary 로드된 데이터 개요
type Summary struct {
	Students         int     `json:"students"`
	Assignments      int     `json:"assignments"`
	Submissions      int     `json:"submissions"`
	AssignmentPoints float64 `json:"assignment_points"`
	TotalPoints      float64 `json:"total_points"`
	SubmissionsFound bool    `json:"submissions_found"`
}

// StudentGrade returns the student's final grade as a whole percentage.
//
// Every assignment contributes score% × max points; an assignment with no
// submission contributes zero. The sum is divided by the fixed course total
// and rounded half to even.
func (g *Gradebook) StudentGrade(name string) (int, error) {
	sid, ok := g.Students.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrStudentNotFound, name)
	}

	total := 0.0
	for _, id := range g.Assignments.order {
		pct, _ := g.Submissions.Score(sid, id)
		total += (pct / 100) * g.Assignments.byID[id].Points
	}

	return int(math.RoundToEven((total / g.TotalPoints) * 100)), nil
}

// AssignmentStatistics returns min, truncated mean and max of the scores
// recorded for the named assignment
func (g *Gradebook) AssignmentStatistics(name string) (Statistics, error) {
	asg, scores, err := g.collectScores(name)
	if err != nil {
		return Statistics{}, err
	}

	lo, hi, sum := scores[0], scores[0], 0.0
	for _, s := range scores {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
		sum += s
	}

	return Statistics{
		AssignmentID: asg.ID,
		Name:         asg.Name,
		Count:        len(scores),
		Min:          int(lo),
		Avg:          int(sum / float64(len(scores))),
		Max:          int(hi),
	}, nil
}

// AssignmentScores returns the assignment and its recorded scores, sorted
// ascending, for rendering
func (g *Gradebook) AssignmentScores(name string) (Assignment, []float64, error) {
	asg, scores, err := g.collectScores(name)
	if err != nil {
		return Assignment{}, nil, err
	}

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	return asg, sorted, nil
}

// Summary returns table sizes and point totals
func (g *Gradebook) Summary() Summary {
	points := 0.0
	for _, id := range g.Assignments.order {
		points += g.Assignments.byID[id].Points
	}

	return Summary{
		Students:         g.Students.Len(),
		Assignments:      g.Assignments.Len(),
		Submissions:      g.Submissions.Len(),
		AssignmentPoints: points,
		TotalPoints:      g.TotalPoints,
		SubmissionsFound: !g.Submissions.Missing(),
	}
}

// collectScores resolves name and gathers its scores in load order.
// No scores is reported the same way as an unknown name.
func (g *Gradebook) collectScores(name string) (Assignment, []float64, error) {
	aid, ok := g.Assignments.Lookup(name)
	if !ok {
		return Assignment{}, nil, fmt.Errorf("%w: %q", ErrAssignmentNotFound, name)
	}

	scores := g.Submissions.ForAssignment(aid)
	if len(scores) == 0 {
		return Assignment{}, nil, fmt.Errorf("%w: %q has no submissions", ErrAssignmentNotFound, name)
	}

	return g.Assignments.byID[aid], scores, nil
}
