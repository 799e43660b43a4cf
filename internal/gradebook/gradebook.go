// Package gradebook loads the course's flat data files and answers grade
// queries over them. A Gradebook is built once and is read-only afterwards,
// so it can be shared freely between goroutines.
package gradebook

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrRequiredFileMissing is returned when the students or assignments
	// file does not exist. Callers treat it as fatal.
	ErrRequiredFileMissing = errors.New("required data file not found")
	// ErrStudentNotFound is returned for an unknown student name
	ErrStudentNotFound = errors.New("student not found")
	// ErrAssignmentNotFound is returned for an unknown assignment name or an
	// assignment nobody has submitted
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Assignment is a graded item of the course
type Assignment struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// SubmissionKey identifies one submission
type SubmissionKey struct {
	StudentID    string
	AssignmentID string
}

// Students maps student id → display name, remembering load order
type Students struct {
	names map[string]string
	order []string // 처음 등장한 순서
}

func newStudents() *Students {
	return &Students{names: make(map[string]string)}
}

// put stores id → name; a repeated id keeps its first position
func (s *Students) put(id, name string) {
	if _, ok := s.names[id]; !ok {
		s.order = append(s.order, id)
	}
	s.names[id] = name
}

// Name returns the display name for id
func (s *Students) Name(id string) (string, bool) {
	name, ok := s.names[id]
	return name, ok
}

// Len returns the number of distinct students
func (s *Students) Len() int { return len(s.order) }

// IDs returns student ids in load order
func (s *Students) IDs() []string {
	return append([]string(nil), s.order...)
}

// Lookup resolves a display name to an id. The first student in load order
// with that name wins.
func (s *Students) Lookup(name string) (string, bool) {
	for _, id := range s.order {
		if s.names[id] == name {
			return id, true
		}
	}
	return "", false
}

// Assignments maps assignment id → assignment, with a name → id index
type Assignments struct {
	byID     map[string]Assignment
	order    []string
	nameToID map[string]string
}

func newAssignments() *Assignments {
	return &Assignments{
		byID:     make(map[string]Assignment),
		nameToID: make(map[string]string),
	}
}

// put stores a; on duplicate names the last one seen wins the index
func (a *Assignments) put(asg Assignment) {
	if _, ok := a.byID[asg.ID]; !ok {
		a.order = append(a.order, asg.ID)
	}
	a.byID[asg.ID] = asg
	a.nameToID[asg.Name] = asg.ID
}

// Get returns the assignment with id
func (a *Assignments) Get(id string) (Assignment, bool) {
	asg, ok := a.byID[id]
	return asg, ok
}

// Lookup resolves a display name to an id through the reverse index
func (a *Assignments) Lookup(name string) (string, bool) {
	id, ok := a.nameToID[name]
	return id, ok
}

// Len returns the number of distinct assignments
func (a *Assignments) Len() int { return len(a.order) }

// All returns assignments in load order
func (a *Assignments) All() []Assignment {
	out := make([]Assignment, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.byID[id])
	}
	return out
}

// Submissions maps (student, assignment) → percentage score
type Submissions struct {
	scores  map[SubmissionKey]float64
	order   []SubmissionKey
	missing bool
}

func newSubmissions() *Submissions {
	return &Submissions{scores: make(map[SubmissionKey]float64)}
}

// put stores a score, last write wins
func (s *Submissions) put(key SubmissionKey, pct float64) {
	if _, ok := s.scores[key]; !ok {
		s.order = append(s.order, key)
	}
	s.scores[key] = pct
}

// Score returns the percentage recorded for a student and assignment
func (s *Submissions) Score(studentID, assignmentID string) (float64, bool) {
	pct, ok := s.scores[SubmissionKey{StudentID: studentID, AssignmentID: assignmentID}]
	return pct, ok
}

// Len returns the number of distinct submissions
func (s *Submissions) Len() int { return len(s.order) }

// Missing reports whether no submissions data was found at load time
func (s *Submissions) Missing() bool { return s.missing }

// ForAssignment returns every score recorded for assignmentID in load order
func (s *Submissions) ForAssignment(assignmentID string) []float64 {
	var out []float64
	for _, key := range s.order {
		if key.AssignmentID == assignmentID {
			out = append(out, s.scores[key])
		}
	}
	return out
}

// Gradebook joins the three loaded tables with the course total
type Gradebook struct {
	Students    *Students
	Assignments *Assignments
	Submissions *Submissions

	// TotalPoints is the fixed course total, not the sum of assignment points
	TotalPoints float64

	fingerprint string
}

// New assembles a gradebook from already loaded tables
func New(students *Students, assignments *Assignments, submissions *Submissions, totalPoints float64) *Gradebook {
	gb := &Gradebook{
		Students:    students,
		Assignments: assignments,
		Submissions: submissions,
		TotalPoints: totalPoints,
	}
	gb.fingerprint = gb.computeFingerprint()
	return gb
}

// Fingerprint is a content hash of the loaded data, stable across runs over
// the same files
func (g *Gradebook) Fingerprint() string {
	return g.fingerprint
}

func (g *Gradebook) computeFingerprint() string {
	h := sha256.New()
	for _, id := range g.Students.order {
		fmt.Fprintf(h, "s\x00%s\x00%s\n", id, g.Students.names[id])
	}
	for _, id := range g.Assignments.order {
		asg := g.Assignments.byID[id]
		fmt.Fprintf(h, "a\x00%s\x00%s\x00%s\n", id, asg.Name, strconv.FormatFloat(asg.Points, 'g', -1, 64))
	}
	for _, key := range g.Submissions.order {
		fmt.Fprintf(h, "x\x00%s\x00%s\x00%s\n", key.StudentID, key.AssignmentID,
			strconv.FormatFloat(g.Submissions.scores[key], 'g', -1, 64))
	}
	fmt.Fprintf(h, "t\x00%s\n", strconv.FormatFloat(g.TotalPoints, 'g', -1, 64))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
