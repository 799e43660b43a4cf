package gradebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gradeview/internal/syllabus"
	"github.com/wonny/gradeview/pkg/logger"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestLoader() *Loader {
	return NewLoader(logger.Nop())
}

func TestSplitLast(t *testing.T) {
	tests := []struct {
		line     string
		wantHead string
		wantLast string
		wantOK   bool
	}{
		{"Ada Lovelace s01", "Ada Lovelace", "s01", true},
		{"Grace  Hopper \t s02", "Grace  Hopper", "s02", true},
		{"Solo s03", "Solo", "s03", true},
		{"lonely", "", "", false},
		{"Quiz 1 100", "Quiz 1", "100", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			head, last, ok := splitLast(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestLoadStudents(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "students.txt", `Ada Lovelace s01
Grace   Hopper s02

   
broken
Alan Turing s01
`)

	students, err := newTestLoader().LoadStudents(path)
	require.NoError(t, err)

	assert.Equal(t, 2, students.Len())
	// 중복 id는 마지막 값이 이기고, 순서는 처음 위치 유지
	assert.Equal(t, []string{"s01", "s02"}, students.IDs())

	name, ok := students.Name("s01")
	require.True(t, ok)
	assert.Equal(t, "Alan Turing", name)

	name, _ = students.Name("s02")
	assert.Equal(t, "Grace   Hopper", name, "inner whitespace of names is kept")
}

func TestLoadStudentsFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "students.txt", "Sam Lee s09\nSam Lee s02\n")

	students, err := newTestLoader().LoadStudents(path)
	require.NoError(t, err)

	id, ok := students.Lookup("Sam Lee")
	require.True(t, ok)
	assert.Equal(t, "s09", id)
}

func TestLoadAssignments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "assignments.txt", `Quiz 1 100 a1
Midterm Exam 200 a2
Broken Points x a3
Short a4
Quiz 1 50 a5
Bonus inf b1
Extra Credit NaN b2
`)

	assignments, err := newTestLoader().LoadAssignments(path)
	require.NoError(t, err)

	assert.Equal(t, 3, assignments.Len())

	asg, ok := assignments.Get("a2")
	require.True(t, ok)
	assert.Equal(t, Assignment{ID: "a2", Name: "Midterm Exam", Points: 200}, asg)

	_, ok = assignments.Get("a3")
	assert.False(t, ok, "non-numeric points are skipped")
	_, ok = assignments.Get("a4")
	assert.False(t, ok, "lines without points are skipped")
	_, ok = assignments.Get("b1")
	assert.False(t, ok, "infinite points are skipped")
	_, ok = assignments.Get("b2")
	assert.False(t, ok, "NaN points are skipped")

	// 같은 이름은 마지막으로 본 id로 인덱싱
	id, ok := assignments.Lookup("Quiz 1")
	require.True(t, ok)
	assert.Equal(t, "a5", id)
}

func TestLoadSubmissionsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "submissions.txt", `s01 a1 0.85
s02   a1    85
s03 a1 1
s04 a1 0
s01 a2
s01 a2 abc
s01 a2 50 extra
s05 a2 40
s05 a2 90
s06 a1 inf
s07 a1 NaN
s08 a1 -Inf
`)

	subs, err := newTestLoader().LoadSubmissions(path, filepath.Join(dir, "submissions"), ".txt")
	require.NoError(t, err)

	assert.False(t, subs.Missing())
	assert.Equal(t, 5, subs.Len())

	fraction, _ := subs.Score("s01", "a1")
	percent, _ := subs.Score("s02", "a1")
	assert.InDelta(t, 85.0, fraction, 1e-9)
	assert.InDelta(t, fraction, percent, 1e-9, "0.85 and 85 normalize to the same value")

	one, _ := subs.Score("s03", "a1")
	assert.Equal(t, 100.0, one, "1 is a fraction")

	zero, ok := subs.Score("s04", "a1")
	assert.True(t, ok)
	assert.Equal(t, 0.0, zero)

	last, _ := subs.Score("s05", "a2")
	assert.Equal(t, 90.0, last, "last write wins")

	_, ok = subs.Score("s01", "a2")
	assert.False(t, ok, "malformed lines are skipped")

	for _, sid := range []string{"s06", "s07", "s08"} {
		_, ok = subs.Score(sid, "a1")
		assert.False(t, ok, "non-finite score for %s is skipped", sid)
	}
}

func TestNonFiniteScoresDoNotReachAggregates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "students.txt", "Ada Lovelace s01\nGrace Hopper s02\n")
	writeFile(t, dir, "assignments.txt", "Quiz 1 100 a1\n")
	writeFile(t, dir, "submissions.txt", "s01 a1 inf\ns02 a1 50\n")

	gb, err := newTestLoader().Load(PathsFor(dir, syllabus.Default().Files), syllabus.DefaultTotalPoints)
	require.NoError(t, err)

	stats, err := gb.AssignmentStatistics("Quiz 1")
	require.NoError(t, err)
	assert.Equal(t, Statistics{AssignmentID: "a1", Name: "Quiz 1", Count: 1, Min: 50, Avg: 50, Max: 50}, stats)

	grade, err := gb.StudentGrade("Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, 0, grade)
}

func TestLoadSubmissionsDirectoryFallback(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "submissions")
	writeFile(t, subDir, "week1.txt", "s01 a1 40\ns02 a1 0.5\n")
	writeFile(t, subDir, "week2.txt", "s01 a1 70\n")
	writeFile(t, subDir, "notes.md", "s03 a1 99\n")
	require.NoError(t, os.Mkdir(filepath.Join(subDir, "archive.txt"), 0o755))

	subs, err := newTestLoader().LoadSubmissions(filepath.Join(dir, "submissions.txt"), subDir, ".txt")
	require.NoError(t, err)

	assert.False(t, subs.Missing())
	assert.Equal(t, 2, subs.Len())

	s01, _ := subs.Score("s01", "a1")
	assert.Equal(t, 70.0, s01, "files are read in lexical order")
	s02, _ := subs.Score("s02", "a1")
	assert.Equal(t, 50.0, s02)
	_, ok := subs.Score("s03", "a1")
	assert.False(t, ok, "files with other extensions are ignored")
}

func TestLoadSubmissionsMissing(t *testing.T) {
	dir := t.TempDir()

	subs, err := newTestLoader().LoadSubmissions(filepath.Join(dir, "submissions.txt"), filepath.Join(dir, "submissions"), ".txt")
	require.NoError(t, err)

	assert.True(t, subs.Missing())
	assert.Equal(t, 0, subs.Len())
}

func TestLoadSubmissionsUnreadableDirectory(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "submissions")
	writeFile(t, subDir, "week1.txt", "s01 a1 40\n")

	loader := newTestLoader()
	loader.readDir = func(name string) ([]os.DirEntry, error) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}

	subs, err := loader.LoadSubmissions(filepath.Join(dir, "submissions.txt"), subDir, ".txt")
	require.NoError(t, err)
	assert.True(t, subs.Missing())
	assert.Equal(t, 0, subs.Len())

	// Load still succeeds; only the submissions are degraded
	writeFile(t, dir, "students.txt", "Ada Lovelace s01\n")
	writeFile(t, dir, "assignments.txt", "Quiz 1 100 a1\n")
	gb, err := loader.Load(PathsFor(dir, syllabus.Default().Files), syllabus.DefaultTotalPoints)
	require.NoError(t, err)
	assert.False(t, gb.Summary().SubmissionsFound)

	grade, err := gb.StudentGrade("Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, 0, grade)
}

func TestLoadRequiredFilesMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "students.txt", "Ada Lovelace s01\n")
	writeFile(t, dir, "assignments.txt", "Quiz 1 100 a1\n")
	loader := newTestLoader()

	tests := []struct {
		name  string
		paths Paths
	}{
		{"students", Paths{Students: filepath.Join(dir, "nope.txt"), Assignments: filepath.Join(dir, "assignments.txt")}},
		{"assignments", Paths{Students: filepath.Join(dir, "students.txt"), Assignments: filepath.Join(dir, "nope.txt")}},
		{"directory instead of file", Paths{Students: dir, Assignments: filepath.Join(dir, "assignments.txt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.paths, 1000)
			assert.ErrorIs(t, err, ErrRequiredFileMissing)
		})
	}
}

func TestLoadFromSyllabusPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "students.txt", "Ada Lovelace s01\n")
	writeFile(t, dir, "assignments.txt", "Quiz 1 100 a1\n")
	writeFile(t, dir, "submissions.txt", "s01 a1 90\n")

	paths := PathsFor(dir, syllabus.Default().Files)
	assert.Equal(t, filepath.Join(dir, "submissions"), paths.SubmissionsDir)
	assert.Equal(t, ".txt", paths.SubmissionsExt)

	gb, err := newTestLoader().Load(paths, syllabus.DefaultTotalPoints)
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Students:         1,
		Assignments:      1,
		Submissions:      1,
		AssignmentPoints: 100,
		TotalPoints:      1000,
		SubmissionsFound: true,
	}, gb.Summary())
	assert.Len(t, gb.Fingerprint(), 16)
}
