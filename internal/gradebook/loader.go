package gradebook

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wonny/gradeview/internal/syllabus"
	"github.com/wonny/gradeview/pkg/logger"
)

// maxLineSize bounds a single record line
const maxLineSize = 1 << 20

// Paths locates the three data sources
type Paths struct {
	Students        string
	Assignments     string
	SubmissionsFile string
	SubmissionsDir  string
	SubmissionsExt  string
}

// PathsFor resolves the syllabus file names against dataDir
func PathsFor(dataDir string, files syllabus.Files) Paths {
	join := func(name string) string {
		if name == "" {
			return ""
		}
		return filepath.Join(dataDir, name)
	}

	ext := files.SubmissionsExt
	if ext == "" {
		ext = ".txt"
	}

	return Paths{
		Students:        join(files.Students),
		Assignments:     join(files.Assignments),
		SubmissionsFile: join(files.Submissions),
		SubmissionsDir:  join(files.SubmissionsDir),
		SubmissionsExt:  ext,
	}
}

// Loader reads the flat files. Malformed lines are skipped silently; only the
// skip counts are reported, at debug level.
type Loader struct {
	log     *logger.Logger
	readDir func(name string) ([]os.DirEntry, error)
}

// NewLoader creates a loader
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{
		log:     log.WithField("component", "gradebook.loader"),
		readDir: os.ReadDir,
	}
}

// Load reads all three sources and assembles a Gradebook.
// A missing students or assignments file is an error wrapping
// ErrRequiredFileMissing; missing submissions only log a warning.
func (l *Loader) Load(paths Paths, totalPoints float64) (*Gradebook, error) {
	students, err := l.LoadStudents(paths.Students)
	if err != nil {
		return nil, err
	}

	assignments, err := l.LoadAssignments(paths.Assignments)
	if err != nil {
		return nil, err
	}

	submissions, err := l.LoadSubmissions(paths.SubmissionsFile, paths.SubmissionsDir, paths.SubmissionsExt)
	if err != nil {
		return nil, err
	}

	gb := New(students, assignments, submissions, totalPoints)

	l.log.WithFields(map[string]interface{}{
		"students":    students.Len(),
		"assignments": assignments.Len(),
		"submissions": submissions.Len(),
		"fingerprint": gb.Fingerprint(),
	}).Debug("gradebook loaded")

	return gb, nil
}

// LoadStudents reads "<name tokens...> <student_id>" lines
func (l *Loader) LoadStudents(path string) (*Students, error) {
	if err := requireFile(path); err != nil {
		return nil, err
	}

	students := newStudents()
	parsed, skipped, err := readLines(path, func(line string) bool {
		id, name, ok := parseStudentLine(line)
		if ok {
			students.put(id, name)
		}
		return ok
	})
	if err != nil {
		return nil, err
	}

	l.logCounts(path, parsed, skipped)
	return students, nil
}

// LoadAssignments reads "<name tokens...> <max_points> <assignment_id>" lines
func (l *Loader) LoadAssignments(path string) (*Assignments, error) {
	if err := requireFile(path); err != nil {
		return nil, err
	}

	assignments := newAssignments()
	parsed, skipped, err := readLines(path, func(line string) bool {
		asg, ok := parseAssignmentLine(line)
		if ok {
			assignments.put(asg)
		}
		return ok
	})
	if err != nil {
		return nil, err
	}

	l.logCounts(path, parsed, skipped)
	return assignments, nil
}

// LoadSubmissions reads the consolidated file when it exists, otherwise every
// file ending in ext inside dir, in lexical order. When neither exists, or the
// directory cannot be listed, it warns and returns an empty set marked Missing.
func (l *Loader) LoadSubmissions(file, dir, ext string) (*Submissions, error) {
	submissions := newSubmissions()

	files, err := l.submissionFiles(file, dir, ext)
	if err != nil {
		l.log.WithError(err).Warnf("cannot list submissions dir %s", dir)
		submissions.missing = true
		return submissions, nil
	}
	if files == nil {
		l.log.Warn("no submissions data found")
		submissions.missing = true
		return submissions, nil
	}

	for _, path := range files {
		parsed, skipped, err := readLines(path, func(line string) bool {
			key, pct, ok := parseSubmissionLine(line)
			if ok {
				submissions.put(key, pct)
			}
			return ok
		})
		if err != nil {
			// 개별 파일 실패는 건너뜀
			l.log.WithError(err).WithField("file", path).Warn("skipping unreadable submissions file")
			continue
		}
		l.logCounts(path, parsed, skipped)
	}

	return submissions, nil
}

// submissionFiles returns nil (not an empty slice) when no source exists
func (l *Loader) submissionFiles(file, dir, ext string) ([]string, error) {
	if file != "" && isRegularFile(file) {
		return []string{file}, nil
	}

	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	entries, err := l.readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read submissions dir %s: %w", dir, err)
	}

	// readDir (os.ReadDir) sorts by file name
	files := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func (l *Loader) logCounts(path string, parsed, skipped int) {
	l.log.WithFields(map[string]interface{}{
		"file":    path,
		"parsed":  parsed,
		"skipped": skipped,
	}).Debug("data file read")
}

func requireFile(path string) error {
	if !isRegularFile(path) {
		return fmt.Errorf("%w: '%s'", ErrRequiredFileMissing, path)
	}
	return nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// readLines calls fn for every non-blank, trimmed line. fn reports whether
// the line parsed; the counts come back for logging.
func readLines(path string, fn func(line string) bool) (parsed, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if fn(line) {
			parsed++
		} else {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return parsed, skipped, fmt.Errorf("read %s: %w", path, err)
	}

	return parsed, skipped, nil
}

// splitLast splits a trimmed line at its rightmost run of whitespace.
// "Ada  Lovelace s01" → ("Ada  Lovelace", "s01").
func splitLast(line string) (head, last string, ok bool) {
	i := strings.LastIndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	head = strings.TrimRightFunc(line[:i], unicode.IsSpace)
	_, size := utf8.DecodeRuneInString(line[i:])
	last = line[i+size:]
	if head == "" || last == "" {
		return "", "", false
	}
	return head, last, true
}

func parseStudentLine(line string) (id, name string, ok bool) {
	name, id, ok = splitLast(line)
	return id, name, ok
}

func parseAssignmentLine(line string) (Assignment, bool) {
	rest, id, ok := splitLast(line)
	if !ok {
		return Assignment{}, false
	}
	name, ptsStr, ok := splitLast(rest)
	if !ok {
		return Assignment{}, false
	}
	pts, ok := parseNumber(ptsStr)
	if !ok {
		return Assignment{}, false
	}
	return Assignment{ID: id, Name: name, Points: pts}, true
}

// parseSubmissionLine expects exactly "<student_id> <assignment_id> <score>".
// Scores ≤ 1 are fractions and get scaled to percentages.
func parseSubmissionLine(line string) (SubmissionKey, float64, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return SubmissionKey{}, 0, false
	}
	pct, ok := parseNumber(fields[2])
	if !ok {
		return SubmissionKey{}, 0, false
	}
	return SubmissionKey{StudentID: fields[0], AssignmentID: fields[1]}, normalizePercent(pct), true
}

// parseNumber accepts finite decimals only; "inf" and "nan" are malformed
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func normalizePercent(v float64) float64 {
	if v <= 1 {
		return v * 100
	}
	return v
}
