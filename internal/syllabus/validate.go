package syllabus

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
func Validate(s *Syllabus) error {
	// === Course ===
	if s.Course.TotalPoints <= 0 {
		return ValidationError{"course.total_points", "must be > 0"}
	}

	// === Files ===
	required := []struct {
		field string
		value string
	}{
		{"files.students", s.Files.Students},
		{"files.assignments", s.Files.Assignments},
	}
	for _, r := range required {
		if r.value == "" {
			return ValidationError{r.field, "required"}
		}
	}
	if s.Files.Submissions == "" && s.Files.SubmissionsDir == "" {
		return ValidationError{"files.submissions", "submissions or submissions_dir is required"}
	}
	for field, name := range map[string]string{
		"files.students":        s.Files.Students,
		"files.assignments":     s.Files.Assignments,
		"files.submissions":     s.Files.Submissions,
		"files.submissions_dir": s.Files.SubmissionsDir,
	} {
		if filepath.IsAbs(name) || strings.HasPrefix(filepath.Clean(name), "..") {
			return ValidationError{field, "must be relative to the data directory"}
		}
	}
	if s.Files.SubmissionsExt != "" && !strings.HasPrefix(s.Files.SubmissionsExt, ".") {
		return ValidationError{"files.submissions_ext", "must start with '.'"}
	}

	// === Histogram ===
	edges := s.Histogram.Edges
	if len(edges) < 2 {
		return ValidationError{"histogram.edges", "need at least 2 edges"}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return ValidationError{"histogram.edges", fmt.Sprintf("must be strictly increasing (edge %d)", i)}
		}
	}

	return nil
}
