package syllabus

// Syllabus describes the course a gradebook belongs to.
// total_points is the fixed course total used for final grades. It is
// deliberately independent of the sum of assignment max points.
type Syllabus struct {
	Course    Course    `yaml:"course" json:"course"`
	Files     Files     `yaml:"files" json:"files"`
	Histogram Histogram `yaml:"histogram" json:"histogram"`
}

// Course 과목 정보
type Course struct {
	Name        string  `yaml:"name" json:"name"`
	TotalPoints float64 `yaml:"total_points" json:"total_points"`
}

// Files names the data files, relative to the data directory
type Files struct {
	Students       string `yaml:"students" json:"students"`
	Assignments    string `yaml:"assignments" json:"assignments"`
	Submissions    string `yaml:"submissions" json:"submissions"`
	SubmissionsDir string `yaml:"submissions_dir" json:"submissions_dir"`
	SubmissionsExt string `yaml:"submissions_ext" json:"submissions_ext"`
}

// Histogram 히스토그램 구간 경계
type Histogram struct {
	Edges []float64 `yaml:"edges" json:"edges"`
}

// DefaultTotalPoints is the course total when no syllabus file is given
const DefaultTotalPoints = 1000

// Default returns the built-in syllabus matching the classic data/ layout
func Default() *Syllabus {
	return &Syllabus{
		Course: Course{
			Name:        "default",
			TotalPoints: DefaultTotalPoints,
		},
		Files: Files{
			Students:       "students.txt",
			Assignments:    "assignments.txt",
			Submissions:    "submissions.txt",
			SubmissionsDir: "submissions",
			SubmissionsExt: ".txt",
		},
		Histogram: Histogram{
			Edges: []float64{0, 25, 50, 75, 100},
		},
	}
}
