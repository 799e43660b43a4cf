package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir      string
	syllabusFile string
	verbose      bool
)

// rootCmd runs the interactive grade session when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "gradeview",
	Short: "Course grade viewer and number exercises",
	Long: `gradeview loads a course's students, assignments and submissions
from flat text files and answers one query per session.

Data files (under --data-dir, default ./data):
  students.txt      <name...> <student_id>
  assignments.txt   <name...> <max_points> <assignment_id>
  submissions.txt   <student_id> <assignment_id> <percent_or_fraction>
  submissions/*.txt used when submissions.txt does not exist

Examples:
  gradeview
  gradeview grade "Ada Lovelace"
  gradeview stats "Homework 1"
  gradeview graph "Homework 1"
  gradeview fib 25`,
	SilenceUsage: true,
	RunE:         runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $DATA_DIR or ./data)")
	rootCmd.PersistentFlags().StringVar(&syllabusFile, "syllabus", "", "course syllabus YAML (default $SYLLABUS_FILE or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
