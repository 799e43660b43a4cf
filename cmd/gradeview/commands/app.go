package commands

import (
	"fmt"

	"github.com/wonny/gradeview/internal/gradebook"
	"github.com/wonny/gradeview/internal/syllabus"
	"github.com/wonny/gradeview/pkg/config"
	"github.com/wonny/gradeview/pkg/logger"
)

// app bundles what every gradebook command needs
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	syllabus *syllabus.Syllabus
}

// bootstrap loads config, applies global flags, and reads the syllabus
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flags override environment
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if syllabusFile != "" {
		cfg.SyllabusFile = syllabusFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	syl, err := syllabus.LoadOrDefault(cfg.SyllabusFile)
	if err != nil {
		return nil, fmt.Errorf("load syllabus: %w", err)
	}

	return &app{cfg: cfg, log: log, syllabus: syl}, nil
}

// openGradebook loads the data files named by the syllabus
func (a *app) openGradebook() (*gradebook.Gradebook, error) {
	loader := gradebook.NewLoader(a.log)
	paths := gradebook.PathsFor(a.cfg.DataDir, a.syllabus.Files)

	gb, err := loader.Load(paths, a.syllabus.Course.TotalPoints)
	if err != nil {
		return nil, err
	}

	a.log.WithFields(map[string]interface{}{
		"data_dir": a.cfg.DataDir,
		"course":   a.syllabus.Course.Name,
	}).Debug("gradebook ready")

	return gb, nil
}
