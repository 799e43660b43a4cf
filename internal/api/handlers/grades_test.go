package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gradeview/internal/gradebook"
	"github.com/wonny/gradeview/internal/histogram"
	"github.com/wonny/gradeview/internal/syllabus"
	"github.com/wonny/gradeview/pkg/config"
	"github.com/wonny/gradeview/pkg/logger"
	"github.com/wonny/gradeview/pkg/redis"
)

func newTestHandler(t *testing.T) *GradeHandler {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"students.txt":    "Ada Lovelace s01\n",
		"assignments.txt": "Homework 1 100 hw1\n",
		"submissions.txt": "s01 hw1 60\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	gb, err := gradebook.NewLoader(logger.Nop()).Load(gradebook.PathsFor(dir, syllabus.Default().Files), syllabus.DefaultTotalPoints)
	require.NoError(t, err)

	client, err := redis.New(&config.Config{})
	require.NoError(t, err)
	return NewGradeHandler(gb, redis.NewCache(client, "test"), histogram.DefaultEdges, logger.Nop())
}

func TestAssignmentKeyUsesResolvedID(t *testing.T) {
	h := newTestHandler(t)
	fp := h.gradebook.Fingerprint()

	key, ok := h.assignmentKey(redis.StatsKey, "Homework 1")
	require.True(t, ok)
	assert.Equal(t, "stats:"+fp+":hw1", key)

	key, ok = h.assignmentKey(redis.HistogramKey, "Homework 1")
	require.True(t, ok)
	assert.Equal(t, "histogram:"+fp+":hw1", key)

	_, ok = h.assignmentKey(redis.StatsKey, "Quiz")
	assert.False(t, ok)
}
