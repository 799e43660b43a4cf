package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/gradeview/internal/gradebook"
	"github.com/wonny/gradeview/internal/histogram"
	"github.com/wonny/gradeview/pkg/logger"
	"github.com/wonny/gradeview/pkg/redis"
)

// GradeHandler serves read-only grade queries
// ⭐ SSOT: 성적 API 핸들러는 이 구조체에서만
type GradeHandler struct {
	gradebook *gradebook.Gradebook
	cache     *redis.Cache
	edges     []float64
	logger    *logger.Logger
}

// NewGradeHandler creates a new grade handler. cache may wrap a disabled
// redis client, in which case every lookup is a miss.
func NewGradeHandler(gb *gradebook.Gradebook, cache *redis.Cache, edges []float64, log *logger.Logger) *GradeHandler {
	return &GradeHandler{
		gradebook: gb,
		cache:     cache,
		edges:     edges,
		logger:    log,
	}
}

// GradeResponse is the body of a student grade lookup
type GradeResponse struct {
	Student  string `json:"student"`
	GradePct int    `json:"grade_pct"`
}

// HistogramResponse is the body of a histogram lookup
type HistogramResponse struct {
	Assignment string    `json:"assignment"`
	Edges      []float64 `json:"edges"`
	Counts     []int     `json:"counts"`
}

// Health returns service status and a gradebook summary
// GET /health
func (h *GradeHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"service":     "gradeview-api",
		"fingerprint": h.gradebook.Fingerprint(),
		"summary":     h.gradebook.Summary(),
	})
}

// GetStudentGrade returns a student's final grade
// GET /api/students/{name}/grade
func (h *GradeHandler) GetStudentGrade(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	grade, err := h.gradebook.StudentGrade(name)
	if err != nil {
		h.respondQueryError(w, err, name)
		return
	}

	respondJSON(w, http.StatusOK, GradeResponse{Student: name, GradePct: grade})
}

// GetAssignmentStatistics returns min/avg/max for an assignment
// GET /api/assignments/{name}/stats
func (h *GradeHandler) GetAssignmentStatistics(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	key, ok := h.assignmentKey(redis.StatsKey, name)
	if !ok {
		respondError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	var stats gradebook.Statistics
	err := h.cache.GetOrSet(r.Context(), key, &stats, redis.TTLLong, func() (interface{}, error) {
		return h.gradebook.AssignmentStatistics(name)
	})
	if err != nil {
		h.respondQueryError(w, err, name)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetAssignmentHistogram returns bucket counts for an assignment
// GET /api/assignments/{name}/histogram
func (h *GradeHandler) GetAssignmentHistogram(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	key, ok := h.assignmentKey(redis.HistogramKey, name)
	if !ok {
		respondError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	var resp HistogramResponse
	err := h.cache.GetOrSet(r.Context(), key, &resp, redis.TTLLong, func() (interface{}, error) {
		asg, scores, err := h.gradebook.AssignmentScores(name)
		if err != nil {
			return nil, err
		}
		hist, err := histogram.Bucket(scores, h.edges)
		if err != nil {
			return nil, err
		}
		return HistogramResponse{Assignment: asg.Name, Edges: hist.Edges, Counts: hist.Counts}, nil
	})
	if err != nil {
		h.respondQueryError(w, err, name)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// assignmentKey builds a cache key from the assignment id that name resolves to
func (h *GradeHandler) assignmentKey(build func(fingerprint, assignmentID string) string, name string) (string, bool) {
	id, ok := h.gradebook.Assignments.Lookup(name)
	if !ok {
		return "", false
	}
	return build(h.gradebook.Fingerprint(), id), true
}

func (h *GradeHandler) respondQueryError(w http.ResponseWriter, err error, name string) {
	switch {
	case errors.Is(err, gradebook.ErrStudentNotFound):
		respondError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, gradebook.ErrAssignmentNotFound):
		respondError(w, http.StatusNotFound, "Assignment not found")
	default:
		h.logger.WithError(err).WithField("name", name).Error("Failed to answer grade query")
		respondError(w, http.StatusInternalServerError, "Failed to answer query")
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
