package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	insightGeneratedTotal     atomic.Uint64
	insightRefreshSucceeded   atomic.Uint64
	insightRefreshFailed      atomic.Uint64
	quizGeneratedTotal        atomic.Uint64
	assessmentSavedTotal      atomic.Uint64
	coverLetterGeneratedTotal atomic.Uint64

	insightRefreshDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncInsightGenerated increments the insight-generation counter.
func IncInsightGenerated() {
	insightGeneratedTotal.Add(1)
}

// IncInsightRefreshSucceeded increments the per-industry refresh success counter.
func IncInsightRefreshSucceeded() {
	insightRefreshSucceeded.Add(1)
}

// IncInsightRefreshFailed increments the per-industry refresh failure counter.
func IncInsightRefreshFailed() {
	insightRefreshFailed.Add(1)
}

// IncQuizGenerated increments the quiz-generation counter.
func IncQuizGenerated() {
	quizGeneratedTotal.Add(1)
}

// IncAssessmentSaved increments the assessment-save counter.
func IncAssessmentSaved() {
	assessmentSavedTotal.Add(1)
}

// IncCoverLetterGenerated increments the cover-letter counter.
func IncCoverLetterGenerated() {
	coverLetterGeneratedTotal.Add(1)
}

// ObserveInsightRefreshDurationMs records one industry refresh duration in milliseconds.
func ObserveInsightRefreshDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	insightRefreshDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "insight_generated_total", "Total industry insights generated", insightGeneratedTotal.Load())
	writeCounter(&buf, "insight_refresh_succeeded_total", "Total per-industry refreshes that succeeded", insightRefreshSucceeded.Load())
	writeCounter(&buf, "insight_refresh_failed_total", "Total per-industry refreshes that failed", insightRefreshFailed.Load())
	writeCounter(&buf, "quiz_generated_total", "Total quizzes generated", quizGeneratedTotal.Load())
	writeCounter(&buf, "assessment_saved_total", "Total assessments saved", assessmentSavedTotal.Load())
	writeCounter(&buf, "cover_letter_generated_total", "Total cover letters generated", coverLetterGeneratedTotal.Load())
	writeHistogram(&buf, "insight_refresh_duration_ms", "Per-industry insight refresh duration in milliseconds", insightRefreshDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns elapsed milliseconds since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
