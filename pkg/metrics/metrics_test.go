package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorder(t *testing.T) {
	Convey("Given a fresh recorder", t, func() {
		r, err := New()
		So(err, ShouldBeNil)
		So(r, ShouldNotBeNil)

		Convey("When artifacts succeed and fail", func() {
			r.Artifact("pipeline", nil)
			r.Artifact("pipeline", nil)
			r.Artifact("grf", errors.New("disk full"))

			Convey("Then they are counted per kind and status", func() {
				So(testutil.ToFloat64(r.artifacts.WithLabelValues("pipeline", StatusOK)), ShouldEqual, 2)
				So(testutil.ToFloat64(r.artifacts.WithLabelValues("grf", StatusFailed)), ShouldEqual, 1)
			})
		})

		Convey("When fallbacks and durations are recorded", func() {
			r.Fallback(ReasonSyntheticData)
			r.Fallback(ReasonFallbackFont)
			r.Fallback(ReasonFallbackFont)
			r.Observe("scene", 0.2)

			Convey("Then the registry exposes them", func() {
				So(testutil.ToFloat64(r.fallbacks.WithLabelValues(ReasonFallbackFont)), ShouldEqual, 2)
				n, err := testutil.GatherAndCount(r.Gatherer(), "visualgen_render_seconds")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When writing a textfile", func() {
			r.Artifact("placeholder", nil)
			path := filepath.Join(t.TempDir(), "visualgen.prom")
			So(r.WriteTextfile(path), ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(strings.Contains(string(data), `visualgen_artifacts_total{kind="placeholder",status="ok"} 1`), ShouldBeTrue)
		})

		Convey("When the textfile directory does not exist", func() {
			err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(errors.Is(err, ErrWrite), ShouldBeTrue)
		})
	})
}

func TestRecorderOptions(t *testing.T) {
	Convey("Given a custom namespace", t, func() {
		r, err := New(WithNamespace("docs"), WithHistogramBuckets([]float64{1, 2}))
		So(err, ShouldBeNil)
		r.Artifact("hero", nil)

		n, err := testutil.GatherAndCount(r.Gatherer(), "docs_artifacts_total")
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 1)
		So(r.buckets, ShouldResemble, []float64{1, 2})
	})
}

func TestNilRecorderIsSafe(t *testing.T) {
	Convey("Given a nil recorder", t, func() {
		var r *Recorder
		So(func() {
			r.Artifact("x", nil)
			r.Fallback(ReasonFallbackFont)
			r.Observe("x", 1)
		}, ShouldNotPanic)
		So(r.WriteTextfile("ignored"), ShouldNotBeNil)
	})
}
