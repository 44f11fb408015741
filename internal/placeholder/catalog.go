package placeholder

import "path"

// Entry is a placeholder at a path relative to the assets root.
type Entry struct {
	Path string // slash separated
	Spec Spec
}

func static(path string, w, h int, text string) Entry {
	return Entry{Path: path, Spec: Spec{Width: w, Height: h, Text: text}}
}

func animated(path string, w, h int, text string) Entry {
	return Entry{Path: path, Spec: Spec{Width: w, Height: h, Text: text, Frames: AnimationPalette}}
}

// Catalog returns the README image slots, static images first.
func Catalog() []Entry {
	return []Entry{
		static("hero-image.png", 1200, 400,
			"Markerless Biomechanical Analysis System\n4-Camera Setup + Skeleton + GRF Curves"),
		static("pipeline/pipeline-flowchart.png", 1200, 800,
			"7-Stage Pipeline Flowchart\nCalibration → Enhancement → Pose → Sync → 3D → Mapping → GRF"),
		static("pipeline/architecture-detailed.png", 1000, 1200,
			"Detailed Architecture\nTechnical Components & Data Flow"),
		static("results/grf-comparison.png", 800, 600,
			"GRF Comparison\nEstimated vs. Force Plate\nVertical, AP, ML Components"),
		static("results/accuracy-comparison.png", 800, 400,
			"Accuracy Comparison Table\nOur System vs. State-of-the-Art Methods"),
		static("results/joint-angles.png", 800, 600,
			"Joint Kinematics Comparison\nHip, Knee, Ankle Angles\nMarkerless vs. Marker-Based"),
		static("results/temporal-accuracy.png", 700, 500,
			"Contact Event Detection\nHeel Strike & Toe-Off Timing\nTemporal Accuracy"),
		static("setup/camera-setup.png", 800, 600,
			"4-Camera Setup Configuration\nTop-Down View with Angles & Distances"),
		static("setup/calibration-example.png", 600, 400,
			"Calibration Example\nCheckerboard Detection in Multiple Views"),

		animated("demos/running-analysis.gif", 600, 400,
			"Running Analysis Demo\nMulti-View + Skeleton + GRF"),
		animated("demos/pose-detection.gif", 400, 400,
			"2D Pose Detection\nReal-Time Keypoint Tracking"),
		animated("demos/3d-reconstruction.gif", 400, 400,
			"3D Reconstruction\nRotating Skeleton View"),
	}
}

// Dirs returns the distinct directories used by entries, in first-seen order.
func Dirs(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		d := path.Dir(e.Path)
		if d != "." && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
