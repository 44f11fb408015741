package diagram

import "errors"

var (
	// ErrNoStages reports a pipeline without stages.
	ErrNoStages = errors.New("pipeline has no stages")

	// ErrInvalidStage reports a stage that cannot be drawn.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrInvalidScene reports a scene with an empty world.
	ErrInvalidScene = errors.New("invalid scene")
)
