package dataset

import (
	"fmt"

	"github.com/google/uuid"
)

// CheckpointPath returns the session-scoped side file used for
// incremental checkpoints of the dataset destined for outputPath. The
// session id keeps concurrent or re-run sessions from clobbering each
// other's partial data, and the distinct name keeps a partial checkpoint
// from ever being mistaken for the final output file.
func CheckpointPath(outputPath string, session uuid.UUID) string {
	return fmt.Sprintf("%s.checkpoint-%s", outputPath, session)
}

// Checkpoint rewrites the rows accumulated so far to the session's
// checkpoint file and returns its path. An interrupted run keeps its
// latest checkpoint; a completed run removes it after the final write
// succeeds.
func (a *Accumulator) Checkpoint(outputPath string, session uuid.UUID, delim rune) (string, error) {
	path := CheckpointPath(outputPath, session)
	if err := a.WriteFile(path, delim); err != nil {
		return path, err
	}
	return path, nil
}
