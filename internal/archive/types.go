package archive

import "time"

// #region run-record
// RunRecord is one archived simulation run.
type RunRecord struct {
	RunID      string
	ConfigJSON string
	Steps      int // configured step count
	Retained   int // steps that produced a record
	CreatedAt  time.Time
}
// #endregion run-record
