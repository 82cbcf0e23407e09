package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = acquisition, W2xxx = calibration, W3xxx = market quotes.
type WarningCode string

const (
	WarnGroundTruthGap      WarningCode = "W1001" // a ground-truth date the computation uses was published for one leg only
	WarnIntradayUnavailable WarningCode = "W2001" // intraday augmentation could not be computed (section omitted)
	WarnBasisWindowShort    WarningCode = "W2002" // fewer raw-basis points than the configured window
	WarnBasisStale          WarningCode = "W2003" // most recent basis date is older than the staleness threshold
	WarnQuoteDropped        WarningCode = "W3001" // a single currency quote failed and was left out
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
