package task

import (
	"github.com/tidwall/gjson"
)

// ConfirmationResolved is the status value in a manual confirmation
// payload that triggers full completion semantics. Any other value (or
// a missing status field) means partial manual progress, e.g. an
// operator escalating without resolving.
const ConfirmationResolved = "resolved"

// UnknownProcessingTime is the sentinel returned when a result payload
// carries no processing_time field.
const UnknownProcessingTime = "unknown"

// Summary is the normalized view of an automated-processing result.
// Result payloads are open records whose field names vary by task
// category; Summary flattens them through a fixed fallback chain.
type Summary struct {
	// ResolvedCount is the number of records the agent handled.
	ResolvedCount int64 `json:"resolved_count"`
	// AccuracyPct is the reported accuracy or completion rate.
	AccuracyPct float64 `json:"accuracy_pct"`
	// ProcessingTime is the reported wall time, or "unknown".
	ProcessingTime string `json:"processing_time"`
}

// ExtractSummary normalizes a loose result payload into a Summary.
//
// Fallback chains, first present field wins:
//   - resolved count: auto_resolved, auto_completed, auto_verified (default 0)
//   - accuracy: accuracy, completion_rate (default 0)
//   - processing time: processing_time (default "unknown")
//
// Missing or malformed fields are tolerated, never errors: payload
// shapes legitimately vary by task category. Both the task list and
// detail surfaces go through this one function so they agree.
func ExtractSummary(result []byte) Summary {
	s := Summary{ProcessingTime: UnknownProcessingTime}
	if len(result) == 0 {
		return s
	}

	for _, field := range []string{"auto_resolved", "auto_completed", "auto_verified"} {
		if v := gjson.GetBytes(result, field); v.Exists() {
			s.ResolvedCount = v.Int()
			break
		}
	}

	for _, field := range []string{"accuracy", "completion_rate"} {
		if v := gjson.GetBytes(result, field); v.Exists() {
			s.AccuracyPct = v.Float()
			break
		}
	}

	if v := gjson.GetBytes(result, "processing_time"); v.Exists() {
		s.ProcessingTime = v.String()
	}

	return s
}

// ConfirmationStatus extracts the status field from a manual
// confirmation payload. Returns an empty string when absent.
func ConfirmationStatus(result []byte) string {
	if len(result) == 0 {
		return ""
	}
	return gjson.GetBytes(result, "status").String()
}

// IsResolved reports whether a manual confirmation payload carries the
// full-resolution status.
func IsResolved(result []byte) bool {
	return ConfirmationStatus(result) == ConfirmationResolved
}
