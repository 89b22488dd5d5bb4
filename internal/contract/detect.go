package contract

import (
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// DetectRequest scopes a detection run. A nil WindowStart/WindowEnd means the
// run covers every allocation in the store; when both are set only allocations
// intersecting [WindowStart, WindowEnd) are scanned.
type DetectRequest struct {
	WindowStart *time.Time
	WindowEnd   *time.Time
	Now         *time.Time
	DryRun      bool
}

func NewDetectRequest() DetectRequest {
	return DetectRequest{}
}

// DetectStats summarizes what a detection run touched.
type DetectStats struct {
	ResourcesScanned   int
	AllocationsIndexed int
	PairsFound         int
	Created            int
	Updated            int
	AutoResolved       int
}

type DetectResponse struct {
	GeneratedAt time.Time
	Conflicts   []*domain.Conflict
	Skipped     []InvalidAllocation
	Stats       DetectStats
}

type DetectErrorCode string

const (
	ErrInvalidWindow DetectErrorCode = "INVALID_WINDOW"
	ErrDataIntegrity DetectErrorCode = "DATA_INTEGRITY"
	ErrInternalError DetectErrorCode = "INTERNAL_ERROR"
)

type DetectError struct {
	Code    DetectErrorCode
	Message string
}

func (e *DetectError) Error() string {
	return string(e.Code) + ": " + e.Message
}
