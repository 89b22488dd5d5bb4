package domain

type ResourceKind string

const (
	KindPerson    ResourceKind = "person"
	KindEquipment ResourceKind = "equipment"
	KindVenue     ResourceKind = "venue"
)

// ValidResourceKinds is the canonical set of accepted resource kind strings.
var ValidResourceKinds = map[string]bool{
	"person": true, "equipment": true, "venue": true,
}

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityBusy        AvailabilityStatus = "busy"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

type ActivityType string

const (
	ActivitySetup       ActivityType = "setup"
	ActivityRehearsal   ActivityType = "rehearsal"
	ActivityPerformance ActivityType = "performance"
	ActivityBreakdown   ActivityType = "breakdown"
	ActivityTransport   ActivityType = "transport"
	ActivityCatering    ActivityType = "catering"
	ActivityOther       ActivityType = "other"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[string]bool{
	"setup": true, "rehearsal": true, "performance": true,
	"breakdown": true, "transport": true, "catering": true,
	"other": true,
}

type ConflictType string

const (
	ConflictTime     ConflictType = "time"
	ConflictResource ConflictType = "resource"
	ConflictVenue    ConflictType = "venue"
	ConflictTeam     ConflictType = "team"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns a numeric order for severity (higher = more urgent).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

type ConflictStatus string

const (
	ConflictActive   ConflictStatus = "active"
	ConflictResolved ConflictStatus = "resolved"
	ConflictIgnored  ConflictStatus = "ignored"
)

type SuggestionKind string

const (
	SuggestReschedule   SuggestionKind = "reschedule"
	SuggestReassign     SuggestionKind = "reassign"
	SuggestSplit        SuggestionKind = "split"
	SuggestManualReview SuggestionKind = "manual_review"
)

type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)
