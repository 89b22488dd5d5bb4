package contract

import (
	"github.com/alexanderramin/stagehand/internal/detector"
	"github.com/alexanderramin/stagehand/internal/repository"
)

// ConflictFilter narrows conflict listings. Nil fields match everything.
type ConflictFilter = repository.ConflictFilter

// InvalidAllocation names an allocation skipped during detection and why.
type InvalidAllocation = detector.InvalidAllocation
