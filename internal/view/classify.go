package view

import (
	"strconv"
	"strings"

	"github.com/edupanel/examboard/internal/model"
)

// Tier is a coarse classification bucket driving visual emphasis in the
// rendering layer. It carries no business meaning beyond display.
type Tier string

const (
	TierSuccess Tier = "success"
	TierInfo    Tier = "info"
	TierWarning Tier = "warning"
	TierError   Tier = "error"
)

// ClassifyGrade buckets a correctness percentage in [0,100].
// Out-of-range values degrade to the nearest bucket rather than failing.
func ClassifyGrade(percentage float64) Tier {
	switch {
	case percentage >= 70:
		return TierSuccess
	case percentage >= 50:
		return TierWarning
	default:
		return TierError
	}
}

// ClassifyNumericValue buckets a 0-10 scale grade (>= 7 is a pass).
func ClassifyNumericValue(grade float64) Tier {
	switch {
	case grade >= 9:
		return TierSuccess
	case grade >= 7:
		return TierInfo
	case grade >= 5:
		return TierWarning
	default:
		return TierError
	}
}

// ClassifyNumericGrade parses a decimal grade string and buckets it on the
// 0-10 scale. Unparsable input maps to the neutral info tier, never an error.
func ClassifyNumericGrade(grade string) Tier {
	n, err := strconv.ParseFloat(strings.TrimSpace(grade), 64)
	if err != nil {
		return TierInfo
	}
	return ClassifyNumericValue(n)
}

// Status vocabularies recognized by the legacy string heuristic.
var (
	statusSuccessWords = []string{"completado", "finalizado", "aprobado"}
	statusPendingWords = []string{"pendiente", "en curso", "progreso"}
)

// ClassifyStatus buckets a status name by case-insensitive substring match
// against fixed vocabularies. This is a best-effort heuristic over
// free-form catalog names, not a validated enum: anything unrecognized,
// including an empty name, lands in the error tier.
func ClassifyStatus(name string) Tier {
	if name == "" {
		return TierError
	}
	lower := strings.ToLower(name)
	for _, w := range statusSuccessWords {
		if strings.Contains(lower, w) {
			return TierSuccess
		}
	}
	for _, w := range statusPendingWords {
		if strings.Contains(lower, w) {
			return TierWarning
		}
	}
	return TierError
}

// Known estado catalog IDs on the upstream API.
const (
	statusIDCompleted  = 1
	statusIDInProgress = 2
	statusIDPending    = 3
	statusIDFailed     = 4
)

// ClassifyStatusRef buckets a status reference by its catalog ID, keeping
// the string heuristic only as a fallback decoder for entries predating
// the catalog. A missing reference is the error tier.
func ClassifyStatusRef(ref *model.StatusRef) Tier {
	if ref == nil {
		return TierError
	}
	switch ref.ID {
	case statusIDCompleted:
		return TierSuccess
	case statusIDInProgress, statusIDPending:
		return TierWarning
	case statusIDFailed:
		return TierError
	}
	return ClassifyStatus(ref.Name)
}
