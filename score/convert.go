package score

import (
	"math"

	"github.com/grailbio/base/errors"
	pkgerrors "github.com/pkg/errors"
)

// Kind names which upstream measurement a Conversion turns into a
// resolve score.
type Kind int

const (
	// Raw means the upstream value is already a usable positive score.
	Raw Kind = iota
	// Evalue means the upstream value is an HMMER e-value, converted by
	// -log10.
	Evalue
	// Bitscore means the upstream value is an HMMER bitscore, divided by
	// BitscoreDivisor before use.
	Bitscore
)

// Conversion describes how to turn one upstream measurement into the
// strictly positive score resolve.NewHit requires. It replaces the
// polymorphic score-policy classes of the original tool with a single
// small tagged struct, the systems-language equivalent of picking one of
// a closed set of cases.
type Conversion struct {
	Kind              Kind
	ApplyCathPolicies bool
}

// ParseConversion parses one of "raw", "evalue" or "bitscore" (optionally
// suffixed with "+cath" to turn on CATH-Gene3D scoring policies, e.g.
// "bitscore+cath") into a Conversion.
func ParseConversion(s string) (Conversion, error) {
	applyCath := false
	if i := indexSuffix(s, "+cath"); i >= 0 {
		applyCath = true
		s = s[:i]
	}
	switch s {
	case "raw":
		return Conversion{Kind: Raw, ApplyCathPolicies: applyCath}, nil
	case "evalue":
		return Conversion{Kind: Evalue, ApplyCathPolicies: applyCath}, nil
	case "bitscore":
		return Conversion{Kind: Bitscore, ApplyCathPolicies: applyCath}, nil
	default:
		return Conversion{}, errors.E(errors.Invalid, pkgerrors.Errorf("score: unrecognised score conversion %q", s))
	}
}

func indexSuffix(s, suffix string) int {
	if len(s) < len(suffix) {
		return -1
	}
	i := len(s) - len(suffix)
	if s[i:] == suffix {
		return i
	}
	return -1
}

// Apply converts a raw upstream measurement into a resolve score, given
// the match's ID (used to classify it) and, for the Bitscore kind, its
// conditional/independent HMMER e-values (used to decide if the match
// looks suspicious).
func (c Conversion) Apply(id string, value, condEvalue, indpEvalue float64) (float32, error) {
	switch c.Kind {
	case Raw:
		if value <= 0 {
			return 0, errors.E(errors.Invalid, pkgerrors.Errorf("score: raw score %v for %q must be strictly positive", value, id))
		}
		return float32(value), nil
	case Evalue:
		if value <= 0 {
			return 0, errors.E(errors.Invalid, pkgerrors.Errorf("score: evalue %v for %q must be strictly positive", value, id))
		}
		converted := -math.Log10(value)
		if converted <= 0 {
			return 0, errors.E(errors.Invalid, pkgerrors.Errorf("score: evalue %v for %q converts to a non-positive score", value, id))
		}
		return float32(converted), nil
	case Bitscore:
		cat := CategoryOfID(id, c.ApplyCathPolicies)
		suspicious := EvaluesAreSuspicious(condEvalue, indpEvalue)
		divisor := BitscoreDivisor(c.ApplyCathPolicies, cat, suspicious)
		converted := value / divisor
		if converted <= 0 {
			return 0, errors.E(errors.Invalid, pkgerrors.Errorf("score: bitscore %v for %q converts to a non-positive score", value, id))
		}
		return float32(converted), nil
	default:
		return 0, errors.E(errors.Invalid, pkgerrors.Errorf("score: unknown conversion kind %d", c.Kind))
	}
}
