package dataset

import (
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// Diagnosis is the class label of an observation.
type Diagnosis int

const (
	// Benign is the negative class.
	Benign Diagnosis = iota
	// Malignant is the positive class.
	Malignant
)

// NumClasses is the number of diagnosis values.
const NumClasses = 2

// ParseDiagnosis decodes the raw WDBC label. Only the exact markers "B" and
// "M" are accepted; anything else is an error rather than an implicit
// benign, so a typo in the input cannot silently become a negative label.
func ParseDiagnosis(s string) (Diagnosis, error) {
	switch s {
	case "B":
		return Benign, nil
	case "M":
		return Malignant, nil
	default:
		return 0, errors.NewValueError("ParseDiagnosis", "label must be exactly \"B\" or \"M\", got "+s)
	}
}

func (d Diagnosis) String() string {
	switch d {
	case Benign:
		return "benign"
	case Malignant:
		return "malignant"
	default:
		return "unknown"
	}
}

// Numeric returns the binary encoding used for correlation and PCA:
// malignant is 1, benign is 0.
func (d Diagnosis) Numeric() float64 {
	if d == Malignant {
		return 1
	}
	return 0
}

// DiagnosisFromNumeric inverts Numeric. The encoding must round-trip
// losslessly, so values other than 0 and 1 are rejected.
func DiagnosisFromNumeric(v float64) (Diagnosis, error) {
	switch v {
	case 0:
		return Benign, nil
	case 1:
		return Malignant, nil
	default:
		return 0, errors.NewValueError("DiagnosisFromNumeric", "encoded label must be 0 or 1")
	}
}
