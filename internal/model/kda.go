package model

import (
	"encoding/json"
	"fmt"
)

// PerfectKDA is the label used for a deathless record with kills or assists.
const PerfectKDA = "Perfect"

// KDA is either a finite ratio or Perfect. The zero value is Finite(0).
type KDA struct {
	perfect bool
	value   float64
}

// Finite returns a numeric KDA.
func Finite(v float64) KDA { return KDA{value: v} }

// Perfect returns the deathless sentinel.
func Perfect() KDA { return KDA{perfect: true} }

// IsPerfect reports whether k is the Perfect sentinel.
func (k KDA) IsPerfect() bool { return k.perfect }

// Value returns the numeric ratio and false when k is Perfect.
func (k KDA) Value() (float64, bool) {
	if k.perfect {
		return 0, false
	}
	return k.value, true
}

// Compare orders KDAs with Perfect above every finite value.
// It returns -1, 0 or +1.
func (k KDA) Compare(o KDA) int {
	switch {
	case k.perfect && o.perfect:
		return 0
	case k.perfect:
		return 1
	case o.perfect:
		return -1
	case k.value < o.value:
		return -1
	case k.value > o.value:
		return 1
	}
	return 0
}

// String formats the ratio to two decimals, or "Perfect".
func (k KDA) String() string {
	if k.perfect {
		return PerfectKDA
	}
	return FormatFixed(k.value, 2)
}

// MarshalJSON encodes Perfect as the string "Perfect" and finite values as numbers.
func (k KDA) MarshalJSON() ([]byte, error) {
	if k.perfect {
		return json.Marshal(PerfectKDA)
	}
	return json.Marshal(k.value)
}

// UnmarshalJSON accepts either a number or the string "Perfect".
func (k *KDA) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != PerfectKDA {
			return fmt.Errorf("invalid kda %q", s)
		}
		*k = Perfect()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid kda: %w", err)
	}
	*k = Finite(v)
	return nil
}
