package timing

import "fmt"

type DeltaKind int

const (
	DeltaInvalid DeltaKind = iota
	DeltaEqual
	DeltaFaster
	DeltaSlower
)

func (k DeltaKind) String() string {
	switch k {
	case DeltaEqual:
		return "Equal"
	case DeltaFaster:
		return "Faster"
	case DeltaSlower:
		return "Slower"
	default:
		return "Invalid"
	}
}

// Delta is the gap between two times in seconds per mile.
// Magnitude is never negative; Kind carries the direction.
type Delta struct {
	Magnitude float64
	Kind      DeltaKind
}

// DiffPerMile compares a against b over distance miles. A slower a yields
// DeltaSlower. distance must be positive.
func DiffPerMile(a, b StageTime, distance float64) Delta {
	if distance <= 0 {
		panic(fmt.Sprintf("timing: non-positive distance %v", distance))
	}
	if !a.Valid() || !b.Valid() {
		return Delta{Kind: DeltaInvalid}
	}
	switch a.Compare(b) {
	case 1:
		return Delta{Magnitude: a.Sub(b).Duration().Seconds() / distance, Kind: DeltaSlower}
	case -1:
		return Delta{Magnitude: b.Sub(a).Duration().Seconds() / distance, Kind: DeltaFaster}
	}
	return Delta{Kind: DeltaEqual}
}

// String renders the magnitude to two decimals; slower deltas get a "-".
func (d Delta) String() string {
	sign := ""
	if d.Kind == DeltaSlower {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f", sign, d.Magnitude)
}
