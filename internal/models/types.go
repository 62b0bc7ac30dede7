package models

import "fmt"

// OperatorMode is who drives a tier's production
type OperatorMode int

const (
	OperatorNone OperatorMode = iota
	OperatorHuman
	OperatorAI
)

// String returns a string representation of the operator mode
func (m OperatorMode) String() string {
	switch m {
	case OperatorNone:
		return "none"
	case OperatorHuman:
		return "human"
	case OperatorAI:
		return "ai"
	default:
		return "unknown"
	}
}

// ParseOperatorMode is the inverse of String
func ParseOperatorMode(s string) (OperatorMode, error) {
	switch s {
	case "none", "":
		return OperatorNone, nil
	case "human":
		return OperatorHuman, nil
	case "ai":
		return OperatorAI, nil
	default:
		return OperatorNone, fmt.Errorf("unknown operator mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m OperatorMode) MarshalText() ([]byte, error) {
	if m < OperatorNone || m > OperatorAI {
		return nil, fmt.Errorf("invalid operator mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *OperatorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseOperatorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// BuyMode is the quantity selector for unit purchases
type BuyMode int

const (
	BuyMax     BuyMode = 0
	BuyOne     BuyMode = 1
	BuyTen     BuyMode = 10
	BuyHundred BuyMode = 100
)

// Next cycles x1 -> x10 -> x100 -> MAX -> x1
func (m BuyMode) Next() BuyMode {
	switch m {
	case BuyOne:
		return BuyTen
	case BuyTen:
		return BuyHundred
	case BuyHundred:
		return BuyMax
	default:
		return BuyOne
	}
}

// Quantity returns the fixed unit count, or false for MAX
func (m BuyMode) Quantity() (int, bool) {
	if m == BuyMax {
		return 0, false
	}
	if m < 0 {
		return 1, true
	}
	return int(m), true
}

// String returns "MAX" or the multiplier, e.g. "x10"
func (m BuyMode) String() string {
	if m == BuyMax {
		return "MAX"
	}
	return fmt.Sprintf("x%d", int(m))
}

// UpgradeKind selects which multiplier an upgrade feeds
type UpgradeKind int

const (
	UpgradeRevenue UpgradeKind = iota
	UpgradeSpeed
)

// String returns a string representation of the upgrade kind
func (k UpgradeKind) String() string {
	switch k {
	case UpgradeRevenue:
		return "revenue"
	case UpgradeSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// ParseUpgradeKind is the inverse of String
func ParseUpgradeKind(s string) (UpgradeKind, error) {
	switch s {
	case "revenue":
		return UpgradeRevenue, nil
	case "speed":
		return UpgradeSpeed, nil
	default:
		return UpgradeRevenue, fmt.Errorf("unknown upgrade kind %q", s)
	}
}
