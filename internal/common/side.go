package common

import (
	"encoding/json"
	"fmt"
)

type Side int

const (
	Buy Side = iota
	Sell
)

// Wire codes used by the submission protocol.
const (
	buyCode  = "B"
	sellCode = "S"
)

// SideFromCode maps a submitted side code onto a Side. The second return
// is false when the code is not a recognized value.
func SideFromCode(code string) (Side, bool) {
	switch code {
	case buyCode:
		return Buy, true
	case sellCode:
		return Sell, true
	}
	return 0, false
}

// Opposite returns the counter side used when matching.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) Code() string {
	if s == Buy {
		return buyCode
	}
	return sellCode
}

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "BUY":
		*s = Buy
	case "SELL":
		*s = Sell
	default:
		return fmt.Errorf("unknown side %q", name)
	}
	return nil
}
