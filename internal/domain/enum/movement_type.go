package enum

import (
	"encoding/json"
	"fmt"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementEntry      MovementType = "ENTRY"
	MovementExit       MovementType = "EXIT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func (t MovementType) String() string {
	return string(t)
}

func (t MovementType) IsValid() bool {
	switch t {
	case MovementEntry, MovementExit, MovementAdjustment:
		return true
	}
	return false
}

// Delta returns the signed stock change a movement of quantity q applies.
// ADJUSTMENT is a signed delta: a negative quantity lowers stock.
func (t MovementType) Delta(q int) int {
	switch t {
	case MovementEntry:
		return q
	case MovementExit:
		return -q
	case MovementAdjustment:
		return q
	}
	return 0
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	mt := MovementType(str)
	if !mt.IsValid() {
		return fmt.Errorf("unknown movement type %q", str)
	}
	*t = mt
	return nil
}
