package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the four focus movements.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

var directionNames = map[Direction]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a token such as "left" or a key name such as
// "ArrowLeft" into a Direction.
func ParseDirection(s string) (Direction, error) {
	token := strings.ToLower(strings.TrimPrefix(s, "Arrow"))
	for d, name := range directionNames {
		if name == token {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}
