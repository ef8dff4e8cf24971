package tetris

import (
	"fmt"
	"strings"
)

// Command is a discrete player input.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
)

// Commands lists every player command.
var Commands = []Command{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop}

var commandNames = map[Command]string{
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	RotateCW:  "rotate_cw",
	RotateCCW: "rotate_ccw",
	SoftDrop:  "soft_drop",
	HardDrop:  "hard_drop",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ParseCommand accepts the String form of a command, case-insensitively.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for cmd, name := range commandNames {
		if name == s {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
