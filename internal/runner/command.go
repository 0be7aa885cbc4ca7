package runner

import "fmt"

// Command is one of the four discrete inputs a driver can send.
type Command uint8

const (
	CommandStart Command = iota + 1
	CommandMoveLeft
	CommandMoveRight
	CommandJump
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandMoveLeft:
		return "moveLeft"
	case CommandMoveRight:
		return "moveRight"
	case CommandJump:
		return "jump"
	default:
		return fmt.Sprintf("command(%d)", uint8(c))
	}
}

// Apply dispatches cmd to the matching session operation. Unknown commands
// are ignored like any other inapplicable input.
func (s *Session) Apply(cmd Command) {
	switch cmd {
	case CommandStart:
		s.Start()
	case CommandMoveLeft:
		s.MoveLeft()
	case CommandMoveRight:
		s.MoveRight()
	case CommandJump:
		s.Jump()
	}
}
