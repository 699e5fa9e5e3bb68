package universe

import "errors"

var (
	//ErrInvalidDimension is returned when a width or height can't back a grid
	ErrInvalidDimension = errors.New("invalid dimension")
	//ErrIndexOutOfRange is returned when a coordinate lies outside the grid
	ErrIndexOutOfRange = errors.New("index out of range")
	//ErrInvalidOperand is returned when the food chain is queried for an empty cell
	ErrInvalidOperand = errors.New("invalid operand")
	//ErrUnknownEngine is returned by NewEngine for unregistered engine names
	ErrUnknownEngine = errors.New("unknown engine")
	//ErrUnknownTemplate is returned by SettleTemplate for names never added with AddTemplate
	ErrUnknownTemplate = errors.New("unknown template")
)
