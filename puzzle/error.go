package puzzle

import (
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with a puzzle or a requested
// operation.  It can produce an error message in English, but
// its main function is to support localized error messaging by
// clients.  It tells the client "this thing failed to meet this
// condition", and provides supplemental details about the thing
// and the condition.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is
// referring to.  In the case of client errors, this is either a
// client-supplied argument or some aspect of the puzzle built
// from it.  In the case of internal logic errors, this is where
// in the code the failure occurred.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	PaletteScope
	ClueScope
	LineScope
	CellScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the
// overall Scope, an Attribute of the Scope, or the value of an
// Attribute of the Scope.
type ErrorStructure int

// Constants for the various structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the
// scope/attribute/value failed to satisfy.  There are a bunch of
// known, named predicates and then a "general" (arbitrary
// English string) predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	TooLargeCondition
	TooSmallCondition
	EmptyPaletteCondition
	NotInPaletteCondition
	BackgroundClueCondition
	NonDiagonalCapCondition
	ClueOverflowCondition
	NoPossibleColorsCondition
	WrongValueCountCondition
	MissingCluesCondition
	UnsolvedGridCondition
	InvalidArgumentCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	URLAttribute
	LocationAttribute
	WidthAttribute
	HeightAttribute
	PaletteSizeAttribute
	ColorAttribute
	CountAttribute
	CapAttribute
	ValueAttribute
	IndexAttribute
	ClueSumAttribute
	GridAttribute
	PuzzleAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the value of an attribute) as well
// as the predicate itself (such as minimum required values).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.
// Sadly, there is no good way to express this condition in a way
// the compiler can check it, so we just have to rely on
// implementors to "do the right thing" and check the condition
// at runtime.
type ErrorData []interface{}

// A LineID names a row or a column of a puzzle.  Line indexes
// are 0-based, matching grid coordinates.
type LineID struct {
	Ltype string `json:"ltype"`
	Index int    `json:"index"`
}

// Line IDs implement Stringer
func (lid LineID) String() string {
	if lid.Ltype == "" {
		return fmt.Sprintf("<line> %d", lid.Index)
	}
	return fmt.Sprintf("%s %d", lid.Ltype, lid.Index)
}

// Ltype (line type) constants.  These are human-readable but not
// localized.
const (
	LtypeRow = "row"
	LtypeCol = "column"
)

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will
// produce an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case PaletteScope:
		es = "Invalid palette: "
	case ClueScope:
		es = fmt.Sprintf("Problem in clues for %v: ", nextVal())
	case LineScope:
		es = fmt.Sprintf("Problem in %v: ", nextVal())
	case CellScope:
		es = fmt.Sprintf("Problem in cell %v: ", nextVal())
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case URLAttribute:
			es += "Resource path"
		case LocationAttribute:
			es += fmt.Sprintf("In puzzle.%v", nextVal())
		case WidthAttribute:
			es += "Width"
		case HeightAttribute:
			es += "Height"
		case PaletteSizeAttribute:
			es += "Palette size"
		case ColorAttribute:
			es += "Color"
		case CountAttribute:
			es += "Clue length"
		case CapAttribute:
			es += "Cap"
		case ValueAttribute:
			es += "Value"
		case IndexAttribute:
			es += "Index"
		case ClueSumAttribute:
			es += "Clue sum"
		case GridAttribute:
			es += "Grid"
		case PuzzleAttribute:
			es += "Puzzle"
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case TooLargeCondition:
		es += fmt.Sprintf("Must be at most %v", nextVal())
	case TooSmallCondition:
		es += fmt.Sprintf("Must be at least %v", nextVal())
	case EmptyPaletteCondition:
		es += "Palette has no colors"
	case NotInPaletteCondition:
		es += fmt.Sprintf("Color %v is not in the palette", nextVal())
	case BackgroundClueCondition:
		es += "Clues may not use the background color"
	case NonDiagonalCapCondition:
		es += fmt.Sprintf("Color %v is not a diagonal half-cell", nextVal())
	case ClueOverflowCondition:
		es += fmt.Sprintf("Clues need %v cells but the line has %v", nextVal(), nextVal())
	case NoPossibleColorsCondition:
		es += "No remaining possible colors"
	case WrongValueCountCondition:
		es += fmt.Sprintf("Expected %v values, got %v", nextVal(), nextVal())
	case MissingCluesCondition:
		es += "Summary has neither values nor full clue lists"
	case UnsolvedGridCondition:
		es += fmt.Sprintf("Grid cell %v has more than one possible color", nextVal())
	case InvalidArgumentCondition:
		es += "Required value was missing or invalid"
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

/*

Error constructors shared by puzzle construction and solving.

*/

// rangeError returns an Error that describes an out-of-range argument.
func rangeError(attr ErrorAttribute, val int, min int, max int) Error {
	err := Error{
		Scope:     ArgumentScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{val, max},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[1] = min
	}
	return err
}

// clueError returns an Error describing a bad clue list for a line.
func clueError(lid LineID, cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope:     ClueScope,
		Structure: ScopeStructure,
		Condition: cond,
		Values:    append(ErrorData{lid}, values...),
	}
}

// lineError returns an Error describing a contradiction found
// while solving a line.
func lineError(lid LineID, cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope:     LineScope,
		Structure: ScopeStructure,
		Condition: cond,
		Values:    append(ErrorData{lid}, values...),
	}
}
