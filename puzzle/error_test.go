package puzzle

import (
	"strings"
	"testing"
)

// all the verbalizations should produce some message, even with
// missing values
func TestErrorVerbalization(t *testing.T) {
	for scope := UnknownScope; scope <= MaxScope; scope++ {
		for structure := UnknownStructure; structure <= MaxStructure; structure++ {
			for condition := UnknownCondition; condition <= MaxCondition; condition++ {
				for attribute := UnknownAttribute; attribute <= MaxAttribute; attribute++ {
					err := Error{
						Scope:     scope,
						Structure: structure,
						Condition: condition,
						Attribute: attribute,
					}
					if msg := err.Error(); msg == "" {
						t.Errorf("no message for %+v", err)
					}
				}
			}
		}
	}
}

func TestErrorMessageOverride(t *testing.T) {
	err := Error{Message: "canned message"}
	if err.Error() != "canned message" {
		t.Errorf("pre-canned message not used: %q", err.Error())
	}
}

func TestErrorDetails(t *testing.T) {
	err := clueError(LineID{LtypeRow, 3}, ClueOverflowCondition, 7, 5)
	msg := err.Error()
	if !strings.Contains(msg, "row 3") {
		t.Errorf("clue error doesn't name the line: %q", msg)
	}
	if !strings.Contains(msg, "7") || !strings.Contains(msg, "5") {
		t.Errorf("clue error doesn't carry its values: %q", msg)
	}

	err = rangeError(WidthAttribute, 0, 1, maxLineLength)
	if !strings.Contains(err.Error(), "at least 1") {
		t.Errorf("range error message wrong: %q", err.Error())
	}
	err = rangeError(WidthAttribute, maxLineLength+1, 1, maxLineLength)
	if !strings.Contains(err.Error(), "at most") {
		t.Errorf("range error message wrong: %q", err.Error())
	}
}

func TestLineIDString(t *testing.T) {
	if got := (LineID{LtypeCol, 2}).String(); got != "column 2" {
		t.Errorf("LineID string = %q, expected %q", got, "column 2")
	}
	if got := (LineID{}).String(); !strings.Contains(got, "0") {
		t.Errorf("zero LineID string = %q", got)
	}
}
