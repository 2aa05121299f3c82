package format

import (
	"strings"
	"testing"
)

func TestExportHTML(t *testing.T) {
	s, err := ImportCharGrid(".#.\n###\n")
	if err != nil {
		t.Fatalf("ImportCharGrid failed: %v", err)
	}
	text, err := ExportHTML(s)
	if err != nil {
		t.Fatalf("ExportHTML failed: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<table>", ".c1 {", "3×2"} {
		if !strings.Contains(text, want) {
			t.Errorf("html export missing %q:\n%s", want, text)
		}
	}
}
