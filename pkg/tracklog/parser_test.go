package tracklog

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		header string
		want   rune
	}{
		{"When\tLocation\tVessel", '\t'},
		{"When,Location,Vessel", ','},
		{"When\tLocation,City\tVessel", '\t'}, // tabs outnumber commas
		{"\"a,b\",c,d", ','},                  // quoted comma not counted
		{"When\tA,B", '\t'},                   // tie goes to tab
		{"just one column", '\t'},
	}
	for _, tt := range tests {
		if got := DetectSeparator(tt.header); got != tt.want {
			t.Errorf("DetectSeparator(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		sep  rune
		want []string
	}{
		{"a,b,c", ',', []string{"a", "b", "c"}},
		{`a,"b,c",d`, ',', []string{"a", "b,c", "d"}},
		{"a\tb\tc", '\t', []string{"a", "b", "c"}},
		{`"open quote,rest`, ',', []string{"open quote,rest"}}, // unterminated consumes to EOL
		{"a,,c,,", ',', []string{"a", "", "c", "", ""}},        // trailing empties kept
		{" padded , cells ", ',', []string{"padded", "cells"}},
		{"", ',', []string{""}},
	}
	for _, tt := range tests {
		if got := SplitLine(tt.line, tt.sep); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLine(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	input := "When\tVessel\tQuantity\n" +
		"10/17/22 11:39 AM\tBong\tmedium\n" +
		"\n" +
		"8/7/25 6:05 pm\tpen_blue\thits_3\n"

	table, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Separator != '\t' {
		t.Errorf("Separator = %q, want tab", table.Separator)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows (blank skipped), got %d", len(table.Rows))
	}
	if table.Rows[1].Num != 2 {
		t.Errorf("row numbering = %d, want 2", table.Rows[1].Num)
	}
	if got := table.Get(table.Rows[0], "vessel"); got != "Bong" {
		t.Errorf("Get(vessel) = %q (header lookup should be case-insensitive)", got)
	}
	if got := table.Get(table.Rows[0], "Strain"); got != "" {
		t.Errorf("Get(absent column) = %q, want empty", got)
	}
}

func TestParseNoHeader(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("Parse(empty) error = %v, want ErrNoHeader", err)
	}
	_, err = Parse(strings.NewReader("   \n"))
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("Parse(blank header) error = %v, want ErrNoHeader", err)
	}
}

func TestParseFileFixture(t *testing.T) {
	table, err := ParseFile("testdata/sample.tsv")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(table.Rows))
	}
	if !table.HasColumnPrefix("instance") {
		t.Error("expected identifier column")
	}
	if got := table.Get(table.Rows[0], ColStrain); got != "Blue Dream" {
		t.Errorf("strain = %q", got)
	}
	// Quoted comma inside the comments cell must not split the field.
	if got := table.Get(table.Rows[2], ColComments); got != "rooftop, with a view" {
		t.Errorf("comments = %q", got)
	}
}
