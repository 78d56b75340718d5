package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hailam/boardtouch/internal/board"
)

func init() {
	color.NoColor = true
}

func TestShowStartPosition(t *testing.T) {
	var buf bytes.Buffer
	if err := show(&buf, board.StartPosition, false); err != nil {
		t.Fatalf("show() error = %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	tests := []struct {
		line int
		want string
	}{
		{0, "8 r n b q k b n r "},
		{1, "7 p p p p p p p p "},
		{7, "1 R N B Q K B N R "},
		{8, "  a b c d e f g h"},
	}
	for _, tt := range tests {
		if got := lines[tt.line]; got != tt.want {
			t.Errorf("line %d = %q, want %q", tt.line, got, tt.want)
		}
	}
	if !strings.Contains(buf.String(), "White to move, castling KQkq, 32 pieces") {
		t.Errorf("summary missing from:\n%s", buf.String())
	}
}

func TestShowFlipped(t *testing.T) {
	var buf bytes.Buffer
	if err := show(&buf, "4k3/8/8/8/8/8/8/R3K3 b Q - 0 1", true); err != nil {
		t.Fatalf("show() error = %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if got, want := lines[0], "1       K       R "; got != want {
		t.Errorf("first row = %q, want %q", got, want)
	}
	if got, want := lines[8], "  h g f e d c b a"; got != want {
		t.Errorf("file labels = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "Black to move, castling Q, 3 pieces") {
		t.Errorf("summary missing from:\n%s", buf.String())
	}
}

func TestReportErrorPointsAtIndex(t *testing.T) {
	pos := "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	err := show(&bytes.Buffer{}, pos, false)
	if err == nil {
		t.Fatal("show() accepted a bad piece letter")
	}

	var buf bytes.Buffer
	reportError(&buf, pos, err)
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("report too short:\n%s", buf.String())
	}
	if got := strings.Index(lines[2], "^") - 2; got != strings.IndexByte(pos, 'x') {
		t.Errorf("caret at %d, want %d", got, strings.IndexByte(pos, 'x'))
	}
}
