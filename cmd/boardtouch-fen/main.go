// boardtouch-fen checks position strings and prints them as a board diagram.
//
// Usage:
//
//	boardtouch-fen [-flip] [-plain] [position ...]
//
// With no arguments, one position is read per line from standard input.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hailam/boardtouch/internal/board"
)

var (
	lightSquare = color.New(color.BgHiYellow, color.FgBlack)
	darkSquare  = color.New(color.BgYellow, color.FgBlack)
	whitePiece  = color.FgHiWhite
	blackPiece  = color.FgBlack
	labelColor  = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed, color.Bold)
)

func main() {
	flip := flag.Bool("flip", false, "draw with Black at the bottom")
	plain := flag.Bool("plain", false, "disable colour")
	flag.Parse()

	if *plain {
		color.NoColor = true
	}

	var positions []string
	if flag.NArg() > 0 {
		positions = []string{strings.Join(flag.Args(), " ")}
	} else {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				positions = append(positions, line)
			}
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	failed := false
	for i, pos := range positions {
		if i > 0 {
			fmt.Println()
		}
		if err := show(os.Stdout, pos, *flip); err != nil {
			reportError(os.Stderr, pos, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// show parses pos and writes its diagram and summary to w.
func show(w io.Writer, pos string, flipped bool) error {
	l, err := board.Parse(pos)
	if err != nil {
		return err
	}
	drawDiagram(w, l, flipped)

	b := board.NewFromLayout(l)
	fields := strings.Fields(b.FEN())
	fmt.Fprintf(w, "\n%s to move, castling %s, %d pieces\n", b.Turn(), fields[2], b.Occupied())
	fmt.Fprintln(w, b.FEN())
	return nil
}

// drawDiagram writes the 8x8 board, two columns per square, rank 8 first
// unless flipped.
func drawDiagram(w io.Writer, l *board.Layout, flipped bool) {
	files := "  a b c d e f g h"
	if flipped {
		files = "  h g f e d c b a"
	}

	for row := 0; row < 8; row++ {
		rank := 7 - row
		if flipped {
			rank = row
		}
		fmt.Fprint(w, labelColor.Sprintf("%d ", rank+1))
		for col := 0; col < 8; col++ {
			file := col
			if flipped {
				file = 7 - col
			}
			sq := board.NewSquare(file, rank)
			fmt.Fprint(w, squareText(sq, l.Squares[sq]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, labelColor.Sprint(files))
}

func squareText(sq board.Square, rec board.Record) string {
	c := darkSquare
	if sq.IsLight() {
		c = lightSquare
	}
	if rec.IsEmpty() {
		return c.Sprint("  ")
	}
	fg := blackPiece
	if rec.Side == board.White {
		fg = whitePiece
	}
	return color.New(fg, color.Bold).Add(bgOf(sq)).Sprintf("%c ", rec.Letter())
}

func bgOf(sq board.Square) color.Attribute {
	if sq.IsLight() {
		return color.BgHiYellow
	}
	return color.BgYellow
}

// reportError prints err, pointing at the offending character when the
// parser says where it stopped.
func reportError(w io.Writer, pos string, err error) {
	fmt.Fprintln(w, errorColor.Sprint("error: ")+err.Error())

	var perr *board.MalformedPositionError
	if !errors.As(err, &perr) {
		return
	}
	fmt.Fprintln(w, "  "+pos)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", min(perr.Index, len(pos)))+"^")
}
