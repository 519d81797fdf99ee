// Package scanner splits source text into documentation comments and code.
//
// It recognises only "/** ... */" blocks. For every block it also captures the
// first two words of code that follow the closing marker, which the extractor
// uses to name members that carry no explicit name tag.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

const (
	startComment = "/**"
	endComment   = "*/"
)

// Block is one documentation comment and the code tokens following it
type Block struct {
	Comment     string // text between the markers, undecorated
	FirstToken  string
	SecondToken string
}

type state int

const (
	stateCode state = iota
	stateComment
)

type captureState int

const (
	captureSkipping captureState = iota
	captureAwaitFirst
	captureFirst
	captureAwaitSecond
	captureSecond
)

// IsWordChar reports whether r can be part of a trailing code token
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'
}

type machine struct {
	state   state
	capture captureState
	buf     []rune // text since the last marker
	first   []rune
	second  []rune
	pending *string
	emit    func(Block)
}

func (m *machine) step(r rune) {
	m.buf = append(m.buf, r)

	switch m.state {
	case stateCode:
		m.captureToken(r)
		if hasSuffix(m.buf, startComment) {
			m.flush()
			m.buf = m.buf[:0]
			m.state = stateComment
		}
	case stateComment:
		if hasSuffix(m.buf, endComment) {
			body := string(m.buf[:len(m.buf)-len(endComment)])
			m.pending = &body
			m.buf = m.buf[:0]
			m.state = stateCode
			m.capture = captureAwaitFirst
		}
	}
}

func (m *machine) captureToken(r rune) {
	word := IsWordChar(r)
	switch m.capture {
	case captureAwaitFirst:
		if word {
			m.capture = captureFirst
			m.first = append(m.first, r)
		}
	case captureFirst:
		if word {
			m.first = append(m.first, r)
		} else {
			m.capture = captureAwaitSecond
		}
	case captureAwaitSecond:
		if word {
			m.capture = captureSecond
			m.second = append(m.second, r)
		}
	case captureSecond:
		if word {
			m.second = append(m.second, r)
		} else {
			m.capture = captureSkipping
		}
	}
}

// flush emits the pending comment with whatever tokens were captured so far
func (m *machine) flush() {
	if m.pending != nil {
		m.emit(Block{
			Comment:     *m.pending,
			FirstToken:  string(m.first),
			SecondToken: string(m.second),
		})
		m.pending = nil
	}
	m.first = m.first[:0]
	m.second = m.second[:0]
	m.capture = captureSkipping
}

func hasSuffix(buf []rune, suffix string) bool {
	s := []rune(suffix)
	if len(buf) < len(s) {
		return false
	}
	tail := buf[len(buf)-len(s):]
	for i := range s {
		if tail[i] != s[i] {
			return false
		}
	}
	return true
}

// Scan reads r to the end and calls emit for every documentation block in
// source order. On a read error the blocks already emitted stand, nothing
// further is emitted, and the error is returned.
func Scan(r io.Reader, emit func(Block)) error {
	m := &machine{emit: emit}
	br := bufio.NewReader(r)
	for {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		m.step(ch)
	}
	m.flush()
	return nil
}

// ScanString is a convenience wrapper returning all blocks of src
func ScanString(src string) []Block {
	var blocks []Block
	// strings.Reader never fails
	_ = Scan(strings.NewReader(src), func(b Block) {
		blocks = append(blocks, b)
	})
	return blocks
}

// ScanFile scans the named file. Blocks read before a failure are returned
// alongside the error.
func ScanFile(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	var blocks []Block
	err = Scan(f, func(b Block) {
		blocks = append(blocks, b)
	})
	return blocks, err
}
