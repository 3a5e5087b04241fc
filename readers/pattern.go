package readers

import (
	"math"
	"strconv"
	"strings"
)

/*
Report records are recognised token by token rather than with one grammar for
the whole file. Each record kind is a pattern: a fixed sequence of terms, each
of which accepts exactly one whitespace separated token and optionally captures
it. A line can hold any amount of noise around a record, and more than one
record; matches never overlap and are taken left to right.
*/
type term struct {
	match   func(tok string) bool
	capture bool
	trim    string // prefix removed from the captured token
}

type pattern []term

// word matches a literal keyword or separator
func word(w string) term {
	return term{match: func(tok string) bool { return tok == w }}
}

// number matches an unsigned decimal integer
func number(capture bool) term {
	return term{match: isNumber, capture: capture}
}

// negated matches "-<digits>", the connectivity notation for a midside node,
// and captures the digits alone
func negated() term {
	return term{
		match: func(tok string) bool {
			return strings.HasPrefix(tok, "-") && isNumber(tok[1:])
		},
		capture: true,
		trim:    "-",
	}
}

// float matches any finite floating point value
func float(capture bool) term {
	return term{match: isReal, capture: capture}
}

func isNumber(tok string) bool {
	if len(tok) == 0 {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	_, err := strconv.Atoi(tok)
	return err == nil
}

func isReal(tok string) bool {
	f, err := strconv.ParseFloat(tok, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// matchAt tries p against the leading tokens of fields
func (p pattern) matchAt(fields []string) (caps []string, ok bool) {
	if len(fields) < len(p) {
		return nil, false
	}
	for i, t := range p {
		if !t.match(fields[i]) {
			return nil, false
		}
		if t.capture {
			caps = append(caps, strings.TrimPrefix(fields[i], t.trim))
		}
	}
	return caps, true
}

// scan calls fn with the captures of every record found in text. At each token
// position the patterns are tried in order and the first match wins; which is
// the index of the winning pattern.
func scan(text string, fn func(which int, caps []string), patterns ...pattern) {
	for line := range strings.Lines(text) {
		fields := strings.Fields(line)
		for start := 0; start < len(fields); {
			matched := false
			for which, p := range patterns {
				if caps, ok := p.matchAt(fields[start:]); ok {
					fn(which, caps)
					start += len(p)
					matched = true
					break
				}
			}
			if !matched {
				start++
			}
		}
	}
}

// Captured tokens have already passed isNumber / isReal, so conversion can't fail
func atoi(tok string) (i int) {
	i, _ = strconv.Atoi(tok)
	return
}

func atof(tok string) (f float64) {
	f, _ = strconv.ParseFloat(tok, 64)
	return
}

func atoiAll(toks []string) (ints []int) {
	ints = make([]int, len(toks))
	for i, tok := range toks {
		ints[i] = atoi(tok)
	}
	return
}
