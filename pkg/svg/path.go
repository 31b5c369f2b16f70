package svg

import (
	"strconv"
	"strings"
)

// Command is one path command with its numeric arguments.
type Command struct {
	Letter byte
	Coords []float64
}

// arity is the number of coordinates one group of each command consumes.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7,
	'Z': 0,
}

// Arity returns the coordinate count of one group of the command letter, and
// false for letters that are not path commands.
func Arity(letter byte) (int, bool) {
	n, ok := arity[upper(letter)]
	return n, ok
}

// ParsePath parses SVG path data. It returns nil for empty or malformed data,
// including a command whose argument count is not a multiple of its arity.
func ParsePath(d string) []Command {
	var cmds []Command
	i := 0
	for i < len(d) && isSpace(d[i]) {
		i++
	}
	for i < len(d) {
		letter := d[i]
		if _, ok := Arity(letter); !ok {
			return nil
		}
		j := i + 1
		for j < len(d) {
			c := d[j]
			if _, ok := Arity(c); ok {
				break
			}
			if isAlpha(c) && c != 'e' && c != 'E' {
				return nil
			}
			j++
		}
		nums, ok := parseArgs(letter, d[i+1:j])
		if !ok {
			return nil
		}
		expanded, ok := expand(letter, nums)
		if !ok {
			return nil
		}
		cmds = append(cmds, expanded...)
		i = j
	}
	return cmds
}

// parseArgs reads the arguments of one command letter. Arc flags are single
// 0/1 characters that need no separator, so "0 015 5" is 0, 0, 1, 5, 5.
func parseArgs(letter byte, s string) ([]float64, bool) {
	if upper(letter) != 'A' {
		return ParseNumbers(s)
	}
	sc := scanner{s: s}
	var nums []float64
	for !sc.done() {
		var (
			v  float64
			ok bool
		)
		if isFlagSlot(len(nums)) {
			v, ok = sc.flag()
		} else {
			v, ok = sc.number()
		}
		if !ok {
			return nil, false
		}
		nums = append(nums, v)
	}
	return nums, true
}

// expand splits the arguments of one command letter into groups of its arity.
// Implicit moveto continuations become lineto commands.
func expand(letter byte, nums []float64) ([]Command, bool) {
	n, _ := Arity(letter)
	if n == 0 {
		if len(nums) > 0 {
			return nil, false
		}
		return []Command{{Letter: letter}}, true
	}
	if len(nums) == 0 || len(nums)%n != 0 {
		return nil, false
	}
	var out []Command
	cur := letter
	for start := 0; start < len(nums); start += n {
		end := start + n
		out = append(out, Command{Letter: cur, Coords: nums[start:end:end]})
		switch cur {
		case 'M':
			cur = 'L'
		case 'm':
			cur = 'l'
		}
	}
	return out, true
}

// IsArc reports whether c is an elliptical arc command.
func (c Command) IsArc() bool {
	return c.Letter == 'A' || c.Letter == 'a'
}

// ArcFlags returns the large-arc and sweep flags of an arc command.
func (c Command) ArcFlags() (large, sweep bool) {
	if !c.IsArc() || len(c.Coords) < 5 {
		return false, false
	}
	return c.Coords[3] != 0, c.Coords[4] != 0
}

// FormatPath serializes commands, fixing every number to two decimals.
// Arc flags are written as a bare 0 or 1.
func FormatPath(cmds []Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteByte(c.Letter)
		for i, v := range c.Coords {
			if i > 0 {
				b.WriteByte(',')
			}
			switch {
			case c.IsArc() && isFlagSlot(i) && v != 0:
				b.WriteByte('1')
			case c.IsArc() && isFlagSlot(i):
				b.WriteByte('0')
			default:
				b.WriteString(FormatNumber(v))
			}
		}
	}
	return b.String()
}

// Letters returns the command letters of cmds in order.
func Letters(cmds []Command) string {
	b := make([]byte, len(cmds))
	for i, c := range cmds {
		b[i] = c.Letter
	}
	return string(b)
}

// ParseNumbers tokenizes a run of SVG numbers. Whitespace and commas separate
// numbers; a sign not preceded by an exponent marker, and a decimal point in a
// number that already has one, start a new number. ok is false if any token
// is not a valid number.
func ParseNumbers(s string) ([]float64, bool) {
	sc := scanner{s: s}
	var nums []float64
	for !sc.done() {
		v, ok := sc.number()
		if !ok {
			return nil, false
		}
		nums = append(nums, v)
	}
	return nums, true
}

// isFlagSlot reports whether argument i of an arc is one of its two flags.
func isFlagSlot(i int) bool {
	slot := i % 7
	return slot == 3 || slot == 4
}

// scanner reads path arguments one at a time.
type scanner struct {
	s string
	i int
}

func (sc *scanner) skipSeparators() {
	for sc.i < len(sc.s) && (isSpace(sc.s[sc.i]) || sc.s[sc.i] == ',') {
		sc.i++
	}
}

// done skips separators and reports whether the input is used up.
func (sc *scanner) done() bool {
	sc.skipSeparators()
	return sc.i >= len(sc.s)
}

func (sc *scanner) digits() int {
	start := sc.i
	for sc.i < len(sc.s) && isDigit(sc.s[sc.i]) {
		sc.i++
	}
	return sc.i - start
}

// number reads sign, integer part, fraction and exponent. The mantissa needs
// at least one digit.
func (sc *scanner) number() (float64, bool) {
	sc.skipSeparators()
	start := sc.i
	if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		sc.i++
	}
	n := sc.digits()
	if sc.i < len(sc.s) && sc.s[sc.i] == '.' {
		sc.i++
		n += sc.digits()
	}
	if n == 0 {
		return 0, false
	}
	if sc.i < len(sc.s) && isExpMarker(sc.s[sc.i]) {
		j := sc.i + 1
		if j < len(sc.s) && (sc.s[j] == '+' || sc.s[j] == '-') {
			j++
		}
		k := j
		for k < len(sc.s) && isDigit(sc.s[k]) {
			k++
		}
		if k > j {
			sc.i = k
		}
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.i], 64)
	return v, err == nil
}

// flag reads one arc flag character.
func (sc *scanner) flag() (float64, bool) {
	sc.skipSeparators()
	if sc.i < len(sc.s) && (sc.s[sc.i] == '0' || sc.s[sc.i] == '1') {
		v := float64(sc.s[sc.i] - '0')
		sc.i++
		return v, true
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isExpMarker(c byte) bool {
	return c == 'e' || c == 'E'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
