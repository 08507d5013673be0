package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

var (
	// ErrNoCommand indicates path data which does not start with a command letter.
	ErrNoCommand = errors.New("path data must start with a command")
	// ErrUnknownCommand indicates a letter which is not a path command.
	ErrUnknownCommand = errors.New("unknown path command")
	// ErrBadNumber indicates a numeric token which cannot be parsed.
	ErrBadNumber = errors.New("malformed number in path data")
	// ErrBadFlag indicates an arc flag other than 0 or 1.
	ErrBadFlag = errors.New("arc flags must be 0 or 1")
	// ErrParamCount indicates a parameter count which is not a multiple of
	// the command's group size.
	ErrParamCount = errors.New("parameter count mismatch")
)

// groupSize is the number of parameters consumed per segment, by command.
var groupSize = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

// Command is a single path command: a command letter followed by a flat
// list of parameters. Letter is always upper case, Relative tells if the
// letter has been given in lower case.
type Command struct {
	Letter   byte
	Relative bool
	Args     []float64
	Pos      int // byte offset of the command letter within the path data
}

// Groups returns the number of parameter groups of a command.
// Close commands have a single, empty group.
func (cmd Command) Groups() int {
	if n := groupSize[cmd.Letter]; n > 0 {
		return len(cmd.Args) / n
	}
	return 1
}

// Group returns the parameters of group i.
func (cmd Command) Group(i int) []float64 {
	n := groupSize[cmd.Letter]
	return cmd.Args[i*n : (i+1)*n]
}

func (cmd Command) String() string {
	letter := cmd.Letter
	if cmd.Relative {
		letter += 'a' - 'A'
	}
	var sb strings.Builder
	sb.WriteByte(letter)
	for i, a := range cmd.Args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", a)
	}
	return sb.String()
}

func isCommandLetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// Scan splits path data into commands. It checks command letters, numbers
// and parameter counts, but does not interpret the commands.
func Scan(d string) ([]Command, error) {
	path := []byte(d)
	var cmds []Command
	i := skipCommaWhitespace(path)
	for i < len(path) {
		c := path[i]
		if !isCommandLetter(c) {
			if len(cmds) == 0 {
				return nil, fmt.Errorf("%w: found '%c' at position %d", ErrNoCommand, c, i+1)
			}
			return nil, fmt.Errorf("%w: unexpected '%c' at position %d", ErrBadNumber, c, i+1)
		}
		cmd := Command{Letter: c, Pos: i}
		if c >= 'a' {
			cmd.Letter, cmd.Relative = c-('a'-'A'), true
		}
		size, ok := groupSize[cmd.Letter]
		if !ok {
			return nil, fmt.Errorf("%w '%c' at position %d", ErrUnknownCommand, c, i+1)
		}
		i++
		for {
			i += skipCommaWhitespace(path[i:])
			if i >= len(path) || isCommandLetter(path[i]) {
				break
			}
			if cmd.Letter == 'A' && (len(cmd.Args)%7 == 3 || len(cmd.Args)%7 == 4) {
				// flags are single digits and may be written without separator
				switch path[i] {
				case '0':
					cmd.Args = append(cmd.Args, 0)
				case '1':
					cmd.Args = append(cmd.Args, 1)
				default:
					return nil, fmt.Errorf("%w: command '%c' at position %d", ErrBadFlag, c, i+1)
				}
				i++
				continue
			}
			num, n := strconv.ParseFloat(path[i:])
			if n == 0 {
				return nil, fmt.Errorf("%w: command '%c' at position %d", ErrBadNumber, c, i+1)
			} else if math.IsInf(num, 0) || math.IsNaN(num) {
				return nil, fmt.Errorf("%w: %q out of range at position %d", ErrBadNumber, path[i:i+n], i+1)
			}
			cmd.Args = append(cmd.Args, num)
			i += n
		}
		if size == 0 && len(cmd.Args) > 0 {
			return nil, fmt.Errorf("%w: command '%c' at position %d takes no parameters, got %d",
				ErrParamCount, c, cmd.Pos+1, len(cmd.Args))
		} else if size > 0 && (len(cmd.Args) == 0 || len(cmd.Args)%size != 0) {
			return nil, fmt.Errorf("%w: command '%c' at position %d needs sets of %d numbers, got %d",
				ErrParamCount, c, cmd.Pos+1, size, len(cmd.Args))
		}
		tracer().Debugf("command %s", cmd)
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
