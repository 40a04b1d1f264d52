package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bottling-sim/bottling-sim/sim"
)

var (
	errNotWholeNumber = fmt.Errorf("%w: not a whole number", sim.ErrInvalidInput)
	errNotPositive    = fmt.Errorf("%w: must be positive", sim.ErrInvalidInput)
)

// parseTarget parses one line of user input as a positive bottle count.
func parseTarget(line string) (int64, error) {
	s := strings.TrimSpace(line)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotWholeNumber, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", errNotPositive, n)
	}
	return n, nil
}

// promptTarget asks for the bottle target until a positive whole number is
// entered. Running out of input is the only error.
func promptTarget(in io.Reader, out io.Writer) (int64, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter the total number of bottles to produce (e.g., 5000): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("reading bottle target: %w", io.EOF)
		}
		n, err := parseTarget(scanner.Text())
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, errNotPositive):
			fmt.Fprintln(out, "Please enter a positive number of bottles.")
		default:
			fmt.Fprintln(out, "Invalid input. Please enter a whole number.")
		}
	}
}
