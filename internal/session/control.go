package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RunControlProtocol reads whitespace-separated "<field> <value>" lines
// from r until it hits EOF or r returns an error, publishing a clamped
// snapshot update to s.Params() for each recognized field. A GUI of
// knobs and sliders is out of scope per §1; this line protocol stands
// in for it so the parameter channel has a live writer to exercise.
//
// Recognized fields: pitch, speed, echo, echodelay, reverb.
func (s *Session) RunControlProtocol(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.applyControlLine(line); err != nil && s.logger != nil {
			s.logger.Warn("ignoring malformed control line", "line", line, "err", err)
		}
	}
	return scanner.Err()
}

func (s *Session) applyControlLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected \"<field> <value>\", got %q", line)
	}
	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", fields[1], err)
	}

	current := s.params.Load()
	switch strings.ToLower(fields[0]) {
	case "pitch":
		current.PitchFactor = value
	case "speed":
		current.SpeedFactor = value
	case "echo":
		current.EchoIntensity = value
	case "echodelay":
		current.EchoDelaySamples = int(value)
	case "reverb":
		current.ReverbIntensity = value
	default:
		return fmt.Errorf("unknown field %q", fields[0])
	}

	s.params.Publish(current)
	return nil
}
