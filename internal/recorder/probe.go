package recorder

import (
	"bufio"
	"encoding/json"
	"os"
)

// ProbeDuration scans an existing event-log file and returns the time of
// its last event, so a fresh --append session can continue numbering from
// there instead of restarting at zero (spec.md §4.F, scenario S6).
func ProbeDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var last float64
	first := true
	for scanner.Scan() {
		if first {
			// Line 1 is the header, not an event.
			first = false
			continue
		}

		var event [3]json.RawMessage
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		var t float64
		if err := json.Unmarshal(event[0], &t); err == nil {
			last = t
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return last, nil
}
