package fixture

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/sjson"
)

// WriteAnswer stores the expected sum and pair count of a run as
// {"expectedSum":..,"n":..,"seed":..,"output":..}.
func WriteAnswer(path string, s Summary) error {
	doc := []byte("{}")
	var err error
	for _, field := range []struct {
		path  string
		value interface{}
	}{
		{"expectedSum", s.Sum},
		{"n", s.Count},
		{"seed", s.Seed},
		{"output", s.Path},
	} {
		if doc, err = sjson.SetBytes(doc, field.path, field.value); err != nil {
			return fmt.Errorf("failed to encode answer field %s: %w", field.path, err)
		}
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write answer file: %w", err)
	}
	return nil
}

// WriteSummary prints the two console lines consumers parse: the expected sum, as the shortest
// decimal that round-trips, and the pair count.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "Expected sum: %s\nN: %d\n", strconv.FormatFloat(s.Sum, 'f', -1, 64), s.Count)
	return err
}
