package file

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExampleName is the source name reported for the bundled score.
const ExampleName = "bundled example"

//go:embed example.txt
var example string

func Example() string {
	return strings.TrimSpace(example)
}

// ReadScore loads a text score from path.
func ReadScore(path string) (string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not read score %v", path)
	}
	return string(dat), nil
}

// Load reads the score at path, or the bundled example when path is empty.
// It also returns the name to report as the score's source.
func Load(path string) (text string, source string, err error) {
	if path == "" {
		return Example(), ExampleName, nil
	}
	text, err = ReadScore(path)
	return text, path, err
}
