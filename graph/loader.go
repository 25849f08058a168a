package graph

import (
	"bufio"
	"os"
	"strings"

	gql "github.com/gql-lang/cfpq"
)

// LoadCSV reads a graph from whitespace-separated "src dst label" lines,
// the way terexlang/trepl's REPL reads its init file: a bufio.Scanner,
// blank lines skipped, no quoting/escaping support.
func LoadCSV(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g := New()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		g.AddEdge(gql.NodeID(fields[0]), gql.Label(fields[2]), gql.NodeID(fields[1]))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}
