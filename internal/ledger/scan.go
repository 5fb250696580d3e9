package ledger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/beanpull-dev/beanpull/internal/resolve"
)

// MetadataKey is the ledger metadata key binding an account declaration to a
// remote identifier.
const MetadataKey = "ynab-id"

var (
	openRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+open\s+(\S+)`)
	metaRe = regexp.MustCompile(`^\s+` + MetadataKey + `:\s*"([^"]+)"`)
)

// AmbiguousIDError reports two account declarations claiming the same remote
// identifier. It is fatal to the run: every resolution would be suspect.
type AmbiguousIDError struct {
	ID       string
	Accounts [2]string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("%s %q declared by both %s and %s", MetadataKey, e.ID, e.Accounts[0], e.Accounts[1])
}

// ScanMapping reads an existing ledger and collects ynab-id overrides from
// open directives. Metadata lines are indented beneath their directive; any
// line starting at column zero ends the directive's metadata block.
func ScanMapping(r io.Reader) (resolve.Mapping, error) {
	mapping := resolve.Mapping{}
	claimed := map[string]string{} // id -> account, for ambiguity reporting

	var openAccount string
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if m := openRe.FindStringSubmatch(line); m != nil {
			openAccount = m[1]
			continue
		}
		if len(line) > 0 && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			openAccount = ""
			continue
		}
		if openAccount == "" {
			continue
		}
		m := metaRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		id := m[1]
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("line %d: %s %q on %s is not a UUID: %w", lineNo, MetadataKey, id, openAccount, err)
		}
		if prev, ok := claimed[id]; ok {
			return nil, &AmbiguousIDError{ID: id, Accounts: [2]string{prev, openAccount}}
		}
		claimed[id] = openAccount
		mapping[id] = openAccount
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning ledger: %w", err)
	}
	return mapping, nil
}

// LoadMapping scans the ledger file at path. An empty path yields an empty
// mapping, matching a first run against no existing ledger.
func LoadMapping(path string) (resolve.Mapping, error) {
	if path == "" {
		return resolve.Mapping{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	mapping, err := ScanMapping(f)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", path, err)
	}
	return mapping, nil
}
