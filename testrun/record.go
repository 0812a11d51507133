package testrun

import (
	"strings"

	"github.com/newmesstuff/go-polarion/snapshot"
)

// Record is the flattened local view of one test record inside a test run.
// It is owned by exactly one Testrun and carries its position in the run's
// record sequence as the iteration ordinal.
type Record struct {
	TestCaseURI string
	TestCaseID  string
	Iteration   int
	Result      string
	Executed    string
	ExecutedBy  string
	Comment     string

	raw snapshot.Value
}

func newRecord(v snapshot.Value, iteration int) *Record {
	record := &Record{Iteration: iteration, raw: v}

	if obj, ok := v.(map[string]any); ok {
		record.TestCaseURI, _ = obj["testCaseURI"].(string)
		record.Executed, _ = obj["executed"].(string)
		record.ExecutedBy, _ = obj["executedBy"].(string)
		record.Comment, _ = obj["comment"].(string)
		if result, ok := obj["result"].(map[string]any); ok {
			record.Result, _ = result["id"].(string)
		}
	}

	record.TestCaseID = testCaseIDFromURI(record.TestCaseURI)
	return record
}

// Raw exposes the untouched record value from the snapshot for fields the
// flattened view does not model.
func (r *Record) Raw() snapshot.Value {
	if r == nil {
		return nil
	}
	return r.raw
}

// testCaseIDFromURI extracts the referenced work-item id from a test-case
// URI. Service URIs embed the id after the final '}' of the object locator;
// a '%' suffix pins a revision and is not part of the id. Plain path-style
// URIs fall back to the last path segment.
func testCaseIDFromURI(uri string) string {
	id := uri
	if at := strings.IndexByte(id, '%'); at >= 0 {
		id = id[:at]
	}
	if at := strings.LastIndexByte(id, '}'); at >= 0 {
		return id[at+1:]
	}
	if at := strings.LastIndexByte(id, '/'); at >= 0 {
		return id[at+1:]
	}
	return id
}
