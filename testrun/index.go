package testrun

import (
	"fmt"

	"github.com/newmesstuff/go-polarion/snapshot"
)

// buildRecordIndex derives the ordered record mirrors and the test-case
// index from the raw record collection. The index is always rebuilt in full;
// incremental updates would let it diverge from the record sequence.
func buildRecordIndex(rawRecords snapshot.Value) ([]*Record, map[string][]*Record) {
	items := recordItems(rawRecords)

	records := make([]*Record, 0, len(items))
	index := make(map[string][]*Record, len(items))
	for i, item := range items {
		record := newRecord(item, i)
		records = append(records, record)
		index[record.TestCaseID] = append(index[record.TestCaseID], record)
	}
	return records, index
}

// recordItems unwraps the record collection. The service either sends the
// array directly, or wraps it in a TestRecord envelope that collapses to a
// single object when the run has one record.
func recordItems(rawRecords snapshot.Value) []any {
	switch typed := rawRecords.(type) {
	case nil:
		return nil
	case []any:
		return typed
	case map[string]any:
		switch inner := typed["TestRecord"].(type) {
		case []any:
			return inner
		case map[string]any:
			return []any{inner}
		default:
			return nil
		}
	default:
		return nil
	}
}

// HasTestCase reports whether at least one record references the given test
// case id.
func (t *Testrun) HasTestCase(id string) bool {
	_, ok := t.recordIndex[id]
	return ok
}

// GetTestCase returns the iteration-th record referencing the given test
// case id, nil when the id is unknown or the iteration does not exist.
// Negative iterations are rejected.
func (t *Testrun) GetTestCase(id string, iteration int) (*Record, error) {
	if iteration < 0 {
		return nil, validationError(fmt.Sprintf("test case iteration must be positive, got %d", iteration), nil)
	}

	iterations, ok := t.recordIndex[id]
	if !ok || iteration >= len(iterations) {
		return nil, nil
	}
	return iterations[iteration], nil
}

// Records returns the record mirrors in the run's original sequence order.
func (t *Testrun) Records() []*Record {
	return t.records
}
