package testrun

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newmesstuff/go-polarion/faults"
	"github.com/newmesstuff/go-polarion/snapshot"
)

func TestNewRequiresExactlyOneSource(t *testing.T) {
	ctx := context.Background()
	svc := &stubService{}

	if _, err := New(ctx, svc); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration error for missing source, got %v", err)
	}

	snap := mustSnapshot(t, testRunValue(nil))
	_, err := New(ctx, svc, WithURI("some-uri"), WithSnapshot(snap))
	if !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration error for double source, got %v", err)
	}

	if _, err := New(ctx, nil, WithSnapshot(snap)); !faults.IsCategory(err, faults.ConfigurationError) {
		t.Fatalf("expected configuration error for nil service, got %v", err)
	}
}

func TestLoadReportsNotFound(t *testing.T) {
	svc := &stubService{fetchErr: errors.New("503 upstream down")}

	_, err := Load(context.Background(), svc, "missing-uri")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "missing-uri") {
		t.Fatalf("expected error to name the uri, got %q", got)
	}
}

func TestFromSnapshotRejectsUnresolvable(t *testing.T) {
	value := testRunValue(nil)
	value["unresolvable"] = true

	_, err := FromSnapshot(&stubService{}, mustSnapshot(t, value))
	if !faults.IsCategory(err, faults.UnresolvedStateError) {
		t.Fatalf("expected unresolved-state error, got %v", err)
	}

	_, err = FromSnapshot(&stubService{}, snapshot.Snapshot{})
	if !faults.IsCategory(err, faults.UnresolvedStateError) {
		t.Fatalf("expected unresolved-state error for null snapshot, got %v", err)
	}
}

func TestFlattenSplitsKnownAndExtraFields(t *testing.T) {
	run, err := FromSnapshot(&stubService{}, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	if run.ID != "RUN-1" || run.Title != "Nightly regression" || run.Status != "open" {
		t.Fatalf("unexpected flattened fields: %+v", run.Fields)
	}
	if run.URI() != "subterra:data-service:objects:/default/PRJ${TestRun}RUN-1" {
		t.Fatalf("unexpected uri: %q", run.URI())
	}
	if _, ok := run.Extra["customField"]; !ok {
		t.Fatalf("expected unknown key in Extra, got %#v", run.Extra)
	}
	if _, ok := run.Extra["records"]; ok {
		t.Fatalf("record collection must not surface as a flattened attribute")
	}
	if _, ok := run.Extra["title"]; ok {
		t.Fatalf("known key must not land in Extra")
	}
}

func TestBaselineIsIndependentOfSnapshot(t *testing.T) {
	snap := mustSnapshot(t, testRunValue(nil))
	run, err := FromSnapshot(&stubService{}, snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	obj, _ := snap.AsObject()
	obj["title"] = "mutated after load"

	baselineObj, _ := run.Baseline().AsObject()
	if baselineObj["title"] != "Nightly regression" {
		t.Fatalf("baseline aliased the raw snapshot: %#v", baselineObj["title"])
	}
}

func TestRecordIndexPreservesSequenceOrder(t *testing.T) {
	records := []any{recordValue("TC1"), recordValue("TC2"), recordValue("TC1")}
	run, err := FromSnapshot(&stubService{}, mustSnapshot(t, testRunValue(records)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	if len(run.Records()) != 3 {
		t.Fatalf("expected 3 records, got %d", len(run.Records()))
	}
	for i, record := range run.Records() {
		if record.Iteration != i {
			t.Fatalf("record %d carries iteration %d", i, record.Iteration)
		}
	}

	if !run.HasTestCase("TC1") || !run.HasTestCase("TC2") || run.HasTestCase("TC3") {
		t.Fatalf("unexpected index membership")
	}

	first, err := run.GetTestCase("TC1", 0)
	if err != nil || first == nil || first.Iteration != 0 {
		t.Fatalf("GetTestCase(TC1, 0) = %+v, %v", first, err)
	}
	second, err := run.GetTestCase("TC1", 1)
	if err != nil || second == nil || second.Iteration != 2 {
		t.Fatalf("GetTestCase(TC1, 1) = %+v, %v", second, err)
	}
	outOfRange, err := run.GetTestCase("TC1", 2)
	if err != nil || outOfRange != nil {
		t.Fatalf("GetTestCase(TC1, 2) = %+v, %v; want nil, nil", outOfRange, err)
	}
	absent, err := run.GetTestCase("TC3", 0)
	if err != nil || absent != nil {
		t.Fatalf("GetTestCase(TC3, 0) = %+v, %v; want nil, nil", absent, err)
	}
}

func TestGetTestCaseRejectsNegativeIteration(t *testing.T) {
	run, err := FromSnapshot(&stubService{}, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	if _, err := run.GetTestCase("TC1", -1); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for negative iteration, got %v", err)
	}
	if _, err := run.GetTestCase("absent", -5); !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("negative iteration must fail even for unknown ids, got %v", err)
	}
}

func TestMissingRecordCollectionYieldsEmptyIndex(t *testing.T) {
	run, err := FromSnapshot(&stubService{}, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if len(run.Records()) != 0 {
		t.Fatalf("expected no records, got %d", len(run.Records()))
	}
	if run.HasTestCase("TC1") {
		t.Fatalf("empty run must not index any test case")
	}
}

func TestRecordKeyParsing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		uri  string
		want string
	}{
		{"subterra:data-service:objects:/default/PRJ${WorkItem}PYTH-510", "PYTH-510"},
		{"subterra:data-service:objects:/default/PRJ${WorkItem}PYTH-510%1234", "PYTH-510"},
		{"/projects/PRJ/workitems/TC-9", "TC-9"},
		{"TC-1", "TC-1"},
	}
	for _, tc := range cases {
		if got := testCaseIDFromURI(tc.uri); got != tc.want {
			t.Fatalf("testCaseIDFromURI(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestStringDescribesRun(t *testing.T) {
	run, err := FromSnapshot(&stubService{}, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	want := "Testrun RUN-1 (Nightly regression) created 2024-02-01T08:00:00Z"
	if got := run.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
