package testrun

import (
	"context"
	"testing"

	"github.com/newmesstuff/go-polarion/service"
)

func TestAddTestCaseFillsDeclaredParameters(t *testing.T) {
	svc := &stubService{
		snapshots:      snapshotQueue(t, testRunValue([]any{recordValue("TC1")})),
		parameterNames: []string{"browser", "locale", "retries"},
	}
	run, err := FromSnapshot(svc, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	err = run.AddTestCase(context.Background(),
		"subterra:data-service:objects:/default/PRJ${WorkItem}TC1",
		[]service.Parameter{
			{Name: "browser", Value: "firefox"},
			{Name: "unknown", Value: "dropped"},
		})
	if err != nil {
		t.Fatalf("AddTestCase: %v", err)
	}

	if len(svc.addedRecords) != 1 {
		t.Fatalf("expected one added record, got %d", len(svc.addedRecords))
	}
	record := svc.addedRecords[0]
	if record.TestCaseURI != "subterra:data-service:objects:/default/PRJ${WorkItem}TC1" {
		t.Fatalf("unexpected test case uri: %q", record.TestCaseURI)
	}
	if record.TestCaseRevision != "" {
		t.Fatalf("unexpected revision: %q", record.TestCaseRevision)
	}

	want := []service.Parameter{
		{Name: "browser", Value: "firefox"},
		{Name: "locale", Value: "not specified"},
		{Name: "retries", Value: "not specified"},
	}
	if len(record.Parameters) != len(want) {
		t.Fatalf("unexpected parameters: %#v", record.Parameters)
	}
	for i := range want {
		if record.Parameters[i] != want[i] {
			t.Fatalf("parameter %d = %+v, want %+v", i, record.Parameters[i], want[i])
		}
	}

	if svc.fetchCalls != 1 {
		t.Fatalf("mutating operation must reload exactly once, fetched %d times", svc.fetchCalls)
	}
	if !run.HasTestCase("TC1") {
		t.Fatalf("reload must index the added record")
	}
}

func TestAddTestCaseSplitsRevision(t *testing.T) {
	svc := &stubService{snapshots: snapshotQueue(t, testRunValue(nil))}
	run, err := FromSnapshot(svc, mustSnapshot(t, testRunValue(nil)))
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	uri := "subterra:data-service:objects:/default/PRJ${WorkItem}TC7%4421"
	if err := run.AddTestCase(context.Background(), uri, nil); err != nil {
		t.Fatalf("AddTestCase: %v", err)
	}

	record := svc.addedRecords[0]
	if record.TestCaseURI != "subterra:data-service:objects:/default/PRJ${WorkItem}TC7" {
		t.Fatalf("revision suffix not stripped from uri: %q", record.TestCaseURI)
	}
	if record.TestCaseRevision != "4421" {
		t.Fatalf("unexpected revision: %q", record.TestCaseRevision)
	}
}
