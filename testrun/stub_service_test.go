package testrun

import (
	"context"
	"testing"

	"github.com/newmesstuff/go-polarion/service"
	"github.com/newmesstuff/go-polarion/snapshot"
)

type uploadedAttachment struct {
	fileName string
	title    string
	data     []byte
}

// stubService plays the remote test-management side. Successive fetches
// consume the snapshots queue, sticking on the last entry.
type stubService struct {
	snapshots  []snapshot.Snapshot
	fetchErr   error
	fetchCalls int

	updates   []map[string]snapshot.Value
	updateErr error

	attachmentRef  *service.Attachment
	attachmentData []byte
	uploads        []uploadedAttachment
	updatedUploads []uploadedAttachment
	deletions      []string

	parameterNames []string
	addedRecords   []service.TestRecord
}

func (s *stubService) GetTestRunByURI(context.Context, string) (snapshot.Snapshot, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return snapshot.Snapshot{}, s.fetchErr
	}
	if len(s.snapshots) == 0 {
		return snapshot.Snapshot{}, nil
	}
	next := s.snapshots[0]
	if len(s.snapshots) > 1 {
		s.snapshots = s.snapshots[1:]
	}
	return next, nil
}

func (s *stubService) UpdateTestRun(_ context.Context, payload map[string]snapshot.Value) error {
	s.updates = append(s.updates, payload)
	return s.updateErr
}

func (s *stubService) GetTestRunAttachment(context.Context, string, string) (*service.Attachment, error) {
	return s.attachmentRef, nil
}

func (s *stubService) DownloadAttachment(context.Context, *service.Attachment) ([]byte, error) {
	return s.attachmentData, nil
}

func (s *stubService) AddTestRunAttachment(_ context.Context, _ string, fileName string, title string, data []byte) error {
	s.uploads = append(s.uploads, uploadedAttachment{fileName: fileName, title: title, data: data})
	return nil
}

func (s *stubService) UpdateTestRunAttachment(_ context.Context, _ string, fileName string, title string, data []byte) error {
	s.updatedUploads = append(s.updatedUploads, uploadedAttachment{fileName: fileName, title: title, data: data})
	return nil
}

func (s *stubService) DeleteTestRunAttachment(_ context.Context, _ string, fileName string) error {
	s.deletions = append(s.deletions, fileName)
	return nil
}

func (s *stubService) GetTestCaseParameterNames(context.Context, string) ([]string, error) {
	return s.parameterNames, nil
}

func (s *stubService) AddTestRecord(_ context.Context, _ string, record service.TestRecord) error {
	s.addedRecords = append(s.addedRecords, record)
	return nil
}

func snapshotQueue(t *testing.T, values ...map[string]any) []snapshot.Snapshot {
	t.Helper()
	queue := make([]snapshot.Snapshot, 0, len(values))
	for _, value := range values {
		queue = append(queue, mustSnapshot(t, value))
	}
	return queue
}

func mustSnapshot(t *testing.T, v map[string]any) snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.New(v)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	return snap
}

func testRunValue(records []any) map[string]any {
	v := map[string]any{
		"uri":          "subterra:data-service:objects:/default/PRJ${TestRun}RUN-1",
		"id":           "RUN-1",
		"title":        "Nightly regression",
		"status":       "open",
		"created":      "2024-02-01T08:00:00Z",
		"isTemplate":   false,
		"unresolvable": false,
		"customField":  map[string]any{"severity": "high"},
	}
	if records != nil {
		v["records"] = map[string]any{"TestRecord": records}
	}
	return v
}

func recordValue(testCaseID string) map[string]any {
	return map[string]any{
		"testCaseURI": "subterra:data-service:objects:/default/PRJ${WorkItem}" + testCaseID,
		"result":      map[string]any{"id": "passed"},
	}
}
