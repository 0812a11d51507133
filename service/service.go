package service

import (
	"context"

	"github.com/newmesstuff/go-polarion/snapshot"
)

// TestManagement is the remote test-management collaborator. Every call is
// synchronous and blocking; cancellation and timeouts belong to the
// implementation behind the interface, never to the callers.
type TestManagement interface {
	GetTestRunByURI(ctx context.Context, uri string) (snapshot.Snapshot, error)
	UpdateTestRun(ctx context.Context, payload map[string]snapshot.Value) error
	GetTestRunAttachment(ctx context.Context, uri string, fileName string) (*Attachment, error)
	DownloadAttachment(ctx context.Context, ref *Attachment) ([]byte, error)
	AddTestRunAttachment(ctx context.Context, uri string, fileName string, title string, data []byte) error
	UpdateTestRunAttachment(ctx context.Context, uri string, fileName string, title string, data []byte) error
	DeleteTestRunAttachment(ctx context.Context, uri string, fileName string) error
	GetTestCaseParameterNames(ctx context.Context, testCaseURI string) ([]string, error)
	AddTestRecord(ctx context.Context, uri string, record TestRecord) error
}

// Attachment is a remote attachment reference. URL points at the stored
// content and is only meaningful to DownloadAttachment.
type Attachment struct {
	FileName string
	Title    string
	URL      string
}

type Parameter struct {
	Name  string
	Value string
}

// TestRecord is the payload for adding one test record to a test run.
// TestCaseRevision is empty unless the referenced work item is pinned to a
// revision.
type TestRecord struct {
	TestCaseURI      string
	TestCaseRevision string
	Parameters       []Parameter
}
