package testrun

import (
	"context"
	"fmt"

	"github.com/newmesstuff/go-polarion/service"
	"github.com/newmesstuff/go-polarion/snapshot"
)

const recordsKey = "records"

// Testrun is a local mutable mirror of one remote test run. Flattened
// attributes live in the embedded Fields plus Extra; the snapshot taken at
// the last successful load stays behind as the diff baseline.
//
// A Testrun is not safe for concurrent use. Reload rebuilds the flattened
// state, the record sequence and the index in place, so callers sharing one
// mirror must serialize access themselves.
type Testrun struct {
	service service.TestManagement
	uri     string

	Fields
	Extra map[string]snapshot.Value

	baseline    snapshot.Snapshot
	rawRecords  snapshot.Value
	records     []*Record
	recordIndex map[string][]*Record
}

type Option func(*options)

type options struct {
	uri      string
	snap     snapshot.Snapshot
	haveSnap bool
}

// WithURI has the test run fetched from the service at construction time.
func WithURI(uri string) Option {
	return func(o *options) { o.uri = uri }
}

// WithSnapshot wraps an already-fetched snapshot without touching the
// service.
func WithSnapshot(snap snapshot.Snapshot) Option {
	return func(o *options) {
		o.snap = snap
		o.haveSnap = true
	}
}

// New builds a test-run mirror. Exactly one of WithURI and WithSnapshot must
// be supplied.
func New(ctx context.Context, svc service.TestManagement, opts ...Option) (*Testrun, error) {
	if svc == nil {
		return nil, configurationError("test-management service is required", nil)
	}

	var resolved options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&resolved)
	}

	if (resolved.uri == "") == !resolved.haveSnap {
		return nil, configurationError("provide either a test run uri or a test run snapshot", nil)
	}

	t := &Testrun{service: svc, uri: resolved.uri}

	snap := resolved.snap
	if resolved.uri != "" {
		fetched, err := svc.GetTestRunByURI(ctx, resolved.uri)
		if err != nil {
			return nil, notFoundError(fmt.Sprintf("cannot find test run %s", resolved.uri), err)
		}
		snap = fetched
	}

	if err := t.rebuild(snap); err != nil {
		return nil, err
	}
	return t, nil
}

// Load fetches a test run by uri and mirrors it.
func Load(ctx context.Context, svc service.TestManagement, uri string) (*Testrun, error) {
	return New(ctx, svc, WithURI(uri))
}

// FromSnapshot mirrors an already-fetched test run snapshot.
func FromSnapshot(svc service.TestManagement, snap snapshot.Snapshot) (*Testrun, error) {
	return New(context.Background(), svc, WithSnapshot(snap))
}

// URI is the remote identity of the mirrored test run.
func (t *Testrun) URI() string {
	return t.uri
}

// Baseline is the snapshot the next Save diffs against. Callers must treat
// it as read-only.
func (t *Testrun) Baseline() snapshot.Snapshot {
	return t.baseline
}

// rebuild flattens a snapshot into the mirror and replaces the record
// sequence, index and baseline. All staging happens on locals first; a
// failure on any path leaves the previous mirror state untouched.
func (t *Testrun) rebuild(snap snapshot.Snapshot) error {
	if snap.IsNull() {
		return unresolvedStateError("test run not retrieved", nil)
	}
	if unresolvable, ok := snap.Field("unresolvable"); ok {
		if flag, ok := unresolvable.(bool); ok && flag {
			return unresolvedStateError("test run not retrieved", nil)
		}
	}

	obj, ok := snap.AsObject()
	if !ok {
		return internalError(fmt.Sprintf("test run snapshot is not an object: %T", snap.V), nil)
	}

	uri := t.uri
	fields := Fields{}
	extra := make(map[string]snapshot.Value)
	var rawRecords snapshot.Value

	for key, value := range obj {
		switch key {
		case recordsKey:
			rawRecords = value
		case "uri":
			if s, ok := value.(string); ok {
				uri = s
			} else {
				extra[key] = value
			}
		default:
			if spec, ok := fieldSpecsByKey[key]; ok && spec.set(&fields, value) {
				continue
			}
			extra[key] = value
		}
	}

	records, recordIndex := buildRecordIndex(rawRecords)
	baseline := snap.Clone()

	t.uri = uri
	t.Fields = fields
	t.Extra = extra
	t.rawRecords = rawRecords
	t.records = records
	t.recordIndex = recordIndex
	t.baseline = baseline
	return nil
}

// reload re-fetches the full snapshot and rebuilds the mirror. Every
// remote-mutating operation ends here; there is no partial refresh.
func (t *Testrun) reload(ctx context.Context) error {
	snap, err := t.service.GetTestRunByURI(ctx, t.uri)
	if err != nil {
		return notFoundError(fmt.Sprintf("cannot find test run %s", t.uri), err)
	}
	return t.rebuild(snap)
}

func (t *Testrun) String() string {
	return fmt.Sprintf("Testrun %s (%s) created %s", t.ID, t.Title, t.Created)
}
