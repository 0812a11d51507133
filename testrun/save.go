package testrun

import (
	"context"

	"github.com/newmesstuff/go-polarion/snapshot"
)

// Save pushes the attributes that changed since the last load and reloads
// the mirror from the authoritative remote state. Nothing is sent when no
// attribute changed.
//
// Save is changed-fields-only with last-writer-wins semantics: a concurrent
// remote edit to a field that also changed locally is overwritten, and the
// baseline is only ever refreshed through the reload, never patched locally.
func (t *Testrun) Save(ctx context.Context) error {
	changed := t.pendingChanges()
	if len(changed) == 0 {
		return nil
	}

	changed["uri"] = t.uri
	if err := t.service.UpdateTestRun(ctx, changed); err != nil {
		return err
	}
	return t.reload(ctx)
}

// pendingChanges walks the declared field list plus Extra against the
// baseline and collects every key whose current value differs by structural
// equality. The record collection is never part of an update payload.
func (t *Testrun) pendingChanges() map[string]snapshot.Value {
	baselineObj, ok := t.baseline.AsObject()
	if !ok {
		return nil
	}

	changed := make(map[string]snapshot.Value)
	for key, baselineValue := range baselineObj {
		if key == recordsKey {
			continue
		}
		current, ok := t.currentValue(key)
		if !ok {
			continue
		}
		if !snapshot.Equal(current, baselineValue) {
			changed[key] = current
		}
	}
	return changed
}

func (t *Testrun) currentValue(key string) (snapshot.Value, bool) {
	if key == "uri" {
		return t.uri, true
	}
	if value, ok := t.Extra[key]; ok {
		return value, true
	}
	if spec, ok := fieldSpecsByKey[key]; ok {
		return spec.get(&t.Fields), true
	}
	return nil, false
}
