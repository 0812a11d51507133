package testrun

import (
	"context"
	"strings"

	"github.com/newmesstuff/go-polarion/service"
)

const unspecifiedParameterValue = "not specified"

// AddTestCase appends a test record referencing the given work item and
// reloads the mirror. A test case cannot be added to a template run; the
// service rejects that.
//
// The record carries one parameter per name the test case declares: the
// supplied value when present, "not specified" otherwise. Supplied
// parameters the test case does not declare are dropped.
func (t *Testrun) AddTestCase(ctx context.Context, workItemURI string, parameters []service.Parameter) error {
	declaredNames, err := t.service.GetTestCaseParameterNames(ctx, workItemURI)
	if err != nil {
		return err
	}

	supplied := make(map[string]string, len(parameters))
	for _, parameter := range parameters {
		supplied[parameter.Name] = parameter.Value
	}

	recordParameters := make([]service.Parameter, 0, len(declaredNames))
	for _, name := range declaredNames {
		value, ok := supplied[name]
		if !ok {
			value = unspecifiedParameterValue
		}
		recordParameters = append(recordParameters, service.Parameter{Name: name, Value: value})
	}

	// A '%' suffix on the work-item uri pins a revision.
	uri, revision, _ := strings.Cut(workItemURI, "%")
	record := service.TestRecord{
		TestCaseURI:      uri,
		TestCaseRevision: revision,
		Parameters:       recordParameters,
	}

	if err := t.service.AddTestRecord(ctx, t.uri, record); err != nil {
		return err
	}
	return t.reload(ctx)
}
