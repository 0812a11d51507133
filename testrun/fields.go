package testrun

import "github.com/newmesstuff/go-polarion/snapshot"

// Fields holds the flattened attributes the test-run schema is known to
// carry. Anything the service sends outside this list lands in Extra, so a
// newer server never breaks flattening or diffing.
type Fields struct {
	ID                    string
	Title                 string
	Type                  string
	Status                string
	GroupID               string
	Query                 string
	SelectTestCasesBy     string
	TemplateURI           string
	ProjectURI            string
	AuthorURI             string
	Created               string
	Updated               string
	FinishedOn            string
	IsTemplate            bool
	KeepInHistory         bool
	UseReportFromTemplate bool

	// Attachments and Comments keep the service's structure as-is.
	Attachments snapshot.Value
	Comments    snapshot.Value
}

type fieldSpec struct {
	key string
	set func(*Fields, snapshot.Value) bool
	get func(*Fields) snapshot.Value
}

func stringField(key string, ptr func(*Fields) *string) fieldSpec {
	return fieldSpec{
		key: key,
		set: func(f *Fields, v snapshot.Value) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			*ptr(f) = s
			return true
		},
		get: func(f *Fields) snapshot.Value { return *ptr(f) },
	}
}

func boolField(key string, ptr func(*Fields) *bool) fieldSpec {
	return fieldSpec{
		key: key,
		set: func(f *Fields, v snapshot.Value) bool {
			b, ok := v.(bool)
			if !ok {
				return false
			}
			*ptr(f) = b
			return true
		},
		get: func(f *Fields) snapshot.Value { return *ptr(f) },
	}
}

func valueField(key string, ptr func(*Fields) *snapshot.Value) fieldSpec {
	return fieldSpec{
		key: key,
		set: func(f *Fields, v snapshot.Value) bool {
			*ptr(f) = v
			return true
		},
		get: func(f *Fields) snapshot.Value { return *ptr(f) },
	}
}

// fieldSpecs is the declared field list the flatten and diff walks use in
// place of reflection.
var fieldSpecs = []fieldSpec{
	stringField("id", func(f *Fields) *string { return &f.ID }),
	stringField("title", func(f *Fields) *string { return &f.Title }),
	stringField("type", func(f *Fields) *string { return &f.Type }),
	stringField("status", func(f *Fields) *string { return &f.Status }),
	stringField("groupId", func(f *Fields) *string { return &f.GroupID }),
	stringField("query", func(f *Fields) *string { return &f.Query }),
	stringField("selectTestCasesBy", func(f *Fields) *string { return &f.SelectTestCasesBy }),
	stringField("templateUri", func(f *Fields) *string { return &f.TemplateURI }),
	stringField("projectUri", func(f *Fields) *string { return &f.ProjectURI }),
	stringField("authorUri", func(f *Fields) *string { return &f.AuthorURI }),
	stringField("created", func(f *Fields) *string { return &f.Created }),
	stringField("updated", func(f *Fields) *string { return &f.Updated }),
	stringField("finishedOn", func(f *Fields) *string { return &f.FinishedOn }),
	boolField("isTemplate", func(f *Fields) *bool { return &f.IsTemplate }),
	boolField("keepInHistory", func(f *Fields) *bool { return &f.KeepInHistory }),
	boolField("useReportFromTemplate", func(f *Fields) *bool { return &f.UseReportFromTemplate }),
	valueField("attachments", func(f *Fields) *snapshot.Value { return &f.Attachments }),
	valueField("comments", func(f *Fields) *snapshot.Value { return &f.Comments }),
}

var fieldSpecsByKey = func() map[string]fieldSpec {
	byKey := make(map[string]fieldSpec, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		byKey[spec.key] = spec
	}
	return byKey
}()
