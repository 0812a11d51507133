package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/newmesstuff/go-polarion/faults"
	"github.com/newmesstuff/go-polarion/service"
	"github.com/newmesstuff/go-polarion/snapshot"
)

func (g *PolarionGateway) GetTestRunByURI(ctx context.Context, uri string) (snapshot.Snapshot, error) {
	body, err := g.execute(ctx, requestSpec{
		method: http.MethodGet,
		path:   "test-runs",
		query:  map[string]string{"uri": uri},
	})
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	return decodeSnapshotResponse(body)
}

func (g *PolarionGateway) UpdateTestRun(ctx context.Context, payload map[string]snapshot.Value) error {
	if len(payload) == 0 {
		return validationError("update payload is empty", nil)
	}
	_, err := g.execute(ctx, requestSpec{
		method: http.MethodPost,
		path:   "test-runs/update",
		body:   payload,
	})
	return err
}

func (g *PolarionGateway) GetTestRunAttachment(ctx context.Context, uri string, fileName string) (*service.Attachment, error) {
	body, err := g.execute(ctx, requestSpec{
		method: http.MethodGet,
		path:   "test-runs/attachment",
		query:  map[string]string{"uri": uri, "file-name": fileName},
	})
	if faults.IsCategory(err, faults.NotFoundError) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	value, err := decodeValueResponse(body)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			return nil, nil
		}
		return nil, validationError("attachment response is not an object", nil)
	}

	ref := &service.Attachment{}
	ref.FileName, _ = obj["fileName"].(string)
	ref.Title, _ = obj["title"].(string)
	ref.URL, _ = obj["url"].(string)
	if ref.URL == "" {
		return nil, validationError(fmt.Sprintf("attachment %s carries no download url", fileName), nil)
	}
	return ref, nil
}

func (g *PolarionGateway) DownloadAttachment(ctx context.Context, ref *service.Attachment) ([]byte, error) {
	if ref == nil || ref.URL == "" {
		return nil, validationError("attachment reference is required", nil)
	}
	return g.execute(ctx, requestSpec{
		method: http.MethodGet,
		rawURL: ref.URL,
		limit:  maxBinaryResponseBytes,
	})
}

func (g *PolarionGateway) AddTestRunAttachment(ctx context.Context, uri string, fileName string, title string, data []byte) error {
	_, err := g.execute(ctx, requestSpec{
		method: http.MethodPost,
		path:   "test-runs/attachment",
		body:   attachmentPayload(uri, fileName, title, data),
	})
	return err
}

func (g *PolarionGateway) UpdateTestRunAttachment(ctx context.Context, uri string, fileName string, title string, data []byte) error {
	_, err := g.execute(ctx, requestSpec{
		method: http.MethodPut,
		path:   "test-runs/attachment",
		body:   attachmentPayload(uri, fileName, title, data),
	})
	return err
}

func (g *PolarionGateway) DeleteTestRunAttachment(ctx context.Context, uri string, fileName string) error {
	_, err := g.execute(ctx, requestSpec{
		method: http.MethodDelete,
		path:   "test-runs/attachment",
		query:  map[string]string{"uri": uri, "file-name": fileName},
	})
	return err
}

func (g *PolarionGateway) GetTestCaseParameterNames(ctx context.Context, testCaseURI string) ([]string, error) {
	body, err := g.execute(ctx, requestSpec{
		method: http.MethodGet,
		path:   "test-cases/parameter-names",
		query:  map[string]string{"uri": testCaseURI},
	})
	if err != nil {
		return nil, err
	}

	value, err := decodeValueResponse(body)
	if err != nil {
		return nil, err
	}
	unwrapped, err := g.applyJQ(ctx, value, g.parameterNamesJQ)
	if err != nil {
		return nil, err
	}

	switch typed := unwrapped.(type) {
	case nil:
		return nil, nil
	case []any:
		names := make([]string, 0, len(typed))
		for _, item := range typed {
			name, ok := item.(string)
			if !ok {
				return nil, validationError(fmt.Sprintf("parameter name is not a string: %T", item), nil)
			}
			names = append(names, name)
		}
		return names, nil
	case string:
		return []string{typed}, nil
	default:
		return nil, validationError("parameter names response has unexpected shape", nil)
	}
}

func (g *PolarionGateway) AddTestRecord(ctx context.Context, uri string, record service.TestRecord) error {
	parameters := make([]map[string]string, 0, len(record.Parameters))
	for _, parameter := range record.Parameters {
		parameters = append(parameters, map[string]string{
			"name":  parameter.Name,
			"value": parameter.Value,
		})
	}

	payload := map[string]any{
		"uri":         uri,
		"testCaseURI": record.TestCaseURI,
		"parameters":  parameters,
	}
	if record.TestCaseRevision != "" {
		payload["testCaseRevision"] = record.TestCaseRevision
	}

	_, err := g.execute(ctx, requestSpec{
		method: http.MethodPost,
		path:   "test-runs/records",
		body:   payload,
	})
	return err
}

func attachmentPayload(uri string, fileName string, title string, data []byte) map[string]any {
	return map[string]any{
		"uri":      uri,
		"fileName": fileName,
		"title":    title,
		"data":     data,
	}
}
