package testrun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// HasAttachment reports whether the test run carries any attachments.
func (t *Testrun) HasAttachment() bool {
	return t.Attachments != nil
}

// GetAttachment downloads the named attachment's content.
func (t *Testrun) GetAttachment(ctx context.Context, fileName string) ([]byte, error) {
	ref, err := t.service.GetTestRunAttachment(ctx, t.uri, fileName)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, attachmentNotFoundError(fmt.Sprintf("could not download attachment %s", fileName), nil)
	}
	return t.service.DownloadAttachment(ctx, ref)
}

// SaveAttachmentToFile downloads the named attachment and writes it to
// filePath.
func (t *Testrun) SaveAttachmentToFile(ctx context.Context, fileName string, filePath string) error {
	data, err := t.GetAttachment(ctx, fileName)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

// AddAttachment uploads a local file as a new attachment and reloads the
// mirror. The attachment file name is the base name of filePath.
func (t *Testrun) AddAttachment(ctx context.Context, filePath string, title string) error {
	fileName, data, err := readAttachmentFile(filePath)
	if err != nil {
		return err
	}
	if err := t.service.AddTestRunAttachment(ctx, t.uri, fileName, title, data); err != nil {
		return err
	}
	return t.reload(ctx)
}

// UpdateAttachment replaces the content of the attachment matching the base
// name of filePath and reloads the mirror.
func (t *Testrun) UpdateAttachment(ctx context.Context, filePath string, title string) error {
	fileName, data, err := readAttachmentFile(filePath)
	if err != nil {
		return err
	}
	if err := t.service.UpdateTestRunAttachment(ctx, t.uri, fileName, title, data); err != nil {
		return err
	}
	return t.reload(ctx)
}

// DeleteAttachment removes the named attachment and reloads the mirror.
func (t *Testrun) DeleteAttachment(ctx context.Context, fileName string) error {
	if err := t.service.DeleteTestRunAttachment(ctx, t.uri, fileName); err != nil {
		return err
	}
	return t.reload(ctx)
}

func readAttachmentFile(filePath string) (string, []byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", nil, validationError(fmt.Sprintf("cannot read attachment file %s", filePath), err)
	}
	return filepath.Base(filePath), data, nil
}
