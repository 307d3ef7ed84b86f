// internal/models/notification.go
package models

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// EmailStatus is the delivery result of the admin notification.
type EmailStatus string

const (
	EmailSent                  EmailStatus = "sent"
	EmailSentWithoutAttachment EmailStatus = "sent-without-attachment"
	EmailFailed                EmailStatus = "failed"
)

// Delivered reports whether the admin received a message at all.
func (s EmailStatus) Delivered() bool {
	return s == EmailSent || s == EmailSentWithoutAttachment
}

// DocumentStatus is the result of PDF composition.
type DocumentStatus string

const (
	DocumentGenerated        DocumentStatus = "generated"
	DocumentGenerationFailed DocumentStatus = "generation-failed"
)

// DocumentArtifact is the transient PDF written for one submission.
type DocumentArtifact struct {
	Path       string    `json:"path"`
	FileName   string    `json:"fileName"`
	Size       int64     `json:"size"`
	Background bool      `json:"background"`
	Font       string    `json:"font"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Exists reports whether the artifact file is still on disk.
func (a *DocumentArtifact) Exists() bool {
	if a == nil || a.Path == "" {
		return false
	}
	_, err := os.Stat(a.Path)
	return err == nil
}

// Remove deletes the artifact file. It is safe to call more than once.
func (a *DocumentArtifact) Remove() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
