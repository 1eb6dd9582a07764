package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

func newManager(u Uploader) *UploadManager {
	m := NewUploadManager(u, 0, nil)
	m.readFile = fakeReader
	return m
}

func TestUploadPending_NothingPendingSkipsNetwork(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(up)

	a := models.Attachments{StudentPhotos: []models.UploadedFile{{
		ID: "1", FileName: "me.png", DocumentType: models.DocStudentPhoto,
		Uploaded: true, ServerID: "s1", ServerPath: "/p/me.png",
	}}}

	got, err := m.UploadPending(context.Background(), &a, "")
	require.NoError(t, err)
	assert.Equal(t, []models.ImageDescriptor{{ServerID: "s1", Path: "/p/me.png", DocumentType: models.DocStudentPhoto}}, got)
	assert.Empty(t, up.uploads)

	got, err = m.UploadPending(context.Background(), &models.Attachments{}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUploadPending_SequentialStableOrder(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(up)

	a := models.Attachments{
		StudentPhotos:    []models.UploadedFile{pendingFile("s1", "photo1.png", models.DocStudentPhoto), pendingFile("s2", "photo2.png", models.DocStudentPhoto)},
		FamilyCard:       []models.UploadedFile{pendingFile("f1", "card.png", models.DocFamilyCard)},
		ParentsID:        []models.UploadedFile{pendingFile("p1", "ids.png", models.DocParentID)},
		BirthCertificate: []models.UploadedFile{pendingFile("b1", "birth.png", models.DocBirthCertificate)},
	}

	var progress []int
	m.Progress = func(_ models.UploadedFile, n, total int) {
		assert.Equal(t, 5, total)
		progress = append(progress, n)
	}

	got, err := m.UploadPending(context.Background(), &a, "AGS-7")
	require.NoError(t, err)

	assert.Equal(t, []string{"ids.png", "birth.png", "photo1.png", "photo2.png", "card.png"}, up.uploadedNames())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, progress)
	require.Len(t, got, 5)
	assert.Equal(t, 0, a.Pending())

	for _, u := range up.uploads {
		assert.Equal(t, "AGS-7", u.StudentID)
		assert.NotEmpty(t, u.FileID)
		assert.Equal(t, ".png", u.Extension)
	}
	assert.Equal(t, "p1", up.uploads[0].FileID)
	assert.Equal(t, models.DocParentID, up.uploads[0].DocumentType)

	assert.Equal(t, "srv-3", a.StudentPhotos[0].ServerID)
	assert.Equal(t, "/uploads/photo1.png", a.StudentPhotos[0].ServerPath)
	assert.True(t, a.StudentPhotos[0].Uploaded)
}

func TestUploadPending_SecondOfThreeFails(t *testing.T) {
	var logs bytes.Buffer
	boom := errors.New("connection reset")
	up := &fakeUploader{failOn: map[string]error{"second.png": boom}}
	m := NewUploadManager(up, 0, logging.NewTextSlogLogger(&logs, "debug"))
	m.readFile = fakeReader

	a := models.Attachments{StudentPhotos: []models.UploadedFile{
		pendingFile("1", "first.png", models.DocStudentPhoto),
		pendingFile("2", "second.png", models.DocStudentPhoto),
		pendingFile("3", "third.png", models.DocStudentPhoto),
	}}

	got, err := m.UploadPending(context.Background(), &a, "")
	require.Error(t, err)
	assert.Nil(t, got)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "second.png", ue.FileName)
	assert.Equal(t, models.DocStudentPhoto, ue.DocumentType)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"first.png", "second.png"}, up.uploadedNames(), "third file must not be attempted")
	assert.Equal(t, []string{"srv-1"}, up.deletes, "exactly one compensating delete, for the first file")

	for _, f := range a.StudentPhotos {
		assert.False(t, f.Uploaded, f.FileName)
		assert.Empty(t, f.ServerID, f.FileName)
	}
	assert.Contains(t, logs.String(), "compensating delete done")
}

func TestUploadPending_RollbackKeepsEarlierBatches(t *testing.T) {
	up := &fakeUploader{failOn: map[string]error{"card.png": errors.New("500")}}
	m := newManager(up)

	a := models.Attachments{
		ParentsID:     []models.UploadedFile{{ID: "old", FileName: "ids.png", DocumentType: models.DocParentID, Uploaded: true, ServerID: "prev-1", ServerPath: "/p"}},
		StudentPhotos: []models.UploadedFile{pendingFile("s", "me.png", models.DocStudentPhoto)},
		FamilyCard:    []models.UploadedFile{pendingFile("f", "card.png", models.DocFamilyCard)},
	}

	_, err := m.UploadPending(context.Background(), &a, "")
	require.Error(t, err)

	assert.Equal(t, []string{"srv-1"}, up.deletes)
	assert.True(t, a.ParentsID[0].Uploaded)
	assert.Equal(t, "prev-1", a.ParentsID[0].ServerID)
	assert.False(t, a.StudentPhotos[0].Uploaded)
}

func TestUploadPending_ResubmitAfterPartialSuccess(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(up)

	a := models.Attachments{
		ParentsID:        []models.UploadedFile{{ID: "p", FileName: "ids.png", DocumentType: models.DocParentID, Uploaded: true, ServerID: "prev-p", ServerPath: "/p"}},
		BirthCertificate: []models.UploadedFile{{ID: "b", FileName: "birth.png", DocumentType: models.DocBirthCertificate, Uploaded: true, ServerID: "prev-b", ServerPath: "/b"}},
		StudentPhotos:    []models.UploadedFile{pendingFile("s1", "me1.png", models.DocStudentPhoto), pendingFile("s2", "me2.png", models.DocStudentPhoto)},
		FamilyCard:       []models.UploadedFile{pendingFile("f", "card.png", models.DocFamilyCard)},
	}

	got, err := m.UploadPending(context.Background(), &a, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"me1.png", "me2.png", "card.png"}, up.uploadedNames())
	assert.Len(t, got, a.Total())
	assert.Equal(t, "prev-p", got[0].ServerID)
	assert.Equal(t, "prev-b", got[1].ServerID)
	assert.Empty(t, up.deletes)
}

func TestUploadPending_RetryAfterFailureUploadsAgain(t *testing.T) {
	boom := errors.New("timeout")
	up := &fakeUploader{failOn: map[string]error{"b.png": boom}}
	m := newManager(up)

	a := models.Attachments{StudentPhotos: []models.UploadedFile{
		pendingFile("a", "a.png", models.DocStudentPhoto),
		pendingFile("b", "b.png", models.DocStudentPhoto),
	}}

	_, err := m.UploadPending(context.Background(), &a, "")
	require.ErrorIs(t, err, boom)

	delete(up.failOn, "b.png")
	got, err := m.UploadPending(context.Background(), &a, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"a.png", "b.png", "a.png", "b.png"}, up.uploadedNames())
	// the retried upload reuses the same idempotency key
	assert.Equal(t, up.uploads[0].FileID, up.uploads[2].FileID)
}

func TestUploadPending_CancelBetweenFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	up := &fakeUploader{onUpload: func(n int) {
		if n == 1 {
			cancel()
		}
	}}
	m := newManager(up)

	a := models.Attachments{StudentPhotos: []models.UploadedFile{
		pendingFile("1", "one.png", models.DocStudentPhoto),
		pendingFile("2", "two.png", models.DocStudentPhoto),
	}}

	_, err := m.UploadPending(ctx, &a, "")
	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "two.png", ue.FileName)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, []string{"one.png"}, up.uploadedNames())
	assert.Equal(t, []string{"srv-1"}, up.deletes, "rollback runs even though ctx is cancelled")
}

func TestUploadPending_DeleteFailureIsLoggedAndStillReverts(t *testing.T) {
	var logs bytes.Buffer
	up := &fakeUploader{failOn: map[string]error{"2.png": errors.New("x")}, deleteErr: errors.New("gone fishing")}
	m := NewUploadManager(up, 0, logging.NewTextSlogLogger(&logs, "debug"))
	m.readFile = fakeReader

	a := models.Attachments{FamilyCard: []models.UploadedFile{
		pendingFile("1", "1.png", models.DocFamilyCard),
		pendingFile("2", "2.png", models.DocFamilyCard),
	}}

	_, err := m.UploadPending(context.Background(), &a, "")
	require.Error(t, err)
	assert.False(t, a.FamilyCard[0].Uploaded)
	assert.Contains(t, logs.String(), "compensating delete failed")
}

func TestUploadPending_ReadsRealFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(good, pngBytes, 0o600))
	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("plain words, not an image"), 0o600))

	up := &fakeUploader{}
	m := NewUploadManager(up, 1<<20, nil)

	a := models.Attachments{StudentPhotos: []models.UploadedFile{
		{ID: "1", FileName: "me.png", LocalPath: good, DocumentType: models.DocStudentPhoto},
		{ID: "2", FileName: "notes.png", LocalPath: text, DocumentType: models.DocStudentPhoto},
	}}

	_, err := m.UploadPending(context.Background(), &a, "")
	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "notes.png", ue.FileName)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	require.Len(t, up.uploads, 1)
	assert.Equal(t, "image/png", up.uploads[0].ContentType)
	assert.Equal(t, pngBytes, up.uploads[0].Data)
	assert.Equal(t, []string{"srv-1"}, up.deletes)

	a.StudentPhotos[1].LocalPath = filepath.Join(dir, "missing.png")
	_, err = m.UploadPending(context.Background(), &a, "")
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscard(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(up)
	ctx := context.Background()

	require.NoError(t, m.Discard(ctx, pendingFile("1", "a.png", models.DocStudentPhoto)))
	assert.Empty(t, up.deletes)

	require.NoError(t, m.Discard(ctx, models.UploadedFile{FileName: "b.png", Uploaded: true, ServerID: "s-9"}))
	assert.Equal(t, []string{"s-9"}, up.deletes)

	up.deleteErr = errors.New("forbidden")
	err := m.Discard(ctx, models.UploadedFile{FileName: "c.png", Uploaded: true, ServerID: "s-10"})
	require.ErrorContains(t, err, "delete c.png")
}
