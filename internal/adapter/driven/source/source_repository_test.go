package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

type fakeGetter struct {
	objects map[string]string
	calls   []string
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := *in.Bucket + "/" + *in.Key
	f.calls = append(f.calls, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestFetch_LocalDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Listing Nickname,Month\n1102,jan 2026\n"), 0o644))

	doc, err := NewSourceRepository("").Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "export.csv", doc.Name)
	assert.Equal(t, entity.SourceDelimited, doc.Kind)
	assert.Contains(t, doc.Text, "1102,jan 2026")
}

func TestFetch_LocalErrors(t *testing.T) {
	repo := NewSourceRepository("")
	ctx := context.Background()

	_, err := repo.Fetch(ctx, "  ")
	assert.ErrorIs(t, err, types.ErrNoInput)

	_, err = repo.Fetch(ctx, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = repo.Fetch(ctx, t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0o644))
	doc, err := repo.Fetch(ctx, empty)
	require.NoError(t, err, "an empty export is a valid import")
	assert.Equal(t, entity.SourceDelimited, doc.Kind)
	assert.Equal(t, "empty.csv", doc.Name)
	assert.Empty(t, doc.Text)
}

func TestFetch_Workbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Listing Nickname", "Month", "Owner Revenue"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Apt 1102", "jan 2026", "1 200,50"}))

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))

	doc, err := NewSourceRepository("").Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceWorkbook, doc.Kind)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, []string{"Apt 1102", "jan 2026", "1 200,50"}, doc.Records[1])
}

func TestDecode(t *testing.T) {
	repo := NewSourceRepository("")

	_, err := repo.Decode("old.XLS", []byte("x"))
	assert.ErrorIs(t, err, types.ErrUnsupportedSource)

	_, err = repo.Decode("broken.xlsx", []byte("not a zip"))
	assert.ErrorContains(t, err, "failed to open workbook")

	for _, name := range []string{"upload.csv", "upload.xlsx"} {
		doc, err := repo.Decode(name, []byte("\n\n"))
		require.NoError(t, err, name)
		assert.Equal(t, entity.SourceDelimited, doc.Kind, name)
		assert.Empty(t, doc.Text, name)
	}

	doc, err := repo.Decode("export.txt", []byte("a;b"))
	require.NoError(t, err)
	assert.Equal(t, entity.SourceDelimited, doc.Kind)
}

func TestFetch_S3(t *testing.T) {
	getter := &fakeGetter{objects: map[string]string{
		"reports/2026/export.csv": "Listing Nickname,Month\n1102,jan 2026\n",
	}}
	repo := NewSourceRepositoryWithClient(getter)
	ctx := context.Background()

	doc, err := repo.Fetch(ctx, "s3://reports/2026/export.csv")
	require.NoError(t, err)
	assert.Equal(t, "export.csv", doc.Name)
	assert.Contains(t, doc.Text, "1102")

	_, err = repo.Fetch(ctx, "s3://reports/missing.csv")
	assert.ErrorContains(t, err, "NoSuchKey")
	assert.Equal(t, []string{"reports/2026/export.csv", "reports/missing.csv"}, getter.calls)
}

func TestParseS3Location(t *testing.T) {
	bucket, key, err := ParseS3Location("s3://bucket/a/b.csv")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "a/b.csv", key)

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err := ParseS3Location(bad)
		assert.ErrorIs(t, err, types.ErrUnsupportedSource, bad)
	}
}
