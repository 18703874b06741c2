package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xuri/excelize/v2"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 client the repository uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// SourceRepositoryImpl reads exports from disk or from S3.
type SourceRepositoryImpl struct {
	profile string

	mu        sync.Mutex
	clients   map[string]ObjectGetter
	newClient func(ctx context.Context, profile string) (ObjectGetter, error)
}

// NewSourceRepository creates a source repository. profile selects the
// shared AWS profile used for s3:// locations; empty means the default chain.
func NewSourceRepository(profile string) repository.SourceRepository {
	return &SourceRepositoryImpl{
		profile:   profile,
		clients:   make(map[string]ObjectGetter),
		newClient: newS3Client,
	}
}

// NewSourceRepositoryWithClient uses getter for every s3:// location.
func NewSourceRepositoryWithClient(getter ObjectGetter) repository.SourceRepository {
	return &SourceRepositoryImpl{
		clients: make(map[string]ObjectGetter),
		newClient: func(context.Context, string) (ObjectGetter, error) {
			return getter, nil
		},
	}
}

func newS3Client(ctx context.Context, profile string) (ObjectGetter, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (r *SourceRepositoryImpl) client(ctx context.Context) (ObjectGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[r.profile]; ok {
		return c, nil
	}
	c, err := r.newClient(ctx, r.profile)
	if err != nil {
		return nil, err
	}
	r.clients[r.profile] = c
	return c, nil
}

// Fetch loads the export at location and decodes it by file extension.
func (r *SourceRepositoryImpl) Fetch(ctx context.Context, location string) (entity.SourceDocument, error) {
	if strings.TrimSpace(location) == "" {
		return entity.SourceDocument{}, types.ErrNoInput
	}

	var (
		data []byte
		name string
		err  error
	)
	if strings.HasPrefix(location, s3Scheme) {
		data, err = r.fetchS3(ctx, location)
		name = path.Base(location)
	} else {
		data, err = readLocal(location)
		name = filepath.Base(location)
	}
	if err != nil {
		return entity.SourceDocument{}, err
	}
	return decodeDocument(name, data)
}

// Decode turns uploaded export bytes into a document.
func (r *SourceRepositoryImpl) Decode(name string, data []byte) (entity.SourceDocument, error) {
	return decodeDocument(name, data)
}

func readLocal(filePath string) ([]byte, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing export: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading export: %w", err)
	}
	return data, nil
}

// ParseS3Location splits s3://bucket/key.
func ParseS3Location(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q is not s3://bucket/key", types.ErrUnsupportedSource, location)
	}
	return bucket, key, nil
}

func (r *SourceRepositoryImpl) fetchS3(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	c, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// decodeDocument recognises workbooks by extension; everything else is
// treated as delimited text. Blank content is an empty export, whatever the
// extension says.
func decodeDocument(name string, data []byte) (entity.SourceDocument, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.SourceDocument{Name: name, Kind: entity.SourceDelimited}, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		records, err := workbookRecords(data)
		if err != nil {
			return entity.SourceDocument{}, fmt.Errorf("%s: %w", name, err)
		}
		return entity.SourceDocument{Name: name, Kind: entity.SourceWorkbook, Records: records}, nil
	case ".xls":
		return entity.SourceDocument{}, fmt.Errorf("%w: legacy .xls workbooks, save as .xlsx or .csv", types.ErrUnsupportedSource)
	default:
		return entity.SourceDocument{Name: name, Kind: entity.SourceDelimited, Text: string(data)}, nil
	}
}

// workbookRecords reads the first sheet of an xlsx workbook.
func workbookRecords(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, types.ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
