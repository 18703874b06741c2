package repository

import (
	"context"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// SourceRepository fetches an export by location: a local path or an
// s3://bucket/key URL.
type SourceRepository interface {
	Fetch(ctx context.Context, location string) (entity.SourceDocument, error)
	Decode(name string, data []byte) (entity.SourceDocument, error)
}

// SourceFactory builds a SourceRepository for an AWS shared-config profile.
type SourceFactory func(profile string) SourceRepository
