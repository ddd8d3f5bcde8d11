package ports

import (
	"context"
	"fmt"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// SourceResolver returns the path of the asset being imported.
type SourceResolver interface {
	SourceFile(ctx context.Context) (string, error)
}

// SourceResolverFunc adapts a plain function to a SourceResolver.
type SourceResolverFunc func(ctx context.Context) (string, error)

// SourceFile calls f(ctx).
func (f SourceResolverFunc) SourceFile(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticSource resolves to a fixed path. An empty path does not resolve.
func StaticSource(path string) SourceResolver {
	return SourceResolverFunc(func(context.Context) (string, error) {
		if path == "" {
			return "", fmt.Errorf("%w: host returned an empty source file", domain.ErrInvalidSourcePath)
		}
		return path, nil
	})
}
