package cmd

import (
	"context"

	"github.com/ardnew/glenum/cli/cmd/browse"
	"github.com/ardnew/glenum/log"
)

// Browse opens an interactive fuzzy finder over the registry.
type Browse struct {
	Strip bool `help:"Start with namespace prefixes removed." short:"S"`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	return browse.Run(ctx, reg, browse.Config{
		CacheDir: kongVar(ctx, CacheIdentifier),
		Logger:   log.Default(),
		Options:  registryOptions(ctx),
		Strip:    b.Strip,
	})
}
