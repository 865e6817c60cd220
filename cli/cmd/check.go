package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/glenum/log"
	"github.com/ardnew/glenum/registry"
)

// Check loads the registry sources and reports what they define.
// Any registry error fails the command.
type Check struct {
	Quiet bool `help:"Only report errors." short:"q"`
}

// Summary counts the contents of a registry.
type Summary struct {
	Enums    int
	Bitmasks int
	Wide     int
	Variants int // API-specific keys
	Groups   int
}

// Summarize counts the contents of reg.
func Summarize(reg *registry.Registry) Summary {
	s := Summary{Groups: len(reg.Groups)}

	for k, v := range reg.Enums.All() {
		switch v.Kind {
		case registry.KindBitmask:
			s.Bitmasks++
		case registry.KindWide:
			s.Wide++
		default:
			s.Enums++
		}

		if k.API != "" {
			s.Variants++
		}
	}

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"%d enums, %d bitmasks, %d wide, %d API-specific, %d groups",
		s.Enums, s.Bitmasks, s.Wide, s.Variants, s.Groups,
	)
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	s := Summarize(reg)

	log.InfoContext(ctx, "registry ok",
		slog.Int("enums", s.Enums),
		slog.Int("bitmasks", s.Bitmasks),
		slog.Int("wide", s.Wide),
		slog.Int("variants", s.Variants),
		slog.Int("groups", s.Groups),
	)

	if c.Quiet {
		return nil
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), s); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
