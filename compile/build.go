// Package compile implements program commands.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylekit/design"
	"stylekit/state"
)

// Build compiles a design document into a stylesheet.
func Build(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no design document has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	if cmd.Bool("normalize") {
		env.Cfg.Render.Normalize = true
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return build(ctx, src, dst, os.Stdout, env, log)
}

// build handles compilation independently of CLI framework. Without
// destination the stylesheet is written to out.
func build(ctx context.Context, src, dst string, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(dst) > 0 && !env.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("destination file already exists: %s", dst)
		}
	}

	env.Rpt.Store("design/"+filepath.Base(src), src)
	doc, err := design.Load(src)
	if err != nil {
		return err
	}

	s, err := design.NewCompiler(log, env.SheetOptions()...).Compile(doc)
	env.Rpt.StoreData("stylesheet.dump", []byte(s.Dump()))
	if err != nil {
		return fmt.Errorf("unable to compile design document: %w", err)
	}
	env.Rpt.StoreData("stylesheet.css", []byte(s.Render()))

	if len(dst) == 0 {
		_, err = s.WriteTo(out)
		return err
	}
	if err := s.RenderFile(dst); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	log.Info("Stylesheet written", zap.String("file", dst),
		zap.Int("styles", len(s.Styles())), zap.Int("animations", len(s.Animations())))
	return nil
}
