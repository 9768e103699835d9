package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylekit/css"
	"stylekit/sheet"
	"stylekit/state"
)

// Check parses CSS files and reports what the engine can import from them.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return errors.New("no CSS files have been specified")
	}
	return check(ctx, cmd.Args().Slice(), os.Stdout, env, env.Log.Named("check"))
}

// check reports one summary line per file followed by its warnings. Files
// that cannot be read or imported are reported together.
func check(ctx context.Context, files []string, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	var errs error
	for _, fname := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := os.ReadFile(fname)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read %s: %w", fname, err))
			continue
		}

		st := css.NewParser(log).Parse(data, fname).Stats()
		warnings, err := sheet.New(append(env.SheetOptions(), sheet.WithLogger(log))...).Import(data)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to import %s: %w", fname, err))
		}

		fmt.Fprintf(out, "%s: %d rules, %d media (%d scoped rules), %d keyframes, %d imports, %d warnings\n",
			fname, st.Rules, st.Media, st.Scoped, st.Keyframes, st.Imports, len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "    %s\n", w)
		}
		log.Debug("Checked stylesheet", zap.String("file", fname), zap.Int("warnings", len(warnings)))
	}
	return errs
}
