package compile

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	cli "github.com/urfave/cli/v3"

	"stylekit/color"
)

// Palette prints colours interpolated between two hex codes.
func Palette(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.Args().Len() != 3 {
		return fmt.Errorf("expected START END STEPS, got %d argument(s)", cmd.Args().Len())
	}
	args := cmd.Args().Slice()
	return palette(args[0], args[1], args[2], cmd.String("space"), os.Stdout)
}

func palette(from, to, count, spaceName string, out io.Writer) error {
	start, err := color.FromHex(from)
	if err != nil {
		return fmt.Errorf("bad START: %w", err)
	}
	end, err := color.FromHex(to)
	if err != nil {
		return fmt.Errorf("bad END: %w", err)
	}
	steps, err := strconv.Atoi(count)
	if err != nil {
		return fmt.Errorf("bad STEPS: %w", err)
	}
	space, err := color.ParseSpace(spaceName)
	if err != nil {
		return err
	}

	colors, err := color.Palette(start, end, steps, space)
	if err != nil {
		return err
	}
	for _, c := range colors {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", c.Hex(), c); err != nil {
			return err
		}
	}
	return nil
}
