package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/kovidgoyal/munsell"
	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/preview"
)

var _ = fmt.Print

const usage = `usage: munsell COMMAND ARGS...

  version                 print the version of this program
  forward NOTATION        convert a notation such as "5R 5/10" to CIE colorimetry
  reverse L a b           resolve a L*a*b* color to a notation
  hex L a b               print the #RRGGBB preview color of a L*a*b* color
  swatch L a b OUT.png    write the preview swatch of a L*a*b* color
  compare L a b OUT.png   write an animation alternating a L*a*b* color and its notation
  dump OUT.json           write the notation database as JSON point clouds

Set MUNSELL_DEBUG=1 to see debug logging on stderr.`

type usage_error string

func (e usage_error) Error() string { return string(e) + "\n\n" + usage }

func parse_lab(args []string) (ans colorconv.Lab, err error) {
	if len(args) < 3 {
		return ans, usage_error("three numbers are needed for a L*a*b* color")
	}
	for i, x := range args[:3] {
		if ans[i], err = strconv.ParseFloat(x, 64); err != nil {
			return ans, fmt.Errorf("%q is not a number: %w", x, err)
		}
	}
	return
}

func write_png(path string, f func(io.Writer) error) (err error) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return f(out)
}

func print_sample(w io.Writer, s munsell.ColorSample) {
	fmt.Fprintf(w, "Notation:  %s", s.Notation)
	if s.Approximate {
		fmt.Fprint(w, " (nearest sampled notation)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "XYZ:       %.4f %.4f %.4f\n", s.XYZ[0], s.XYZ[1], s.XYZ[2])
	fmt.Fprintf(w, "Lab:       %.2f %.2f %.2f\n", s.Lab[0], s.Lab[1], s.Lab[2])
	fmt.Fprintf(w, "LCH:       %.2f %.2f %.2f\n", s.LCH[0], s.LCH[1], s.LCH[2])
	fmt.Fprintf(w, "Preview:   %s\n", s.Hex)
	if s.Cylindrical != nil {
		fmt.Fprintf(w, "Cylinder:  %.3f %.3f %.3f\n", s.Cylindrical[0], s.Cylindrical[1], s.Cylindrical[2])
	}
}

func run(ctx context.Context, c *munsell.Converter, args []string, stdout io.Writer) (err error) {
	if len(args) == 0 {
		return usage_error("no command specified")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintln(stdout, munsell.Version)
	case "forward":
		if len(args) != 1 {
			return usage_error("forward needs exactly one notation")
		}
		s, err := c.SampleNotation(ctx, args[0])
		if err != nil {
			return err
		}
		print_sample(stdout, s)
	case "reverse":
		lab, err := parse_lab(args)
		if err != nil {
			return err
		}
		s, err := c.SampleLab(ctx, lab)
		if err != nil {
			return err
		}
		print_sample(stdout, s)
	case "hex":
		lab, err := parse_lab(args)
		if err != nil {
			return err
		}
		h, err := c.LabToHex(lab)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, h)
	case "swatch":
		lab, err := parse_lab(args)
		if err != nil {
			return err
		}
		if len(args) != 4 {
			return usage_error("swatch needs an output file")
		}
		col, err := preview.LabToColor(c.Backend(), lab)
		if err != nil {
			return err
		}
		return write_png(args[3], func(w io.Writer) error {
			return png.Encode(w, preview.Swatch(col, preview.SwatchSize, preview.SwatchRadius))
		})
	case "compare":
		lab, err := parse_lab(args)
		if err != nil {
			return err
		}
		if len(args) != 4 {
			return usage_error("compare needs an output file")
		}
		s, err := c.SampleLab(ctx, lab)
		if err != nil {
			return err
		}
		colors := []color.Color{}
		query, err := preview.LabToColor(c.Backend(), lab)
		if err != nil {
			return err
		}
		colors = append(colors, query)
		// a neutral or off grid notation from the backend may not convert
		// back, in which case there is nothing to compare against
		if matched, ferr := c.ToColorimetric(s.Notation); ferr == nil {
			mc, err := preview.LabToColor(c.Backend(), matched.Lab)
			if err != nil {
				return err
			}
			colors = append(colors, mc)
		}
		if err = write_png(args[3], func(w io.Writer) error {
			return preview.EncodeCompare(w, colors, preview.SwatchSize, preview.SwatchRadius, preview.CompareDelay)
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s compared with %s\n", query.AsSharp(), s.Notation)
	case "dump":
		if len(args) != 1 {
			return usage_error("dump needs an output file")
		}
		db, err := c.Database(ctx)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(db.Scatter(), "", "  ")
		if err != nil {
			return err
		}
		if err = os.WriteFile(args[0], b, 0o666); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d notations written to %s\n", db.Len(), args[0])
	default:
		return usage_error(fmt.Sprintf("unknown command: %s", cmd))
	}
	return
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	level := slog.LevelWarn
	if os.Getenv("MUNSELL_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	c := munsell.New(munsell.WithLogger(munsell.NewTextLogger(level)), munsell.WithProgress(func(done, total int) {
		if level == slog.LevelDebug {
			fmt.Fprintf(os.Stderr, "\rSampling hues: %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}))
	err = run(context.Background(), c, os.Args[1:], os.Stdout)
}
