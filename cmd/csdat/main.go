package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/csdat"
	"github.com/bodgit/csdat/sector"
	"github.com/urfave/cli/v2"
)

const defaultDB = "csdat.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newEditor(c *cli.Context) *csdat.Editor {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return csdat.New(logger)
}

func options(c *cli.Context) csdat.Options {
	return csdat.Options{
		SectorsX: c.Int("sectors-x"),
		SectorsY: c.Int("sectors-y"),
		GridSize: c.Int("grid-size"),
	}
}

func importAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	e := newEditor(c)

	s, err := e.Import(context.Background(), c.Args().Get(0), options(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	display, _, _ := s.Display()
	min, max := s.MinMax()

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	if err := png.Encode(f, csdat.DisplayImage(display, c.Bool("rotate"))); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("Imported %d sectors, %dx%d, min %g, max %g\n", s.Len(), display.Width(), display.Height(), min, max)
	fmt.Println("Pass the min and max back to export after editing")

	return nil
}

func exportAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	e := newEditor(c)

	s, err := e.Import(context.Background(), c.Args().Get(0), options(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	f, err := os.Open(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	min, max := s.MinMax()
	if c.IsSet("min") {
		min = c.Float64("min")
	}
	if c.IsSet("max") {
		max = c.Float64("max")
	}

	written, failed, err := e.Export(context.Background(), s, csdat.DisplayGrid(m, c.Bool("rotate")), min, max)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("Written: %d, Failed: %d\n", written, failed)

	return nil
}

func previewAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	e := newEditor(c)

	s, err := e.Import(context.Background(), c.Args().Get(0), options(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	display, _, _ := s.Display()

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	if err := csdat.EncodePreview(f, display); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func catalogAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := csdat.NewCatalogDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	e := newEditor(c)

	count, err := e.Catalog(context.Background(), c.Args().First(), db, options(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("Cataloged %d sectors\n", count)

	return nil
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	e := newEditor(c)

	opts := options(c)
	s, err := e.Import(context.Background(), c.Args().First(), opts)
	if err != nil {
		return cli.Exit(err, 1)
	}

	min, max := s.MinMax()
	fmt.Printf("Directory: %s\n", s.Directory())
	fmt.Printf("Sectors: %d of %d, grid %dx%d, min %g, max %g\n", s.Len(), opts.SectorsX*opts.SectorsY, opts.SectorsX, opts.SectorsY, min, max)

	for i := 0; i < opts.SectorsX*opts.SectorsY; i++ {
		g, ok := s.Sector(i)
		if !ok {
			continue
		}
		lo, hi := g.MinMax()
		fmt.Printf("%8d %s min %g max %g\n", i, csdat.SectorFilename(i), lo, hi)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "csdat"
	app.Usage = "CSDAT terrain heightmap utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	dimFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "sectors-x",
			Value: 8,
			Usage: "number of sectors in the X direction",
		},
		&cli.IntFlag{
			Name:  "sectors-y",
			Value: 8,
			Usage: "number of sectors in the Y direction",
		},
		&cli.IntFlag{
			Name:  "grid-size",
			Value: sector.DefaultGridSize,
			Usage: "per-sector heightmap resolution",
		},
	}

	rotateFlag := &cli.BoolFlag{
		Name:  "rotate",
		Usage: "rotate the heightmap an extra quarter turn for display",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Read sector files and write a heightmap image",
			ArgsUsage: "DIRECTORY FILE",
			Flags:     append(append([]cli.Flag{}, dimFlags...), rotateFlag),
			Action:    importAction,
		},
		{
			Name:      "export",
			Usage:     "Write an edited heightmap image back into sector files",
			ArgsUsage: "DIRECTORY FILE",
			Flags: append(append([]cli.Flag{}, dimFlags...), rotateFlag,
				&cli.Float64Flag{
					Name:  "min",
					Usage: "elevation mapped to black, as printed by import",
				},
				&cli.Float64Flag{
					Name:  "max",
					Usage: "elevation mapped to white, as printed by import",
				}),
			Action: exportAction,
		},
		{
			Name:      "preview",
			Usage:     "Write a GIF preview of the assembled terrain",
			ArgsUsage: "DIRECTORY FILE",
			Flags:     append([]cli.Flag{}, dimFlags...),
			Action:    previewAction,
		},
		{
			Name:      "catalog",
			Usage:     "Record sector checksums and elevation ranges in a database",
			ArgsUsage: "DIRECTORY",
			Flags: append(append([]cli.Flag{}, dimFlags...),
				&cli.StringFlag{
					Name:  "db",
					Value: filepath.Join(cwd, defaultDB),
					Usage: "path to database",
				}),
			Action: catalogAction,
		},
		{
			Name:      "info",
			Usage:     "Show what a terrain directory contains",
			ArgsUsage: "DIRECTORY",
			Flags:     append([]cli.Flag{}, dimFlags...),
			Action:    infoAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
