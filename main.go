package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// errReferenceMismatch is returned when a render differs from its reference image
var errReferenceMismatch = errors.New("render differs from reference")

// options holds the parsed command line
type options struct {
	scenePath    string
	scenesDir    string
	outputDir    string
	format       string
	referenceDir string
	workers      int
	preview      int
	tolerance    int
	list         bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders every camera of the scene and writes the images
func run(ctx context.Context, args []string, stdout io.Writer, logger core.Logger) error {
	opts, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.list {
		return listScenes(stdout, opts.scenesDir)
	}

	s, err := createScene(opts.scenesDir, opts.scenePath)
	if err != nil {
		return err
	}
	if len(s.Cameras) == 0 {
		return fmt.Errorf("%w: scene has no cameras", scene.ErrInvalidScene)
	}

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = opts.workers
	raytracer := renderer.NewRaytracer(s, config, logger)

	logger.Printf("Scene: %d primitives, %d lights, %d cameras\n",
		s.GetPrimitiveCount(), len(s.PointLights), len(s.Cameras))

	mismatched := 0
	startTime := time.Now()
	for _, camera := range s.Cameras {
		frame, stats, err := raytracer.Render(ctx, camera)
		if err != nil {
			return err
		}
		logger.Printf("Render completed in %v (%.2f rays/pixel: %d camera, %d reflection, %d shadow)\n",
			stats.Duration, stats.RaysPerPixel(), stats.Rays.Camera, stats.Rays.Reflection, stats.Rays.Shadow)

		filename := outputFilename(opts, camera)
		if err := loaders.WriteImage(filename, frame); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", filename)

		if opts.preview > 0 {
			previewName := loaders.ReplaceExtension(filename, "preview."+loaders.FormatPNG)
			if err := loaders.WritePreview(previewName, frame, opts.preview); err != nil {
				return err
			}
			logger.Printf("Preview saved as %s\n", previewName)
		}

		if opts.referenceDir != "" {
			ok, err := compareWithReference(frame, filepath.Join(opts.referenceDir, camera.ImageName), opts.tolerance, logger)
			if err != nil {
				return err
			}
			if !ok {
				mismatched++
			}
		}
	}
	logger.Printf("Rendered %d images in %v\n", len(s.Cameras), time.Since(startTime))

	if mismatched > 0 {
		return fmt.Errorf("%w: %d of %d images", errReferenceMismatch, mismatched, len(s.Cameras))
	}
	return nil
}

func parseFlags(args []string, stdout io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scenePath, "scene", "default", "Scene file (.xml) or scene ID such as 'default' or 'xml:simple'")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched for scene IDs")
	fs.BoolVar(&opts.list, "list", false, "List the available scene IDs and exit")
	fs.StringVar(&opts.outputDir, "outdir", "output", "Directory the images are written to")
	fs.StringVar(&opts.format, "format", "", "Output format overriding the image name extension: ppm, png, bmp or tiff")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.preview, "preview", 0, "Also write a PNG preview scaled to this many pixels on the longer edge (0 = off)")
	fs.StringVar(&opts.referenceDir, "reference", "", "Directory of reference images to compare each render against")
	fs.IntVar(&opts.tolerance, "tolerance", 1, "Per-channel difference allowed when comparing against references")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if *help {
		fmt.Fprintln(stdout, "Whitted Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options] [scene.xml]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Each camera in the scene is rendered to <outdir>/<ImageName>.")
		return opts, flag.ErrHelp
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.scenePath = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one scene file, got %d", fs.NArg())
	}

	if opts.format != "" {
		if _, err := loaders.FormatFromFilename("image." + opts.format); err != nil {
			return opts, err
		}
	}
	if opts.workers < 0 {
		return opts, fmt.Errorf("workers must not be negative, got %d", opts.workers)
	}
	if opts.preview < 0 {
		return opts, fmt.Errorf("preview size must not be negative, got %d", opts.preview)
	}
	return opts, nil
}

// createScene resolves a scene ID from the scenes directory or loads a scene file
func createScene(scenesDir, scenePath string) (*scene.Scene, error) {
	if scenePath == "" {
		return nil, errors.New("no scene given")
	}
	if strings.EqualFold(filepath.Ext(scenePath), ".xml") {
		return loaders.LoadXMLScene(scenePath)
	}

	info, err := loaders.FindScene(scenesDir, scenePath)
	if err != nil {
		return nil, err
	}
	return loaders.LoadScene(info)
}

// listScenes prints the scene IDs grouped by category
func listScenes(stdout io.Writer, scenesDir string) error {
	response, err := loaders.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(stdout, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(stdout, "  %-24s %s\n", info.ID, info.DisplayName)
		}
	}
	return nil
}

// outputFilename places the camera's image in the output directory, honoring a format override
func outputFilename(opts options, camera scene.Camera) string {
	filename := filepath.Join(opts.outputDir, camera.ImageName)
	if opts.format != "" {
		filename = loaders.ReplaceExtension(filename, opts.format)
	}
	return filename
}

// compareWithReference reports whether frame matches the reference image within tolerance
func compareWithReference(frame *renderer.Frame, referencePath string, tolerance int, logger core.Logger) (bool, error) {
	reference, err := loaders.LoadImage(referencePath)
	if err != nil {
		return false, err
	}
	diff, err := renderer.CompareFrames(frame, reference, tolerance)
	if err != nil {
		return false, fmt.Errorf("compare with %s: %w", referencePath, err)
	}
	if diff.Mismatched > 0 {
		logger.Printf("%s: %d of %d pixels differ from reference (max delta %d)\n",
			frame.Name, diff.Mismatched, diff.Pixels, diff.MaxDelta)
		return false, nil
	}
	logger.Printf("%s: matches reference\n", frame.Name)
	return true, nil
}
