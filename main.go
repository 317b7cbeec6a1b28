package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName  string
	configPath string
	outPath    string
	format     string
	quiet      bool
	help       bool
	seed       int64
	camera     renderer.CameraConfig
	sampling   renderer.SamplingConfig
	setFlags   map[string]bool // Flags given on the command line
}

func parseOptions(args []string, usageOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(usageOut)

	fs.StringVar(&opts.sceneName, "scene", "", "Scene name: "+strings.Join(scene.Names(), ", ")+" (default "+scene.DefaultSceneName+")")
	fs.StringVar(&opts.configPath, "config", "", "JSON file with camera and sampling overrides")
	fs.StringVar(&opts.outPath, "out", "-", "Output path, '-' for stdout. A .zst or .sz suffix compresses the image")
	fs.StringVar(&opts.format, "format", "", "Image format: ppm or png (default from -out, ppm for stdout)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for scene population and sampling")

	fs.IntVar(&opts.camera.Width, "width", 0, "Image width in pixels (default: scene value)")
	fs.Float64Var(&opts.camera.AspectRatio, "aspect", 0, "Aspect ratio width/height (default: scene value)")
	fs.Float64Var(&opts.camera.VFov, "vfov", 0, "Vertical field of view in degrees (default: scene value)")
	fs.Float64Var(&opts.camera.DefocusAngle, "defocus", 0, "Defocus angle in degrees, 0 for a pinhole camera (default: scene value)")
	fs.Float64Var(&opts.camera.FocusDistance, "focus", 0, "Focus distance (default: scene value)")
	fs.IntVar(&opts.sampling.SamplesPerPixel, "samples", 0, "Samples per pixel (default: scene value)")
	fs.IntVar(&opts.sampling.MaxDepth, "depth", 0, "Maximum bounce depth (default: scene value)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.setFlags[f.Name] = true
	})
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.help {
		printHelp(usageOut, fs)
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range scene.ListAllScenes().Groups {
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
		}
	}
}

// createScene builds the named scene, falling back to the default for an empty name
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		sceneType = scene.DefaultSceneName
	}
	return scene.Create(sceneType, seed)
}

// applyFlags copies the camera and sampling flags that were given, zero values included
func (o options) applyFlags(s *scene.Scene) {
	for name := range o.setFlags {
		switch name {
		case "width":
			s.CameraConfig.Width = o.camera.Width
		case "aspect":
			s.CameraConfig.AspectRatio = o.camera.AspectRatio
		case "vfov":
			s.CameraConfig.VFov = o.camera.VFov
		case "defocus":
			s.CameraConfig.DefocusAngle = o.camera.DefocusAngle
		case "focus":
			s.CameraConfig.FocusDistance = o.camera.FocusDistance
		case "samples":
			s.SamplingConfig.SamplesPerPixel = o.sampling.SamplesPerPixel
		case "depth":
			s.SamplingConfig.MaxDepth = o.sampling.MaxDepth
		}
	}
}

// resolveSeed picks -seed when given, then the config file's seed, then the flag default
func (o options) resolveSeed(fileConfig scene.FileConfig) int64 {
	if o.setFlags["seed"] {
		return o.seed
	}
	if seed, ok := fileConfig.Seed(); ok {
		return seed
	}
	return o.seed
}

// buildScene resolves the scene and layers config file then flag overrides on top.
// The seed is settled first because it populates the scene as well as the render.
func buildScene(opts options) (*scene.Scene, error) {
	var fileConfig scene.FileConfig
	if opts.configPath != "" {
		var err error
		if fileConfig, err = scene.LoadConfigFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	sceneName := opts.sceneName
	if sceneName == "" {
		sceneName = fileConfig.Scene
	}

	s, err := createScene(sceneName, opts.resolveSeed(fileConfig))
	if err != nil {
		return nil, err
	}

	fileConfig.Apply(s)
	opts.applyFlags(s)
	return s, nil
}

// run renders one image according to opts
func run(ctx context.Context, opts options, logger core.Logger) (err error) {
	s, err := buildScene(opts)
	if err != nil {
		return err
	}

	rt, err := s.NewRaytracer(logger)
	if err != nil {
		return err
	}

	format := output.FormatFromPath(opts.outPath)
	if opts.format != "" {
		if format, err = output.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	sink, err := output.Create(opts.outPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", closeErr)
		}
	}()

	writer, err := output.NewPixelWriter(format, sink)
	if err != nil {
		return err
	}

	stats, err := rt.Render(ctx, writer, nil)
	if err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finishing image: %w", err)
	}

	logger.Printf("Render completed in %v (%dx%d, %d samples per pixel, %.0f samples/s)\n",
		stats.Duration, stats.Width, stats.Height, stats.SamplesPerPixel, stats.SamplesPerSecond())
	if opts.outPath != "-" {
		logger.Printf("Render saved as %s\n", opts.outPath)
	}
	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opts.help {
		return
	}

	// Progress goes to stderr so stdout carries only the image
	var logger core.Logger = renderer.NewStderrLogger()
	if opts.quiet {
		logger = renderer.NopLogger{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
