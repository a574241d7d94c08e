package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/icon-extract/internal/config"
	"github.com/ironsheep/icon-extract/internal/icon"
	"github.com/ironsheep/icon-extract/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// exitNoContent distinguishes "threshold matched nothing" from real failures.
const exitNoContent = 2

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("icon-extract %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "serve":
			serve()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	fs := flag.NewFlagSet("icon-extract", flag.ContinueOnError)
	fs.Usage = printUsage
	cfg, err := config.ParseConfig(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		config.Exitf("Error: %v", err)
	}

	if cfg.Debug {
		log.Printf("icon-extract %s: %s -> %s color=%s threshold=%g margin=%d max-size=%d",
			Version, cfg.InputPath, cfg.OutputPath, cfg.Options.TargetHex,
			cfg.Options.Threshold, cfg.Options.Margin, cfg.Options.MaxSize)
	}

	res, err := icon.Extract(cfg.InputPath, cfg.OutputPath, cfg.Options)
	if err != nil {
		var nc *icon.NoContentError
		if errors.As(err, &nc) {
			fmt.Println("no icon content detected; try adjusting the brightness threshold")
			if a := nc.Analysis; a != nil && a.Width > 0 && a.Height > 0 {
				fmt.Printf("  brightness range: %.2f - %.2f (threshold %g)\n", a.MinBrightness, a.MaxBrightness, nc.Threshold)
				fmt.Printf("  suggested threshold: -threshold %g or higher\n", a.SuggestedThreshold)
			}
			os.Exit(exitNoContent)
		}
		config.Exitf("Error: %v", err)
	}

	if cfg.Debug {
		log.Printf("content bounds %+v, crop bounds %+v, %d pixels matched",
			res.ContentBounds, res.CropBounds, res.MatchedPixels)
	}
	fmt.Printf("icon saved to: %s\n", res.OutputPath)
	fmt.Printf("size: %dx%d\n", res.Width, res.Height)
}

func serve() {
	// stdout is for MCP protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug {
		log.Printf("icon-extract MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg.Options)
	srv.SetDebug(cfg.Debug)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("icon-extract - turn the dark shapes of an image into a solid-color PNG icon")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  icon-extract [options] <input> <output.png>")
	fmt.Println("  icon-extract serve")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -color #RRGGBB     Icon color (default #FFB300)")
	fmt.Println("  -threshold N       Pixels with (R+G+B)/3 below N are content (default 250)")
	fmt.Println("  -margin N          Padding around the content in pixels (default 20)")
	fmt.Println("  -max-size N        Downscale so neither side exceeds N (default 0, off)")
	fmt.Println("  -debug             Enable debug logging")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  ICON_EXTRACT_TARGET_HEX, ICON_EXTRACT_THRESHOLD, ICON_EXTRACT_MARGIN,")
	fmt.Println("  ICON_EXTRACT_MAX_SIZE     Defaults for the options above")
	fmt.Println("  ICON_EXTRACT_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("serve runs an MCP server over stdin/stdout with the tools")
	fmt.Println("icon_extract, icon_analyze, image_load and image_sample_color.")
	fmt.Println()
	fmt.Println("Exit status: 0 on success, 2 when no content was detected, 1 on error.")
}
