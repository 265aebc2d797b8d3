// Command meshexport writes the vessel, posed at a given frame, to a glTF
// file without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/scene"
	"github.com/Faultbox/corevessel/internal/export"
	"github.com/Faultbox/corevessel/internal/logger"
)

var (
	flagOut    = flag.String("out", "corevessel.glb", "Output file (.glb or .gltf)")
	flagFrames = flag.Int("frames", 0, "Animation frames to advance before export")
	flagAspect = flag.Float64("aspect", 16.0/9.0, "Viewport aspect used for the camera")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	collector := export.NewCollector()
	meshes, err := scene.BuildMeshes(cfg.Scene, collector)
	if err != nil {
		return err
	}
	defer meshes.Release()

	// Textures are not exported; materials carry their base colors only.
	lib, err := material.NewLibrary(nil)
	if err != nil {
		return err
	}

	s := scene.NewState(cfg)
	for i := 0; i < *flagFrames; i++ {
		s.Advance(1)
	}

	frame := scene.Compose(s, scene.PedestalTiers(cfg.Pedestal), lib, float32(*flagAspect))
	doc, err := export.Document(frame, meshes, lib)
	if err != nil {
		return err
	}
	if err := export.Save(doc, *flagOut); err != nil {
		return err
	}

	logger.Info("vessel exported",
		zap.String("path", *flagOut),
		zap.Int("frames", *flagFrames),
		zap.Int("objects", len(frame.Objects)))
	return nil
}
