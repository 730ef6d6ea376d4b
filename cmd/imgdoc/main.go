package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/creativeai/imgdoc/common/config"
	"github.com/creativeai/imgdoc/common/logging"
	"github.com/creativeai/imgdoc/common/version"
	"github.com/creativeai/imgdoc/pool"
)

func main() {
	configPath := flag.String("config", "imgdoc.yaml", "The path to the configuration")
	outFile := flag.String("out", "", "The output path for the aggregated manifest (default: <directory>.json)")
	numWorkers := flag.Int("workers", 0, "The number of archive-scanning workers (overrides the config)")
	versionFlag := flag.Bool("version", false, "Prints the version and exits")
	flag.Parse()

	if *versionFlag {
		version.Print(false)
		return // exit 0
	}

	if flag.NArg() != 1 {
		fmt.Println("Usage: imgdoc [options] <directory>")
		fmt.Println("Scans a directory of TAR files containing .jpg and .json entries.")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("IMGDOC_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}
	config.Path = *configPath

	if config.Get().Sentry.Enabled {
		logrus.Info("Setting up Sentry for debugging...")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.Get().Sentry.Dsn,
			Environment: config.Get().Sentry.Environment,
			Debug:       config.Get().Sentry.Debug,
			Release:     fmt.Sprintf("%s-%s", version.Version, version.GitCommit),
		})
		if err != nil {
			panic(err)
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.Recover()

	err := logging.Setup(
		config.Get().General.LogDirectory,
		config.Get().General.LogColors,
		config.Get().General.JsonLogs,
		config.Get().General.LogLevel,
	)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	version.Print(true)

	workers := config.Get().Scan.NumWorkers
	if *numWorkers > 0 {
		workers = *numWorkers
	}

	if err := pool.RunDirectory(flag.Arg(0), *outFile, workers); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("Done")
}
