package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ankurkotwal/fitcard/fc"
	"github.com/ankurkotwal/fitcard/fc/common"
)

func main() {
	debugMode, configFile, cardFiles := parseCliArgs()
	log := common.NewLog()
	config, err := common.LoadConfig(configFile)
	if err != nil {
		log.Fatal("%v", err)
	}
	router, port := fc.GetServer(config, debugMode, cardFiles)
	if err := router.Run(port); err != nil {
		log.Fatal("%v", err)
	}
}

func parseCliArgs() (bool, string, fc.Filenames) {
	var cardFiles fc.Filenames
	flag.Usage = func() {
		fmt.Printf("Usage: %s [-d] [-c config] [-t dir] [file...]\n\n", filepath.Base(os.Args[0]))
		fmt.Printf("file\tCard definitions served on /test/cards in debug mode.\n")
		flag.PrintDefaults()
	}
	var debugMode bool
	flag.BoolVar(&debugMode, "d", false, "Enable debug mode & deploy GET handlers.")
	var configFile string
	flag.StringVar(&configFile, "c", "config/config.yaml", "Configuration file.")
	var testDataDir string
	flag.StringVar(&testDataDir, "t", "", "Directory to load card files from. Only used if debug mode is enabled.")
	flag.Parse()
	cardFiles = append(cardFiles, flag.Args()...)

	// If in debug mode and a test data dir was provided, read every card file in it
	if debugMode && len(testDataDir) > 0 {
		files, err := fc.GetFilesFromDir(testDataDir)
		if err != nil {
			common.NewLog().Err("Error loading files from %s: %v", testDataDir, err)
		}
		cardFiles = append(cardFiles, files...)
	}

	return debugMode, configFile, cardFiles
}
