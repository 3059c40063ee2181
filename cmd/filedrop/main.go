package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"filedrop/pkg/alert"
	"filedrop/pkg/config"
	"filedrop/pkg/ingest"
	"filedrop/pkg/journal"
	"filedrop/pkg/log"
	"filedrop/pkg/picker"
	"filedrop/pkg/transport"
)

type options struct {
	configPath  string
	serverURL   string
	extensions  string
	multiple    bool
	pickDir     string
	journalPath string
	history     int
	debug       bool
	files       []string
}

func main() {
	// Initialize logger first
	_ = log.Logger

	opts := parseFlags()
	if opts.debug {
		log.SetDebugMode()
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, alert.FormatError(err))
		os.Exit(1)
	}
}

func parseFlags() options {
	configPath := flag.String("config", "", "Configuration file path")
	serverURL := flag.String("server", "", "Remote server base URL (overrides config)")
	extensions := flag.String("ext", "", "Comma-separated allowed extensions, e.g. png,jpg")
	multiple := flag.Bool("multiple", false, "Allow multiple file selection")
	pickDir := flag.String("pick", "", "Pick files interactively from this directory")
	journalPath := flag.String("journal", "", "SQLite journal path")
	history := flag.Int("history", 0, "Print the last N journal entries and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	return options{
		configPath:  *configPath,
		serverURL:   *serverURL,
		extensions:  *extensions,
		multiple:    *multiple,
		pickDir:     *pickDir,
		journalPath: *journalPath,
		history:     *history,
		debug:       *debug,
		files:       flag.Args(),
	}
}

func run(opts options) error {
	source, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	cfg := source.Snapshot()
	if opts.serverURL != "" {
		cfg.Server.URL = opts.serverURL
	}
	if !opts.debug && cfg.Logging.Level == "debug" {
		log.SetDebugMode()
	}

	if opts.history > 0 {
		return printHistory(opts)
	}

	callerFiles, totalSize, err := openCallerFiles(opts.files, ingest.NewSizeValidator(source))
	if err != nil {
		return err
	}

	if len(callerFiles) == 0 && opts.pickDir == "" {
		return fmt.Errorf("no files given, pass paths or use -pick")
	}

	var filePicker ingest.Picker
	if opts.pickDir != "" {
		filePicker = picker.NewTerminal(opts.pickDir, os.Stdin, os.Stdout)
	}

	var uploadTransport ingest.Transport = transport.New(cfg.Server.URL, cfg.Server.Timeout)

	invocationID := uuid.NewString()
	if opts.journalPath != "" {
		store, err := journal.NewStore(opts.journalPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		uploadTransport = &journal.RecordingTransport{
			Next:         uploadTransport,
			Store:        store,
			InvocationID: invocationID,
		}
	}

	constraint := ingest.Constraint{
		AllowedExtensions: allowedExtensions(opts.extensions, cfg),
		AllowMultiple:     opts.multiple || cfg.Uploads.AllowMultiple,
	}

	if len(callerFiles) > 0 {
		fmt.Printf("Uploading %d file(s) (%s)...\n", len(callerFiles), humanize.IBytes(uint64(totalSize)))
	}

	uploader := ingest.NewUploader(ingest.NewAcquirer(filePicker), uploadTransport)

	ids, err := uploader.Upload(context.Background(), callerFiles, constraint)
	if err != nil {
		return err
	}

	log.Info().Int("count", len(ids)).Str("invocation_id", invocationID).Msg("Upload finished")
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// openCallerFiles opens the explicitly named files and pre-checks their sizes.
func openCallerFiles(paths []string, validator *ingest.SizeValidator) ([]ingest.FileHandle, int64, error) {
	var (
		files     []ingest.FileHandle
		totalSize int64
	)
	for _, path := range paths {
		handle, err := ingest.NewFileHandle(path)
		if err != nil {
			closeHandles(files)
			return nil, 0, err
		}
		if err := validator.Validate(handle.Size); err != nil {
			closeHandles(files)
			_ = handle.Close()
			return nil, 0, err
		}
		files = append(files, handle)
		totalSize += handle.Size
	}
	return files, totalSize, nil
}

func closeHandles(files []ingest.FileHandle) {
	for _, file := range files {
		_ = file.Close()
	}
}

func allowedExtensions(flagValue string, cfg config.Config) []string {
	if flagValue == "" {
		return cfg.Uploads.Extensions
	}
	var exts []string
	for _, ext := range strings.Split(flagValue, ",") {
		ext = strings.TrimSpace(strings.TrimPrefix(ext, "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func printHistory(opts options) error {
	if opts.journalPath == "" {
		return fmt.Errorf("-history requires -journal")
	}

	store, err := journal.NewStore(opts.journalPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(opts.history)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%s  %-30s %8s  %s\n",
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.FileName,
			humanize.IBytes(uint64(record.Size)),
			record.RemoteID)
	}
	return nil
}
