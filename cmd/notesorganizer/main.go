// Command notesorganizer runs the study organizer end to end: it opens the
// catalog and blob stores from configuration, seeds a demo subject when the
// catalog is empty, and runs an analysis pass over it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/Heymathi/Academic-notes-management-system/internal/analyze"
	"github.com/Heymathi/Academic-notes-management-system/internal/assistant"
	"github.com/Heymathi/Academic-notes-management-system/internal/config"
	"github.com/Heymathi/Academic-notes-management-system/internal/extract"
	"github.com/Heymathi/Academic-notes-management-system/internal/organizer"
	"github.com/Heymathi/Academic-notes-management-system/internal/progress"
	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	catalogFS, err := dataFS(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open data dir: %w", err)
	}
	catalog := store.NewCatalogStore(catalogFS, cfg.CatalogFile)

	blobs, err := openBlobStore(cfg)
	if err != nil {
		// Organizer runs catalog-only when the blob store is down.
		logger.Warn("blob store unavailable", "backend", cfg.BlobBackend, "error", err)
		blobs = nil
	}
	if blobs != nil {
		defer blobs.Close()
	}

	org := organizer.New(catalog, blobs, logger.With("component", "organizer"))

	gateway := analyze.NewGateway(analyze.Config{
		Endpoint:  cfg.AnalysisEndpoint,
		APIKey:    cfg.AnalysisAPIKey,
		Model:     cfg.AnalysisModel,
		MaxTokens: cfg.AnalysisTokens,
		BaseURL:   cfg.AnalysisBaseURL,
	}, nil, logger.With("component", "analyze"))

	rep := progress.NewReporter(func(s progress.State) {
		if s.Visible {
			fmt.Printf("  [%3d%%] %s\n", s.Percent, s.Message)
		}
	})
	pipeline := extract.NewPipeline(cfg.OCRLanguage, logger.With("component", "extract"))
	asst := assistant.New(org, pipeline, gateway, rep, logger.With("component", "assistant"))

	subject, err := demoSubject(org)
	if err != nil {
		return err
	}

	fmt.Printf("Subject: %s (%d notes, %d files)\n", subject.Name, len(subject.Notes), len(subject.Files))
	groups := organizer.FilesGroupedByFolder(subject)
	for _, folder := range organizer.FolderNames(groups) {
		fmt.Printf("  folder %q: %d file(s)\n", folder, len(groups[folder]))
	}

	fmt.Println("\nAnalyzing...")
	result, err := asst.Analyze(context.Background(), subject.ID)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	fmt.Println("\n" + result)

	fmt.Println("\nOverview:")
	fmt.Println(assistant.SubjectOverview(subject))
	return nil
}

func dataFS(dir string) (hackpadfs.FS, error) {
	root := osfs.NewFS()
	path, err := root.FromOSPath(dir)
	if err != nil {
		return nil, err
	}
	return hackpadfs.Sub(root, path)
}

func openBlobStore(cfg *config.Config) (store.BlobStorer, error) {
	switch cfg.BlobBackend {
	case "memory":
		return store.NewMemBlobStore(), nil
	case "badger":
		path := cfg.BlobPath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "blobs")
		}
		return store.NewBadgerBlobStore(path)
	case "sqlite":
		path := cfg.BlobPath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "blobs.db")
		}
		return store.NewSQLiteBlobStore("file:" + path)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

// demoSubject returns the first stored subject, seeding one with a note
// and a metadata-only file on an empty catalog.
func demoSubject(org *organizer.Organizer) (store.Subject, error) {
	subjects, err := org.Subjects()
	if err != nil {
		return store.Subject{}, fmt.Errorf("list subjects: %w", err)
	}
	if len(subjects) > 0 {
		return subjects[0], nil
	}

	subject, err := org.CreateSubject("Operating Systems", "CS 350", "Prof. Rivera",
		"Processes, scheduling and memory management")
	if err != nil {
		return store.Subject{}, fmt.Errorf("create subject: %w", err)
	}

	if _, err := org.UpsertNote(subject.ID, store.Note{
		Title: "Week 1: Processes",
		Body:  "A process is a program in execution. The scheduler multiplexes the CPU between runnable processes.",
		Tags:  []string{"processes", "scheduling"},
	}); err != nil {
		return store.Subject{}, fmt.Errorf("seed note: %w", err)
	}

	if _, err := org.AddFile(subject.ID, store.File{
		Name:        "syllabus.txt",
		Type:        store.FileUnknown,
		Description: "Course outline: processes, threads, deadlock, virtual memory, file systems.",
	}, nil); err != nil {
		return store.Subject{}, fmt.Errorf("seed file: %w", err)
	}

	return org.Subject(subject.ID)
}
