// Команда seed заменяет банк вопросов содержимым JSON-файлов:
//
//	seed -file initial_questions/enem.json -file initial_questions/residencia_medica.json
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/Edu92337/quizmaster-backend/internal/config"
	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
	"github.com/Edu92337/quizmaster-backend/internal/migrations"
	"github.com/Edu92337/quizmaster-backend/internal/models"
	"github.com/Edu92337/quizmaster-backend/internal/services/seed"
	"github.com/Edu92337/quizmaster-backend/internal/storage/repository"
)

type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var files fileList
	flag.Var(&files, "file", "JSON file with questions, may be repeated")
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)

	if len(files) == 0 {
		logger.Error("use -file to pass at least one questions file")
		os.Exit(2)
	}

	var questions []models.Question
	for _, path := range files {
		qs, err := readFile(path)
		if err != nil {
			logger.Error("failed to load questions file", slog.String("file", path), sl.Err(err))
			os.Exit(1)
		}
		logger.Info("questions file loaded", slog.String("file", path), slog.Int("count", len(qs)))
		questions = append(questions, qs...)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer func() { _ = db.DB.Close() }()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	deleted, err := seed.Replace(context.Background(), db, questions)
	if err != nil {
		logger.Error("failed to seed questions", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("question bank replaced", slog.Int("deleted", deleted), slog.Int("inserted", len(questions)))
}

func readFile(path string) ([]models.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return seed.Decode(f)
}
