package app

import (
	"log"

	"civicposts/internal/config"
	"civicposts/internal/database"
	"civicposts/internal/geocoder"
	"civicposts/internal/mailer"
	"civicposts/internal/repository"
	"civicposts/internal/service"
	"civicposts/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	geo := geocoder.NewNominatimClient(cfg)
	mail := mailer.NewSMTPMailer(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, geo, mail)

	return db, repo, services
}
