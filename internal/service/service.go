package service

import (
	"civicposts/internal/config"
	"civicposts/internal/geocoder"
	"civicposts/internal/mailer"
	"civicposts/internal/repository"
	"civicposts/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Rubric  RubricService
	Reset   ResetService
	Address AddressService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, geo geocoder.Geocoder, mail mailer.Mailer) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Post:    NewPostService(rep.Post, rep.Photo, rep.Rubric, storage),
		Rubric:  NewRubricService(rep.Rubric),
		Reset:   NewResetService(rep.Reset, rep.User, mail, cfg),
		Address: NewAddressService(geo, cfg),
	}
}
