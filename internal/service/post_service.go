package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"slices"

	"civicposts/internal/imaging"
	"civicposts/internal/models"
	"civicposts/internal/repository"
	"civicposts/internal/storage"
)

type CreatePostRequest struct {
	Title       string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Rubric      string
	Status      string
}

// UpdatePostRequest - частичное обновление: nil-поля не трогаются.
type UpdatePostRequest struct {
	Title       *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	Rubric      *string
	Status      *string
}

type PhotoUpload struct {
	FileName string
	Data     []byte
	Size     int64
}

type PostService interface {
	CreatePost(ctx context.Context, authorID int64, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID, viewerID int64) (*models.Post, error)
	ListPosts(ctx context.Context, viewerID int64, rubric, address string) ([]models.Post, error)
	ListUserPosts(ctx context.Context, authorID, viewerID int64, rubric, address string) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID, callerID int64, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, callerID int64) error
	AttachPhotos(ctx context.Context, postID, callerID int64, files []PhotoUpload, captions []string) ([]models.PostPhoto, error)
	DetachPhoto(ctx context.Context, photoID, callerID int64) error
}

type postService struct {
	postRepo   repository.PostRepository
	photoRepo  repository.PhotoRepository
	rubricRepo repository.RubricRepository
	storage    storage.Storage
}

func NewPostService(postRepo repository.PostRepository, photoRepo repository.PhotoRepository, rubricRepo repository.RubricRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo:   postRepo,
		photoRepo:  photoRepo,
		rubricRepo: rubricRepo,
		storage:    storage,
	}
}

var validStatuses = []string{models.StatusDraft, models.StatusPublished, models.StatusArchived}

func validateCoordinates(lat, lon *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("%w: широта должна быть в диапазоне -90..90", models.ErrValidation)
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("%w: долгота должна быть в диапазоне -180..180", models.ErrValidation)
	}
	return nil
}

func (p *postService) checkRubric(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	_, err := p.rubricRepo.GetByName(ctx, name)
	return err
}

func (p *postService) CreatePost(ctx context.Context, authorID int64, req CreatePostRequest) (*models.Post, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: отсутствует заголовок", models.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = models.StatusPublished
	}

	if !slices.Contains(validStatuses, status) {
		return nil, fmt.Errorf("%w: статус должен быть draft, published или archived", models.ErrValidation)
	}

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	if err := p.checkRubric(ctx, req.Rubric); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Status:      status,
	}

	if req.Rubric != "" {
		post.RubricName = sql.NullString{String: req.Rubric, Valid: true}
	}
	if req.Latitude != nil {
		post.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		post.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// неопубликованный пост видит только его автор
	if post.Status != models.StatusPublished && post.AuthorID != viewerID {
		return nil, fmt.Errorf("%w: пост не опубликован", models.ErrForbidden)
	}

	photos, err := p.photoRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Photos = photos

	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, viewerID int64, rubric, address string) ([]models.Post, error) {
	return p.postRepo.List(ctx, repository.PostFilter{
		Rubric:   rubric,
		Address:  address,
		ViewerID: viewerID,
	})
}

func (p *postService) ListUserPosts(ctx context.Context, authorID, viewerID int64, rubric, address string) ([]models.Post, error) {
	return p.postRepo.List(ctx, repository.PostFilter{
		Rubric:   rubric,
		Address:  address,
		ViewerID: viewerID,
		AuthorID: authorID,
	})
}

func (p *postService) UpdatePost(ctx context.Context, postID, callerID int64, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, fmt.Errorf("%w: изменять пост может только его автор", models.ErrForbidden)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: отсутствует заголовок", models.ErrValidation)
		}
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Address != nil {
		post.Address = *req.Address
	}

	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if req.Latitude != nil {
		post.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		post.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	if req.Status != nil {
		if !slices.Contains(validStatuses, *req.Status) {
			return nil, fmt.Errorf("%w: статус должен быть draft, published или archived", models.ErrValidation)
		}
		post.Status = *req.Status
	}

	if req.Rubric != nil {
		if err := p.checkRubric(ctx, *req.Rubric); err != nil {
			return nil, err
		}
		if *req.Rubric == "" {
			post.RubricName = sql.NullString{}
		} else {
			post.RubricName = sql.NullString{String: *req.Rubric, Valid: true}
		}
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, callerID int64) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID {
		return fmt.Errorf("%w: удалять пост может только его автор", models.ErrForbidden)
	}

	objectNames, err := p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	// записи уже удалены, файлы убираем следом
	for _, objectName := range objectNames {
		if err := p.storage.DeletePhoto(ctx, objectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить файл %s: %v", objectName, err)
		}
	}

	return nil
}

func (p *postService) AttachPhotos(ctx context.Context, postID, callerID int64, files []PhotoUpload, captions []string) ([]models.PostPhoto, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, fmt.Errorf("%w: добавлять фотографии может только автор поста", models.ErrForbidden)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: не переданы файлы", models.ErrValidation)
	}

	if len(captions) > len(files) {
		return nil, fmt.Errorf("%w: подписей больше, чем файлов", models.ErrValidation)
	}

	// недостающие подписи дополняются пустыми
	for len(captions) < len(files) {
		captions = append(captions, "")
	}

	var uploaded []string
	cleanup := func() {
		for _, objectName := range uploaded {
			if err := p.storage.DeletePhoto(ctx, objectName); err != nil {
				log.Printf("Предупреждение: не удалось удалить файл %s: %v", objectName, err)
			}
		}
	}

	photos := make([]models.PostPhoto, 0, len(files))
	for i, file := range files {
		data, err := imaging.ValidateUpload(file.FileName, bytes.NewReader(file.Data), file.Size)
		if err != nil {
			cleanup()
			return nil, err
		}

		objectName, photoURL, err := p.storage.UploadPhoto(ctx, postID, file.FileName, bytes.NewReader(data), int64(len(data)))
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("ошибка загрузки фотографии в хранилище: %w", err)
		}
		uploaded = append(uploaded, objectName)

		photos = append(photos, models.PostPhoto{
			PostID:     postID,
			ObjectName: objectName,
			PhotoURL:   photoURL,
			Order:      i,
			Caption:    captions[i],
		})
	}

	saved, err := p.photoRepo.CreateBatch(ctx, postID, photos)
	if err != nil {
		cleanup()
		return nil, err
	}

	return saved, nil
}

func (p *postService) DetachPhoto(ctx context.Context, photoID, callerID int64) error {
	photo, err := p.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	post, err := p.postRepo.GetByID(ctx, photo.PostID)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID {
		return fmt.Errorf("%w: удалять фотографии может только автор поста", models.ErrForbidden)
	}

	if err := p.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}

	if err := p.storage.DeletePhoto(ctx, photo.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить файл %s: %v", photo.ObjectName, err)
	}

	return nil
}
