package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"civicposts/internal/models"
)

const (
	MaxFileSize = 5 * 1024 * 1024
	MaxWidth    = 5000
	MaxHeight   = 5000
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// ValidateUpload проверяет один загружаемый файл: размер, расширение и что
// содержимое действительно декодируется как изображение допустимых размеров.
// Возвращает прочитанное содержимое, чтобы файл не читался дважды.
func ValidateUpload(fileName string, file io.Reader, size int64) ([]byte, error) {
	if size > MaxFileSize {
		return nil, fmt.Errorf("%w: файл %s слишком большой, максимум %d МБ, текущий размер %.1f МБ",
			models.ErrValidation, fileName, MaxFileSize/(1024*1024), float64(size)/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: файл %s имеет неподдерживаемый формат, разрешены: jpg, jpeg, png, gif, webp, bmp",
			models.ErrValidation, fileName)
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении файла %s: %w", fileName, err)
	}

	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%w: файл %s слишком большой, максимум %d МБ",
			models.ErrValidation, fileName, MaxFileSize/(1024*1024))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: файл %s не является корректным изображением", models.ErrValidation, fileName)
	}

	if cfg.Width > MaxWidth || cfg.Height > MaxHeight {
		return nil, fmt.Errorf("%w: изображение %s слишком большое, максимум %dx%d, текущие размеры %dx%d",
			models.ErrValidation, fileName, MaxWidth, MaxHeight, cfg.Width, cfg.Height)
	}

	return data, nil
}
