// Package album управляет фото и видео поездки: загрузка, избранное, подписи, комментарии.
// Все операции возвращают новую поездку и не изменяют исходную.
package album

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/wanderlust/internal/models"
)

var (
	// ErrPhotoNotFound фото с таким id нет в поездке
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrUnsupportedMedia MIME-тип не является изображением или видео
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrEmptyComment комментарий без текста
	ErrEmptyComment = errors.New("comment text cannot be empty")
)

// Подписи для новых медиафайлов
const (
	DefaultPhotoCaption = "New Photo"
	DefaultVideoCaption = "New Video"
)

// DataURI кодирует содержимое файла в data URI
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// AddMedia appends an uploaded image or video to the trip album.
// The file is stored inline as a data URI; the date is the calendar day of now.
func AddMedia(trip *models.Trip, mimeType string, data []byte, now time.Time) (models.Trip, models.Photo, error) {
	var (
		kind    models.MediaType
		caption string
	)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		kind, caption = models.MediaTypeImage, DefaultPhotoCaption
	case strings.HasPrefix(mimeType, "video/"):
		kind, caption = models.MediaTypeVideo, DefaultVideoCaption
	default:
		return models.Trip{}, models.Photo{}, fmt.Errorf("%w: %q", ErrUnsupportedMedia, mimeType)
	}

	photo := models.Photo{
		ID:       models.NewID(),
		URL:      DataURI(mimeType, data),
		Caption:  caption,
		Date:     now.Format(models.DateLayout),
		Type:     kind,
		Tags:     []string{},
		Comments: []models.Comment{},
	}

	updated := trip.Clone()
	updated.Photos = append(updated.Photos, photo)
	return updated, photo, nil
}

// AddGenerated добавляет в альбом результат AI-генерации (готовый URL или data URI)
func AddGenerated(trip *models.Trip, url string, kind models.MediaType, caption string, now time.Time) models.Trip {
	updated := trip.Clone()
	updated.Photos = append(updated.Photos, models.Photo{
		ID:       models.NewID(),
		URL:      url,
		Caption:  caption,
		Date:     now.Format(models.DateLayout),
		Type:     kind,
		Tags:     []string{},
		Comments: []models.Comment{},
	})
	return updated
}

func update(trip *models.Trip, photoID string, fn func(p *models.Photo) error) (models.Trip, error) {
	idx := slices.IndexFunc(trip.Photos, func(p models.Photo) bool { return p.ID == photoID })
	if idx < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrPhotoNotFound, photoID)
	}

	updated := trip.Clone()
	if err := fn(&updated.Photos[idx]); err != nil {
		return models.Trip{}, err
	}
	return updated, nil
}

// ToggleFavorite переключает отметку "избранное"
func ToggleFavorite(trip *models.Trip, photoID string) (models.Trip, error) {
	return update(trip, photoID, func(p *models.Photo) error {
		p.IsFavorite = !p.IsFavorite
		return nil
	})
}

// UpdateCaption заменяет подпись
func UpdateCaption(trip *models.Trip, photoID, caption string) (models.Trip, error) {
	return update(trip, photoID, func(p *models.Photo) error {
		p.Caption = caption
		return nil
	})
}

// AddComment adds a comment authored by author. Blank text is rejected.
func AddComment(trip *models.Trip, photoID, author, text string, now time.Time) (models.Trip, models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Trip{}, models.Comment{}, ErrEmptyComment
	}

	comment := models.Comment{
		ID:     models.NewID(),
		Text:   text,
		Date:   now.UTC().Format(time.RFC3339),
		Author: author,
	}

	updated, err := update(trip, photoID, func(p *models.Photo) error {
		p.Comments = append(p.Comments, comment)
		return nil
	})
	if err != nil {
		return models.Trip{}, models.Comment{}, err
	}
	return updated, comment, nil
}

// DeletePhoto удаляет фото из альбома
func DeletePhoto(trip *models.Trip, photoID string) (models.Trip, error) {
	idx := slices.IndexFunc(trip.Photos, func(p models.Photo) bool { return p.ID == photoID })
	if idx < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrPhotoNotFound, photoID)
	}

	updated := trip.Clone()
	updated.Photos = slices.Delete(updated.Photos, idx, idx+1)
	return updated, nil
}

// Favorites возвращает избранные фото в порядке альбома
func Favorites(trip *models.Trip) []models.Photo {
	var out []models.Photo
	for _, p := range trip.Photos {
		if p.IsFavorite {
			out = append(out, p.Clone())
		}
	}
	return out
}
