package models

// MediaType тип медиафайла в альбоме поездки
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Photo элемент альбома: фото или видео (url - data URI или удаленный адрес)
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	Date       string    `json:"date"`
	Type       MediaType `json:"type,omitempty"`
	Tags       []string  `json:"tags"`
	Comments   []Comment `json:"comments,omitempty"`
	Duration   float64   `json:"duration,omitempty"`
	IsFavorite bool      `json:"isFavorite,omitempty"`
}

// Clone returns a copy of the photo that shares no slices with the original.
func (p *Photo) Clone() Photo {
	c := *p
	c.Tags = cloneSlice(p.Tags)
	c.Comments = cloneSlice(p.Comments)
	return c
}

// Comment комментарий к фото или к поездке
type Comment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Date   string `json:"date"`
	Author string `json:"author"`
}
