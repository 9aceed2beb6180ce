package api

// FileMetadata метаданные файла в хранилище
type FileMetadata struct {
	AppProperties map[string]string `json:"appProperties,omitempty"`
	ID            string            `json:"id,omitempty"`
	Name          string            `json:"name"`
	MimeType      string            `json:"mimeType,omitempty"`
	ModifiedTime  string            `json:"modifiedTime,omitempty"`
}

// FileList результат поиска файлов
type FileList struct {
	Files []FileMetadata `json:"files"`
}

// AppPropertyLastModified ключ appProperties со временем бэкапа (epoch ms строкой)
const AppPropertyLastModified = "lastModified"
