package file

// batchOrphanDeleteDTO is the request body for DELETE /files/orphans/batch.
type batchOrphanDeleteDTO struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

// uploadResult is returned by POST /files/upload.
type uploadResult struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Storage     string `json:"storage"`
}

type orphanItem struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
	Released string `json:"released"`
}
