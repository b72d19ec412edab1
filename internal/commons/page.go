package commons

type PageMeta struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type Page[T any] struct {
	Content []T      `json:"content"`
	Page    PageMeta `json:"page"`
}

func NewPage[T any](content []T, number, size int, totalElements int64) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}

	return Page[T]{
		Content: content,
		Page: PageMeta{
			Size:          size,
			Number:        number,
			TotalElements: totalElements,
			TotalPages:    totalPages,
		},
	}
}
