package qtdoc

// Pagination limits. MaxPageLength bounds single-response size; requested
// lengths above it are clamped.
const (
	DefaultPageLength = 20000
	MaxPageLength     = 50000
)

// PageInfo describes the window returned by Paginate.
type PageInfo struct {
	TotalLength    int  `json:"totalLength"`
	ReturnedLength int  `json:"returnedLength"`
	StartIndex     int  `json:"startIndex"`
	Truncated      bool `json:"truncated"`
}

// Paginate slices text into the requested byte window. It is pure and
// defined for all inputs: negative indexes clamp to zero, a start beyond
// the end yields an empty slice with Truncated false, and maxLength is
// clamped to MaxPageLength. Concatenating successive windows reconstructs
// the text exactly.
func Paginate(text string, start, maxLength int) (string, PageInfo) {
	total := len(text)

	if start < 0 {
		start = 0
	}
	if maxLength <= 0 {
		maxLength = DefaultPageLength
	}
	if maxLength > MaxPageLength {
		maxLength = MaxPageLength
	}

	if start >= total {
		return "", PageInfo{
			TotalLength: total,
			StartIndex:  start,
		}
	}

	end := start + maxLength
	if end > total {
		end = total
	}

	slice := text[start:end]
	return slice, PageInfo{
		TotalLength:    total,
		ReturnedLength: len(slice),
		StartIndex:     start,
		Truncated:      end < total,
	}
}
