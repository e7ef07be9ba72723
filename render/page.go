// Package render turns fetched catalog records into ordered display pages
// plus optional drill-down item lists. It is pure presentation: no I/O except
// through the ancillary lookup callbacks a caller chooses to pass in.
package render

// Color values for page accents.
const (
	ColorGreen  = 0x2ECC71
	ColorBlue   = 0x3498DB
	ColorOrange = 0xE67E22
	ColorPurple = 0x9B59B6
	ColorPink   = 0xE91E63
)

// Field is one labeled value on a page.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Page is a fully rendered, self-contained unit of output.
type Page struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer,omitempty"`
	FooterIcon  string  `json:"footer_icon,omitempty"`
}

// PageSequence is an ordered list of pages shown behind one set of
// navigation controls.
type PageSequence []Page

// Item is one selectable drill-down entry (label shown to the user, ID used
// for the follow-up fetch).
type Item struct {
	Label string
	ID    string
}

// Attribution identifies who requested a render; it becomes the page footer.
type Attribution struct {
	Name    string
	IconURL string
}

func (a Attribution) footer() (string, string) {
	return "Requested by " + a.Name, a.IconURL
}

// ChunkLines splits lines into chunks where the first chunk holds at most
// first entries and every following chunk at most cont entries. The first
// chunk is smaller to leave room for the primary record's own fields on
// page 1.
func ChunkLines(lines []string, first, cont int) [][]string {
	if len(lines) == 0 {
		return nil
	}
	if len(lines) <= first {
		return [][]string{lines}
	}

	chunks := [][]string{lines[:first]}
	rest := lines[first:]
	for i := 0; i < len(rest); i += cont {
		end := i + cont
		if end > len(rest) {
			end = len(rest)
		}
		chunks = append(chunks, rest[i:end])
	}
	return chunks
}
