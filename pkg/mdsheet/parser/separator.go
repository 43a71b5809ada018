package parser

import (
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// ClassifySeparatorRow reports whether cells form a header separator row
// (---, :---, ---:, :---:) and returns one alignment per cell.
// Any character other than the dash character, ':' or whitespace rejects the row.
func ClassifySeparatorRow(cells []string, s schema.ParsingSchema) ([]models.Alignment, bool) {
	if len(cells) == 0 {
		return nil, false
	}

	dash := "-"
	if s.HeaderSeparatorChar != 0 {
		dash = string(s.HeaderSeparatorChar)
	}

	aligns := make([]models.Alignment, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if !strings.Contains(cell, dash) {
			return nil, false
		}
		rest := strings.ReplaceAll(strings.ReplaceAll(cell, dash, ""), ":", "")
		if strings.TrimSpace(rest) != "" {
			return nil, false
		}

		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns = append(aligns, models.AlignCenter)
		case right:
			aligns = append(aligns, models.AlignRight)
		case left:
			aligns = append(aligns, models.AlignLeft)
		default:
			aligns = append(aligns, models.AlignDefault)
		}
	}

	return aligns, true
}
