package export

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/jfb-hart/lead-command/internal/message"
)

const banner = "========================================"

// WriteMessagesTxt writes generated outreach messages as a plain-text
// dump separated by banner lines.
func WriteMessagesTxt(w io.Writer, messages []message.Message) error {
	for _, m := range messages {
		_, err := fmt.Fprintf(w, "%s\nLEAD #%d: %s\nBusiness Type: %s | Rating: %d of 5\n%s\n\n%s\n\n\n",
			banner, m.LeadNumber, m.CompanyName, m.BusinessType, m.Rating, banner, m.Body)
		if err != nil {
			return eris.Wrap(err, "export: write message")
		}
	}
	return nil
}
