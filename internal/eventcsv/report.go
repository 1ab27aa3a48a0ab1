package eventcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/settled-dev/settled/internal/model"
)

// ReportHeader is the CSV header for the final account report.
const ReportHeader = "client,available,held,total,locked"

// WriteReport serializes account summaries in the given order, amounts fixed
// to places decimal digits.
func WriteReport(w io.Writer, summaries []model.Summary, places int32) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ReportHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range summaries {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.StringFixed(places),
			s.Held.StringFixed(places),
			s.Total.StringFixed(places),
			strconv.FormatBool(s.Frozen),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing client %d: %w", s.Client, err)
		}
	}
	return cw.Error()
}
