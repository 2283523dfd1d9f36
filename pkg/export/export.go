package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"backyard-leads/pkg/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the download filename from the searched location, with
// whitespace runs replaced by single hyphens. ext is "json" or "csv".
func Filename(location, ext string) string {
	return fmt.Sprintf("backyard-leads-%s.%s", whitespaceRun.ReplaceAllString(location, "-"), ext)
}

// JSON serializes the lead batch envelope verbatim, indented for readability
func JSON(batch *models.LeadBatch) ([]byte, error) {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error serializing leads: %w", err)
	}
	return data, nil
}

// CSV columns, one row per lead. Nested groups are flattened; absent
// optional attributes become empty cells.
var csvHeader = []string{
	"address",
	"lat",
	"lng",
	"zpid",
	"price",
	"beds",
	"baths",
	"livingArea",
	"lotSize",
	"image_url",
	"backyard_status",
	"backyard_confidence",
	"notes",
	"lead_score",
}

// CSV serializes the batch as comma-separated values
func CSV(batch *models.LeadBatch) ([]byte, error) {
	var buf bytes.Buffer

	// csv.NewWriter handles quoting, commas inside fields, line endings
	writer := csv.NewWriter(&buf)

	writer.Write(csvHeader)

	for _, lead := range batch.Leads {
		writer.Write([]string{
			lead.Address,
			strconv.FormatFloat(lead.Coordinates.Lat, 'f', -1, 64),
			strconv.FormatFloat(lead.Coordinates.Lng, 'f', -1, 64),
			stringCell(lead.Zillow.ZPID),
			floatCell(lead.Zillow.Price),
			floatCell(lead.Zillow.Beds),
			floatCell(lead.Zillow.Baths),
			floatCell(lead.Zillow.LivingArea),
			floatCell(lead.Zillow.LotSize),
			lead.Imagery.ImageURL,
			lead.Vision.BackyardStatus,
			floatCell(lead.Vision.BackyardConfidence),
			stringCell(lead.Vision.Notes),
			strconv.FormatFloat(lead.LeadScore, 'f', -1, 64),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}

	return buf.Bytes(), nil
}

func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
