package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cashflow-zero/client/internal/models"
)

// ImportCSV uploads a CSV file for bulk transaction import. Parsing and
// validation happen on the backend, the client only reports the summary.
func (c *Client) ImportCSV(ctx context.Context, filename string, file io.Reader) (models.ImportSummary, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return models.ImportSummary{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.ImportSummary{}, err
	}
	if err := writer.Close(); err != nil {
		return models.ImportSummary{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/import/csv", nil, &buffer)
	if err != nil {
		return models.ImportSummary{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var summary models.ImportSummary
	err = c.send(req, &summary)
	return summary, err
}
