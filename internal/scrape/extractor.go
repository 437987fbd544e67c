// Package scrape drives a headless browser against the upstream
// weather site and extracts raw hourly forecast fields from the
// rendered page. Browser automation is the only I/O in the pipeline;
// everything downstream is pure and fixture-testable.
package scrape

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// PageReader is the narrow seam between the extractor and the browser
// engine. Tests substitute a fixture-backed reader; production uses
// ChromeReader.
type PageReader interface {
	Read(ctx context.Context, url string) (string, error)
}

type Extractor struct {
	reader PageReader
}

func NewExtractor(reader PageReader) *Extractor {
	return &Extractor{reader: reader}
}

// Extract renders url and returns the raw hourly field-sets plus the
// current-conditions snapshot. Transient read failures are retried
// briefly; a rendering timeout is permanent, since repeating a full
// wait budget inside one extraction only stalls the batch.
func (e *Extractor) Extract(ctx context.Context, url, code string) (*Result, error) {
	var html string
	operation := func() error {
		var err error
		html, err = e.reader.Read(ctx, url)
		if err != nil {
			if errors.Is(err, ErrExtractionTimeout) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	result, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}

	log.Printf("scrape: %s: %d hourly columns, current=%v", code, len(result.Hourly), result.Current != nil)
	return result, nil
}
