package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
)

// maxLogoBytes caps how much image data is pulled from a remote URL.
const maxLogoBytes = 5 << 20

// LogoFetcher resolves an organization's logo image bytes. Logos are looked
// up in the object store first and fall back to the organization's logo URL.
// A logo is always optional: every failure path yields nil bytes so receipt
// rendering can continue without one.
type LogoFetcher struct {
	store   ObjectStore
	client  *http.Client
	timeout time.Duration
}

func NewLogoFetcher(store ObjectStore, timeout time.Duration) *LogoFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LogoFetcher{
		store:   store,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch returns the logo bytes for the organization, or nil when none is
// available.
func (f *LogoFetcher) Fetch(ctx context.Context, org *entity.Organization) []byte {
	if org == nil {
		return nil
	}

	if org.LogoPath != nil && *org.LogoPath != "" {
		data, err := f.store.Get(ctx, BucketLogos, *org.LogoPath)
		if err == nil && len(data) > 0 {
			return data
		}
	}

	if org.LogoURL == nil || *org.LogoURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	url := *org.LogoURL
	operation := func() ([]byte, error) {
		return f.download(ctx, url)
	}
	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	if err != nil {
		return nil
	}
	return data
}

func (f *LogoFetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("logo download returned status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("logo download returned status %d", resp.StatusCode))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxLogoBytes)); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, backoff.Permanent(errors.New("logo download returned empty body"))
	}
	return buf.Bytes(), nil
}
