package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	nbpRatesPath  = "/exchangerates/rates/a/%s/%s/%s/"
	nbpTablesPath = "/exchangerates/tables/a/"
)

// NBPProvider reads table A mid-rates from the NBP public API.
type NBPProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ application.RateSource = (*NBPProvider)(nil)

type nbpSeriesResp struct {
	Table    string `json:"table"`
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []struct {
		No            string          `json:"no"`
		EffectiveDate string          `json:"effectiveDate"`
		Mid           decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

type nbpTableResp []struct {
	Table         string `json:"table"`
	No            string `json:"no"`
	EffectiveDate string `json:"effectiveDate"`
	Rates         []struct {
		Currency string          `json:"currency"`
		Code     string          `json:"code"`
		Mid      decimal.Decimal `json:"mid"`
	} `json:"rates"`
}

func (p *NBPProvider) FetchRates(ctx context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error) {
	path := fmt.Sprintf(nbpRatesPath,
		url.PathEscape(currency),
		r.Start.Format(domain.DateLayout),
		r.End.Format(domain.DateLayout),
	)
	var body nbpSeriesResp
	if err := p.getJSON(ctx, path, &body); err != nil {
		return nil, err
	}
	out := make([]domain.RatePoint, 0, len(body.Rates))
	for _, it := range body.Rates {
		d, err := time.Parse(domain.DateLayout, it.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: nbp: bad effectiveDate %q", domain.ErrUpstreamFailure, it.EffectiveDate)
		}
		out = append(out, domain.RatePoint{Date: d, Rate: it.Mid})
	}
	return out, nil
}

// ListCurrencies returns the sorted codes of the latest table A.
func (p *NBPProvider) ListCurrencies(ctx context.Context) ([]string, error) {
	var body nbpTableResp
	if err := p.getJSON(ctx, nbpTablesPath, &body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: nbp: empty table", domain.ErrUpstreamFailure)
	}
	codes := make([]string, 0, len(body[0].Rates))
	for _, it := range body[0].Rates {
		codes = append(codes, it.Code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (p *NBPProvider) getJSON(ctx context.Context, path string, out any) error {
	if p.BaseURL == "" {
		return errors.New("nbp: missing base url")
	}
	u, err := url.Parse(p.BaseURL + path)
	if err != nil {
		return fmt.Errorf("nbp: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("nbp: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: nbp: do request: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("nbp: error 404: %w", domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: nbp: status code %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: nbp: decode response: %v", domain.ErrUpstreamFailure, err)
	}
	return nil
}
