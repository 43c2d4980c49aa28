package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	weatherUnavailable = "Météo indisponible pour le moment."
	newsUnavailable    = "Actualités indisponibles pour le moment."
	headlineLimit      = 3
)

// WeatherResult is always a usable summary; failures degrade to a
// placeholder instead of an error.
type WeatherResult struct {
	City    string `json:"city"`
	Summary string `json:"summary"`
}

// NewsResult carries up to three headlines, or a single placeholder.
type NewsResult struct {
	Headlines []string `json:"headlines"`
	Message   string   `json:"message"`
}

func (r *Registry) weatherFetcher(ctx context.Context, p Params) (interface{}, error) {
	city := p.StringOr("city", r.cfg.DefaultCity)

	// The format string is passed through raw: wttr.in expects the
	// literal %C+%t placeholders, which SetQueryParam would re-encode.
	resp, err := r.http.R().
		SetContext(ctx).
		Get(r.cfg.WeatherBaseURL + "/" + url.PathEscape(city) + "?format=%C+%t&lang=fr")
	if err != nil || resp.StatusCode() != http.StatusOK {
		r.log.Warn().Err(err).Str("city", city).Msg("weather fetch failed")
		return WeatherResult{City: city, Summary: weatherUnavailable}, nil
	}

	summary := strings.TrimSpace(resp.String())
	if summary == "" {
		summary = weatherUnavailable
	}
	return WeatherResult{City: city, Summary: summary}, nil
}

type rssBridgeResponse struct {
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
}

func (r *Registry) newsFetcher(ctx context.Context, p Params) (interface{}, error) {
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("rss_url", r.cfg.NewsFeedURL).
		Get(r.cfg.NewsBridgeURL)
	if err != nil || resp.StatusCode() != http.StatusOK {
		r.log.Warn().Err(err).Msg("news fetch failed")
		return NewsResult{Headlines: []string{newsUnavailable}, Message: newsUnavailable}, nil
	}

	var br rssBridgeResponse
	if err := json.Unmarshal(resp.Body(), &br); err != nil || len(br.Items) == 0 {
		return NewsResult{Headlines: []string{newsUnavailable}, Message: newsUnavailable}, nil
	}

	var heads []string
	for _, it := range br.Items {
		if t := strings.TrimSpace(it.Title); t != "" {
			heads = append(heads, t)
		}
		if len(heads) == headlineLimit {
			break
		}
	}
	if len(heads) == 0 {
		return NewsResult{Headlines: []string{newsUnavailable}, Message: newsUnavailable}, nil
	}
	return NewsResult{
		Headlines: heads,
		Message:   "Voici les actualités : " + strings.Join(heads, ". "),
	}, nil
}
