package geocode

import (
	"Foodnote/config"
	"Foodnote/pkg/log"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// UnknownLocation 有结果但拼不出可读地址
const UnknownLocation = "Unknown Location"

// Google Google Geocoding API 反向地理编码
type Google struct {
	http     *http.Client
	endpoint string
	apiKey   string
	language string
}

func NewGoogle(conf *config.GeocoderConfig) *Google {
	return &Google{
		http:     &http.Client{Timeout: conf.Timeout},
		endpoint: conf.Endpoint,
		apiKey:   conf.APIKey,
		language: conf.Language,
	}
}

func (g *Google) Enabled() bool {
	return g.apiKey != ""
}

// Reverse 只请求一次，任何失败都返回 false
func (g *Google) Reverse(ctx context.Context, lat, lng float64) (string, bool) {
	if !g.Enabled() {
		return "", false
	}

	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("key", g.apiKey)
	if g.language != "" {
		q.Set("language", g.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", false
	}
	resp, err := g.http.Do(req)
	if err != nil {
		log.L.Warn("reverse geocode request failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || resp.StatusCode != http.StatusOK {
		log.L.Warn("reverse geocode bad response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return "", false
	}

	if status := gjson.GetBytes(body, "status").String(); status != "OK" {
		if status != "ZERO_RESULTS" {
			log.L.Warn("reverse geocode status", zap.String("status", status),
				zap.String("error", gjson.GetBytes(body, "error_message").String()))
		}
		return "", false
	}
	first := gjson.GetBytes(body, "results.0")
	if !first.Exists() {
		return "", false
	}
	return DisplayName(first), true
}

// DisplayName 街区、城市、国家用 ", " 连接；都没有时依次退回到街道、完整地址
func DisplayName(result gjson.Result) string {
	var subLocality, locality, country, route string
	result.Get("address_components").ForEach(func(_, comp gjson.Result) bool {
		name := comp.Get("long_name").String()
		for _, t := range comp.Get("types").Array() {
			switch t.String() {
			case "sublocality", "sublocality_level_1":
				if subLocality == "" {
					subLocality = name
				}
			case "locality", "postal_town":
				if locality == "" {
					locality = name
				}
			case "country":
				country = name
			case "route":
				route = name
			}
		}
		return true
	})

	parts := make([]string, 0, 3)
	for _, p := range []string{subLocality, locality, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if route != "" {
		return route
	}
	if line := firstLine(result.Get("formatted_address").String()); line != "" {
		return line
	}
	return UnknownLocation
}

// firstLine 取地址的第一段；REST 返回的是逗号拼接的一行
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ", "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
