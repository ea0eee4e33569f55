package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"civicposts/internal/config"
	"civicposts/internal/models"
)

// Place - сырой ответ Nominatim для reverse и search.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Region      string `json:"region"`
		Country     string `json:"country"`
	} `json:"address"`
	Error string `json:"error"`
}

func (p *Place) CityName() string {
	if p.Address.City != "" {
		return p.Address.City
	}
	if p.Address.Town != "" {
		return p.Address.Town
	}
	return p.Address.Village
}

func (p *Place) StateName() string {
	if p.Address.State != "" {
		return p.Address.State
	}
	return p.Address.Region
}

func (p *Place) Latitude() float64 {
	lat, _ := strconv.ParseFloat(p.Lat, 64)
	return lat
}

func (p *Place) Longitude() float64 {
	lon, _ := strconv.ParseFloat(p.Lon, 64)
	return lon
}

type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

type NominatimClient struct {
	cfg    *config.Config
	client *http.Client
}

func NewNominatimClient(cfg *config.Config) *NominatimClient {
	return &NominatimClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Nominatim.Timeout},
	}
}

func (n *NominatimClient) do(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", n.cfg.Nominatim.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrGateway, err)
	}

	// политика Nominatim требует User-Agent и Referer
	req.Header.Set("User-Agent", n.cfg.Nominatim.UserAgent)
	req.Header.Set("Referer", n.cfg.Nominatim.Referer)
	req.Header.Set("Accept-Language", "ru")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: Nominatim вернул статус %d", models.ErrGateway, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: неверный ответ сервера: %v", models.ErrGateway, err)
	}

	return nil
}

func (n *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	var place Place
	if err := n.do(ctx, "/reverse", params, &place); err != nil {
		return nil, err
	}

	if place.Error != "" {
		return nil, fmt.Errorf("%w: %s", models.ErrGateway, place.Error)
	}

	return &place, nil
}

func (n *NominatimClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	var places []Place
	if err := n.do(ctx, "/search", params, &places); err != nil {
		return nil, err
	}

	return places, nil
}
