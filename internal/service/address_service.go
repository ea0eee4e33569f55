package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"civicposts/internal/config"
	"civicposts/internal/geocoder"
	"civicposts/internal/models"
)

type AddressInfo struct {
	InWorkingArea bool    `json:"in_working_area"`
	Message       string  `json:"message,omitempty"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	City          string  `json:"city"`
	Street        string  `json:"street"`
	House         string  `json:"house"`
	State         string  `json:"state"`
}

type SearchResult struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	Street      string  `json:"street"`
	House       string  `json:"house"`
}

type AddressService interface {
	Reverse(ctx context.Context, lat, lon float64) (*AddressInfo, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type addressService struct {
	geo geocoder.Geocoder
	cfg *config.Config
}

func NewAddressService(geo geocoder.Geocoder, cfg *config.Config) AddressService {
	return &addressService{geo: geo, cfg: cfg}
}

// buildAddress собирает строку адреса из структурных частей ответа,
// display_name остаётся запасным вариантом.
func buildAddress(place *geocoder.Place) string {
	var parts []string
	for _, part := range []string{
		place.Address.HouseNumber,
		place.Address.Road,
		place.CityName(),
		place.StateName(),
		place.Address.Country,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return place.DisplayName
	}
	return strings.Join(parts, ", ")
}

func (s *addressService) Reverse(ctx context.Context, lat, lon float64) (*AddressInfo, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: широта должна быть в диапазоне -90..90", models.ErrValidation)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: долгота должна быть в диапазоне -180..180", models.ErrValidation)
	}

	place, err := s.geo.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	info := &AddressInfo{
		Address:   buildAddress(place),
		Latitude:  place.Latitude(),
		Longitude: place.Longitude(),
		City:      place.CityName(),
		Street:    place.Address.Road,
		House:     place.Address.HouseNumber,
		State:     place.StateName(),
	}

	// район обслуживания: имя области ищется как подстрока в "город область"
	location := strings.ToLower(info.City + " " + info.State)
	for _, area := range s.cfg.WorkingAreas {
		if area != "" && strings.Contains(location, strings.ToLower(area)) {
			info.InWorkingArea = true
			break
		}
	}

	if !info.InWorkingArea {
		info.Message = "В данном районе проект пока не работает"
	}

	return info, nil
}

// Search деградирует до пустого списка при сбое внешнего сервиса: подсказки
// адресов не стоят ошибки всего запроса.
func (s *addressService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 10 {
		limit = 10
	}

	places, err := s.geo.Search(ctx, query, limit)
	if err != nil {
		log.Printf("Предупреждение: поиск адреса не удался: %v", err)
		return []SearchResult{}, nil
	}

	results := make([]SearchResult, 0, len(places))
	for _, place := range places {
		results = append(results, SearchResult{
			DisplayName: place.DisplayName,
			Latitude:    place.Latitude(),
			Longitude:   place.Longitude(),
			City:        place.CityName(),
			Street:      place.Address.Road,
			House:       place.Address.HouseNumber,
		})
	}

	return results, nil
}
