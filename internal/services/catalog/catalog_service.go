package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

// Card is a catalog entry as rendered by the mini-app.
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IconName    string `json:"icon_name"`
	PriceFrom   int64  `json:"price_from"`
	PriceLabel  string `json:"price_label"` // "Rp 150.000"
}

func ToCard(s models.Service) Card {
	return Card{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		IconName:    s.Icon(),
		PriceFrom:   s.PriceFrom,
		PriceLabel:  utils.FormatRupiah(s.PriceFrom),
	}
}

type CatalogService struct {
	repo repository.ServiceRepository
	log  *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log.Named("catalog")}
}

// List returns the active services as cards; inactive services are never included.
func (s *CatalogService) List(ctx context.Context) ([]Card, error) {
	services, err := s.repo.ListActive(ctx)
	if err != nil {
		s.log.Error("load services", zap.Error(err))
		return []Card{}, fmt.Errorf("list services: %w", err)
	}

	cards := make([]Card, 0, len(services))
	for _, svc := range services {
		if !svc.IsActive {
			continue
		}
		cards = append(cards, ToCard(svc))
	}
	return cards, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.ActiveCategories(ctx)
	if err != nil {
		s.log.Error("load categories", zap.Error(err))
		return []string{}, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
